package tmdb

import (
	"context"
	"fmt"

	"flixd/internal/data/entity"
)

// watchRegionPreference is the ordered list of regions consulted for
// streaming availability. The first region carrying any offer wins.
var watchRegionPreference = []string{"US", "GB", "RW"}

// StreamingServices resolves the provider names for one entity: the
// first region in preference order that has any offer, and within that
// region flatrate over ad-supported over free. No offers anywhere is an
// empty list, not an error.
func (c *Client) StreamingServices(ctx context.Context, kind entity.MediaKind, id int64) ([]string, error) {
	var res providersResponse
	path := fmt.Sprintf("%s/%d/watch/providers", kind, id)
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	for _, region := range watchRegionPreference {
		offers, ok := res.Results[region]
		if !ok {
			continue
		}
		for _, tier := range [][]providerEntry{offers.Flatrate, offers.Ads, offers.Free} {
			if len(tier) == 0 {
				continue
			}
			names := make([]string, len(tier))
			for i, p := range tier {
				names[i] = p.ProviderName
			}
			return names, nil
		}
	}

	return []string{}, nil
}

// TrailerURL resolves the first YouTube-hosted entry typed "Trailer"
// to a watch URL. No qualifying entry is nil, not an error.
func (c *Client) TrailerURL(ctx context.Context, kind entity.MediaKind, id int64) (*string, error) {
	var res videosResponse
	path := fmt.Sprintf("%s/%d/videos", kind, id)
	if err := c.get(ctx, path, nil, &res); err != nil {
		return nil, err
	}

	for _, v := range res.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			u := "https://www.youtube.com/watch?v=" + v.Key
			return &u, nil
		}
	}

	return nil, nil
}
