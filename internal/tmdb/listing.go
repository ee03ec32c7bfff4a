package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"flixd/internal/data/entity"
)

// maxPages is a hard safety bound on pagination, mirroring the upstream
// API's own page ceiling. Hitting it truncates the result set, it does
// not error.
const maxPages = 1000

// Popular returns every item of the popular listing for a kind, across
// all pages in page order.
func (c *Client) Popular(ctx context.Context, kind entity.MediaKind) ([]ListingItem, error) {
	return c.fetchAllPages(ctx, string(kind)+"/popular", nil)
}

// fetchAllPages walks a paginated listing endpoint sequentially: page
// N+1 depends on page N's reported total_pages. Any page failing after
// retries fails the whole fetch; partial results are discarded.
func (c *Client) fetchAllPages(ctx context.Context, endpoint string, params url.Values) ([]ListingItem, error) {
	var items []ListingItem
	totalPages := 1

	for page := 1; page <= totalPages && page <= maxPages; page++ {
		p := url.Values{}
		for k, vs := range params {
			p[k] = vs
		}
		p.Set("page", strconv.Itoa(page))

		var res pagedResponse[ListingItem]
		if err := c.get(ctx, endpoint, p, &res); err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", endpoint, page, err)
		}

		for i := range res.Results {
			if err := res.Results[i].Validate(); err != nil {
				return nil, fmt.Errorf("fetch %s page %d: %w", endpoint, page, err)
			}
		}

		items = append(items, res.Results...)
		if res.TotalPages > 0 {
			totalPages = res.TotalPages
		}
	}

	return items, nil
}

// Details fetches the full record for one identifier. Used by delta
// runs, where the change feed reports ids only. Returns ErrNotFound
// for entities that have left the catalog.
func (c *Client) Details(ctx context.Context, kind entity.MediaKind, id int64) (*ListingItem, error) {
	var item ListingItem
	path := fmt.Sprintf("%s/%d", kind, id)
	if err := c.get(ctx, path, nil, &item); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("details %s: %w", path, err)
	}
	return &item, nil
}
