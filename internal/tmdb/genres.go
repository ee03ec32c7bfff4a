package tmdb

import (
	"context"
	"fmt"
	"net/url"

	"flixd/internal/data/entity"
	"flixd/pkg/utils"
)

// GenreList fetches the genre vocabulary for a kind.
func (c *Client) GenreList(ctx context.Context, kind entity.MediaKind) ([]entity.Genre, error) {
	params := url.Values{}
	params.Set("language", "en-US")

	var res genreListResponse
	path := fmt.Sprintf("genre/%s/list", kind)
	if err := c.get(ctx, path, params, &res); err != nil {
		return nil, err
	}

	genres := make([]entity.Genre, 0, len(res.Genres))
	for _, g := range res.Genres {
		if errs := utils.ValidateStruct(&g); len(errs) > 0 {
			return nil, fmt.Errorf("%s: invalid genre entry: %s", path, utils.FormatValidationErrors(errs))
		}
		genres = append(genres, entity.Genre{ID: g.ID, Name: g.Name})
	}

	return genres, nil
}
