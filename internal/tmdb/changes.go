package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"flixd/internal/data/entity"
	"flixd/pkg/utils"
)

// ChangedIDs returns the identifiers reported as changed since the
// given time, across all pages of the change feed. An empty result is
// valid and means nothing changed.
func (c *Client) ChangedIDs(ctx context.Context, kind entity.MediaKind, since time.Time) ([]int64, error) {
	endpoint := string(kind) + "/changes"

	var ids []int64
	totalPages := 1

	for page := 1; page <= totalPages && page <= maxPages; page++ {
		params := url.Values{}
		params.Set("start_date", since.UTC().Format("2006-01-02"))
		params.Set("page", strconv.Itoa(page))

		var res pagedResponse[changeEntry]
		if err := c.get(ctx, endpoint, params, &res); err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", endpoint, page, err)
		}

		for _, entry := range res.Results {
			if errs := utils.ValidateStruct(&entry); len(errs) > 0 {
				return nil, fmt.Errorf("fetch %s page %d: invalid change entry: %s",
					endpoint, page, utils.FormatValidationErrors(errs))
			}
			ids = append(ids, entry.ID)
		}

		if res.TotalPages > 0 {
			totalPages = res.TotalPages
		}
	}

	return ids, nil
}
