package imgur

import (
	"context"
	"encoding/json"
	"fmt"
)

// paginate requests pages 0, 1, 2, ... of r until a page comes back empty or
// the accumulated items reach limit, then truncates to limit. A limit of
// zero or less means the client's default ceiling. Pages are fetched
// strictly in order and no page is requested once the ceiling is covered.
func (c *Client) paginate(ctx context.Context, call apiCall, r route, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		limit = c.defaultLimit
	}

	var items []json.RawMessage

	for page := 0; ; page++ {
		call.path = r.page(page)

		data, err := c.send(ctx, &call)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		var batch []json.RawMessage
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("decoding page %d: %w", page, err)
		}

		if len(batch) > 0 && limit > len(items)+len(batch) {
			items = append(items, batch...)

			continue
		}

		items = append(items, batch...)
		if len(items) > limit {
			items = items[:limit]
		}

		return items, nil
	}
}
