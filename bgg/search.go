package bgg

import (
	"context"
	"net/url"
	"strconv"
)

// SearchResult represents a game in search results.
type SearchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Search searches for board games by name.
func (c *Client) Search(ctx context.Context, query string, exact bool) ([]SearchResult, error) {
	if query == "" {
		return nil, newParseError("search query cannot be empty", nil)
	}

	params := url.Values{
		"query": {query},
		"type":  {"boardgame"},
	}
	if exact {
		params.Set("exact", "1")
	}

	body, err := c.fetchXML(ctx, "/search", params, c.retry)
	if err != nil {
		return nil, err
	}

	xmlResp, err := parseXML[xmlSearch](body, "failed to parse search response")
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(xmlResp.Items))
	for _, item := range xmlResp.Items {
		results = append(results, SearchResult{
			ID:   item.ID,
			Name: item.Name.Value,
			Type: item.Type,
		})
	}
	return results, nil
}

// searchGameID resolves a name to the best-match game id: exact match first,
// fuzzy fallback, NotFoundError when neither yields anything.
func (c *Client) searchGameID(ctx context.Context, name string) (int, error) {
	results, err := c.Search(ctx, name, true)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		results, err = c.Search(ctx, name, false)
		if err != nil {
			return 0, err
		}
	}
	if len(results) == 0 {
		return 0, newNotFoundError("no games found matching " + strconv.Quote(name))
	}
	return results[0].ID, nil
}
