package bgg

import (
	"context"
	"net/url"
)

// UserID resolves a username to its numeric user id.
func (c *Client) UserID(ctx context.Context, username string) (int, error) {
	if username == "" {
		return 0, newParseError("username is required", nil)
	}

	params := url.Values{
		"name": {username},
		"type": {"user"},
	}

	body, err := c.fetchXML(ctx, "/user", params, c.retry)
	if err != nil {
		return 0, err
	}

	xmlResp, err := parseXML[xmlUser](body, "failed to parse user response")
	if err != nil {
		return 0, err
	}

	id := atoiOr(xmlResp.ID, 0)
	if id <= 0 {
		return 0, newNotFoundError("could not resolve user id for " + username)
	}
	return id, nil
}
