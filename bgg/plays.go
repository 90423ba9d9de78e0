package bgg

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// playDateLayout is the calendar-date format of the plays endpoint.
const playDateLayout = "2006-01-02"

// Plays pages through a user's full play log, one page at a time starting at
// page 1, stopping at the first page with zero entries. Entries with an
// unparseable date are kept with a zero Date rather than dropped.
func (c *Client) Plays(ctx context.Context, username string) ([]Play, error) {
	if username == "" {
		return nil, newParseError("username is required", nil)
	}

	var plays []Play
	for page := 1; ; page++ {
		params := url.Values{
			"username": {username},
			"page":     {strconv.Itoa(page)},
		}

		body, err := c.fetchXML(ctx, "/plays", params, c.retry)
		if err != nil {
			return nil, err
		}

		xmlResp, err := parseXML[xmlPlays](body, "failed to parse plays response")
		if err != nil {
			return nil, err
		}
		if len(xmlResp.Plays) == 0 {
			break
		}

		for _, play := range xmlResp.Plays {
			entry := Play{
				Quantity: atoiOr(play.Quantity, 1),
				GameID:   play.Item.ObjectID,
				GameName: play.Item.Name,
			}
			if entry.Quantity < 1 {
				entry.Quantity = 1
			}
			if d, err := time.Parse(playDateLayout, play.Date); err == nil {
				entry.Date = d
			}
			plays = append(plays, entry)
		}
	}

	return plays, nil
}
