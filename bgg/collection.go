package bgg

import (
	"context"
	"net/url"
)

// Collection retrieves a user's game collection. Wishlist priority and
// inventory location populate only when the corresponding options were
// requested; private data additionally requires an authenticated session.
func (c *Client) Collection(ctx context.Context, username string, opts CollectionOptions) ([]CollectionItem, error) {
	if username == "" {
		return nil, newParseError("username is required", nil)
	}

	params := url.Values{
		"username": {username},
		"stats":    {"1"},
	}
	if opts.OwnedOnly {
		params.Set("own", "1")
	}
	if opts.Wishlist {
		params.Set("wishlist", "1")
	}
	if opts.Preordered {
		params.Set("preordered", "1")
	}
	if opts.ExcludeSubtype != "" {
		params.Set("excludesubtype", opts.ExcludeSubtype)
	}
	if opts.ShowPrivate && c.authenticated {
		params.Set("showprivate", "1")
	}

	// The collection endpoint answers 202 while the export is being
	// generated, so it runs under the longer batch budget.
	body, err := c.fetchXML(ctx, "/collection", params, c.batchRetry)
	if err != nil {
		return nil, err
	}

	xmlResp, err := parseXML[xmlCollection](body, "failed to parse collection response")
	if err != nil {
		return nil, err
	}

	items := make([]CollectionItem, 0, len(xmlResp.Items))
	for _, item := range xmlResp.Items {
		items = append(items, convertCollectionItem(item, opts))
	}
	return items, nil
}

func convertCollectionItem(item xmlCollectionItem, opts CollectionOptions) CollectionItem {
	ci := CollectionItem{
		ID:         item.ObjectID,
		Name:       item.Name.Value,
		Thumbnail:  item.Thumbnail,
		MinPlayers: atoiOr(item.Stats.MinPlayers, 1),
		MaxPlayers: atoiOr(item.Stats.MaxPlayers, 1),
		NumPlays:   atoiOr(item.NumPlays, 0),
		Owned:      item.Status.Own == "1",
	}
	if ci.Name == "" {
		ci.Name = "Unknown"
	}
	if ci.MaxPlayers < ci.MinPlayers {
		ci.MaxPlayers = ci.MinPlayers
	}

	if v := item.Stats.Rating.Value; v != "" && v != "N/A" {
		ci.Rating = atofOr(v, 0)
		ci.Rated = true
	}

	if opts.Wishlist {
		ci.WishlistPriority = atoiOr(item.Status.WishlistPriority, 0)
	}

	if item.PrivateInfo != nil {
		ci.InventoryLocation = item.PrivateInfo.InventoryLocation
	}

	return ci
}
