package bgg

import (
	"context"
	"net/url"
	"strconv"
)

// MarketplaceListings retrieves a user's active marketplace inventory. The
// username is resolved to a numeric id first; listings missing an item id or
// price are filtered out.
func (c *Client) MarketplaceListings(ctx context.Context, username string) ([]Listing, error) {
	userID, err := c.UserID(ctx, username)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("resolved marketplace user", "username", username, "user_id", userID)

	params := url.Values{
		"ajax":         {"1"},
		"browsetype":   {"inventory"},
		"userid":       {strconv.Itoa(userID)},
		"productstate": {"active"},
		"stock":        {"instock"},
		"sort":         {"title"},
		"pageid":       {"1"},
	}

	var market jsonMarket
	if err := c.fetchJSON(ctx, c.marketURL, params, c.retry, &market); err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(market.Products))
	for _, product := range market.Products {
		itemID, okID := anyToInt(product.ObjectID)
		price, okPrice := anyToFloat(product.Price)
		if !okID || itemID == 0 || !okPrice || price == 0 {
			continue
		}

		listing := Listing{
			ItemID:    itemID,
			Price:     price,
			Currency:  product.Currency,
			Condition: product.Condition,
		}
		if productID, ok := anyToInt(product.ProductID); ok {
			listing.ProductID = productID
			listing.URL = "https://boardgamegeek.com/market/product/" + strconv.Itoa(productID)
		}
		listings = append(listings, listing)
	}

	c.logger.Info("fetched marketplace listings", "username", username, "count", len(listings))
	return listings, nil
}
