// Package bgg provides a client for the BoardGameGeek XML API.
package bgg

import "time"

// Game represents detailed information about a board game.
// All fields are populated defensively: a missing element or attribute in the
// source document yields the zero value, never a parse failure.
type Game struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	MinPlayers  int    `json:"minplayers"`
	MaxPlayers  int    `json:"maxplayers"`
	PlayingTime int    `json:"playingtime"`

	Stats            Stats       `json:"stats"`
	Expansions       []Expansion `json:"expansions"`
	SuggestedPlayers Poll        `json:"suggested_players"`

	// Versions is populated only when versions were requested.
	Versions []Version `json:"versions,omitempty"`
}

// Stats is the rating summary of a game.
type Stats struct {
	UsersRated    int     `json:"usersrated"`
	Average       float64 `json:"average"`
	BayesAverage  float64 `json:"bayesaverage"`
	StdDev        float64 `json:"stddev"`
	Median        float64 `json:"median"`
	AverageWeight float64 `json:"averageweight"`
	Ranks         []Rank  `json:"ranks"`
}

// Rank is one entry of a game's rank list. Ranked is false when the service
// reported the "Not Ranked" sentinel instead of a number.
type Rank struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FriendlyName string `json:"friendlyname"`
	Value        int    `json:"value"`
	Ranked       bool   `json:"ranked"`
}

// Expansion is a reference to an expansion of a game. Only outbound links
// (this game's own expansions) are kept at parse time.
type Expansion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Poll is the per-game community vote on suggested player counts, classified
// at parse time: purely numeric player-count options land in Counts in
// document order, everything else (category-style labels such as "4+") lands
// in Ignored.
type Poll struct {
	TotalVotes int                `json:"totalvotes"`
	Counts     []PlayerCountVotes `json:"results"`
	Ignored    []string           `json:"ignored,omitempty"`
}

// PlayerCountVotes is the vote tuple for one player-count option.
type PlayerCountVotes struct {
	Players        int `json:"players"`
	Best           int `json:"best"`
	Recommended    int `json:"recommended"`
	NotRecommended int `json:"not_recommended"`
}

// Version is one physical edition of a game. Dimensions are in inches and
// default to zero when absent or malformed.
type Version struct {
	ItemID   int     `json:"item_id"`
	Language string  `json:"language"`
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
	Depth    float64 `json:"depth"`
}

// Volume returns the box volume of this version.
func (v Version) Volume() float64 {
	return v.Width * v.Length * v.Depth
}

// CollectionOptions specifies filters for fetching a user's collection.
type CollectionOptions struct {
	OwnedOnly      bool   // own=1
	ExcludeSubtype string // e.g. "boardgameexpansion"
	Wishlist       bool   // wishlist=1; also populates WishlistPriority
	Preordered     bool   // preordered=1
	ShowPrivate    bool   // showprivate=1; honored only for an authenticated session
}

// CollectionItem represents a game in a user's collection. It corresponds to
// exactly one catalog game but is a lighter-weight record than Game.
type CollectionItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	MinPlayers int    `json:"minplayers"`
	MaxPlayers int    `json:"maxplayers"`
	NumPlays   int    `json:"numplays"`
	Owned      bool   `json:"owned"`

	// Rating is the owner's personal rating; Rated reports whether one was
	// present ("N/A" and absent both leave Rated false).
	Rating float64 `json:"rating,omitempty"`
	Rated  bool    `json:"rated"`

	// WishlistPriority is populated only when wishlist data was requested;
	// zero means absent.
	WishlistPriority int `json:"wishlistpriority,omitempty"`

	// InventoryLocation is private data, present only when the session is
	// authenticated and private data was requested.
	InventoryLocation string `json:"invlocation,omitempty"`
}

// Play is one entry of a user's play log. The canonical per-game "last
// played" value is the maximum Date across all entries naming that game.
type Play struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
	GameID   int       `json:"game_id"`
	GameName string    `json:"game_name"`
}

// Listing is one marketplace inventory listing. Multiple listings may
// reference the same item; deduplication is the caller's concern.
type Listing struct {
	ItemID    int     `json:"id"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Condition string  `json:"condition"`
	ProductID int     `json:"product_id"`
	URL       string  `json:"link"`
}
