package bgg

import "encoding/xml"

// XML structures for parsing BGG API responses. These are internal types used
// for parsing only; numeric attributes stay strings here because the wire
// format is sparse and version-drifted (empty attributes, "Not Ranked"
// sentinels), and coercion with defaults happens in the converters.

// xmlError is the document the API returns for semantic failures such as an
// unknown item or username. Some endpoints wrap it in an <errors> list.
type xmlError struct {
	Message string `xml:"message"`
}

type xmlErrorList struct {
	Errors []xmlError `xml:"error"`
}

// xmlSearch is the root element for search results.
type xmlSearch struct {
	XMLName xml.Name        `xml:"items"`
	Items   []xmlSearchItem `xml:"item"`
}

type xmlSearchItem struct {
	Type string      `xml:"type,attr"`
	ID   int         `xml:"id,attr"`
	Name xmlNameElem `xml:"name"`
}

// xmlNameElem represents a name element with type and value attributes.
type xmlNameElem struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// xmlValue represents an element carrying its payload in a value attribute.
type xmlValue struct {
	Value string `xml:"value,attr"`
}

// xmlThing is the root element for thing (game detail) responses.
type xmlThing struct {
	XMLName xml.Name       `xml:"items"`
	Items   []xmlThingItem `xml:"item"`
}

// xmlThingItem represents a detailed game item.
type xmlThingItem struct {
	Type        string        `xml:"type,attr"`
	ID          int           `xml:"id,attr"`
	Thumbnail   string        `xml:"thumbnail"`
	Names       []xmlNameElem `xml:"name"`
	MinPlayers  xmlValue      `xml:"minplayers"`
	MaxPlayers  xmlValue      `xml:"maxplayers"`
	PlayingTime xmlValue      `xml:"playingtime"`
	Links       []xmlLink     `xml:"link"`
	Polls       []xmlPoll     `xml:"poll"`
	Statistics  xmlStatistics `xml:"statistics"`
	Versions    []xmlVersion  `xml:"versions>item"`
}

// xmlLink represents a link element (expansion, category, mechanic, etc.).
// Inbound expansion links point from an expansion back at its base game.
type xmlLink struct {
	Type    string `xml:"type,attr"`
	ID      int    `xml:"id,attr"`
	Value   string `xml:"value,attr"`
	Inbound string `xml:"inbound,attr"`
}

// xmlPoll represents a poll element.
type xmlPoll struct {
	Name       string           `xml:"name,attr"`
	TotalVotes string           `xml:"totalvotes,attr"`
	Results    []xmlPollResults `xml:"results"`
}

// xmlPollResults represents the results for one player-count option.
type xmlPollResults struct {
	NumPlayers string          `xml:"numplayers,attr"`
	Results    []xmlPollResult `xml:"result"`
}

// xmlPollResult represents a single vote category within an option.
type xmlPollResult struct {
	Value    string `xml:"value,attr"`
	NumVotes string `xml:"numvotes,attr"`
}

// xmlStatistics contains game statistics.
type xmlStatistics struct {
	Ratings xmlRatings `xml:"ratings"`
}

type xmlRatings struct {
	UsersRated    xmlValue `xml:"usersrated"`
	Average       xmlValue `xml:"average"`
	BayesAverage  xmlValue `xml:"bayesaverage"`
	StdDev        xmlValue `xml:"stddev"`
	Median        xmlValue `xml:"median"`
	AverageWeight xmlValue `xml:"averageweight"`
	Ranks         xmlRanks `xml:"ranks"`
}

type xmlRanks struct {
	Ranks []xmlRank `xml:"rank"`
}

// xmlRank represents a single rank entry. Value may be the literal text
// "Not Ranked".
type xmlRank struct {
	ID           int    `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	FriendlyName string `xml:"friendlyname,attr"`
	Value        string `xml:"value,attr"`
}

// xmlVersion represents one physical edition under <versions>.
type xmlVersion struct {
	ID     int       `xml:"id,attr"`
	Links  []xmlLink `xml:"link"`
	Width  xmlValue  `xml:"width"`
	Length xmlValue  `xml:"length"`
	Depth  xmlValue  `xml:"depth"`
}

// xmlCollection is the root element for collection responses.
type xmlCollection struct {
	XMLName xml.Name            `xml:"items"`
	Items   []xmlCollectionItem `xml:"item"`
}

// xmlCollectionItem represents an item in a user's collection.
type xmlCollectionItem struct {
	ObjectID    int                 `xml:"objectid,attr"`
	Subtype     string              `xml:"subtype,attr"`
	Name        xmlCollectionName   `xml:"name"`
	Thumbnail   string              `xml:"thumbnail"`
	NumPlays    string              `xml:"numplays"`
	Status      xmlCollectionStatus `xml:"status"`
	Stats       xmlCollectionStats  `xml:"stats"`
	PrivateInfo *xmlPrivateInfo     `xml:"privateinfo"`
}

// xmlCollectionName carries the item name as character data.
type xmlCollectionName struct {
	Value string `xml:",chardata"`
}

// xmlCollectionStatus represents the status flags of a collection item.
type xmlCollectionStatus struct {
	Own              string `xml:"own,attr"`
	Wishlist         string `xml:"wishlist,attr"`
	WishlistPriority string `xml:"wishlistpriority,attr"`
}

// xmlCollectionStats contains per-item statistics.
type xmlCollectionStats struct {
	MinPlayers string              `xml:"minplayers,attr"`
	MaxPlayers string              `xml:"maxplayers,attr"`
	Rating     xmlCollectionRating `xml:"rating"`
}

// xmlCollectionRating holds the owner's rating; Value may be "N/A".
type xmlCollectionRating struct {
	Value   string   `xml:"value,attr"`
	Average xmlValue `xml:"average"`
}

// xmlPrivateInfo appears only for authenticated requests with showprivate=1.
type xmlPrivateInfo struct {
	InventoryLocation string `xml:"inventorylocation,attr"`
}

// xmlPlays is the root element for play-log responses.
type xmlPlays struct {
	XMLName xml.Name  `xml:"plays"`
	Total   string    `xml:"total,attr"`
	Page    string    `xml:"page,attr"`
	Plays   []xmlPlay `xml:"play"`
}

// xmlPlay represents one logged play.
type xmlPlay struct {
	ID       int         `xml:"id,attr"`
	Date     string      `xml:"date,attr"`
	Quantity string      `xml:"quantity,attr"`
	Item     xmlPlayItem `xml:"item"`
}

type xmlPlayItem struct {
	Name     string `xml:"name,attr"`
	ObjectID int    `xml:"objectid,attr"`
}

// xmlUser is the root element for user responses.
type xmlUser struct {
	XMLName xml.Name `xml:"user"`
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
}

// jsonMarket is the geekmarket products response (JSON, not XML).
type jsonMarket struct {
	Products []jsonProduct `json:"products"`
}

// jsonProduct is one marketplace product. The API mixes number encodings
// across fields, so everything lands as a raw value and is coerced later.
type jsonProduct struct {
	ObjectID  any    `json:"objectid"`
	Price     any    `json:"price"`
	Currency  string `json:"currency"`
	Condition string `json:"condition"`
	ProductID any    `json:"productid"`
}
