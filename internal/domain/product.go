package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document as stored in the products collection.
// The search service only ever reads these; catalog management writes them.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Brand          string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	SubCategory    string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	OfferPrice     float64            `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`
	Images         []string           `bson:"image,omitempty" json:"image,omitempty"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	SearchKeywords []string           `bson:"searchKeywords,omitempty" json:"searchKeywords,omitempty"`
	Rating         float64            `bson:"rating" json:"rating"`
	NumReviews     int                `bson:"numReviews" json:"numReviews"`
	Popularity     float64            `bson:"popularity" json:"popularity"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// EffectivePrice is the price used for all threshold comparisons and display:
// the offer price when one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}

// ParsedQuery is the result of interpreting a raw search string: the residual
// text query and, when a price phrase was detected, the maximum price.
type ParsedQuery struct {
	TextQuery string   `json:"textQuery"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
}

// SearchResult is a ranked, paginated page of matching products.
// TotalPages is always max(1, ceil(Total/limit)).
type SearchResult struct {
	Items       []Product   `json:"items"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	ParsedQuery ParsedQuery `json:"parsedQuery"`
}

// Suggestion is a single typeahead entry. Category is an optional hint the
// client may use to pre-filter the results page.
type Suggestion struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}
