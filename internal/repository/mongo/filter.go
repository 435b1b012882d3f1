package mongo

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nikelesh006/megasifi-search/internal/repository"
)

// searchFields is the field set covered by the text index on the products
// collection. The regex fallback ORs across the same fields so both paths
// see the same searchable surface.
var searchFields = []string{
	"name", "brand", "category", "subCategory",
	"description", "tags", "searchKeywords",
}

// buildFilter translates a repository.SearchFilter into a MongoDB filter
// document. TextQuery becomes a $text clause; Tokens become one lookahead
// per token so every token must appear as a substring in any order;
// Substring becomes a plain containment regex. The regex variants are ORed
// across searchFields. MaxPrice compares the effective price, offerPrice
// when positive and price otherwise, matching Product.EffectivePrice.
func buildFilter(f repository.SearchFilter) bson.M {
	m := bson.M{}

	switch {
	case f.TextQuery != "":
		m["$text"] = bson.M{"$search": f.TextQuery}
	case len(f.Tokens) > 0:
		m["$or"] = fieldRegexOr(tokenPattern(f.Tokens))
	case f.Substring != "":
		m["$or"] = fieldRegexOr(regexp.QuoteMeta(f.Substring))
	}

	if f.Category != "" {
		m["category"] = f.Category
	}

	if f.MaxPrice != nil {
		// An offerPrice of 0 means no offer, same as an absent field.
		effective := bson.M{"$cond": bson.A{
			bson.M{"$gt": bson.A{"$offerPrice", 0}},
			"$offerPrice",
			"$price",
		}}
		m["$expr"] = bson.M{"$lte": bson.A{effective, *f.MaxPrice}}
	}

	return m
}

// tokenPattern composes one lookahead per token; MongoDB's PCRE engine
// evaluates these server-side. Go's regexp package never compiles this.
func tokenPattern(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString("(?=.*")
		b.WriteString(regexp.QuoteMeta(tok))
		b.WriteString(")")
	}
	return b.String()
}

// fieldRegexOr applies a case-insensitive pattern to every searchable field.
func fieldRegexOr(pattern string) bson.A {
	or := make(bson.A, 0, len(searchFields))
	for _, field := range searchFields {
		or = append(or, bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}})
	}
	return or
}

// prefixFilter matches name, brand, or search keywords anchored at the
// start of the value, used for typeahead suggestions.
func prefixFilter(prefix string) bson.M {
	re := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"brand": re},
		bson.M{"searchKeywords": re},
	}}
}

// buildSort returns the sort document for the given mode. Relevance sorting
// requires the textScore meta projection set by the caller.
func buildSort(mode repository.SortMode) bson.D {
	if mode == repository.SortRelevance {
		return bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "popularity", Value: -1},
			{Key: "rating", Value: -1},
		}
	}
	return bson.D{
		{Key: "popularity", Value: -1},
		{Key: "rating", Value: -1},
		{Key: "createdAt", Value: -1},
	}
}

// codeIndexNotFound is MongoDB's IndexNotFound server error code, returned
// for $text queries against a collection without a text index.
const codeIndexNotFound = 27

// classify maps the driver's index-absence failure onto the repository's
// typed sentinel so callers never have to inspect driver errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isTextIndexError(err) {
		return repository.ErrTextIndexUnavailable
	}
	return err
}

func isTextIndexError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == codeIndexNotFound {
			return true
		}
		return strings.Contains(strings.ToLower(cmdErr.Message), "text index required")
	}
	return false
}
