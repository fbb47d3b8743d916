package booking

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// SearchMode tells the store which filter to build.
type SearchMode int

const (
	// SearchNone means no usable criteria were supplied; the result is empty.
	SearchNone SearchMode = iota
	// SearchByName matches a case-insensitive substring of the name.
	SearchByName
	// SearchByArea matches a substring of the city and of the state.
	SearchByArea
)

// SearchQuery is a resolved search request.
type SearchQuery struct {
	Mode  SearchMode
	Term  string
	City  string
	State string
}

// ParseSearch resolves the two search inputs.  A non-empty term wins.
// Otherwise cityState must split on commas into exactly two non-empty
// tokens ("San Francisco, CA").  Anything else resolves to SearchNone.
func ParseSearch(term, cityState string) SearchQuery {
	if t := strings.TrimSpace(term); t != "" {
		return SearchQuery{Mode: SearchByName, Term: t}
	}
	parts := strings.Split(cityState, ",")
	if len(parts) != 2 {
		return SearchQuery{Mode: SearchNone}
	}
	city, state := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if city == "" || state == "" {
		return SearchQuery{Mode: SearchNone}
	}
	return SearchQuery{Mode: SearchByArea, City: city, State: state}
}

// SearchResult is the {count, data} payload of a search.
type SearchResult struct {
	Count int             `json:"count"`
	Data  []model.Summary `json:"data"`
}

// NewSearchResult wraps matches, keeping count and data consistent.
func NewSearchResult(matches []model.Summary) SearchResult {
	if matches == nil {
		matches = []model.Summary{}
	}
	return SearchResult{Count: len(matches), Data: matches}
}

// LikePattern builds a LIKE pattern matching s as a literal substring
// under the given escape character.  Input is lower-cased to pair with
// LOWER(column) on the SQL side.
func LikePattern(s string, escape rune) string {
	esc := string(escape)
	r := strings.NewReplacer(esc, esc+esc, "%", esc+"%", "_", esc+"_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
