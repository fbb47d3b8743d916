package model

import "strings"

// Genres is a set of category tags attached to a venue or artist.  The
// order in which tags were first submitted is kept so that profiles
// render predictably, but duplicates and blank entries are dropped.
type Genres []string

// NewGenres builds a normalized set from raw form values.  Each value is
// trimmed; empty values and case-insensitive duplicates are removed.
func NewGenres(values ...string) Genres {
    out := make(Genres, 0, len(values))
    seen := make(map[string]struct{}, len(values))
    for _, v := range values {
        v = strings.TrimSpace(v)
        if v == "" {
            continue
        }
        key := strings.ToLower(v)
        if _, ok := seen[key]; ok {
            continue
        }
        seen[key] = struct{}{}
        out = append(out, v)
    }
    return out
}

// Contains reports whether the set holds the given tag (case-insensitive).
func (g Genres) Contains(tag string) bool {
    for _, v := range g {
        if strings.EqualFold(v, tag) {
            return true
        }
    }
    return false
}

// Equal reports whether both sets hold the same tags regardless of order.
func (g Genres) Equal(other Genres) bool {
    a, b := NewGenres(g...), NewGenres(other...)
    if len(a) != len(b) {
        return false
    }
    for _, v := range a {
        if !b.Contains(v) {
            return false
        }
    }
    return true
}
