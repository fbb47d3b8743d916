package booking

import "github.com/iliyamo/fyyur/internal/model"

// Area is one (state, city) group of the venue directory.
type Area struct {
	State  string          `json:"state"`
	City   string          `json:"city"`
	Venues []model.Summary `json:"venues"`
}

// GroupByArea groups venues by (state, city).  Groups appear in the order
// their first venue appears in the input, and venues keep input order
// within a group.  upcoming maps venue id to its upcoming show count.
func GroupByArea(venues []model.Venue, upcoming map[uint64]int) []Area {
	type key struct{ state, city string }
	index := make(map[key]int)
	areas := make([]Area, 0)
	for _, v := range venues {
		k := key{v.State, v.City}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{State: v.State, City: v.City, Venues: []model.Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, model.Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}
	return areas
}
