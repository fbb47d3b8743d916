package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// genreTable describes one of the owner->genre join tables.  Rows carry
// a position so that a profile lists tags in the order they were saved.
type genreTable struct {
	table    string // venue_genres or artist_genres
	ownerCol string // venue_id or artist_id
}

var (
	venueGenres  = genreTable{table: "venue_genres", ownerCol: "venue_id"}
	artistGenres = genreTable{table: "artist_genres", ownerCol: "artist_id"}
)

// replace deletes the owner's tags and inserts g in order.
func (t genreTable) replace(ctx context.Context, q Querier, ownerID uint64, g model.Genres) error {
	del := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.table, t.ownerCol)
	if _, err := q.ExecContext(ctx, del, ownerID); err != nil {
		return err
	}
	ins := fmt.Sprintf("INSERT INTO %s (%s, position, genre) VALUES (?, ?, ?)", t.table, t.ownerCol)
	for i, genre := range model.NewGenres(g...) {
		if _, err := q.ExecContext(ctx, ins, ownerID, i, genre); err != nil {
			return err
		}
	}
	return nil
}

// deleteAll removes every tag of the owner.
func (t genreTable) deleteAll(ctx context.Context, q Querier, ownerID uint64) error {
	_, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.table, t.ownerCol), ownerID)
	return err
}

// load returns the tags of each owner in ids.  Owners without tags map to
// an empty set.
func (t genreTable) load(ctx context.Context, q Querier, ids []uint64) (map[uint64]model.Genres, error) {
	out := make(map[uint64]model.Genres, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = model.Genres{}
	}
	query := fmt.Sprintf("SELECT %s, genre FROM %s WHERE %s IN (%s) ORDER BY %s, position",
		t.ownerCol, t.table, t.ownerCol, placeholders(len(ids)), t.ownerCol)
	rows, err := q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    uint64
			genre string
		)
		if err := rows.Scan(&id, &genre); err != nil {
			return nil, err
		}
		out[id] = append(out[id], genre)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
