// Package repo persists today's session stats as a JSON document
package repo

import (
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/store/jsonfile"
	"focusguard/internal/services/session/domain"
)

const fileName = "daily_stats.json"

// dayDoc pins the stats to the calendar day they belong to
type dayDoc struct {
	Date  string       `json:"date"`
	Stats domain.Stats `json:"stats"`
}

// Files loads and saves the daily stats document in the data dir
type Files struct {
	store *jsonfile.Store
}

// NewFiles constructs a Files repo over the given store
func NewFiles(store *jsonfile.Store) *Files { return &Files{store: store} }

// Load restores stats saved for the given day
// stats from an earlier day are discarded so every morning starts at zero
func (f *Files) Load(day string) (domain.Stats, error) {
	var doc dayDoc
	if f.store == nil {
		return domain.Stats{}, nil
	}
	found, err := f.store.Load(fileName, &doc)
	if err != nil {
		return domain.Stats{}, perr.Wrap(err, perr.ErrorCodeStore, "load daily stats")
	}
	if !found || doc.Date != day {
		return domain.Stats{}, nil
	}
	return doc.Stats, nil
}

// Save writes the stats document atomically
func (f *Files) Save(day string, st domain.Stats) error {
	if f.store == nil {
		return nil
	}
	if err := f.store.Save(fileName, dayDoc{Date: day, Stats: st}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStore, "save daily stats")
	}
	return nil
}
