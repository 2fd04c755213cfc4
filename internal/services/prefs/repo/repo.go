// Package repo persists the user preference lists as a JSON document
package repo

import (
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/store/jsonfile"
	"focusguard/internal/services/prefs/domain"
)

const fileName = "user_patterns.json"

// Files loads and saves the preference document in the data dir
// a nil store degrades to in-memory only, which keeps tests cheap
type Files struct {
	store *jsonfile.Store
}

// NewFiles constructs a Files repo over the given store
func NewFiles(store *jsonfile.Store) *Files { return &Files{store: store} }

// Load reads the saved preferences
// missing file yields empty lists and no error
func (f *Files) Load() (domain.Prefs, error) {
	var p domain.Prefs
	if f.store == nil {
		return p, nil
	}
	if _, err := f.store.Load(fileName, &p); err != nil {
		return domain.Prefs{}, perr.Wrap(err, perr.ErrorCodeStore, "load user patterns")
	}
	return p, nil
}

// Save writes the preference document atomically
func (f *Files) Save(p domain.Prefs) error {
	if f.store == nil {
		return nil
	}
	if err := f.store.Save(fileName, p); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStore, "save user patterns")
	}
	return nil
}
