package service

import (
	"errors"
	"testing"

	"focusguard/internal/services/prefs/domain"
)

type memRepo struct {
	prefs domain.Prefs
	saves int
	fail  bool
}

func (m *memRepo) Load() (domain.Prefs, error) { return m.prefs, nil }

func (m *memRepo) Save(p domain.Prefs) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.prefs = p
	m.saves++
	return nil
}

func TestRestoresSavedLists(t *testing.T) {
	r := &memRepo{prefs: domain.Prefs{
		AllowedSites: []string{"go.dev"},
		BlockedSites: []string{"reddit.com"},
	}}
	s := New(r, nil)

	if !s.Allowed("go.dev") {
		t.Fatalf("go.dev should be allowed")
	}
	if !s.Blocked("reddit.com") {
		t.Fatalf("reddit.com should be blocked")
	}
	if s.Allowed("reddit.com") || s.Blocked("go.dev") {
		t.Fatalf("sets are crossed")
	}
}

func TestRecordOverrideMovesBetweenSets(t *testing.T) {
	r := &memRepo{}
	s := New(r, nil)

	if err := s.RecordOverride("reddit.com", false); err != nil {
		t.Fatalf("block: %v", err)
	}
	if !s.Blocked("reddit.com") {
		t.Fatalf("expected blocked")
	}

	// user changes their mind
	if err := s.RecordOverride("reddit.com", true); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if s.Blocked("reddit.com") {
		t.Fatalf("domain must leave the blocked set")
	}
	if !s.Allowed("reddit.com") {
		t.Fatalf("domain must enter the allowed set")
	}

	got := s.Snapshot()
	if len(got.AllowedSites) != 1 || got.AllowedSites[0] != "reddit.com" {
		t.Fatalf("snapshot allowed = %v", got.AllowedSites)
	}
	if len(got.BlockedSites) != 0 {
		t.Fatalf("snapshot blocked = %v", got.BlockedSites)
	}
}

func TestRecordOverrideIdempotent(t *testing.T) {
	r := &memRepo{}
	s := New(r, nil)

	for i := 0; i < 3; i++ {
		if err := s.RecordOverride("news.ycombinator.com", true); err != nil {
			t.Fatalf("override %d: %v", i, err)
		}
	}
	if r.saves != 1 {
		t.Fatalf("saves = %d, want 1", r.saves)
	}
}

func TestRecordOverrideNormalizesDomain(t *testing.T) {
	r := &memRepo{}
	s := New(r, nil)

	if err := s.RecordOverride("WWW.Reddit.com", false); err != nil {
		t.Fatalf("block: %v", err)
	}
	if !s.Blocked("reddit.com") {
		t.Fatalf("override must match the lower-cased bare domain")
	}
	got := s.Snapshot().BlockedSites
	if len(got) != 1 || got[0] != "reddit.com" {
		t.Fatalf("stored key = %v, want [reddit.com]", got)
	}

	// allowing the normalized form targets the same entry
	if err := s.RecordOverride("https://reddit.com/r/funny", true); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if s.Blocked("reddit.com") || !s.Allowed("reddit.com") {
		t.Fatalf("normalized forms must share one entry")
	}
}

func TestRestoreNormalizesStoredDomains(t *testing.T) {
	r := &memRepo{prefs: domain.Prefs{BlockedSites: []string{"WWW.Twitter.com"}}}
	s := New(r, nil)
	if !s.Blocked("twitter.com") {
		t.Fatalf("restored entries must be normalized")
	}
}

func TestRecordOverrideEmptyDomain(t *testing.T) {
	s := New(&memRepo{}, nil)
	if err := s.RecordOverride("", true); err == nil {
		t.Fatalf("expected an error for an empty domain")
	}
}

func TestRecordOverrideSurfacesSaveError(t *testing.T) {
	s := New(&memRepo{fail: true}, nil)
	if err := s.RecordOverride("tmz.com", false); err == nil {
		t.Fatalf("expected save error to surface")
	}
}

func TestSnapshotSorted(t *testing.T) {
	s := New(&memRepo{}, nil)
	for _, d := range []string{"z.example", "a.example", "m.example"} {
		if err := s.RecordOverride(d, true); err != nil {
			t.Fatalf("override: %v", err)
		}
	}
	got := s.Snapshot().AllowedSites
	want := []string{"a.example", "m.example", "z.example"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}
}
