// Package service implements the in-memory preference store with write-through persistence
package service

import (
	"sort"
	"sync"

	"focusguard/internal/core/classifier"
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logger"
	"focusguard/internal/services/prefs/domain"
)

// Repo is the persistence seam for the preference lists
type Repo interface {
	Load() (domain.Prefs, error)
	Save(domain.Prefs) error
}

// Service keeps the allow and block sets in memory
// a domain lives in at most one of the two sets
type Service struct {
	mu      sync.RWMutex
	allowed map[string]struct{}
	blocked map[string]struct{}
	repo    Repo
	log     *logger.Logger
}

// New constructs the service and restores any saved lists
func New(repo Repo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Get()
	}
	s := &Service{
		allowed: map[string]struct{}{},
		blocked: map[string]struct{}{},
		repo:    repo,
		log:     log,
	}
	if repo != nil {
		p, err := repo.Load()
		if err != nil {
			s.log.Warn().Err(err).Msg("could not load user patterns, starting empty")
		}
		for _, d := range p.AllowedSites {
			if d = classifier.Domain(d); d != "" {
				s.allowed[d] = struct{}{}
			}
		}
		for _, d := range p.BlockedSites {
			if d = classifier.Domain(d); d != "" {
				s.blocked[d] = struct{}{}
			}
		}
	}
	return s
}

// Allowed reports whether the user explicitly allowed the domain
func (s *Service) Allowed(site string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.allowed[site]
	return ok
}

// Blocked reports whether the user explicitly blocked the domain
func (s *Service) Blocked(site string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocked[site]
	return ok
}

// Snapshot returns the current lists sorted for stable output
func (s *Service) Snapshot() domain.Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Prefs{
		AllowedSites: sortedKeys(s.allowed),
		BlockedSites: sortedKeys(s.blocked),
	}
}

// RecordOverride moves the domain into one set and out of the other
// repeating the same decision is a no-op and does not rewrite the file.
// The key is normalized the same way classifier lookups are, so an
// override recorded as "WWW.Reddit.com" still matches "reddit.com"
func (s *Service) RecordOverride(site string, allow bool) error {
	site = classifier.Domain(site)
	if site == "" {
		return perr.InvalidArgf("domain is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dst, other := s.allowed, s.blocked
	if !allow {
		dst, other = s.blocked, s.allowed
	}
	if _, ok := dst[site]; ok {
		return nil
	}
	dst[site] = struct{}{}
	delete(other, site)

	if s.repo == nil {
		return nil
	}
	p := domain.Prefs{
		AllowedSites: sortedKeys(s.allowed),
		BlockedSites: sortedKeys(s.blocked),
	}
	if err := s.repo.Save(p); err != nil {
		return err
	}
	s.log.Debug().Str("domain", site).Bool("allow", allow).Msg("recorded override")
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
