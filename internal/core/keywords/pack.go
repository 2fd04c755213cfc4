// Package keywords loads the embedded classification tables: categorized
// work and distraction terms, curated domain lists, and video platform hints
package keywords

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed keywords.json
var embedded []byte

type videoBlock struct {
	EducationalChannels []string `json:"educational_channels"`
	EducationalTerms    []string `json:"educational_terms"`
	EntertainmentTerms  []string `json:"entertainment_terms"`
}

type rawPack struct {
	Version            int                 `json:"version"`
	Work               map[string][]string `json:"work"`
	Distraction        map[string][]string `json:"distraction"`
	WorkDomains        []string            `json:"work_domains"`
	DistractionDomains []string            `json:"distraction_domains"`
	Video              videoBlock          `json:"video"`
	DocPathMarkers     []string            `json:"doc_path_markers"`
}

// Pack is the compiled table set used by the classifier
type Pack struct {
	Version int

	// category -> lowercased terms, iteration order is not significant
	Work        map[string][]string
	Distraction map[string][]string

	// bare domains, lowercased
	WorkDomains        map[string]struct{}
	DistractionDomains map[string]struct{}

	EducationalChannels []string
	EducationalTerms    []string
	EntertainmentTerms  []string

	DocPathMarkers []string
}

// Load parses and compiles the embedded keywords.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("keywords: parse keywords.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("keywords: unsupported pack version %d", rp.Version)
	}
	if len(rp.Work) == 0 || len(rp.Distraction) == 0 {
		return nil, fmt.Errorf("keywords: empty keyword tables")
	}

	p := &Pack{
		Version:             rp.Version,
		Work:                lowerTables(rp.Work),
		Distraction:         lowerTables(rp.Distraction),
		WorkDomains:         domainSet(rp.WorkDomains),
		DistractionDomains:  domainSet(rp.DistractionDomains),
		EducationalChannels: lowerAll(rp.Video.EducationalChannels),
		EducationalTerms:    lowerAll(rp.Video.EducationalTerms),
		EntertainmentTerms:  lowerAll(rp.Video.EntertainmentTerms),
		DocPathMarkers:      lowerAll(rp.DocPathMarkers),
	}
	return p, nil
}

// MustLoad panics on a broken embedded pack. The pack ships inside the
// binary, so a failure here is a build defect, not a runtime condition
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// IsWorkDomain reports whether domain is in the trusted work set
func (p *Pack) IsWorkDomain(domain string) bool {
	_, ok := p.WorkDomains[strings.ToLower(domain)]
	return ok
}

// IsDistractionDomain reports whether domain is in the known distraction set
func (p *Pack) IsDistractionDomain(domain string) bool {
	_, ok := p.DistractionDomains[strings.ToLower(domain)]
	return ok
}

func lowerTables(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for cat, terms := range in {
		out[strings.ToLower(cat)] = lowerAll(terms)
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func domainSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, d := range in {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out[d] = struct{}{}
		}
	}
	return out
}
