// Package classifier scores a page content snapshot as work, distraction,
// or neutral. Classification is deterministic apart from the wall clock
// used for the work hours signal, which is injectable for tests
package classifier

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"focusguard/internal/core/keywords"
	"focusguard/internal/core/normalize"
)

// Decision is the classification outcome
type Decision string

const (
	// DecisionWork marks content that supports the user's focus goal
	DecisionWork Decision = "WORK"
	// DecisionDistraction marks content that works against it
	DecisionDistraction Decision = "DISTRACTION"
	// DecisionNeutral marks ambiguous content that needs a user call
	DecisionNeutral Decision = "NEUTRAL"
)

// VideoData carries platform specific hints for video hosting sites
type VideoData struct {
	ChannelName string `json:"channelName"`
	VideoTitle  string `json:"videoTitle"`
}

// Snapshot is the page content handed over by the browser extension
type Snapshot struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Headings    []string   `json:"headings"`
	PageText    string     `json:"pageText"`
	Keywords    string     `json:"keywords"`
	Video       *VideoData `json:"videoPlatformData,omitempty"`
}

// Breakdown records how the final scores came together
type Breakdown struct {
	WorkScore          int      `json:"work_score"`
	DistractionScore   int      `json:"distraction_score"`
	WorkMatches        []string `json:"work_matches,omitempty"`
	DistractionMatches []string `json:"distraction_matches,omitempty"`
	PlatformScore      int      `json:"platform_score"`
	PlatformReason     string   `json:"platform_reason,omitempty"`
	ContextScore       int      `json:"context_score"`
	ContextReasons     []string `json:"context_reasons,omitempty"`
	TotalWork          int      `json:"total_work"`
	TotalDistraction   int      `json:"total_distraction"`
}

// Verdict is the classification result. Produced fresh per call, never mutated
type Verdict struct {
	Decision   Decision  `json:"decision"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
	Breakdown  Breakdown `json:"scores"`
}

// PrefView is the read side of the user preference store
type PrefView interface {
	Allowed(domain string) bool
	Blocked(domain string) bool
}

// Options tunes contextual scoring
type Options struct {
	// WorkHourStart..WorkHourEnd is the inclusive local-hour range that
	// counts as work time. Defaults to 9..17
	WorkHourStart int
	WorkHourEnd   int

	// Now is the clock used for the work hours signal, nil means time.Now
	Now func() time.Time
}

// Classifier scores snapshots against the embedded keyword pack
type Classifier struct {
	pack  *keywords.Pack
	norm  *normalize.Normalizer
	start int
	end   int
	nowFn func() time.Time
}

// New builds a classifier over the given pack
func New(pack *keywords.Pack, opts Options) *Classifier {
	start, end := opts.WorkHourStart, opts.WorkHourEnd
	if start == 0 && end == 0 {
		start, end = 9, 17
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Classifier{
		pack:  pack,
		norm:  normalize.New(),
		start: start,
		end:   end,
		nowFn: nowFn,
	}
}

// Classify scores the snapshot. It never panics outward: any failure during
// scoring degrades to a neutral verdict carrying the error text
func (c *Classifier) Classify(snap Snapshot, prefs PrefView) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = Verdict{
				Decision:   DecisionNeutral,
				Confidence: 0,
				Reason:     fmt.Sprintf("analysis error: %v", r),
			}
		}
	}()

	domain := Domain(snap.URL)

	// domain short circuit beats all text analysis. User overrides are
	// folded in here: an allowed domain wins even over the curated
	// distraction list
	if c.pack.IsWorkDomain(domain) || (prefs != nil && prefs.Allowed(domain)) {
		return Verdict{
			Decision:   DecisionWork,
			Confidence: 0.95,
			Reason:     "trusted work domain: " + domain,
		}
	}
	if c.pack.IsDistractionDomain(domain) || (prefs != nil && prefs.Blocked(domain)) {
		return Verdict{
			Decision:   DecisionDistraction,
			Confidence: 0.95,
			Reason:     "known distraction domain: " + domain,
		}
	}

	corpus := c.corpus(snap)
	bd := Breakdown{}
	c.scoreKeywords(corpus, &bd)
	c.scoreVideo(snap.Video, &bd)
	c.scoreContext(snap.URL, &bd)

	bd.TotalWork = bd.WorkScore + max(0, bd.PlatformScore) + bd.ContextScore
	bd.TotalDistraction = bd.DistractionScore + max(0, -bd.PlatformScore)

	switch {
	case bd.TotalWork >= 2 && bd.TotalWork > bd.TotalDistraction:
		return Verdict{
			Decision:   DecisionWork,
			Confidence: confidence(bd.TotalWork, bd.TotalDistraction),
			Reason:     "work indicators: " + topMatches(bd.WorkMatches),
			Breakdown:  bd,
		}
	case bd.TotalDistraction >= 2 && bd.TotalDistraction > bd.TotalWork:
		return Verdict{
			Decision:   DecisionDistraction,
			Confidence: confidence(bd.TotalDistraction, bd.TotalWork),
			Reason:     "distraction indicators: " + topMatches(bd.DistractionMatches),
			Breakdown:  bd,
		}
	default:
		return Verdict{
			Decision:   DecisionNeutral,
			Confidence: 0.3,
			Reason:     "ambiguous content, needs user decision",
			Breakdown:  bd,
		}
	}
}

// Domain reduces a URL to a bare lowercased domain: scheme, credentials,
// leading www., port, and path are all stripped
func Domain(rawURL string) string {
	d := strings.ToLower(strings.TrimSpace(rawURL))
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.LastIndex(d, "@"); i >= 0 {
		d = d[i+1:]
	}
	if i := strings.Index(d, ":"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	return d
}

// corpus assembles one normalized text blob. The title is counted twice so
// it outweighs body text
func (c *Classifier) corpus(snap Snapshot) string {
	parts := make([]string, 0, len(snap.Headings)+5)
	parts = append(parts, snap.Title, snap.Title, snap.Description)
	parts = append(parts, snap.Headings...)
	parts = append(parts, snap.PageText, snap.Keywords)
	return c.norm.Normalize(strings.Join(parts, " "))
}

func (c *Classifier) scoreKeywords(corpus string, bd *Breakdown) {
	for _, terms := range c.pack.Work {
		for _, term := range terms {
			if n := countWholeWord(corpus, term); n > 0 {
				bd.WorkScore += n
				bd.WorkMatches = append(bd.WorkMatches, fmt.Sprintf("%s(%d)", term, n))
			}
		}
	}
	for _, terms := range c.pack.Distraction {
		for _, term := range terms {
			if n := countWholeWord(corpus, term); n > 0 {
				bd.DistractionScore += n
				bd.DistractionMatches = append(bd.DistractionMatches, fmt.Sprintf("%s(%d)", term, n))
			}
		}
	}
}

// scoreVideo applies the platform hint ladder: a curated educational channel
// outranks title terms, and the signal stays signed so it can only feed one
// side of the final tally
func (c *Classifier) scoreVideo(vd *VideoData, bd *Breakdown) {
	if vd == nil {
		return
	}
	channel := strings.ToLower(vd.ChannelName)
	title := strings.ToLower(vd.VideoTitle)

	for _, edu := range c.pack.EducationalChannels {
		if strings.Contains(channel, edu) {
			bd.PlatformScore = 3
			bd.PlatformReason = "educational channel: " + channel
			return
		}
	}
	for _, term := range c.pack.EducationalTerms {
		if strings.Contains(title, term) {
			bd.PlatformScore = 2
			bd.PlatformReason = "educational video title"
			return
		}
	}
	for _, term := range c.pack.EntertainmentTerms {
		if strings.Contains(title, term) {
			bd.PlatformScore = -3
			bd.PlatformReason = "entertainment video title"
			return
		}
	}
	bd.PlatformReason = "neutral video content"
}

func (c *Classifier) scoreContext(rawURL string, bd *Breakdown) {
	hour := c.nowFn().Hour()
	if hour >= c.start && hour <= c.end {
		bd.ContextScore++
		bd.ContextReasons = append(bd.ContextReasons, "during work hours")
	}
	u := strings.ToLower(rawURL)
	for _, marker := range c.pack.DocPathMarkers {
		if strings.Contains(u, marker) {
			bd.ContextScore += 2
			bd.ContextReasons = append(bd.ContextReasons, "documentation url pattern")
			break
		}
	}
}

func confidence(winner, loser int) float64 {
	conf := 0.6 + 0.1*float64(winner-loser)
	if conf > 0.9 {
		return 0.9
	}
	return conf
}

func topMatches(matches []string) string {
	if len(matches) > 3 {
		matches = matches[:3]
	}
	return strings.Join(matches, ", ")
}

// countWholeWord counts occurrences of term in text where both edges fall on
// a word boundary. Terms may contain spaces or apostrophes; only the outer
// edges are boundary checked, matching \b semantics
func countWholeWord(text, term string) int {
	if term == "" || text == "" {
		return 0
	}
	count := 0
	for off := 0; ; {
		i := strings.Index(text[off:], term)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
		}
		off = start + len(term)
	}
	return count
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
