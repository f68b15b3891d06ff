// Package robotstxt implements a Google-compatible robots.txt parser and
// matcher: the tokenizer and match engine do the work, and this package is
// the facade a caller actually imports.
package robotstxt

import (
	"github.com/rohmanhakim/robotstxt/internal/matchengine"
	"github.com/rohmanhakim/robotstxt/internal/reporter"
	"github.com/rohmanhakim/robotstxt/internal/tokenizer"
	"github.com/rohmanhakim/robotstxt/pkg/hashutil"
)

// Observer is the capability set a parse emits into, in strict physical-
// line order with the directive callback preceding the metadata callback
// within a line.
type Observer = tokenizer.Observer

// LineMetadata carries the per-line diagnostic flags produced for every
// physical line, whether or not it produced a directive.
type LineMetadata = tokenizer.LineMetadata

// DirectiveKind is the closed set of directive types a line can classify
// as.
type DirectiveKind = tokenizer.DirectiveKind

const (
	UserAgent = tokenizer.UserAgent
	Allow     = tokenizer.Allow
	Disallow  = tokenizer.Disallow
	Sitemap   = tokenizer.Sitemap
	Unknown   = tokenizer.Unknown
)

// HashAlgo selects the fingerprint algorithm a ReportObserver uses.
type HashAlgo = hashutil.HashAlgo

const (
	HashAlgoSHA256 = hashutil.HashAlgoSHA256
	HashAlgoBLAKE3 = hashutil.HashAlgoBLAKE3
)

// ReportObserver is the Diagnostics Reporter: an Observer that tallies
// per-line metadata into a Summary instead of evaluating a URL.
type ReportObserver = reporter.Reporter

// Summary is the lint-style report a ReportObserver produces on_end.
type Summary = reporter.Summary

// Parse runs the tokenizer over document, invoking observer for every
// line. It never errors: malformed input degrades to Unknown directives
// or no directive at all, recorded in per-line metadata.
func Parse(document []byte, observer Observer) {
	tokenizer.NewParser(tokenizer.DefaultConfig()).Parse(document, observer)
}

// NewReportObserver returns an Observer that fingerprints document with
// algo and tallies diagnostics as it is driven by Parse.
func NewReportObserver(document []byte, algo HashAlgo) *ReportObserver {
	return reporter.New(document, algo)
}

// Matcher evaluates one or more URLs against a single document and, after
// each match, remembers the decisive line via MatchingLine. A Matcher is
// not safe to share across goroutines; separate Matchers are independent.
type Matcher struct {
	lastLine int
}

// New returns a Matcher with no match recorded yet; MatchingLine returns 0
// until the first IsAllowed/IsAllowedOne/IsAllowedTuple call.
func New() *Matcher {
	return &Matcher{}
}

// IsAllowed returns the end-to-end verdict for url against agents, parsing
// document fresh each call.
func (m *Matcher) IsAllowed(document []byte, agents []string, url string) bool {
	engine := matchengine.NewEngine(agents, url)
	tokenizer.NewParser(tokenizer.DefaultConfig()).Parse(document, engine)
	verdict := engine.Decide()
	m.lastLine = verdict.Line
	return verdict.Allowed
}

// IsAllowedOne is a convenience for a single agent.
func (m *Matcher) IsAllowedOne(document []byte, agent string, url string) bool {
	return m.IsAllowed(document, []string{agent}, url)
}

// IsAllowedTuple evaluates specific first: if the document addresses a
// group to specific, that group alone decides the outcome, and when none
// of its rules match the URL is allowed ("*" rules are not consulted).
// Otherwise general is evaluated the way IsAllowed evaluates a single
// agent, including the "*" group. This mirrors Google's AllowedByRobotsTuple, used when
// a crawler has both a specialized and a generic user-agent token.
func (m *Matcher) IsAllowedTuple(document []byte, specific, general string, url string) bool {
	engine := matchengine.NewEngine([]string{specific}, url)
	tokenizer.NewParser(tokenizer.DefaultConfig()).Parse(document, engine)
	if engine.HasSpecificGroup() {
		verdict := engine.Decide()
		m.lastLine = verdict.Line
		return verdict.Allowed
	}

	fallback := matchengine.NewEngine([]string{general}, url)
	tokenizer.NewParser(tokenizer.DefaultConfig()).Parse(document, fallback)
	verdict := fallback.Decide()
	m.lastLine = verdict.Line
	return verdict.Allowed
}

// MatchingLine returns the line number of the decisive match from the most
// recent IsAllowed/IsAllowedOne/IsAllowedTuple call, or 0 if no match has been made yet
// or the most recent call fell through to an unconditional allow.
func (m *Matcher) MatchingLine() int {
	return m.lastLine
}

// IsAllowed is a stateless convenience wrapper for callers that don't need
// MatchingLine. It constructs and discards a throwaway Matcher.
func IsAllowed(document []byte, agents []string, url string) bool {
	return New().IsAllowed(document, agents, url)
}

// IsAllowedOne is the single-agent counterpart of IsAllowed.
func IsAllowedOne(document []byte, agent string, url string) bool {
	return New().IsAllowedOne(document, agent, url)
}

// IsAllowedTuple is a stateless convenience wrapper for IsAllowedTuple.
func IsAllowedTuple(document []byte, specific, general string, url string) bool {
	return New().IsAllowedTuple(document, specific, general, url)
}

// IsValidUserAgent reports whether token is non-empty and consists
// entirely of [A-Za-z_-].
func IsValidUserAgent(token string) bool {
	return matchengine.IsValidUserAgent(token)
}
