// Package reporter implements the Diagnostics Reporter: a second
// tokenizer.Observer consumer, independent of the Match Engine, that
// tallies per-line metadata into a lint-style Summary instead of
// evaluating any URL against any pattern.
package reporter

import (
	"strings"

	"github.com/rohmanhakim/robotstxt/internal/tokenizer"
	"github.com/rohmanhakim/robotstxt/pkg/hashutil"
)

// unusedKeys is the configurable list of known-but-unused directive keys,
// matched case-insensitively on the exact raw key (not by prefix).
var unusedKeys = map[string]bool{
	"clean-param": true,
	"crawl-delay": true,
	"host":        true,
	"noarchive":   true,
	"noindex":     true,
	"nofollow":    true,
}

// Summary is the terminal, derived report produced by on_end(). Like the
// teacher's crawl stats, it is observational only and never feeds back
// into parsing or matching.
type Summary struct {
	TotalLines int

	UserAgentCount int
	AllowCount     int
	DisallowCount  int
	SitemapCount   int
	UnknownCount   int
	UnusedCount    int

	TooLongCount        int
	MissingColonCount   int
	AcceptableTypoCount int
	CommentCount        int
	EmptyCount          int

	Fingerprint     string
	FingerprintAlgo hashutil.HashAlgo
}

// Reporter accumulates a Summary across one document parse.
type Reporter struct {
	document []byte
	algo     hashutil.HashAlgo
	summary  Summary
}

var _ tokenizer.Observer = (*Reporter)(nil)

// New returns a Reporter that will fingerprint document using algo once
// the parse completes.
func New(document []byte, algo hashutil.HashAlgo) *Reporter {
	return &Reporter{document: document, algo: algo}
}

func (r *Reporter) OnStart() {}

func (r *Reporter) OnEnd() {
	fp, err := hashutil.HashBytes(r.document, r.algo)
	if err != nil {
		fp = ""
	}
	r.summary.Fingerprint = fp
	r.summary.FingerprintAlgo = r.algo
}

func (r *Reporter) OnUserAgent(int, string) { r.summary.UserAgentCount++ }
func (r *Reporter) OnAllow(int, string)     { r.summary.AllowCount++ }
func (r *Reporter) OnDisallow(int, string)  { r.summary.DisallowCount++ }
func (r *Reporter) OnSitemap(int, string)   { r.summary.SitemapCount++ }

func (r *Reporter) OnUnknownAction(line int, key, value string) {
	if unusedKeys[strings.ToLower(key)] {
		r.summary.UnusedCount++
		return
	}
	r.summary.UnknownCount++
}

func (r *Reporter) OnLineMetadata(line int, meta tokenizer.LineMetadata) {
	r.summary.TotalLines++
	if meta.IsLineTooLong {
		r.summary.TooLongCount++
	}
	if meta.IsMissingColonSeparator {
		r.summary.MissingColonCount++
	}
	if meta.IsAcceptableTypo {
		r.summary.AcceptableTypoCount++
	}
	if meta.HasComment {
		r.summary.CommentCount++
	}
	if meta.IsEmpty {
		r.summary.EmptyCount++
	}
}

// Summary returns the accumulated report. Only meaningful after the parse
// that drives this Reporter has completed (on_end has fired).
func (r *Reporter) Summary() Summary {
	return r.summary
}
