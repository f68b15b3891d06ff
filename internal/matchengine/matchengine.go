// Package matchengine implements the robots.txt Match Engine: an Observer
// that consumes a tokenizer's event stream and, once the document has been
// fully parsed, exposes an allow/disallow verdict for a pre-supplied set of
// user agents and URL.
package matchengine

import (
	"strings"

	"github.com/rohmanhakim/robotstxt/internal/glob"
	"github.com/rohmanhakim/robotstxt/internal/tokenizer"
	"github.com/rohmanhakim/robotstxt/internal/urlpath"
)

// record is a (priority, line) match slot. priority < 0 means no match has
// been observed; priority == 0 is a valid empty-pattern match.
type record struct {
	priority int
	line     int
}

func newRecord() record { return record{priority: -1} }

// update keeps the higher-priority match; on a tie the existing (earlier)
// line wins, so ties never move the record.
func (r *record) update(priority, line int) {
	if priority > r.priority {
		r.priority = priority
		r.line = line
	}
}

// Verdict is the outcome of a completed match.
type Verdict struct {
	Allowed bool
	Line    int
}

// Engine is a tokenizer.Observer that tracks group membership and rule
// priorities for one (agents, url) match. It is not safe to reuse across
// matches or to share across goroutines — construct a fresh Engine per call.
type Engine struct {
	agents []string
	path   string
	m      *glob.Matcher

	seenGlobalAgent       bool
	seenSpecificAgent     bool
	everSeenSpecificAgent bool
	seenSeparator         bool

	allowGlobal      record
	disallowGlobal   record
	allowSpecific    record
	disallowSpecific record
}

var _ tokenizer.Observer = (*Engine)(nil)

// NewEngine extracts the path component of url and prepares an Engine to
// evaluate it against agents.
func NewEngine(agents []string, url string) *Engine {
	lowered := make([]string, len(agents))
	for i, a := range agents {
		lowered[i] = strings.ToLower(a)
	}
	return &Engine{
		agents:           lowered,
		path:             urlpath.ExtractPath(url),
		m:                glob.NewMatcher(),
		allowGlobal:      newRecord(),
		disallowGlobal:   newRecord(),
		allowSpecific:    newRecord(),
		disallowSpecific: newRecord(),
	}
}

func (e *Engine) OnStart() {}
func (e *Engine) OnEnd()   {}

func (e *Engine) OnUserAgent(line int, value string) {
	if e.seenSeparator {
		e.seenGlobalAgent = false
		e.seenSpecificAgent = false
		e.seenSeparator = false
	}

	token := agentToken(value)
	if token == "*" {
		e.seenGlobalAgent = true
		return
	}
	for _, a := range e.agents {
		if strings.EqualFold(token, a) {
			e.seenSpecificAgent = true
			e.everSeenSpecificAgent = true
			return
		}
	}
}

func (e *Engine) OnAllow(line int, value string)    { e.applyRule(true, line, value) }
func (e *Engine) OnDisallow(line int, value string) { e.applyRule(false, line, value) }

func (e *Engine) OnSitemap(int, string)              {}
func (e *Engine) OnUnknownAction(int, string, string) {}
func (e *Engine) OnLineMetadata(int, tokenizer.LineMetadata) {}

func (e *Engine) applyRule(isAllow bool, line int, pattern string) {
	if !e.seenGlobalAgent && !e.seenSpecificAgent {
		return
	}
	e.seenSeparator = true

	priority := e.priorityOf(pattern)

	rec := e.recordFor(isAllow)
	rec.update(priority, line)

	if isAllow && priority < 0 {
		if alias, ok := indexAliasPattern(pattern); ok {
			if aliasPriority := e.priorityOf(alias); aliasPriority >= 0 {
				rec.update(aliasPriority, line)
			}
		}
	}
}

func (e *Engine) priorityOf(pattern string) int {
	if e.m.Matches(e.path, pattern) {
		return len(pattern)
	}
	return -1
}

func (e *Engine) recordFor(isAllow bool) *record {
	switch {
	case isAllow && e.seenSpecificAgent:
		return &e.allowSpecific
	case isAllow:
		return &e.allowGlobal
	case e.seenSpecificAgent:
		return &e.disallowSpecific
	default:
		return &e.disallowGlobal
	}
}

// indexAliasPattern implements the index.html -> / aliasing: if pattern's
// terminal path segment begins with "index.htm", it synthesizes the prefix
// up to and including the trailing '/' with a '$' appended.
func indexAliasPattern(pattern string) (string, bool) {
	slash := strings.LastIndexByte(pattern, '/')
	if slash == -1 {
		return "", false
	}
	segment := pattern[slash+1:]
	if !strings.HasPrefix(segment, "index.htm") {
		return "", false
	}
	return pattern[:slash+1] + "$", true
}

// agentToken truncates a document user-agent value to its leading run of
// [A-Za-z_-] bytes, except the literal "*" which denotes the global group
// regardless of what (whitespace, garbage) follows it.
func agentToken(value string) string {
	value = strings.TrimLeft(value, " \t")
	if strings.HasPrefix(value, "*") {
		return "*"
	}
	i := 0
	for i < len(value) && isAgentByte(value[i]) {
		i++
	}
	return value[:i]
}

func isAgentByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' || b == '-'
}

// IsValidUserAgent reports whether token is non-empty and consists
// entirely of [A-Za-z_-].
func IsValidUserAgent(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if !isAgentByte(token[i]) {
			return false
		}
	}
	return true
}

// Decide computes the full verdict per the Match Engine's four-rule
// decision procedure.
func (e *Engine) Decide() Verdict {
	if e.allowSpecific.priority > 0 || e.disallowSpecific.priority > 0 {
		return e.decideFrom(e.allowSpecific, e.disallowSpecific)
	}
	if e.everSeenSpecificAgent {
		return Verdict{Allowed: true, Line: 0}
	}
	if e.allowGlobal.priority > 0 || e.disallowGlobal.priority > 0 {
		return e.decideFrom(e.allowGlobal, e.disallowGlobal)
	}
	return Verdict{Allowed: true, Line: 0}
}

// HasSpecificGroup reports whether the document contained at least one
// group addressed to one of the engine's agents, specifically (not via
// the "*" wildcard). Callers implementing most-specific-first fallback
// between a pair of agents use this to decide whether to consult the
// second agent at all.
func (e *Engine) HasSpecificGroup() bool {
	return e.everSeenSpecificAgent
}

// DecideIgnoringGlobal applies only the specific-agent rule and otherwise
// allows, ignoring global (*) rules entirely.
func (e *Engine) DecideIgnoringGlobal() Verdict {
	if e.allowSpecific.priority > 0 || e.disallowSpecific.priority > 0 {
		return e.decideFrom(e.allowSpecific, e.disallowSpecific)
	}
	return Verdict{Allowed: true, Line: 0}
}

func (e *Engine) decideFrom(allow, disallow record) Verdict {
	if disallow.priority > allow.priority {
		return Verdict{Allowed: false, Line: disallow.line}
	}
	return Verdict{Allowed: true, Line: allow.line}
}
