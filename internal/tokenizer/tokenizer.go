// Package tokenizer splits a robots.txt document into physical lines,
// recognizes key/value directives with Google's typo and missing-colon
// tolerances, and emits the result to an Observer. It never errors: every
// line becomes either a recognized directive, an unrecognized one, or no
// directive at all, and every line is reported through OnLineMetadata
// regardless.
package tokenizer

import (
	"strings"

	"github.com/rohmanhakim/robotstxt/internal/urlpath"
)

// DirectiveKind is the closed set of directive types the tokenizer
// recognizes. Unrecognized keys are reported as Unknown, carrying the raw
// key text for inspection by callers such as the diagnostics reporter.
type DirectiveKind int

const (
	UserAgent DirectiveKind = iota
	Allow
	Disallow
	Sitemap
	Unknown
)

func (k DirectiveKind) String() string {
	switch k {
	case UserAgent:
		return "user-agent"
	case Allow:
		return "allow"
	case Disallow:
		return "disallow"
	case Sitemap:
		return "sitemap"
	default:
		return "unknown"
	}
}

// MaxLineLen is the per-line byte cap. Browsers historically cap URLs at
// 2083 bytes; robots.txt lines are allowed eight times that before being
// truncated, matching the reference implementation's tolerance.
const MaxLineLen = 2083 * 8

// LineMetadata carries the per-line diagnostic flags spec'd for every
// physical line, whether or not it produced a directive.
type LineMetadata struct {
	IsEmpty                 bool
	IsComment               bool
	HasComment              bool
	HasDirective            bool
	IsAcceptableTypo        bool
	IsLineTooLong           bool
	IsMissingColonSeparator bool
}

// Observer is the capability set a parse emits into. The match engine and
// the diagnostics reporter are independent implementations of the same
// interface — the tokenizer has no notion of which one it's talking to.
type Observer interface {
	OnStart()
	OnEnd()
	OnUserAgent(line int, value string)
	OnAllow(line int, value string)
	OnDisallow(line int, value string)
	OnSitemap(line int, value string)
	OnUnknownAction(line int, key, value string)
	OnLineMetadata(line int, meta LineMetadata)
}

// Config is the explicit, instance-scoped replacement for the reference
// implementation's process-wide kAllowFrequentTypos flag: it is threaded
// through the parser constructor rather than read from global state.
type Config struct {
	// AllowFrequentTypos enables the acceptable-typo key variants (e.g.
	// "useragent", "disallaw", "site-map"). When false, only the exact
	// canonical spellings are recognized and everything else is Unknown.
	AllowFrequentTypos bool
}

// DefaultConfig matches Google's production behavior: typo tolerance on.
func DefaultConfig() Config {
	return Config{AllowFrequentTypos: true}
}

// Parser tokenizes robots.txt documents. A Parser holds no state between
// Parse calls beyond its configuration — it is safe to reuse, but not safe
// to share a single Parse call across goroutines.
type Parser struct {
	cfg Config
}

// NewParser returns a Parser configured with cfg.
func NewParser(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse runs the tokenizer over document, invoking obs for every line in
// strict physical-line order. It never returns an error: malformed input
// degrades to Unknown directives or no directive at all, recorded via
// per-line metadata.
func (p *Parser) Parse(document []byte, obs Observer) {
	obs.OnStart()

	doc := stripBOM(document)
	for _, span := range splitLines(doc) {
		lineNum := span.number
		raw := doc[span.start:span.end]

		meta := LineMetadata{}
		if len(raw) > MaxLineLen {
			raw = raw[:MaxLineLen]
			meta.IsLineTooLong = true
		}

		p.processLine(lineNum, raw, &meta, obs)
		obs.OnLineMetadata(lineNum, meta)
	}

	obs.OnEnd()
}

func (p *Parser) processLine(lineNum int, raw []byte, meta *LineMetadata, obs Observer) {
	trimmedFull := strings.TrimFunc(string(raw), isASCIISpace)
	if len(trimmedFull) == 0 {
		meta.IsEmpty = true
		return
	}
	if trimmedFull[0] == '#' {
		meta.IsComment = true
		meta.HasComment = true
		return
	}

	line := string(raw)
	var text string
	if idx := strings.IndexByte(line, '#'); idx != -1 {
		meta.HasComment = true
		text = strings.TrimFunc(line[:idx], isASCIISpace)
	} else {
		text = strings.TrimFunc(line, isASCIISpace)
	}

	key, value, missingColon, ok := splitKeyValue(text)
	if !ok {
		return
	}
	meta.HasDirective = true
	meta.IsMissingColonSeparator = missingColon

	kind, isTypo := classifyKey(key, p.cfg.AllowFrequentTypos)
	meta.IsAcceptableTypo = isTypo

	switch kind {
	case UserAgent:
		obs.OnUserAgent(lineNum, value)
	case Allow:
		obs.OnAllow(lineNum, urlpath.EscapePattern(value))
	case Disallow:
		obs.OnDisallow(lineNum, urlpath.EscapePattern(value))
	case Sitemap:
		obs.OnSitemap(lineNum, value)
	default:
		obs.OnUnknownAction(lineNum, key, value)
	}
}

// splitKeyValue extracts key/value from the comment-stripped, trimmed text
// of a line. It first looks for a colon separator; failing that, it falls
// back to a whitespace split, accepting the fallback only when it yields
// exactly two non-empty fields.
func splitKeyValue(text string) (key, value string, missingColon, ok bool) {
	if idx := strings.IndexByte(text, ':'); idx != -1 {
		key = strings.TrimFunc(text[:idx], isASCIISpace)
		value = strings.TrimFunc(text[idx+1:], isASCIISpace)
		if key == "" {
			return "", "", false, false
		}
		return key, value, false, true
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", "", false, false
	}
	return fields[0], fields[1], true, true
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

type typoSet struct {
	canonical string
	typos     []string
}

var classifiers = []struct {
	kind DirectiveKind
	set  typoSet
}{
	{UserAgent, typoSet{"user-agent", []string{"useragent", "user agent"}}},
	{Allow, typoSet{"allow", nil}},
	{Disallow, typoSet{"disallow", []string{"dissallow", "dissalow", "disalow", "diasllow", "disallaw"}}},
	{Sitemap, typoSet{"sitemap", []string{"site-map"}}},
}

// classifyKey maps a raw key to a DirectiveKind, case-insensitively and by
// prefix: the key need only start with the recognized token. allowTypos
// gates whether the typo variants are recognized at all; when false they
// fall through to Unknown along with anything else unrecognized.
func classifyKey(key string, allowTypos bool) (DirectiveKind, bool) {
	lower := strings.ToLower(key)

	for _, c := range classifiers {
		if strings.HasPrefix(lower, c.set.canonical) {
			return c.kind, false
		}
	}
	if !allowTypos {
		return Unknown, false
	}
	for _, c := range classifiers {
		for _, typo := range c.set.typos {
			if strings.HasPrefix(lower, typo) {
				return c.kind, true
			}
		}
	}
	return Unknown, false
}

type lineSpan struct {
	number     int
	start, end int
}

// splitLines partitions doc into physical lines per the line-ending rules:
// \r\n is one break, a lone \r or \n is a break, and a \r not followed by
// \n still ends the line. A final unterminated tail is its own line; a
// document ending exactly on a break emits one further empty trailing
// line. A zero-length document yields zero lines.
func splitLines(doc []byte) []lineSpan {
	if len(doc) == 0 {
		return nil
	}

	var lines []lineSpan
	lineStart := 0
	i := 0
	for i < len(doc) {
		switch doc[i] {
		case '\n':
			lines = append(lines, lineSpan{len(lines) + 1, lineStart, i})
			i++
			lineStart = i
		case '\r':
			lines = append(lines, lineSpan{len(lines) + 1, lineStart, i})
			if i+1 < len(doc) && doc[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			lineStart = i
		default:
			i++
		}
	}
	// Either the final unterminated tail, or (if lineStart == len(doc)
	// because the document ended exactly on a break) the trailing empty
	// line the spec requires after a final newline.
	lines = append(lines, lineSpan{len(lines) + 1, lineStart, len(doc)})
	return lines
}

// stripBOM removes a UTF-8 byte-order mark from the start of the document:
// all three BOM bytes, or, in a document shorter than three bytes, every
// byte when they all match the start of the BOM. A BOM that breaks off
// before a third byte (e.g. EF 11 BF) is left untouched and surfaces as
// ordinary — likely unparsable — line content.
func stripBOM(doc []byte) []byte {
	bom := [3]byte{0xEF, 0xBB, 0xBF}
	n := len(bom)
	if len(doc) < n {
		n = len(doc)
	}
	for i := 0; i < n; i++ {
		if doc[i] != bom[i] {
			return doc
		}
	}
	return doc[n:]
}
