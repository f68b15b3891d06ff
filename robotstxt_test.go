package robotstxt

import (
	"strings"
	"testing"
)

func TestIsAllowedScenario1(t *testing.T) {
	doc := []byte("user-agent: FooBot\ndisallow: /\nallow: /fish\n")
	if !IsAllowed(doc, []string{"FooBot"}, "http://foo.bar/fish.html") {
		t.Error("expected allowed")
	}
	if IsAllowed(doc, []string{"FooBot"}, "http://foo.bar/bar") {
		t.Error("expected disallowed")
	}
}

func TestIsAllowedOne(t *testing.T) {
	doc := []byte("user-agent: *\ndisallow: /private\n")
	if IsAllowedOne(doc, "FooBot", "http://x/private") {
		t.Error("expected disallowed")
	}
	if !IsAllowedOne(doc, "FooBot", "http://x/public") {
		t.Error("expected allowed")
	}
}

func TestIsAllowedTupleUsesSpecificWhenPresent(t *testing.T) {
	doc := []byte("user-agent: googlebot-image\ndisallow: /images\n\nuser-agent: *\ndisallow: /\n")
	if IsAllowedTuple(doc, "googlebot-image", "googlebot", "http://x/images/photo.jpg") == true {
		t.Error("expected disallowed under the specific group's own rule")
	}
	if !IsAllowedTuple(doc, "googlebot-image", "googlebot", "http://x/text.html") {
		t.Error("expected allowed: specific group has no rule against /text.html")
	}
}

func TestIsAllowedTupleFallsBackToGeneralWhenNoSpecificGroup(t *testing.T) {
	doc := []byte("user-agent: googlebot\ndisallow: /private\n")
	if IsAllowedTuple(doc, "googlebot-image", "googlebot", "http://x/private") {
		t.Error("expected disallowed via the general fallback agent's rule")
	}
	if !IsAllowedTuple(doc, "googlebot-image", "googlebot", "http://x/public") {
		t.Error("expected allowed")
	}
}

func TestMatcherTracksMatchingLine(t *testing.T) {
	doc := []byte("user-agent: FooBot\ndisallow: /\nallow: /fish\n")
	m := New()
	if m.MatchingLine() != 0 {
		t.Error("expected MatchingLine 0 before any match")
	}
	if !m.IsAllowed(doc, []string{"FooBot"}, "http://foo.bar/fish.html") {
		t.Fatal("expected allowed")
	}
	if m.MatchingLine() != 3 {
		t.Errorf("MatchingLine() = %d, want 3 (the allow rule)", m.MatchingLine())
	}
	if m.IsAllowed(doc, []string{"FooBot"}, "http://foo.bar/bar") {
		t.Fatal("expected disallowed")
	}
	if m.MatchingLine() != 2 {
		t.Errorf("MatchingLine() = %d, want 2 (the disallow rule)", m.MatchingLine())
	}
}

func TestIsValidUserAgent(t *testing.T) {
	if !IsValidUserAgent("FooBot") {
		t.Error("expected valid")
	}
	if IsValidUserAgent("Foo Bot") {
		t.Error("expected invalid")
	}
}

func TestEmptyDocumentAllowsEverything(t *testing.T) {
	if !IsAllowed(nil, []string{"FooBot"}, "http://x/y") {
		t.Error("expected empty document to allow everything")
	}
}

func TestLineEndingIndependence(t *testing.T) {
	base := "user-agent: FooBot\ndisallow: /a\nallow: /a/b\n"
	crlf := strings.ReplaceAll(base, "\n", "\r\n")
	cr := strings.ReplaceAll(base, "\n", "\r")

	for _, url := range []string{"http://x/a", "http://x/a/b", "http://x/other"} {
		want := IsAllowed([]byte(base), []string{"FooBot"}, url)
		if got := IsAllowed([]byte(crlf), []string{"FooBot"}, url); got != want {
			t.Errorf("CRLF variant disagreed for %s: got %v want %v", url, got, want)
		}
		if got := IsAllowed([]byte(cr), []string{"FooBot"}, url); got != want {
			t.Errorf("CR variant disagreed for %s: got %v want %v", url, got, want)
		}
	}
}

func TestBOMIndependence(t *testing.T) {
	base := []byte("user-agent: FooBot\ndisallow: /a\n")
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, base...)

	want := IsAllowed(base, []string{"FooBot"}, "http://x/a")
	got := IsAllowed(withBOM, []string{"FooBot"}, "http://x/a")
	if got != want {
		t.Errorf("BOM changed verdict: got %v want %v", got, want)
	}
}

func TestKeyCaseIndependence(t *testing.T) {
	lower := []byte("user-agent: FooBot\ndisallow: /a\n")
	mixed := []byte("User-Agent: FooBot\nDISALLOW: /a\n")

	want := IsAllowed(lower, []string{"FooBot"}, "http://x/a")
	got := IsAllowed(mixed, []string{"FooBot"}, "http://x/a")
	if got != want {
		t.Errorf("key casing changed verdict: got %v want %v", got, want)
	}
}

func TestLineTooLongBoundary(t *testing.T) {
	pad := strings.Repeat("a", 16664-len("disallow: /"))
	exact := []byte("disallow: /" + pad + "\n")
	over := []byte("disallow: /" + pad + "a\n")

	var exactFlag, overFlag bool
	// Each document also has a trailing empty line, so accumulate the flag
	// across lines instead of keeping only the last line's value.
	Parse(exact, &flagObserver{onMeta: func(m LineMetadata) { exactFlag = exactFlag || m.IsLineTooLong }})
	Parse(over, &flagObserver{onMeta: func(m LineMetadata) { overFlag = overFlag || m.IsLineTooLong }})

	if exactFlag {
		t.Error("16664-byte line should not be flagged too long")
	}
	if !overFlag {
		t.Error("16665-byte line should be flagged too long")
	}
}

func TestStarAlonePatternMatchesEverything(t *testing.T) {
	doc := []byte("user-agent: *\ndisallow: *\n")
	if IsAllowed(doc, []string{"FooBot"}, "http://x/anything/at/all") {
		t.Error("expected * pattern to disallow every path")
	}
}

func TestDollarAnchorMatchesOnlyRoot(t *testing.T) {
	doc := []byte("user-agent: *\nallow: /$\ndisallow: /\n")
	if !IsAllowed(doc, []string{"FooBot"}, "http://x/") {
		t.Error("expected / to be allowed")
	}
	if IsAllowed(doc, []string{"FooBot"}, "http://x/page.html") {
		t.Error("expected /page.html to be disallowed")
	}
}

func TestIndexHTMLAllowRuleAllowsRoot(t *testing.T) {
	doc := []byte("user-agent: *\nallow: /index.html\ndisallow: /\n")
	if !IsAllowed(doc, []string{"FooBot"}, "http://x/") {
		t.Error("expected / to be allowed via index.html aliasing")
	}
}

func TestTieOnEqualLengthAllowsDisallowAllows(t *testing.T) {
	doc := []byte("user-agent: FooBot\ndisallow: /ab\nallow: /ab\n")
	if !IsAllowed(doc, []string{"FooBot"}, "http://x/ab") {
		t.Error("expected a tie to break toward allow")
	}
}

// flagObserver is a minimal Observer used only to capture per-line metadata
// in boundary tests.
type flagObserver struct {
	onMeta func(LineMetadata)
}

func (f *flagObserver) OnStart() {}
func (f *flagObserver) OnEnd()   {}
func (f *flagObserver) OnUserAgent(int, string)         {}
func (f *flagObserver) OnAllow(int, string)             {}
func (f *flagObserver) OnDisallow(int, string)          {}
func (f *flagObserver) OnSitemap(int, string)           {}
func (f *flagObserver) OnUnknownAction(int, string, string) {}
func (f *flagObserver) OnLineMetadata(_ int, m LineMetadata) {
	if f.onMeta != nil {
		f.onMeta(m)
	}
}

var _ Observer = (*flagObserver)(nil)
