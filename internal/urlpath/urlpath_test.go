package urlpath

import "testing"

func TestExtractPath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple path", "http://foo.bar/fish.html", "/fish.html"},
		{"path with query", "http://foo.bar/fish.html?x=1", "/fish.html?x=1"},
		{"path with params", "http://foo.bar/fish;param", "/fish;param"},
		{"scheme only", "http://foo.bar", "/"},
		{"empty string", "", "/"},
		{"bare path", "/fish", "/fish"},
		{"protocol relative", "//foo.bar/fish", "/fish"},
		{"fragment stripped", "http://foo.bar/fish#section", "/fish"},
		{"fragment before path", "http://foo.bar#frag/path", "/"},
		{"no leading slash gets one", "http://foo.bar?x=1", "/?x=1"},
		{"https scheme", "https://example.com/a/b/c", "/a/b/c"},
		{"host with port", "http://foo.bar:8080/fish", "/fish"},
		{"root path", "http://foo.bar/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPath(tt.url); got != tt.want {
				t.Errorf("ExtractPath(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"plain ascii passes through", "/fish/salmon", "/fish/salmon"},
		{"uppercases existing escape", "/caf%c3%a9", "/caf%C3%A9"},
		{"already uppercase stays", "/caf%C3%A9", "/caf%C3%A9"},
		{"encodes high bit byte", "/caf\xc3\xa9", "/caf%C3%A9"},
		{"invalid escape passes through", "/100%sure", "/100%sure"},
		{"lone percent at end passes through", "/path%", "/path%"},
		{"mixed", "/a%2fb\xff", "/a%2Fb%FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapePattern(tt.pattern)
			if got != tt.want {
				t.Errorf("EscapePattern(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestEscapePatternIdempotent(t *testing.T) {
	inputs := []string{
		"/fish",
		"/caf%c3%a9",
		"/caf\xc3\xa9",
		"/100%sure",
		"/a%2fb\xff",
		"",
		"%",
		"%%%",
	}
	for _, in := range inputs {
		once := EscapePattern(in)
		twice := EscapePattern(once)
		if once != twice {
			t.Errorf("EscapePattern not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
