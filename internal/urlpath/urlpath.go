// Package urlpath extracts a canonical path+params+query component from a
// URL and canonicalizes robots.txt patterns so both sides of a match can be
// compared byte-for-byte. It intentionally avoids net/url: the scan below
// mirrors the byte-level GetPathParamsQuery routine from Google's reference
// robots.txt matcher, which sidesteps net/url's own opinions about escaping
// and validity in favor of an exact, reproducible byte scan.
package urlpath

import "math"

// ExtractPath returns the path+params+query component of url, always
// starting with "/". Scheme-only, empty, or fragment-before-path inputs
// yield "/".
func ExtractPath(url string) string {
	searchStart := 0
	if hasPrefixAt(url, 0, "//") {
		searchStart = 2
	}

	earlyPath := indexAny(url, searchStart, "/?;")
	earlyPathForCompare := earlyPath
	if earlyPathForCompare == -1 {
		earlyPathForCompare = math.MaxInt
	}

	protoStart := indexSub(url, searchStart, "://")

	var afterScheme int
	switch {
	case protoStart == -1:
		afterScheme = searchStart
	case earlyPathForCompare < protoStart:
		// The "://" found lies after a path/query/param delimiter, so it
		// cannot be a scheme separator.
		afterScheme = searchStart
	default:
		afterScheme = protoStart + len("://")
	}

	pathStart := indexAny(url, afterScheme, "/?;")
	if pathStart == -1 {
		return "/"
	}

	fragPos := indexByte(url, searchStart, '#')
	pathEnd := len(url)
	if fragPos != -1 {
		if fragPos < pathStart {
			return "/"
		}
		pathEnd = fragPos
	}

	result := url[pathStart:pathEnd]
	if len(result) == 0 || result[0] != '/' {
		result = "/" + result
	}
	return result
}

func hasPrefixAt(s string, at int, prefix string) bool {
	if at < 0 || at+len(prefix) > len(s) {
		return false
	}
	return s[at:at+len(prefix)] == prefix
}

// indexAny returns the index of the first byte in s, at or after start,
// that appears in chars; -1 if none is found.
func indexAny(s string, start int, chars string) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return i
			}
		}
	}
	return -1
}

// indexByte returns the index of the first occurrence of b in s at or
// after start; -1 if not found.
func indexByte(s string, start int, b byte) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// indexSub returns the index of the first occurrence of sub in s at or
// after start; -1 if not found.
func indexSub(s string, start int, sub string) int {
	if start < 0 {
		start = 0
	}
	if len(sub) == 0 {
		return start
	}
	for i := start; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

const upperHexDigits = "0123456789ABCDEF"

// EscapePattern canonicalizes an Allow/Disallow pattern: existing %XX
// escapes are uppercased and any byte with the high bit set is
// percent-encoded. Every other byte passes through unchanged. The result
// is idempotent: EscapePattern(EscapePattern(s)) == EscapePattern(s).
func EscapePattern(src string) string {
	if !needsEscaping(src) {
		return src
	}

	out := make([]byte, 0, len(src)+4)
	for i := 0; i < len(src); i++ {
		b := src[i]
		switch {
		case b == '%' && i+2 < len(src) && isHexDigit(src[i+1]) && isHexDigit(src[i+2]):
			out = append(out, '%', toUpperHex(src[i+1]), toUpperHex(src[i+2]))
			i += 2
		case b >= 0x80:
			out = append(out, '%', upperHexDigits[b>>4], upperHexDigits[b&0xf])
		default:
			out = append(out, b)
		}
	}
	return string(out)
}

func needsEscaping(src string) bool {
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b >= 0x80 {
			return true
		}
		if b == '%' && i+2 < len(src) && isHexDigit(src[i+1]) && isHexDigit(src[i+2]) {
			if isLowerHex(src[i+1]) || isLowerHex(src[i+2]) {
				return true
			}
		}
	}
	return false
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isLowerHex(b byte) bool {
	return b >= 'a' && b <= 'f'
}

func toUpperHex(b byte) byte {
	if b >= 'a' && b <= 'f' {
		return b - 'a' + 'A'
	}
	return b
}
