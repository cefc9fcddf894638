package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// emptyMarkers are cell values that stand for a missing transcript.
var emptyMarkers = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
}

// NormalizeTranscript returns the canonical form of a transcript cell.
func NormalizeTranscript(value string) string {
	value = norm.NFC.String(value)
	var b strings.Builder
	b.Grow(len(value))
	space := false
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsControl(r) || r == '\uFEFF':
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if IsEmptyMarker(out) {
		return ""
	}
	return out
}

// IsEmptyMarker reports whether value is a placeholder for missing text.
func IsEmptyMarker(value string) bool {
	_, ok := emptyMarkers[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// IsBlank reports whether value carries no transcript after normalization.
func IsBlank(value string) bool {
	return NormalizeTranscript(value) == ""
}
