package overlap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"radiotimeline/internal/timeline"
)

var annotationPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+):([0-9]+(?:\.[0-9]+)?)s\(([0-9]+(?:\.[0-9]+)?)\)$`)

// FormatAnnotation renders overlaps as "SPK:12.34s(0.567);SPK2:1.00s(0.100)".
func FormatAnnotation(overlaps []timeline.SpeakerOverlap) string {
	if len(overlaps) == 0 {
		return ""
	}
	parts := make([]string, 0, len(overlaps))
	for _, o := range overlaps {
		parts = append(parts, fmt.Sprintf("%s:%.2fs(%.3f)", o.Speaker, o.Seconds, o.Ratio))
	}
	return strings.Join(parts, ";")
}

// ParseAnnotation decodes a FormatAnnotation string. Entry order is kept as
// written.
func ParseAnnotation(value string) ([]timeline.SpeakerOverlap, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ";")
	out := make([]timeline.SpeakerOverlap, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := annotationPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid speaker annotation %q", part)
		}
		seconds, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid overlap seconds in %q: %w", part, err)
		}
		ratio, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid overlap ratio in %q: %w", part, err)
		}
		out = append(out, timeline.SpeakerOverlap{Speaker: m[1], Seconds: seconds, Ratio: ratio})
	}
	return out, nil
}
