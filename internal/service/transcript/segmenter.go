package transcript

import (
	"strings"
)

// Role tags the likely function of a transcript segment within the video
type Role string

const (
	// RoleHook marks the opening segment, recognized by a 00:00 start
	RoleHook Role = "hook"

	// RoleKeyPoint marks an ordinary mid-video segment
	RoleKeyPoint Role = "key_point"

	// RoleCallToAction marks a closing segment. Heuristic: an end offset
	// with a "60" suffix lands near the 60-second mark, which is where
	// closers live.
	RoleCallToAction Role = "call_to_action"
)

// Segment is one time-stamped line of a transcript
type Segment struct {
	Start string
	End   string
	Text  string
	Role  Role
}

// Analysis groups a transcript's segments by their role
type Analysis struct {
	Hooks        []string
	KeyPoints    []string
	CallToAction string
	SegmentCount int
}

// Parse splits a raw time-stamped transcript into ordered segments. Each
// non-blank line is expected in the form "[start-end] text". Lines without
// a closing bracket or without a single-hyphen timestamp are silently
// dropped, so a partially garbled transcript still yields its good lines.
// Pure function of its input.
func Parse(raw string) []Segment {
	var segments []Segment

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		closing := strings.Index(line, "]")
		if closing < 0 {
			continue
		}

		timestamp := strings.TrimPrefix(strings.TrimSpace(line[:closing]), "[")
		parts := strings.Split(timestamp, "-")
		if len(parts) != 2 {
			continue
		}

		segment := Segment{
			Start: strings.TrimSpace(parts[0]),
			End:   strings.TrimSpace(parts[1]),
			Text:  strings.TrimSpace(line[closing+1:]),
		}
		segment.Role = classify(segment)
		segments = append(segments, segment)
	}

	return segments
}

func classify(segment Segment) Role {
	if segment.Start == "00:00" {
		return RoleHook
	}
	if strings.HasSuffix(segment.End, "60") {
		return RoleCallToAction
	}
	return RoleKeyPoint
}

// Analyze extracts the hook candidates, key points and call to action from
// parsed segments. The first segment ending near the 60-second mark is
// taken as the call to action.
func Analyze(segments []Segment) Analysis {
	analysis := Analysis{SegmentCount: len(segments)}

	for _, segment := range segments {
		switch segment.Role {
		case RoleHook:
			analysis.Hooks = append(analysis.Hooks, segment.Text)
		case RoleCallToAction:
			if analysis.CallToAction == "" {
				analysis.CallToAction = segment.Text
			}
		default:
			analysis.KeyPoints = append(analysis.KeyPoints, segment.Text)
		}
	}

	return analysis
}

// Text returns the bracket-stripped text of a raw transcript: every line
// containing a closing bracket contributes its trailing text, joined by
// single spaces.
func Text(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		closing := strings.Index(line, "]")
		if closing < 0 {
			continue
		}
		lines = append(lines, strings.TrimSpace(line[closing+1:]))
	}
	return strings.Join(lines, " ")
}
