package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Generator output is not guaranteed to be JSON-only: it can be prefixed with
// prose, wrapped in fenced code blocks, interleaved with reasoning markup, or
// contain several bracketed spans where only one is the real payload. The
// extractor narrows raw text down to the first span that actually parses.

var (
	reasoningBlockRe  = regexp.MustCompile(`(?is)<think>.*?</think>`)
	danglingOpenRe    = regexp.MustCompile(`(?is)<think>.*$`)
	danglingCloseRe   = regexp.MustCompile(`(?is)^.*?</think>`)
	excessNewlinesRe  = regexp.MustCompile(`\n{3,}`)
	arrayCandidateRe  = regexp.MustCompile(`(?s)\[.*?\]`)
	objectCandidateRe = regexp.MustCompile(`(?s)\{.*?\}`)
)

// SanitizeResponse removes reasoning blocks from raw generator text. Blocks
// delimited by <think>/</think> are deleted case-insensitively; an opener
// with no closer drops everything to the end of text, a closer with no opener
// drops everything up to and including it. Stretches of 3+ newlines collapse
// to 2 and the result is trimmed. Idempotent.
func SanitizeResponse(raw string) string {
	cleaned := reasoningBlockRe.ReplaceAllString(raw, "")
	cleaned = danglingOpenRe.ReplaceAllString(cleaned, "")
	cleaned = danglingCloseRe.ReplaceAllString(cleaned, "")
	cleaned = excessNewlinesRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// ExtractJSONPayload returns the first syntactically valid JSON array or
// object embedded in free text, or ok=false when none parses. It never
// panics; a parse failure on one candidate silently advances to the next.
//
// Arrays are tried before objects in both the fast path and the fallback so
// the two phases agree on priority: the payloads this service asks the
// generator for are arrays of change descriptors, and an object-first order
// would return a descriptor element instead of the list.
func ExtractJSONPayload(raw string) (string, bool) {
	text := SanitizeResponse(raw)
	if text == "" {
		return "", false
	}

	// Fast path: first non-greedy bracketed span of each kind.
	for _, re := range []*regexp.Regexp{arrayCandidateRe, objectCandidateRe} {
		if candidate := re.FindString(text); candidate != "" && json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	// Fallback: exhaustive string-aware nesting scan. Needed when the payload
	// nests brackets or carries bracket characters inside string values,
	// which the non-greedy regexes mis-handle.
	if candidate, ok := scanBalanced(text, '[', ']'); ok {
		return candidate, true
	}
	if candidate, ok := scanBalanced(text, '{', '}'); ok {
		return candidate, true
	}
	return "", false
}

// scanBalanced tries every occurrence of open as a start position, left to
// right. Each start is walked once: if its balanced span fails to parse the
// start is abandoned and the scan resumes at the next occurrence of open
// strictly after it.
func scanBalanced(text string, open, closing byte) (string, bool) {
	for start := strings.IndexByte(text, open); start != -1; {
		if span, ok := balancedSpan(text, start, open, closing); ok && json.Valid([]byte(span)) {
			return span, true
		}
		next := strings.IndexByte(text[start+1:], open)
		if next == -1 {
			break
		}
		start += 1 + next
	}
	return "", false
}

// scanState is the bracket walker's mode. Bracket characters seen inside a
// string literal do not affect nesting depth.
type scanState int

const (
	stateNormal scanState = iota
	stateInString
	stateEscapePending
)

// balancedSpan walks forward from start until the nesting depth for the given
// bracket kind returns to zero, honoring string literals and backslash
// escapes. Returns ok=false when the text ends before the span closes.
func balancedSpan(text string, start int, open, closing byte) (string, bool) {
	depth := 0
	state := stateNormal

	for i := start; i < len(text); i++ {
		c := text[i]

		switch state {
		case stateEscapePending:
			state = stateInString
		case stateInString:
			switch c {
			case '\\':
				state = stateEscapePending
			case '"':
				state = stateNormal
			}
		case stateNormal:
			switch c {
			case '"':
				state = stateInString
			case open:
				depth++
			case closing:
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}
