// Package boundary locates method and function declarations in raw source
// text and computes their line extents. Matching is a deliberate heuristic
// over declaration headers, not a grammar: a small table of known return
// types plus a capitalized-identifier pattern covers the common declaration
// shapes, and exotic styles are accepted as false negatives.
package boundary

import (
	"regexp"
	"strings"

	"github.com/structhound/structhound/internal/lexer"
)

// Span is a detected declaration with its 1-indexed line extent.
// EndLine >= StartLine always holds; spans within one file are ordered by
// StartLine and never overlap, because detection resumes strictly after a
// closed span.
type Span struct {
	File      string `json:"file"`
	Name      string `json:"name"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Lines     int    `json:"lines"`
}

// Header is a matched declaration header, before body extraction.
// Signature carries the raw "ReturnType name(params)" text; the duplication
// clusterer normalizes it into a canonical form. Using the same header
// pattern for span detection and for clustering guarantees that an oversized
// method and a duplicated method are the same entity.
type Header struct {
	Name      string
	Signature string
}

// returnTypes is the closed set of known primitive and container return
// types. Anything else is only matched by the capitalized-identifier
// alternative at the end of the pattern.
var returnTypes = []string{
	// <[^(){}]*> tolerates nested generics (Stream<List<int>>) without
	// crossing into the parameter list.
	`Future<[^(){}]*>`,
	`Stream<[^(){}]*>`,
	`Widget`,
	`void`,
	`bool`,
	`int`,
	`double`,
	`num`,
	`String`,
	`List(?:<[^(){}]*>)?`,
	`Map(?:<[^(){}]*>)?`,
	`Set(?:<[^(){}]*>)?`,
	`dynamic`,
	`[A-Z]\w*(?:<[^(){}]*>)?`,
}

var headerPattern = regexp.MustCompile(
	`^\s*` +
		`(?:@\w+\s+)?` + // optional annotation
		`(?:static\s+|final\s+|const\s+)?` + // optional modifiers
		`((?:` + strings.Join(returnTypes, `|`) + `)` + // return type
		`\s+(\w+)\s*` + // declaration name
		`\([^)]*\))` + // parameter list
		`\s*(?:async\*?|sync\*)?\s*\{`, // optional async marker, opening brace
)

// MatchHeader reports whether line opens a declaration body. The returned
// Header carries the declaration name and its raw signature.
func MatchHeader(line string) (Header, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	return Header{Name: m[2], Signature: m[1]}, true
}

// headerOpenBrace returns the byte offset just past the opening brace of a
// header match on line, or -1 when the line is not a header.
func headerOpenBrace(line string) int {
	loc := headerPattern.FindStringIndex(line)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// Detect scans a file's text for declaration spans. The lex result must have
// been produced from the same text; braces are only counted at positions the
// lexer classified as Code, so literals and comments never skew the nesting
// depth. Headers are only recognized on lines that start in Code mode.
//
// Nested declarations inside a matched span are not separately reported:
// the search resumes after the span's end line.
func Detect(path, text string, lex lexer.Result) []Span {
	lines, offsets := splitLines(text)

	var spans []Span
	for i := 0; i < len(lines); i++ {
		if !lineStartsInCode(lines[i], offsets[i], lex) {
			continue
		}

		hdr, ok := MatchHeader(lines[i])
		if !ok {
			continue
		}

		// Depth starts at 1 for the header's own opening brace; the rest
		// of the header line may already close it (one-line bodies).
		open := headerOpenBrace(lines[i])
		depth := 1 + lex.BraceDelta(text, offsets[i]+open, offsets[i]+len(lines[i]))

		end := i
		for depth > 0 && end+1 < len(lines) {
			end++
			depth += lex.BraceDelta(text, offsets[end], offsets[end]+len(lines[end]))
		}
		if depth > 0 {
			// Unbalanced to EOF (typically a truncated file): the span
			// never closed, so it is not reported.
			break
		}

		spans = append(spans, Span{
			File:      path,
			Name:      hdr.Name,
			StartLine: i + 1,
			EndLine:   end + 1,
			Lines:     end - i + 1,
		})
		i = end
	}
	return spans
}

// Headers returns every declaration header in the file, including headers
// nested inside other declaration bodies. This is the clusterer's view of
// the file and is intentionally independent of span extraction.
func Headers(text string, lex lexer.Result) []Header {
	lines, offsets := splitLines(text)

	var headers []Header
	for i := range lines {
		if !lineStartsInCode(lines[i], offsets[i], lex) {
			continue
		}
		if hdr, ok := MatchHeader(lines[i]); ok {
			headers = append(headers, hdr)
		}
	}
	return headers
}

// lineStartsInCode reports whether the first non-blank character of the line
// is in Code mode. Lines opening inside a string or comment are skipped
// entirely for header matching.
func lineStartsInCode(line string, offset int, lex lexer.Result) bool {
	for j := 0; j < len(line); j++ {
		c := line[j]
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		return lex.Modes[offset+j] == lexer.Code
	}
	return false
}

// splitLines splits text on newlines, keeping the byte offset of each line
// start so mode lookups stay aligned with the original text.
func splitLines(text string) ([]string, []int) {
	var lines []string
	var offsets []int

	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			offsets = append(offsets, start)
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
		offsets = append(offsets, start)
	}
	return lines, offsets
}
