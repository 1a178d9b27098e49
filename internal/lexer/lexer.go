// Package lexer classifies every character of a source file into a lexical
// mode so that downstream brace counting can ignore braces inside string
// literals and comments. It is a single-pass automaton, not a tokenizer: no
// token list is produced, only a per-byte mode buffer shared with the
// boundary detector.
package lexer

// Mode is the scanner's classification of a character position.
type Mode uint8

const (
	Code Mode = iota
	String
	LineComment
	BlockComment
)

func (m Mode) String() string {
	switch m {
	case Code:
		return "code"
	case String:
		return "string"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	}
	return "unknown"
}

// Result holds the per-byte lexical modes for one file. Truncated is set
// when the file ends while the automaton is not in Code mode, i.e. inside an
// unterminated string or comment. Such a file still gets a complete mode
// buffer, but callers are expected to treat its boundaries as unreliable.
type Result struct {
	Modes     []Mode
	Truncated bool
}

// Scan runs the mode automaton over text. The automaton:
//
//	Code         -> String on an unescaped ' or " (quote recorded)
//	String       -> Code on an unescaped occurrence of the opening quote
//	Code         -> LineComment on //, back to Code at end of line
//	Code         -> BlockComment on /*, back to Code after */
//
// A backslash inside a string suppresses the effect of exactly one following
// character. Opening and closing delimiters are classified as part of the
// region they delimit; the newline terminating a line comment is Code.
func Scan(text string) Result {
	modes := make([]Mode, len(text))

	mode := Code
	var quote byte
	escaped := false
	commentStart := -1

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch mode {
		case Code:
			switch {
			case c == '\'' || c == '"':
				mode = String
				quote = c
				modes[i] = String
			case c == '/' && i+1 < len(text) && text[i+1] == '/':
				mode = LineComment
				modes[i] = LineComment
			case c == '/' && i+1 < len(text) && text[i+1] == '*':
				mode = BlockComment
				commentStart = i
				modes[i] = BlockComment
			default:
				modes[i] = Code
			}

		case String:
			modes[i] = String
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == quote {
				mode = Code
			}

		case LineComment:
			if c == '\n' {
				mode = Code
				modes[i] = Code
			} else {
				modes[i] = LineComment
			}

		case BlockComment:
			modes[i] = BlockComment
			// The closing */ must not reuse the opener's characters,
			// so "/*/" stays open.
			if c == '/' && i >= commentStart+3 && text[i-1] == '*' {
				mode = Code
			}
		}
	}

	return Result{Modes: modes, Truncated: mode != Code}
}

// BraceDelta returns the net brace nesting change over text[from:to],
// counting only characters classified as Code. The text must be the same
// string the modes were produced from.
func (r Result) BraceDelta(text string, from, to int) int {
	delta := 0
	if to > len(text) {
		to = len(text)
	}
	for i := from; i < to; i++ {
		if r.Modes[i] != Code {
			continue
		}
		switch text[i] {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}
