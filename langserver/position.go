package langserver

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/ant/parser"
)

// UTF16Len returns the number of UTF-16 code units needed to encode s,
// which is how LSP clients measure columns.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// lineAt returns the 0-based line n of text without its line terminator,
// or "" when the document has no such line.
func lineAt(text string, n int) string {
	if n < 0 {
		return ""
	}
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return ""
		}
		text = text[idx+1:]
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSuffix(text, "\r")
}

// firstRunes returns the first n characters of s, or all of s if shorter.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// TokenRange converts a token's 1-based line and character column into the
// UTF-16 start and end columns of its span on that line.
func TokenRange(text string, tok parser.Token) (start, end uint32) {
	line := lineAt(text, tok.Line-1)
	prefix := firstRunes(line, tok.Column-1)
	start = uint32(UTF16Len(prefix))
	end = start + uint32(UTF16Len(tok.Literal))
	return start, end
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// cursorOffset returns the byte offset within line reached after character
// UTF-16 code units, clamped to the end of the line. A cursor inside a
// surrogate pair rounds up past the character.
func cursorOffset(line string, character uint32) int {
	units := 0
	for i, r := range line {
		if units >= int(character) {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// IdentPrefix returns the run of identifier characters that ends at the
// cursor, or "" when the cursor does not follow one.
func IdentPrefix(text string, pos protocol.Position) string {
	line := lineAt(text, int(pos.Line))
	before := line[:cursorOffset(line, pos.Character)]
	start := len(before)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(before[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	return before[start:]
}

// identAt returns the identifier touching the cursor and its UTF-16 column
// span on the cursor's line.
func identAt(text string, pos protocol.Position) (string, protocol.Range, bool) {
	line := lineAt(text, int(pos.Line))
	cut := cursorOffset(line, pos.Character)

	start := cut
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	end := cut
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	if start == end {
		return "", protocol.Range{}, false
	}

	startCol := uint32(UTF16Len(line[:start]))
	return line[start:end], protocol.Range{
		Start: protocol.Position{Line: pos.Line, Character: startCol},
		End:   protocol.Position{Line: pos.Line, Character: startCol + uint32(UTF16Len(line[start:end]))},
	}, true
}
