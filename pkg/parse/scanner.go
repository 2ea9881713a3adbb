package parse

import "unicode/utf8"

// eol is returned by Scanner.Current once the scanner has moved past the last
// character.
const eol rune = 0

// Scanner is a forward-only cursor over a string. It decodes one UTF-8
// character at a time and tracks the byte offset of the current character, so
// that offsets it reports can always be used to slice the source.
//
// Invalid UTF-8 sequences are consumed one byte at a time and reported as
// utf8.RuneError.
type Scanner struct {
	src   string
	pos   int
	cur   rune
	width int
}

// NewScanner returns a Scanner positioned at the first character of src.
func NewScanner(src string) *Scanner {
	s := &Scanner{src: src}
	s.decode()
	return s
}

func (s *Scanner) decode() {
	if s.pos >= len(s.src) {
		s.cur, s.width = eol, 0
		return
	}
	s.cur, s.width = utf8.DecodeRuneInString(s.src[s.pos:])
}

// Current returns the character at the cursor, or a NUL character if the
// scanner is finished.
func (s *Scanner) Current() rune { return s.cur }

// Index returns the byte offset of the current character. Once the scanner is
// finished, it returns the length of the source.
func (s *Scanner) Index() int { return s.pos }

// Eat moves past the current character and returns the new current
// character. It does nothing once the scanner is finished.
func (s *Scanner) Eat() rune {
	s.pos += s.width
	s.decode()
	return s.cur
}

// IsFinished reports whether all characters have been consumed. A NUL
// character inside the source does not finish the scanner.
func (s *Scanner) IsFinished() bool { return s.pos >= len(s.src) }

// EatWhile consumes characters as long as pred reports true for them, and
// returns the offset after the last consumed character.
func (s *Scanner) EatWhile(pred func(rune) bool) int {
	for !s.IsFinished() && pred(s.cur) {
		s.Eat()
	}
	return s.pos
}
