// Package queryparser translates query text into a structured Command. It
// is a pure function of its input: no state is kept between calls, and it
// never reads external state (no files, no database).
package queryparser

import (
	"strings"
	"unicode"

	"josedb/internal/core"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInteger
	tokReal
	tokString
	tokSymbol // punctuation: ( ) , . = *
)

type token struct {
	kind tokenKind
	text string // raw text for Ident/Symbol; decoded content for String
}

// lexer turns query text into a flat token stream. It understands
// identifiers ([A-Za-z_][\w]*), qualified dotted references (tokenized as
// separate ident/"." tokens so the parser decides how to combine them),
// integer and real literals, single-quoted text literals with no escape
// sequences, and the punctuation the grammar needs.
type lexer struct {
	src []rune
	pos int
}

func newLexer(text string) *lexer {
	return &lexer{src: []rune(text)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) skipSpace() {
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.pos++
	}
}

// next returns the next token in the stream, or a tokEOF token once the
// input is exhausted.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF}, nil
	}

	switch {
	case r == '(' || r == ')' || r == ',' || r == '.' || r == '=' || r == '*':
		l.pos++
		return token{kind: tokSymbol, text: string(r)}, nil
	case r == '\'':
		return l.lexString()
	case r == '-' || unicode.IsDigit(r):
		return l.lexNumber()
	case r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
		return l.lexIdent()
	default:
		return token{}, newParseError("unexpected character %q", r)
	}
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, newParseError("unterminated string literal starting at position %d", start)
		}
		l.pos++
		if r == '\'' {
			return token{kind: tokString, text: sb.String()}, nil
		}
		sb.WriteRune(r)
	}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if r, _ := l.peekRune(); r == '-' {
		l.pos++
	}
	sawDigit := false
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		sawDigit = true
		l.pos++
	}
	if !sawDigit {
		return token{}, newParseError("malformed numeric literal at position %d", start)
	}

	isReal := false
	if r, ok := l.peekRune(); ok && r == '.' {
		isReal = true
		l.pos++
		for {
			r, ok := l.peekRune()
			if !ok || !unicode.IsDigit(r) {
				break
			}
			l.pos++
		}
	}
	if r, ok := l.peekRune(); ok && (r == 'e' || r == 'E') {
		save := l.pos
		l.pos++
		if r2, ok := l.peekRune(); ok && (r2 == '+' || r2 == '-') {
			l.pos++
		}
		expDigits := false
		for {
			r2, ok := l.peekRune()
			if !ok || !unicode.IsDigit(r2) {
				break
			}
			expDigits = true
			l.pos++
		}
		if expDigits {
			isReal = true
		} else {
			l.pos = save
		}
	}

	text := string(l.src[start:l.pos])
	kind := tokInteger
	if isReal {
		kind = tokReal
	}
	return token{kind: kind, text: text}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for {
		r, ok := l.peekRune()
		if !ok || !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			break
		}
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}, nil
}

// literalToValue converts a single literal token into a core.Value per the
// type-inference rules of the grammar: integer/real literals were already
// distinguished by the lexer; a bare identifier token is re-examined for
// the true/false/null keywords.
func literalToValue(tok token) (core.Value, error) {
	switch tok.kind {
	case tokInteger:
		n, err := parseInt64(tok.text)
		if err != nil {
			return core.Value{}, newParseError("malformed integer literal %q", tok.text)
		}
		return core.IntegerValue(n), nil
	case tokReal:
		f, err := parseFloat64(tok.text)
		if err != nil {
			return core.Value{}, newParseError("malformed real literal %q", tok.text)
		}
		return core.RealValue(f), nil
	case tokString:
		return core.TextValue(tok.text), nil
	case tokIdent:
		switch strings.ToLower(tok.text) {
		case "true":
			return core.BooleanValue(true), nil
		case "false":
			return core.BooleanValue(false), nil
		case "null":
			return core.NullValue, nil
		}
	}
	return core.Value{}, newParseError("expected a literal, got %q", tok.text)
}
