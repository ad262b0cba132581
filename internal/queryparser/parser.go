package queryparser

import (
	"strings"

	"josedb/internal/core"
)

// parser wraps a lexer with one token of lookahead, the simplest shape
// that supports the grammar's fixed keyword order without backtracking.
type parser struct {
	lex  *lexer
	cur  token
	peek token
}

// Parse compiles query text into a Command. It never reads external state
// and fails with a ParseError (core.Kind = PARSE_ERROR) for any input that
// does not match the grammar.
func Parse(text string) (*Command, error) {
	p := &parser{lex: newLexer(text)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.curIsEOF() {
		return nil, newParseError("empty statement")
	}

	kw := strings.ToUpper(p.cur.text)
	var (
		cmd *Command
		err error
	)
	switch kw {
	case "CREATE":
		cmd, err = p.parseCreateTable()
	case "DROP":
		cmd, err = p.parseDropTable()
	case "INSERT":
		cmd, err = p.parseInsert()
	case "SELECT":
		cmd, err = p.parseSelect()
	case "UPDATE":
		cmd, err = p.parseUpdate()
	case "DELETE":
		cmd, err = p.parseDelete()
	default:
		return nil, newParseError("unrecognized statement keyword %q", p.cur.text)
	}
	if err != nil {
		return nil, err
	}

	if !p.curIsEOF() {
		return nil, newParseError("unexpected trailing input at %q", p.cur.text)
	}
	return cmd, nil
}

func (p *parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *parser) curIsEOF() bool { return p.cur.kind == tokEOF }

// expectKeyword consumes the current token if it is an identifier matching
// kw case-insensitively, else fails.
func (p *parser) expectKeyword(kw string) error {
	if p.cur.kind != tokIdent || !strings.EqualFold(p.cur.text, kw) {
		return newParseError("expected %q, got %q", kw, p.cur.text)
	}
	return p.advance()
}

// peekKeyword reports whether the current token is an identifier matching
// kw case-insensitively, without consuming it.
func (p *parser) peekKeyword(kw string) bool {
	return p.cur.kind == tokIdent && strings.EqualFold(p.cur.text, kw)
}

func (p *parser) expectSymbol(sym string) error {
	if p.cur.kind != tokSymbol || p.cur.text != sym {
		return newParseError("expected %q, got %q", sym, p.cur.text)
	}
	return p.advance()
}

// expectIdent consumes and returns the current identifier token's text.
// It accepts any identifier token, including the literal keywords
// true/false/null; callers that want a colref should use expectColRef
// instead, since colref supports the qualified "table.col" form.
func (p *parser) expectIdent() (string, error) {
	if p.cur.kind != tokIdent {
		return "", newParseError("expected identifier, got %q", p.cur.text)
	}
	text := p.cur.text
	if err := p.advance(); err != nil {
		return "", err
	}
	return text, nil
}

// expectColRef parses a colref: an identifier optionally followed by
// ".identifier", returning the combined "table.col" or bare "col" string.
func (p *parser) expectColRef() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	if p.cur.kind == tokSymbol && p.cur.text == "." {
		if err := p.advance(); err != nil {
			return "", err
		}
		second, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		return first + "." + second, nil
	}
	return first, nil
}

// expectLiteral parses a single literal value (integer, real, text, bool,
// or null) and advances past it.
func (p *parser) expectLiteral() (core.Value, error) {
	tok := p.cur
	switch tok.kind {
	case tokInteger, tokReal, tokString:
		// ok
	case tokIdent:
		switch strings.ToLower(tok.text) {
		case "true", "false", "null":
			// ok
		default:
			return core.Value{}, newParseError("expected a literal, got identifier %q", tok.text)
		}
	default:
		return core.Value{}, newParseError("expected a literal, got %q", tok.text)
	}
	v, err := literalToValue(tok)
	if err != nil {
		return core.Value{}, err
	}
	if err := p.advance(); err != nil {
		return core.Value{}, err
	}
	return v, nil
}
