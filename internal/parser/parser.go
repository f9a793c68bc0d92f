// Package parser implements the recursive-descent grammar of spec.md §4.3:
// one function per precedence level, each consuming sub-expressions of the
// next-higher level and looping on operators at its own level. Right-
// associative levels (ternary, `**`) recurse into themselves for the right
// operand instead of looping.
//
// Structured the way the teacher's internal/parser package is: a thin
// Parser holding a lookahead token pair (cur/peek) advanced by next(), with
// one method per grammar production — generalized from DWScript's full
// statement/declaration grammar down to this single expression grammar.
package parser

import (
	"fmt"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/ast"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/errors"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/lexer"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/token"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// Parser consumes a token stream from a Lexer and produces an ast.Node.
type Parser struct {
	l      *lexer.Lexer
	source string

	cur  token.Token
	peek token.Token
}

// Parse lexes and parses expr into an AST, enforcing that the whole input is
// consumed (trailing tokens are a ParseError, per §4.3).
func Parse(expr string) (ast.Node, error) {
	p := &Parser{l: lexer.New(expr), source: expr}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Type == token.END {
		return nil, errors.Parse("empty expression", p.cur.Pos, p.source)
	}

	node, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.END {
		return nil, errors.Parse(fmt.Sprintf("unexpected trailing token %q", p.cur.Literal), p.cur.Pos, p.source)
	}

	return node, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// expect checks that cur is of type t and advances past it, or returns a
// ParseError naming what was expected.
func (p *Parser) expect(t token.Type, what string) error {
	if p.cur.Type != t {
		return errors.Parse(fmt.Sprintf("expected %s, got %q", what, p.cur.Literal), p.cur.Pos, p.source)
	}
	return p.advance()
}

// Level 1: ternary, right-associative.
func (p *Parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseBoolean()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.QUEST {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

// Level 3: `&` `|` `^`, left-associative.
func (p *Parser) parseBoolean() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case token.AMP:
			op = ast.BinAnd
		case token.PIPE:
			op = ast.BinOr
		case token.CARET:
			op = ast.BinXor
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// Level 4: `==` `!=` `===` `!==`, left-associative.
// `=` and `/=` are also recognized here as synonyms for `==`/`!=`, matching
// the fixed operator set spec.md §4.2 lexes (no assignment expression exists
// in this grammar — spec.md's Non-goals exclude visible assignment side
// effects — so `=` can only sensibly mean comparison at this level).
func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case token.EQ, token.ASSIGN:
			op = ast.BinEq
		case token.NE, token.ASSIGN_DIV:
			op = ast.BinNe
		case token.EQ_STRICT:
			op = ast.BinStrictEq
		case token.NE_STRICT:
			op = ast.BinStrictNe
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// Level 5: `<` `<=` `>` `>=`, left-associative.
func (p *Parser) parseRelational() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case token.LT:
			op = ast.BinLt
		case token.LE:
			op = ast.BinLe
		case token.GT:
			op = ast.BinGt
		case token.GE:
			op = ast.BinGe
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// Level 6: binary `+` `-`, left-associative.
func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case token.PLUS:
			op = ast.BinAdd
		case token.MINUS:
			op = ast.BinSub
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// Level 7: `*` `/` `%`, left-associative.
func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case token.STAR:
			op = ast.BinMul
		case token.SLASH:
			op = ast.BinDiv
		case token.PERCENT:
			op = ast.BinMod
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// Level 8: `**`, right-associative: `2 ** 3 ** 2 == 2 ** (3 ** 2)`.
func (p *Parser) parsePower() (ast.Node, error) {
	left, err := p.parseKeyword()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.POW {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: ast.BinPow, Left: left, Right: right}, nil
}

// Level 9: `in` `contains` `like` `matches` `rlike` `regex`, left-associative.
func (p *Parser) parseKeyword() (ast.Node, error) {
	left, err := p.parseTimeUnit()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.KeywordOp
		switch p.cur.Type {
		case token.KW_IN:
			op = ast.KeywordIn
		case token.KW_CONTAINS:
			op = ast.KeywordContains
		case token.KW_LIKE:
			op = ast.KeywordLike
		case token.KW_MATCHES:
			op = ast.KeywordMatches
		case token.KW_RLIKE:
			op = ast.KeywordRLike
		case token.KW_REGEX:
			op = ast.KeywordRegex
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTimeUnit()
		if err != nil {
			return nil, err
		}
		left = &ast.Keyword{Op: op, Left: left, Right: right}
	}
}

var timeUnitKinds = map[token.Type]ast.TimeUnit{
	token.KW_SECONDS: ast.UnitSeconds,
	token.KW_MINUTES: ast.UnitMinutes,
	token.KW_HOURS:   ast.UnitHours,
	token.KW_DAYS:    ast.UnitDays,
	token.KW_WEEKS:   ast.UnitWeeks,
	token.KW_YEARS:   ast.UnitYears,
}

// Level 10: postfix time-unit keywords.
func (p *Parser) parseTimeUnit() (ast.Node, error) {
	child, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		unit, ok := timeUnitKinds[p.cur.Type]
		if !ok {
			return child, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		child = &ast.TimeUnitExpr{Unit: unit, Child: child}
	}
}

// Level 11: unary `!` `+` `-`, right-associative.
func (p *Parser) parseUnary() (ast.Node, error) {
	var op ast.UnaryOp
	switch p.cur.Type {
	case token.NOT:
		op = ast.UnaryNot
	case token.PLUS:
		op = ast.UnaryPlus
	case token.MINUS:
		op = ast.UnaryMinus
	default:
		return p.parseAtom()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	child, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Child: child}, nil
}

// callableIdent reports whether the current token can be used as a function
// name or variable name: ordinary identifiers, plus the three keyword-lexed
// cast names (int/string/float are reserved words per §4.2 but are also
// pre-registered functions per §4.4).
func callableIdent(t token.Type) bool {
	switch t {
	case token.IDENT, token.KW_INT, token.KW_STRING, token.KW_FLOAT:
		return true
	default:
		return false
	}
}

// Level 12: atom — literal, variable, call, or parenthesized expression.
func (p *Parser) parseAtom() (ast.Node, error) {
	tok := p.cur

	switch {
	case tok.Type == token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case tok.Type == token.NUMBER:
		v, err := value.ParseNumericLiteral(tok.Literal)
		if err != nil {
			return nil, errors.Parse("invalid numeric literal "+tok.Literal, tok.Pos, p.source)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: v}, nil

	case tok.Type == token.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.String(tok.Literal)}, nil

	case tok.Type == token.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Integer(1)}, nil

	case tok.Type == token.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Integer(0)}, nil

	case tok.Type == token.NULLKW:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Empty}, nil

	case callableIdent(tok.Type):
		name := tok.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != token.LPAREN {
			return &ast.Variable{Name: name}, nil
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{Name: name, Args: args}, nil

	default:
		return nil, errors.Parse(fmt.Sprintf("unexpected token %q", tok.Literal), tok.Pos, p.source)
	}
}

// parseArgs parses a parenthesized, comma-separated argument list. Comma is
// only meaningful here (§4.3's note: "not a general expression operator").
func (p *Parser) parseArgs() ([]ast.Node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Node
	if p.cur.Type == token.RPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return args, nil
	}
	for {
		arg, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}
