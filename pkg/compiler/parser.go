package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saaam-lang/saaamc/pkg/diag"
)

// Parser consumes the flat token slice produced by the Lexer and builds an
// AST via recursive descent with one token of lookahead (§4.3).
//
// Grammar (expression precedence ladder, lowest to highest):
//
//	assignment     = logical_or (assignOp assignment)?
//	logical_or     = logical_and ("||" logical_and)*
//	logical_and    = equality ("&&" equality)*
//	equality       = compare (("=="|"!=") compare)*
//	compare        = additive (("<"|"<="|">"|">=") additive)*
//	additive       = mult (("+"|"-") mult)*
//	mult           = unary (("*"|"/"|"%") unary)*
//	unary          = ("+"|"-"|"!") unary | callOrMember
//	callOrMember   = primary ( "(" args ")" | "." IDENTIFIER | "[" expr "]" )*
//	primary        = "this" | vec2(...) | vec3(...) | IDENTIFIER | NUMBER | STRING
//	               | "true" | "false" | "null" | "undefined" | objectLit | arrayLit | "(" expr ")"
type Parser struct {
	tokens []Token
	pos    int
	errors *diag.Sink
}

// NewParser creates a Parser over toks, reporting diagnostics to errors.
func NewParser(toks []Token, errors *diag.Sink) *Parser {
	return &Parser{tokens: toks, errors: errors}
}

// parseAbort is a sentinel panic value used to unwind out of parseBlock when
// EOF is reached before the closing brace (§4.3: "parsing aborts with an
// exception caught by the facade").
type parseAbort struct{ err error }

func (p *Parser) fatal(format string, args ...any) {
	panic(parseAbort{err: fmt.Errorf(format, args...)})
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) match(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		p.errors.Error(tok.Offset, "expected %s, got %s %q", tt, tok.Type, tok.Lexeme)
		return tok, fmt.Errorf("expected %s, got %s", tt, tok.Type)
	}
	return tok, nil
}

// expectName consumes a binding or member name: an IDENTIFIER, or any of the
// domain reserved words (vec2, vec3, yield, signal, state, create, step,
// draw, on_collision). Domain keywords double as ordinary names wherever a
// name is expected — most importantly the four lifecycle function names
// themselves, which would otherwise be impossible to declare — so this, not
// expect(IDENTIFIER), is the right helper for every declaration and member
// name site (§3, §6).
func (p *Parser) expectName() (Token, error) {
	tok := p.peek()
	if tok.Type == IDENTIFIER || tok.Kind() == KindDomainKeyword {
		p.advance()
		return tok, nil
	}
	p.errors.Error(tok.Offset, "expected name, got %s %q", tok.Type, tok.Lexeme)
	return tok, fmt.Errorf("expected name, got %s", tok.Type)
}

// consumeOptionalSemicolon implements the semicolon-tolerance policy of
// §4.3: a missing terminator after VarDecl/ExprStmt/Return/Break/Continue is
// a WARNING, never an ERROR.
func (p *Parser) consumeOptionalSemicolon() {
	if p.match(SEMICOLON) {
		p.advance()
		return
	}
	p.errors.Warn(p.peek().Offset, "missing semicolon")
}

// synchronize implements the parser's error-recovery rule at the top level
// (§4.3): consume tokens until the next ";" or "}" (inclusive if found),
// then resume with the next statement.
func (p *Parser) synchronize() {
	for !p.match(EOF) {
		tok := p.advance()
		if tok.Type == SEMICOLON || tok.Type == RBRACE {
			return
		}
	}
}

// Parse runs the full program grammar over the token stream, recovering at
// statement boundaries on non-fatal errors. It returns the partial-or-
// complete Program and, separately, an error only when parsing aborted
// fatally (unexpected EOF inside a block).
func Parse(toks []Token, errors *diag.Sink) (prog *Program, err error) {
	p := NewParser(toks, errors)

	defer func() {
		if r := recover(); r != nil {
			if abort, ok := r.(parseAbort); ok {
				err = abort.err
				return
			}
			panic(r)
		}
	}()

	start := 0
	if len(toks) > 0 {
		start = toks[0].Offset
	}
	prog = &Program{StartPos: start}

	for !p.match(EOF) {
		stmt, perr := p.parseTopLevelStatement()
		if perr != nil {
			p.synchronize()
			continue
		}
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}

	return prog, nil
}

// parseTopLevelStatement parses either a function declaration or any
// statement form; both are legal at the top level and inside blocks (§4.3).
func (p *Parser) parseTopLevelStatement() (Stmt, error) {
	return p.parseStatement()
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()

	switch tok.Type {
	case VAR, CONST, LET:
		return p.parseVarDecl()

	case FUNCTION:
		return p.parseFuncDecl()

	case LBRACE:
		return p.parseBlock()

	case IF:
		return p.parseIf()

	case FOR:
		return p.parseFor()

	case WHILE:
		return p.parseWhile()

	case DO:
		return p.parseDoWhile()

	case SWITCH:
		return p.parseSwitch()

	case RETURN:
		return p.parseReturn()

	case BREAK:
		p.advance()
		p.consumeOptionalSemicolon()
		return &Break{StartPos: tok.Offset}, nil

	case CONTINUE:
		p.advance()
		p.consumeOptionalSemicolon()
		return &Continue{StartPos: tok.Offset}, nil

	case SEMICOLON:
		p.advance()
		return &Empty{StartPos: tok.Offset}, nil

	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.consumeOptionalSemicolon()
		return &ExprStmt{E: expr, StartPos: tok.Offset}, nil
	}
}

func bindingFormOf(tt TokenType) BindingForm {
	switch tt {
	case CONST:
		return BindImmutable
	case LET:
		return BindLexical
	default:
		return BindMutable
	}
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	start := p.peek()
	form := bindingFormOf(start.Type)
	p.advance() // var/const/let

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Form: form, Name: name.Lexeme, StartPos: start.Offset}

	if p.match(ASSIGN) {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	p.consumeOptionalSemicolon()
	return decl, nil
}

func (p *Parser) parseFuncDecl() (Stmt, error) {
	start := p.advance() // function

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var params []string
	if !p.match(RPAREN) {
		for {
			param, err := p.expectName()
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	// Lifecycle-parameter lint (§4.3): step/draw should take a parameter.
	if len(params) == 0 {
		switch name.Lexeme {
		case "step":
			p.errors.Warn(start.Offset, "step should accept a time-delta parameter")
		case "draw":
			p.errors.Warn(start.Offset, "draw should accept a drawing-context parameter")
		}
	}

	bodyStmt, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{Name: name.Lexeme, Params: params, Body: bodyStmt.(*Block), StartPos: start.Offset}, nil
}

// parseBlock parses { stmt* }. Reaching EOF before the closing brace is a
// fatal parse error per §4.3 and §7: recorded as an ERROR, then the parse
// aborts via the parseAbort panic caught in Parse.
func (p *Parser) parseBlock() (Stmt, error) {
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}

	block := &Block{StartPos: open.Offset}

	for !p.match(RBRACE) {
		if p.match(EOF) {
			p.errors.Error(p.peek().Offset, "unexpected end of input inside block, expected }")
			p.fatal("unexpected end of input inside block")
		}
		stmt, serr := p.parseStatement()
		if serr != nil {
			p.synchronize()
			continue
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}

	p.advance() // }
	return block, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	start := p.advance() // if
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	node := &If{Cond: cond, Then: then, StartPos: start.Offset}
	if p.match(ELSE) {
		p.advance()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Else = elseStmt
	}
	return node, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	start := p.advance() // while
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body, StartPos: start.Offset}, nil
}

// parseDoWhile parses do Body while (Cond). A trailing semicolon is
// expected; a missing one produces a WARNING (§4.3).
func (p *Parser) parseDoWhile() (Stmt, error) {
	start := p.advance() // do
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WHILE); err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	p.consumeOptionalSemicolon()
	return &DoWhile{Body: body, Cond: cond, StartPos: start.Offset}, nil
}

// parseFor parses for (init; cond; post) body. The three clauses remain
// semicolon-delimited regardless of the general semicolon-tolerance policy
// (§4.3). A missing condition synthesises Literal(true) at the "for"
// keyword's position (§3 invariant).
func (p *Parser) parseFor() (Stmt, error) {
	start := p.advance() // for
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var init Stmt
	if !p.match(SEMICOLON) {
		var err error
		init, err = p.parseForClauseStatement()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	var cond Expr
	if !p.match(SEMICOLON) {
		var err error
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	if cond == nil {
		cond = &Literal{Kind: LitBool, Bool: true, Raw: "true", StartPos: start.Offset}
	}

	var post Stmt
	if !p.match(RPAREN) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		post = &ExprStmt{E: expr, StartPos: expr.Pos()}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &For{Init: init, Cond: cond, Post: post, Body: body, StartPos: start.Offset}, nil
}

// parseForClauseStatement parses the init clause of a for loop: either a
// var/const/let declaration or a bare expression, each terminated by the
// mandatory ";" the caller expects next.
func (p *Parser) parseForClauseStatement() (Stmt, error) {
	if p.match(VAR) || p.match(CONST) || p.match(LET) {
		start := p.peek()
		form := bindingFormOf(start.Type)
		p.advance()
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		decl := &VarDecl{Form: form, Name: name.Lexeme, StartPos: start.Offset}
		if p.match(ASSIGN) {
			p.advance()
			init, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return decl, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ExprStmt{E: expr, StartPos: expr.Pos()}, nil
}

func (p *Parser) parseSwitch() (Stmt, error) {
	start := p.advance() // switch
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	sw := &Switch{Target: target, StartPos: start.Offset}

	for !p.match(RBRACE) {
		if p.match(EOF) {
			p.errors.Error(p.peek().Offset, "unexpected end of input inside switch, expected }")
			p.fatal("unexpected end of input inside switch")
		}

		switch p.peek().Type {
		case CASE:
			caseTok := p.advance()
			test, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			clause := &SwitchCase{Test: test, StartPos: caseTok.Offset}
			for !p.match(CASE) && !p.match(DEFAULT) && !p.match(RBRACE) && !p.match(EOF) {
				stmt, err := p.parseStatement()
				if err != nil {
					p.synchronize()
					continue
				}
				if stmt != nil {
					clause.Body = append(clause.Body, stmt)
				}
			}
			sw.Cases = append(sw.Cases, clause)

		case DEFAULT:
			defTok := p.advance()
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			clause := &SwitchCase{Test: nil, StartPos: defTok.Offset}
			for !p.match(CASE) && !p.match(DEFAULT) && !p.match(RBRACE) && !p.match(EOF) {
				stmt, err := p.parseStatement()
				if err != nil {
					p.synchronize()
					continue
				}
				if stmt != nil {
					clause.Body = append(clause.Body, stmt)
				}
			}
			sw.Cases = append(sw.Cases, clause)

		default:
			tok := p.peek()
			p.errors.Error(tok.Offset, "expected case or default inside switch, got %s", tok.Type)
			return nil, fmt.Errorf("expected case or default")
		}
	}

	p.advance() // }
	return sw, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	start := p.advance() // return
	node := &Return{StartPos: start.Offset}
	if !p.match(SEMICOLON) && !p.match(RBRACE) && !p.match(EOF) {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Value = val
	}
	p.consumeOptionalSemicolon()
	return node, nil
}

// Expressions.

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

var assignOps = map[TokenType]AssignOp{
	ASSIGN:         AssignSet,
	PLUS_ASSIGN:    AssignAdd,
	MINUS_ASSIGN:   AssignSub,
	STAR_ASSIGN:    AssignMul,
	SLASH_ASSIGN:   AssignDiv,
	PERCENT_ASSIGN: AssignMod,
}

func (p *Parser) parseAssignment() (Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if op, ok := assignOps[p.peek().Type]; ok {
		start := p.peek().Offset
		p.advance()
		right, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		return &Assign{Target: left, Op: op, Value: right, StartPos: start}, nil
	}

	return left, nil
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR_LOGICAL) {
		op := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(AND_LOGICAL) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.match(EQUALS) || p.match(NOT_EQ) {
		op := p.advance()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseCompare() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.match(LESS) || p.match(LESS_EQ) || p.match(GREATER) || p.match(GREATER_EQ) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS) || p.match(MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(STAR) || p.match(SLASH) || p.match(PERCENT) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, StartPos: left.Pos()}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.match(PLUS) || p.match(MINUS) || p.match(NOT) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op.Type, Right: right, StartPos: op.Offset}, nil
	}
	return p.parseCallOrMember()
}

func (p *Parser) parseCallOrMember() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(LPAREN):
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &Call{Callee: expr, Args: args, StartPos: expr.Pos()}

		case p.match(DOT):
			p.advance()
			name, err := p.expectName()
			if err != nil {
				return nil, err
			}
			expr = &Member{
				Object:   expr,
				Property: &Identifier{Name: name.Lexeme, StartPos: name.Offset},
				StartPos: expr.Pos(),
			}

		case p.match(LBRACKET):
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			expr = &Member{Object: expr, Property: idx, Computed: true, StartPos: expr.Pos()}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]Expr, error) {
	var args []Expr
	if !p.match(RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case THIS:
		p.advance()
		return &ThisRef{StartPos: tok.Offset}, nil

	case VEC2:
		return p.parseVec2()

	case VEC3:
		return p.parseVec3()

	case NUMBER:
		p.advance()
		return &Literal{Kind: LitNumber, Raw: tok.Lexeme, StartPos: tok.Offset}, nil

	case STRING:
		p.advance()
		return &Literal{Kind: LitString, Raw: unquote(tok.Lexeme), StartPos: tok.Offset}, nil

	case TRUE:
		p.advance()
		return &Literal{Kind: LitBool, Bool: true, Raw: "true", StartPos: tok.Offset}, nil

	case FALSE:
		p.advance()
		return &Literal{Kind: LitBool, Bool: false, Raw: "false", StartPos: tok.Offset}, nil

	case NULL:
		p.advance()
		return &Literal{Kind: LitNull, Raw: "null", StartPos: tok.Offset}, nil

	case UNDEFINED:
		p.advance()
		return &Literal{Kind: LitNull, Raw: "undefined", StartPos: tok.Offset}, nil

	case IDENTIFIER, YIELD, SIGNAL, STATE, CREATE, STEP, DRAW, ON_COLLISION:
		// Domain keywords other than vec2/vec3 have no dedicated AST form
		// and parse as plain identifiers in expression position (§9).
		p.advance()
		return &Identifier{Name: tok.Lexeme, IsIntrinsic: isIntrinsicName(tok.Lexeme), StartPos: tok.Offset}, nil

	case LBRACE:
		return p.parseObjectLit()

	case LBRACKET:
		return p.parseArrayLit()

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		p.errors.Error(tok.Offset, "expected expression, got %s %q", tok.Type, tok.Lexeme)
		return nil, fmt.Errorf("expected expression, got %s", tok.Type)
	}
}

func (p *Parser) parseVec2() (Expr, error) {
	start := p.advance() // vec2
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, err
	}
	y, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return &Vec2Lit{X: x, Y: y, StartPos: start.Offset}, nil
}

func (p *Parser) parseVec3() (Expr, error) {
	start := p.advance() // vec3
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, err
	}
	y, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, err
	}
	z, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return &Vec3Lit{X: x, Y: y, Z: z, StartPos: start.Offset}, nil
}

// parseObjectLit parses { Properties }: string/identifier/computed keys,
// shorthand {x} normalised to {x: x}, a trailing comma, and a warning
// (never an error) on a missing comma between properties (§4.3).
func (p *Parser) parseObjectLit() (Expr, error) {
	start := p.advance() // {
	lit := &ObjectLit{StartPos: start.Offset}

	for !p.match(RBRACE) {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		lit.Properties = append(lit.Properties, prop)

		if p.match(RBRACE) {
			break
		}
		if p.match(COMMA) {
			p.advance()
			continue
		}
		p.errors.Warn(p.peek().Offset, "missing comma between object literal properties")
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseProperty() (Property, error) {
	tok := p.peek()

	// Computed key: [expr]: value
	if tok.Type == LBRACKET {
		p.advance()
		key, err := p.parseExpression()
		if err != nil {
			return Property{}, err
		}
		if _, err := p.expect(RBRACKET); err != nil {
			return Property{}, err
		}
		if _, err := p.expect(COLON); err != nil {
			return Property{}, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return Property{}, err
		}
		return Property{Key: key, Value: val, Computed: true}, nil
	}

	// String key: "key": value
	if tok.Type == STRING {
		p.advance()
		key := &Literal{Kind: LitString, Raw: unquote(tok.Lexeme), StartPos: tok.Offset}
		if _, err := p.expect(COLON); err != nil {
			return Property{}, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return Property{}, err
		}
		return Property{Key: key, Value: val}, nil
	}

	// Identifier key: ident: value, or shorthand { ident } => { ident: ident }
	if tok.Type == IDENTIFIER {
		p.advance()
		key := &Identifier{Name: tok.Lexeme, IsIntrinsic: isIntrinsicName(tok.Lexeme), StartPos: tok.Offset}
		if p.match(COLON) {
			p.advance()
			val, err := p.parseExpression()
			if err != nil {
				return Property{}, err
			}
			return Property{Key: key, Value: val}, nil
		}
		// Shorthand: value is a reference to the same name.
		val := &Identifier{Name: tok.Lexeme, IsIntrinsic: isIntrinsicName(tok.Lexeme), StartPos: tok.Offset}
		return Property{Key: key, Value: val}, nil
	}

	p.errors.Error(tok.Offset, "expected property key, got %s %q", tok.Type, tok.Lexeme)
	return Property{}, fmt.Errorf("expected property key, got %s", tok.Type)
}

// parseArrayLit parses [ Elements ]. A hole — consecutive commas — is
// represented by a nil element (§3, §4.3).
func (p *Parser) parseArrayLit() (Expr, error) {
	start := p.advance() // [
	lit := &ArrayLit{StartPos: start.Offset}

	for !p.match(RBRACKET) {
		if p.match(COMMA) {
			lit.Elements = append(lit.Elements, nil) // hole
			p.advance()
			continue
		}

		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, elem)

		if p.match(COMMA) {
			p.advance()
		} else {
			break
		}
	}

	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return lit, nil
}

// unquote strips the surrounding quote characters the lexer preserved and
// resolves backslash escapes, for use in the AST's semantic string value.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	inner := lexeme[1 : len(lexeme)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte(inner[i])
			}
			continue
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}

// parseNumberLiteralValue is exposed for the emitter and analyser, which
// need a canonical decimal rendering rather than the raw source lexeme
// (e.g. leading zeros, trailing dots).
func parseNumberLiteralValue(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
