/*
File   : ctree/ast/parser.go
Package: ast
*/
package ast

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deglang/ctree/lexer"
	"github.com/deglang/ctree/value"
)

// ParseError is a single parser diagnostic, positioned at the offending
// token (or EOF).
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf(" at '%s'", e.Token.Lexeme)
	if e.Token.Type == lexer.EOF {
		loc = " at end"
	}
	return lexer.FormatError(e.Token.Position, loc, e.Message)
}

// maxArgs is the parser-enforced cap on call-argument and parameter-list
// length (spec.md §4.2).
const maxArgs = 255

// Parser is a recursive-descent parser over a fully scanned token stream.
// It never panics on malformed input: Parse collects every ParseError it
// encounters via panic-mode synchronization (spec.md §4.2, §7) instead of
// aborting on the first one.
type Parser struct {
	tokens  []lexer.Token
	current int
	errs    *multierror.Error
}

// NewParser wraps a token stream (as produced by lexer.Lexer.Tokenize) for
// parsing.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream into a statement list. The returned
// bool is true if any ParseError was collected, in which case the caller
// must skip evaluation (spec.md §4.2, §7).
func (p *Parser) Parse() ([]Stmt, bool) {
	var statements []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errs != nil
}

// Errors returns every collected ParseError, in encounter order.
func (p *Parser) Errors() []error {
	if p.errs == nil {
		return nil
	}
	return p.errs.Errors
}

// --- statements ---

func (p *Parser) declaration() Stmt {
	stmt, err := p.statement()
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(lexer.Semicolon):
		return &BlankStmt{}, nil
	case p.match(lexer.LBrace):
		return p.block()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.Fun):
		return p.functionStatement()
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.Do):
		return p.doWhileStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.Var):
		return p.varStatement()
	case p.match(lexer.Print):
		return p.printStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() (Stmt, error) {
	var statements []Stmt
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(lexer.RBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return &Block{Statements: statements}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var val Expr
	if !p.check(lexer.Semicolon) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: val}, nil
}

func (p *Parser) functionStatement() (Stmt, error) {
	name, err := p.consume(lexer.Identifier, "Expected function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LParen, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	var params []lexer.Token
	if !p.check(lexer.RParen) {
		for {
			if len(params) >= maxArgs {
				p.reportError(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			param, err := p.consume(lexer.Identifier, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, *param)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	bodyStmt, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: *name, Params: params, Body: bodyStmt.(*Block)}, nil
}

// forStatement desugars `for(init? ; cond? ; incr?) block` into
// `{ init; while(cond) { block; incr; } }` with default condition `true`,
// per spec.md §4.2. The increment runs in the loop body's own fresh scope
// each iteration (spec.md §D / original_source/src/interpreter.rs
// execute_block), which falls out naturally here since the desugared
// increment statement lives inside the same Block as the body.
func (p *Parser) forStatement() (Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.LParen, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.match(lexer.Var):
		init, err := p.varStatement()
		if err != nil {
			return nil, err
		}
		initializer = init
	default:
		init, err := p.expressionStatement()
		if err != nil {
			return nil, err
		}
		initializer = init
	}

	var condition Expr
	if !p.check(lexer.Semicolon) {
		c, err := p.expression()
		if err != nil {
			return nil, err
		}
		condition = c
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(lexer.RParen) {
		inc, err := p.expression()
		if err != nil {
			return nil, err
		}
		increment = inc
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LBrace, "Expected '{' to start for body."); err != nil {
		return nil, err
	}
	bodyStmt, err := p.block()
	if err != nil {
		return nil, err
	}
	body := bodyStmt.(*Block)

	if condition == nil {
		condition = &Literal{Value: value.Boolean(true)}
	}

	loopStatements := append([]Stmt{}, body.Statements...)
	if increment != nil {
		loopStatements = append(loopStatements, &ExpressionStmt{Expression: increment})
	}

	loop := &WhileStmt{
		Keyword:   keyword,
		Condition: condition,
		Body:      &Block{Statements: loopStatements},
	}

	if initializer == nil {
		return loop, nil
	}
	return &Block{Statements: []Stmt{initializer, loop}}, nil
}

// doWhileStatement desugars `do block while expr ;` into
// `{ block; while(expr) block; }` per spec.md §4.2.
func (p *Parser) doWhileStatement() (Stmt, error) {
	if _, err := p.consume(lexer.LBrace, "Expected '{' after 'do'."); err != nil {
		return nil, err
	}
	firstBody, err := p.block()
	if err != nil {
		return nil, err
	}
	whileKeyword, err := p.consume(lexer.While, "Expected 'while' after 'do' block.")
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after 'do'/'while' condition."); err != nil {
		return nil, err
	}
	return &Block{Statements: []Stmt{
		firstBody,
		&WhileStmt{Keyword: *whileKeyword, Condition: cond, Body: firstBody},
	}}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	keyword := p.previous()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' to start while body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Keyword: keyword, Condition: cond, Body: body}, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	keyword := p.previous()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' to start if body."); err != nil {
		return nil, err
	}
	thenBranch, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(lexer.Else) {
		if _, err := p.consume(lexer.LBrace, "Expected '{' to start else body."); err != nil {
			return nil, err
		}
		elseBranch, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Keyword: keyword, Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) varStatement() (Stmt, error) {
	name, err := p.consume(lexer.Identifier, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(lexer.Equals) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: *name, Init: init}, nil
}

func (p *Parser) printStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: expr}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

// --- expressions: the precedence ladder of spec.md §4.2, lowest to
// highest, each level a plain recursive-descent method calling the next. ---

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.Equals) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(*Variable); ok {
			return &Assign{Name: variable.Name, Value: value}, nil
		}
		return nil, p.reportError(equals, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser) logicOr() (Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Or) {
		operator := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Operator: operator, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Operator: operator, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.leftAssocBinary(p.relational, lexer.Equals2, lexer.BangEquals, lexer.Equals3)
}

func (p *Parser) relational() (Expr, error) {
	return p.leftAssocBinary(p.bitOr, lexer.LAngle, lexer.LAngleEquals, lexer.RAngle, lexer.RAngleEquals)
}

func (p *Parser) bitOr() (Expr, error) {
	return p.leftAssocBinary(p.bitXor, lexer.Bar)
}

func (p *Parser) bitXor() (Expr, error) {
	return p.leftAssocBinary(p.bitAnd, lexer.Hat)
}

func (p *Parser) bitAnd() (Expr, error) {
	return p.leftAssocBinary(p.bitShift, lexer.Amp)
}

func (p *Parser) bitShift() (Expr, error) {
	return p.leftAssocBinary(p.term, lexer.LAngle2, lexer.RAngle2)
}

func (p *Parser) term() (Expr, error) {
	return p.leftAssocBinary(p.factor, lexer.Plus, lexer.Minus)
}

func (p *Parser) factor() (Expr, error) {
	return p.leftAssocBinary(p.unary, lexer.Ast, lexer.Slash, lexer.Percent, lexer.Slash2)
}

// leftAssocBinary is the shared shape of every left-associative binary
// level: parse one operand at the next level, then fold in as many
// same-precedence operators as follow.
func (p *Parser) leftAssocBinary(next func() (Expr, error), types ...lexer.TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Operator: operator, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(lexer.Plus, lexer.Minus, lexer.Tilde, lexer.Not) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: operator, Right: right}, nil
	}
	return p.exponential()
}

// exponential implements right-associative `**`. After parsing the left
// operand (a call/primary), if `**` follows, it first attempts the
// right-associative recursive parse of another exponential; on failure it
// rewinds the cursor and falls back to a single unary, per spec.md §4.2 and
// §9 (grounded on original_source/src/parser.rs::exponential).
func (p *Parser) exponential() (Expr, error) {
	left, err := p.call()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.Ast2) {
		operator := p.previous()

		save := p.current
		savedErrs := 0
		if p.errs != nil {
			savedErrs = len(p.errs.Errors)
		}
		if right, err := p.exponential(); err == nil {
			return &Binary{Operator: operator, Left: left, Right: right}, nil
		}
		p.current = save
		// Discard the diagnostics of the abandoned attempt; the fallback
		// reports its own if it fails too.
		if savedErrs == 0 {
			p.errs = nil
		} else {
			p.errs.Errors = p.errs.Errors[:savedErrs]
		}

		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Binary{Operator: operator, Left: left, Right: right}, nil
	}

	return left, nil
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(lexer.RParen) {
		for {
			if len(args) >= maxArgs {
				p.reportError(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RParen, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Paren: *paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(lexer.False):
		return &Literal{Value: value.Boolean(false)}, nil
	case p.match(lexer.True):
		return &Literal{Value: value.Boolean(true)}, nil
	case p.match(lexer.Null):
		return &Literal{Value: value.Nil}, nil
	case p.match(lexer.Number):
		return &Literal{Value: value.Number(p.previous().Literal.(float32))}, nil
	case p.match(lexer.Degree):
		return &Literal{Value: value.Degree(p.previous().Literal.(float32))}, nil
	case p.match(lexer.String):
		return &Literal{Value: value.String(p.previous().Literal.(string))}, nil
	case p.match(lexer.Identifier, lexer.Num, lexer.Deg):
		return &Variable{Name: p.previous()}, nil
	case p.match(lexer.LParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RParen, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Inner: expr}, nil
	default:
		return nil, p.reportError(p.peek(), "Expected expression.")
	}
}

// --- token stream primitives ---

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t lexer.TokenType, message string) (*lexer.Token, error) {
	if p.check(t) {
		tok := p.advance()
		return &tok, nil
	}
	return nil, p.reportError(p.peek(), message)
}

func (p *Parser) reportError(tok lexer.Token, message string) error {
	err := &ParseError{Token: tok, Message: message}
	p.errs = multierror.Append(p.errs, err)
	return err
}

// synchronize discards tokens until a synchronization point — after a `;`
// or `}`, or at a statement-starting keyword — per spec.md §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.tokens[p.current-1].Type == lexer.Semicolon || p.tokens[p.current-1].Type == lexer.RBrace {
			return
		}
		switch p.peek().Type {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For, lexer.While, lexer.If, lexer.Return:
			return
		}
		p.advance()
	}
}
