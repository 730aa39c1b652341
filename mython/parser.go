package mython

import "fmt"

type parser struct {
	lex     *Lexer
	classes map[string]*Class
}

// Parse consumes the lexer and produces the executable program. The first
// grammar violation aborts parsing with a *ParseError.
func Parse(l *Lexer) (*Program, error) {
	return newParser(l, nil).parseProgram()
}

func newParser(l *Lexer, classes map[string]*Class) *parser {
	if classes == nil {
		classes = make(map[string]*Class)
	}
	return &parser{lex: l, classes: classes}
}

func (p *parser) parseProgram() (*Program, error) {
	program := &Program{}

	for p.cur().Type != tokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

// Statement = "class" ClassDef | "if" Condition | SimpleStatement NEWLINE
func (p *parser) parseStatement() (Statement, error) {
	switch p.cur().Type {
	case tokenClass:
		p.next()
		return p.parseClassDefinition()
	case tokenIf:
		return p.parseCondition()
	}

	stmt, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	p.next()
	return stmt, nil
}

// SimpleStatement = "return" Test | "print" [TestList] | AssignOrCall
func (p *parser) parseSimpleStatement() (Statement, error) {
	tok := p.cur()

	switch tok.Type {
	case tokenReturn:
		p.next()
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: value, position: tok.Pos}, nil

	case tokenPrint:
		p.next()
		var args []Expression
		if p.cur().Type != tokenNewline {
			var err error
			args, err = p.parseTestList()
			if err != nil {
				return nil, err
			}
		}
		return &PrintStmt{Args: args, position: tok.Pos}, nil
	}

	return p.parseAssignmentOrCall()
}

// AssignOrCall = DottedIds ( "=" Test | "(" [TestList] ")" )
func (p *parser) parseAssignmentOrCall() (Statement, error) {
	pos := p.cur().Pos
	names, err := p.parseDottedIds()
	if err != nil {
		return nil, err
	}
	last := names[len(names)-1]
	prefix := names[:len(names)-1]

	if p.cur().isChar('=') {
		p.next()
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if len(prefix) == 0 {
			return &AssignStmt{Name: last, Value: value, position: pos}, nil
		}
		return &FieldAssignStmt{
			Object:   &VariableExpr{Names: prefix, position: pos},
			Field:    last,
			Value:    value,
			position: pos,
		}, nil
	}

	if _, err := p.expectChar('('); err != nil {
		return nil, err
	}
	p.next()

	if len(prefix) == 0 {
		return nil, p.errorAt(pos, "mython doesn't support functions, only methods: %s", last)
	}

	var args []Expression
	if !p.cur().isChar(')') {
		args, err = p.parseTestList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectChar(')'); err != nil {
		return nil, err
	}
	p.next()

	call := &MethodCallExpr{
		Receiver: &VariableExpr{Names: prefix, position: pos},
		Method:   last,
		Args:     args,
		position: pos,
	}
	return &ExprStmt{Expr: call, position: pos}, nil
}

// ClassDef = Id ["(" Id ")"] ":" NEWLINE INDENT "def" MethodList DEDENT
func (p *parser) parseClassDefinition() (Statement, error) {
	nameTok, err := p.expectType(tokenID)
	if err != nil {
		return nil, err
	}
	className := nameTok.Literal
	p.next()

	var parent *Class
	if p.cur().isChar('(') {
		baseTok, err := p.expectNextType(tokenID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectNextChar(')'); err != nil {
			return nil, err
		}
		p.next()

		base, ok := p.classes[baseTok.Literal]
		if !ok {
			return nil, p.errorAt(baseTok.Pos, "base class %s not found for class %s", baseTok.Literal, className)
		}
		parent = base
	}

	if _, err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectNextType(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectNextType(tokenIndent); err != nil {
		return nil, err
	}
	if _, err := p.expectNextType(tokenDef); err != nil {
		return nil, err
	}

	methods, err := p.parseMethods()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectType(tokenDedent); err != nil {
		return nil, err
	}
	p.next()

	if _, exists := p.classes[className]; exists {
		return nil, p.errorAt(nameTok.Pos, "class %s already exists", className)
	}
	cls := newClass(className, methods, parent)
	p.classes[className] = cls

	return &ClassStmt{Class: cls, position: nameTok.Pos}, nil
}

// MethodList = { "def" Id "(" [Id {"," Id}] ")" ":" Suite }
func (p *parser) parseMethods() ([]Method, error) {
	var methods []Method

	for p.cur().Type == tokenDef {
		nameTok, err := p.expectNextType(tokenID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectNextChar('('); err != nil {
			return nil, err
		}

		var params []string
		if p.next().Type == tokenID {
			params = append(params, p.cur().Literal)
			for p.next().isChar(',') {
				id, err := p.expectNextType(tokenID)
				if err != nil {
					return nil, err
				}
				params = append(params, id.Literal)
			}
		}

		if _, err := p.expectChar(')'); err != nil {
			return nil, err
		}
		if _, err := p.expectNextChar(':'); err != nil {
			return nil, err
		}
		p.next()

		body, err := p.parseSuite()
		if err != nil {
			return nil, err
		}

		methods = append(methods, Method{
			Name:         nameTok.Literal,
			FormalParams: params,
			Body:         body,
		})
	}

	return methods, nil
}

// Suite = NEWLINE INDENT {Statement} DEDENT
func (p *parser) parseSuite() ([]Statement, error) {
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectNextType(tokenIndent); err != nil {
		return nil, err
	}
	p.next()

	var stmts []Statement
	for p.cur().Type != tokenDedent {
		if p.cur().Type == tokenEOF {
			return nil, p.errorAt(p.cur().Pos, "expected %s, got %s", tokenDedent, p.cur())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.next()

	return stmts, nil
}

// Condition = "if" Test ":" Suite ["else" ":" Suite]
func (p *parser) parseCondition() (Statement, error) {
	ifTok, err := p.expectType(tokenIf)
	if err != nil {
		return nil, err
	}
	p.next()

	condition, err := p.parseTest()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectChar(':'); err != nil {
		return nil, err
	}
	p.next()

	consequent, err := p.parseSuite()
	if err != nil {
		return nil, err
	}

	var alternate []Statement
	if p.cur().Type == tokenElse {
		if _, err := p.expectNextChar(':'); err != nil {
			return nil, err
		}
		p.next()
		alternate, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{
		Condition:  condition,
		Consequent: consequent,
		Alternate:  alternate,
		position:   ifTok.Pos,
	}, nil
}

// Test = AndTest { "or" AndTest }
func (p *parser) parseTest() (Expression, error) {
	result, err := p.parseAndTest()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == tokenOr {
		pos := p.cur().Pos
		p.next()
		right, err := p.parseAndTest()
		if err != nil {
			return nil, err
		}
		result = &OrExpr{Left: result, Right: right, position: pos}
	}

	return result, nil
}

// AndTest = NotTest { "and" NotTest }
func (p *parser) parseAndTest() (Expression, error) {
	result, err := p.parseNotTest()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == tokenAnd {
		pos := p.cur().Pos
		p.next()
		right, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		result = &AndExpr{Left: result, Right: right, position: pos}
	}

	return result, nil
}

// NotTest = "not" NotTest | Comparison
func (p *parser) parseNotTest() (Expression, error) {
	if p.cur().Type == tokenNot {
		pos := p.cur().Pos
		p.next()
		operand, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Operand: operand, position: pos}, nil
	}
	return p.parseComparison()
}

// Comparison = Expr [("<" | ">" | "==" | "!=" | "<=" | ">=") Expr]
func (p *parser) parseComparison() (Expression, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var op CompareOp
	tok := p.cur()
	switch {
	case tok.isChar('<'):
		op = CmpLess
	case tok.isChar('>'):
		op = CmpGreater
	case tok.Type == tokenEQ:
		op = CmpEq
	case tok.Type == tokenNotEQ:
		op = CmpNotEq
	case tok.Type == tokenLTE:
		op = CmpLessEq
	case tok.Type == tokenGTE:
		op = CmpGreaterEq
	default:
		return left, nil
	}
	p.next()

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &CompareExpr{Op: op, Left: left, Right: right, position: tok.Pos}, nil
}

// Expr = Term { ("+" | "-") Term }
func (p *parser) parseExpr() (Expression, error) {
	result, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.cur().isChar('+') || p.cur().isChar('-') {
		tok := p.cur()
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if tok.Char == '-' {
			op = OpSub
		}
		result = &BinaryExpr{Op: op, Left: result, Right: right, position: tok.Pos}
	}

	return result, nil
}

// Term = Primary { ("*" | "/") Primary }
func (p *parser) parseTerm() (Expression, error) {
	result, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.cur().isChar('*') || p.cur().isChar('/') {
		tok := p.cur()
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		op := OpMul
		if tok.Char == '/' {
			op = OpDiv
		}
		result = &BinaryExpr{Op: op, Left: result, Right: right, position: tok.Pos}
	}

	return result, nil
}

// Primary = "(" Test ")" | "-" Primary | NUMBER | STRING | True | False
//         | None | DottedIds ["(" [TestList] ")"]
func (p *parser) parsePrimary() (Expression, error) {
	tok := p.cur()

	switch {
	case tok.isChar('('):
		p.next()
		result, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectChar(')'); err != nil {
			return nil, err
		}
		p.next()
		return result, nil

	case tok.isChar('-'):
		// Unary minus is multiplication by -1.
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{
			Op:       OpMul,
			Left:     operand,
			Right:    &NumberLiteral{Value: -1, position: tok.Pos},
			position: tok.Pos,
		}, nil

	case tok.Type == tokenNumber:
		p.next()
		return &NumberLiteral{Value: tok.Number, position: tok.Pos}, nil

	case tok.Type == tokenString:
		p.next()
		return &StringLiteral{Value: tok.Literal, position: tok.Pos}, nil

	case tok.Type == tokenTrue:
		p.next()
		return &BoolLiteral{Value: true, position: tok.Pos}, nil

	case tok.Type == tokenFalse:
		p.next()
		return &BoolLiteral{Value: false, position: tok.Pos}, nil

	case tok.Type == tokenNone:
		p.next()
		return &NoneLiteral{position: tok.Pos}, nil
	}

	return p.parseDottedPrimary()
}

// parseDottedPrimary handles a dotted path and, when followed by an
// argument list, disambiguates method call vs construction vs str().
func (p *parser) parseDottedPrimary() (Expression, error) {
	pos := p.cur().Pos
	names, err := p.parseDottedIds()
	if err != nil {
		return nil, err
	}

	if !p.cur().isChar('(') {
		return &VariableExpr{Names: names, position: pos}, nil
	}
	p.next()

	var args []Expression
	if !p.cur().isChar(')') {
		args, err = p.parseTestList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectChar(')'); err != nil {
		return nil, err
	}
	p.next()

	called := names[len(names)-1]
	prefix := names[:len(names)-1]

	if len(prefix) > 0 {
		return &MethodCallExpr{
			Receiver: &VariableExpr{Names: prefix, position: pos},
			Method:   called,
			Args:     args,
			position: pos,
		}, nil
	}

	if cls, ok := p.classes[called]; ok {
		return &NewInstanceExpr{Class: cls, Args: args, position: pos}, nil
	}

	if called == "str" {
		if len(args) != 1 {
			return nil, p.errorAt(pos, "function str takes exactly one argument")
		}
		return &StringifyExpr{Operand: args[0], position: pos}, nil
	}

	return nil, p.errorAt(pos, "unknown call to %s()", called)
}

// DottedIds = Id { "." Id }
func (p *parser) parseDottedIds() ([]string, error) {
	tok, err := p.expectType(tokenID)
	if err != nil {
		return nil, err
	}
	names := []string{tok.Literal}

	for p.next().isChar('.') {
		id, err := p.expectNextType(tokenID)
		if err != nil {
			return nil, err
		}
		names = append(names, id.Literal)
	}

	return names, nil
}

// TestList = Test { "," Test }
func (p *parser) parseTestList() ([]Expression, error) {
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	result := []Expression{first}

	for p.cur().isChar(',') {
		p.next()
		next, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		result = append(result, next)
	}

	return result, nil
}

func (p *parser) cur() Token {
	return p.lex.CurrentToken()
}

func (p *parser) next() Token {
	return p.lex.NextToken()
}

func (p *parser) expectType(tt TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return Token{}, p.errorAt(tok.Pos, "expected %s, got %s", tt, tok)
	}
	return tok, nil
}

func (p *parser) expectNextType(tt TokenType) (Token, error) {
	p.next()
	return p.expectType(tt)
}

func (p *parser) expectChar(c byte) (Token, error) {
	tok := p.cur()
	if !tok.isChar(c) {
		return Token{}, p.errorAt(tok.Pos, "expected %q, got %s", string(c), tok)
	}
	return tok, nil
}

func (p *parser) expectNextChar(c byte) (Token, error) {
	p.next()
	return p.expectChar(c)
}

func (p *parser) errorAt(pos Position, format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
