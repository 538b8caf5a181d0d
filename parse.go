package expr

// list   = expr   {"," expr}
// expr   = term   {("+"|"-") term}
// term   = factor {("*"|"/"|"%") factor}
// factor = power  {"^" power}
// power  = {"+"|"-"} base
// base   = NUMBER
//        | VARIABLE
//        | FUNCTION0  [ "(" ")" ]
//        | FUNCTION1 power
//        | FUNCTION(a>=2) "(" expr ("," expr){a-1} ")"
//        | CLOSURE(a) (same shapes as FUNCTION(a))
//        | "(" list ")"

// options holds the compile-time choices exposed as CompileOptions.
type options struct {
	rightAssocPow bool
	naturalLog    bool
}

// CompileOption configures a single Compile call.
type CompileOption func(*options)

// RightAssociativePow makes "^" group right-to-left, so "a^b^c" parses as
// "a^(b^c)" instead of the default "(a^b)^c". It also pulls a leading unary
// minus outside the whole power chain, so "-a^b" parses as "-(a^b)".
func RightAssociativePow() CompileOption {
	return func(o *options) { o.rightAssocPow = true }
}

// NaturalLog makes the built-in "log" mean natural log instead of the
// default base-10 log.
func NaturalLog() CompileOption {
	return func(o *options) { o.naturalLog = true }
}

// parser holds the state needed to recursive-descend the grammar: the
// lexer, the one token of lookahead it has already produced, and the
// compile-time options. Unlike the C original, a syntax error is reported by
// returning it immediately rather than by setting a sticky error state and
// continuing to build a partial tree; both leave Compile with nothing but an
// offset once the error reaches the top.
type parser struct {
	lex  *lexer
	tok  token
	opts options
}

func newParser(src string, bindings []Binding, opts options) *parser {
	p := &parser{lex: newLexer(src, bindings, opts.naturalLog), opts: opts}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) errHere() error {
	return compileErrorAt(p.tok.pos)
}

func (p *parser) parseList() (*node, error) {
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokSep {
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n = callNode(opSeq, nil, n, rhs)
	}
	return n, nil
}

func (p *parser) parseExpr() (*node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokInfix && (p.tok.op == '+' || p.tok.op == '-') {
		op := p.tok.op
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		fn := opAdd
		if op == '-' {
			fn = opSub
		}
		n = callNode(fn, nil, n, rhs)
	}
	return n, nil
}

func (p *parser) parseTerm() (*node, error) {
	n, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokInfix && (p.tok.op == '*' || p.tok.op == '/' || p.tok.op == '%') {
		op := p.tok.op
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		fn := opMul
		switch op {
		case '/':
			fn = opDiv
		case '%':
			fn = opMod
		}
		n = callNode(fn, nil, n, rhs)
	}
	return n, nil
}

func (p *parser) parseFactor() (*node, error) {
	if p.opts.rightAssocPow {
		return p.parseFactorRight()
	}
	return p.parseFactorLeft()
}

func (p *parser) parseFactorLeft() (*node, error) {
	n, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokInfix && p.tok.op == '^' {
		p.advance()
		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		n = callNode(opPow, nil, n, rhs)
	}
	return n, nil
}

// parseFactorRight builds a^b^c as a^(b^c). It reads the leading signs of
// the left operand of the first "^" itself and applies their negation after
// the whole chain is built, so "-a^b" parses as "-(a^b)" while "(-a)^b" keeps
// its parenthesized negation inside the power.
func (p *parser) parseFactorRight() (*node, error) {
	negated := false
	for p.tok.kind == tokInfix && (p.tok.op == '+' || p.tok.op == '-') {
		if p.tok.op == '-' {
			negated = !negated
		}
		p.advance()
	}
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokInfix || p.tok.op != '^' {
		if negated {
			base = callNode(opNeg, nil, base)
		}
		return base, nil
	}
	p.advance()
	rhs, err := p.parseFactorRight()
	if err != nil {
		return nil, err
	}
	result := callNode(opPow, nil, base, rhs)
	if negated {
		result = callNode(opNeg, nil, result)
	}
	return result, nil
}

func (p *parser) parsePower() (*node, error) {
	neg := false
	for p.tok.kind == tokInfix && (p.tok.op == '+' || p.tok.op == '-') {
		if p.tok.op == '-' {
			neg = !neg
		}
		p.advance()
	}
	n, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if neg {
		n = callNode(opNeg, nil, n)
	}
	return n, nil
}

func (p *parser) parseBase() (*node, error) {
	switch p.tok.kind {
	case tokNumber:
		n := &node{kind: nodeConstant, value: p.tok.num}
		p.advance()
		return n, nil
	case tokVariable:
		n := &node{kind: nodeVariable, cell: p.tok.cell}
		p.advance()
		return n, nil
	case tokCall:
		return p.parseCall()
	case tokOpen:
		p.advance()
		n, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokClose {
			return nil, p.errHere()
		}
		p.advance()
		return n, nil
	default:
		return nil, p.errHere()
	}
}

// parseCall parses the arguments of the function or closure token currently
// held in p.tok, per the FUNCTION0/FUNCTION1/FUNCTION(a>=2) shapes of base.
func (p *parser) parseCall() (*node, error) {
	fn := p.tok.fn
	ctx := p.tok.ctx
	p.advance()
	switch fn.arity {
	case 0:
		if p.tok.kind == tokOpen {
			p.advance()
			if p.tok.kind != tokClose {
				return nil, p.errHere()
			}
			p.advance()
		}
		return callNode(fn, ctx), nil
	case 1:
		arg, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return callNode(fn, ctx, arg), nil
	default:
		if p.tok.kind != tokOpen {
			return nil, p.errHere()
		}
		p.advance()
		args := make([]*node, 0, fn.arity)
		for i := 0; i < int(fn.arity); i++ {
			if i > 0 {
				if p.tok.kind != tokSep {
					return nil, p.errHere()
				}
				p.advance()
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if p.tok.kind != tokClose {
			return nil, p.errHere()
		}
		p.advance()
		return callNode(fn, ctx, args...), nil
	}
}

func callNode(fn Callable, ctx any, children ...*node) *node {
	return &node{kind: nodeCall, fn: fn, ctx: ctx, children: children}
}
