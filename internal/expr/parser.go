package expr

import (
	"fmt"
	"strings"
)

// Expression is a parsed objective function of x. It is immutable and safe
// for concurrent use.
type Expression struct {
	src  string
	root Node
}

// Parse compiles src into an Expression.
func Parse(src string) (*Expression, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
	return &Expression{src: strings.TrimSpace(src), root: root}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level presets.
func MustParse(src string) *Expression {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval evaluates the expression at x.
func (e *Expression) Eval(x float64) (float64, error) { return e.root.Eval(x) }

// String returns the source text the expression was parsed from.
func (e *Expression) String() string { return e.src }

// Root returns the tree, mainly for inspection in tests and tooling.
func (e *Expression) Root() Node { return e.root }

// maxDepth bounds the nesting of the tree, and so the recursion of both the
// parser and Eval.
const maxDepth = 1000

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.tooDeep()
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) tooDeep() error {
	return &SyntaxError{Pos: p.peek().pos, Msg: "expression nested too deeply"}
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for n := 1; p.isOp("+", "-"); n++ {
		if p.depth+n > maxDepth {
			return nil, p.tooDeep()
		}
		op := OpAdd
		if p.next().text == "-" {
			op = OpSub
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for n := 1; p.isOp("*", "/"); n++ {
		if p.depth+n > maxDepth {
			return nil, p.tooDeep()
		}
		op := OpMul
		if p.next().text == "/" {
			op = OpDiv
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.isOp("+", "-") {
		neg := p.next().text == "-"
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if neg {
			return Binary{Op: OpSub, Left: Const{Value: 0}, Right: operand}, nil
		}
		return operand, nil
	}
	return p.parsePower()
}

// parsePower binds tighter than a leading sign and is right associative,
// so -x**2 is -(x**2) and 2**3**2 is 2**(3**2).
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.isOp("**", "^") {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: OpPow, Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Const{Value: t.num}, nil
	case tokLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, &SyntaxError{Pos: c.pos, Msg: fmt.Sprintf("expected \")\", got %s", c)}
		}
		return inner, nil
	case tokIdent:
		return p.parseName(t)
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
}

func (p *parser) parseName(t token) (Node, error) {
	name := strings.TrimPrefix(t.text, "np.")

	if p.peek().kind == tokLParen {
		fn, ok := Lookup(name)
		if !ok {
			return nil, &UnknownNameError{Name: t.text, Pos: t.pos}
		}
		p.next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
			return nil, &ArityError{Name: fn.Name, Got: len(args), Min: fn.MinArgs, Max: fn.MaxArgs}
		}
		return Call{Fn: fn, Args: args}, nil
	}

	if name == "x" && t.text == "x" {
		return Var{}, nil
	}
	if v, ok := constants[name]; ok {
		return Const{Value: v, Name: name}, nil
	}
	if _, ok := Lookup(name); ok {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("%s is a function and must be called", name)}
	}
	return nil, &UnknownNameError{Name: t.text, Pos: t.pos}
}

func (p *parser) parseArgs() ([]Node, error) {
	var args []Node
	if p.peek().kind == tokRParen {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch t := p.next(); t.kind {
		case tokComma:
			continue
		case tokRParen:
			return args, nil
		default:
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected \",\" or \")\", got %s", t)}
		}
	}
}
