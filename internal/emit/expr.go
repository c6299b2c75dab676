package emit

import (
	"fmt"
	"strings"

	"lilt/internal/ast"
	"lilt/internal/token"
)

var opSpelling = map[token.Kind]string{
	token.Plus:       "+",
	token.Minus:      "-",
	token.Star:       "*",
	token.StarStar:   "**",
	token.Slash:      "/",
	token.SlashSlash: "//",
	token.Percent:    "%",
	token.At:         "@",
	token.Amp:        "&",
	token.Pipe:       "|",
	token.Caret:      "^",
	token.Shl:        "<<",
	token.Shr:        ">>",
	token.Lt:         "<",
	token.LtEq:       "<=",
	token.Gt:         ">",
	token.GtEq:       ">=",
	token.EqEq:       "==",
	token.BangEq:     "!=",
	token.KwOr:       "or",
	token.KwAnd:      "and",
	token.KwNot:      "not",
}

func (e *Emitter) expr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Name:
		return x.Text
	case *ast.IntLit:
		return x.Text
	case *ast.FloatLit:
		return x.Text
	case *ast.StringLit:
		return x.Text
	case *ast.FString:
		return x.Raw
	case *ast.BoolLit:
		if x.Value {
			return "True"
		}
		return "False"
	case *ast.NoneLit:
		return "None"
	case *ast.ListExpr:
		return "[" + e.exprList(x.Elems) + "]"
	case *ast.TupleExpr:
		if len(x.Elems) == 1 {
			return "(" + e.expr(x.Elems[0]) + ",)"
		}
		return "(" + e.exprList(x.Elems) + ")"
	case *ast.DictExpr:
		var parts []string
		for i := range x.Keys {
			parts = append(parts, e.expr(x.Keys[i])+": "+e.expr(x.Values[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.Unary:
		op := opSpelling[x.Op]
		if x.Op == token.KwNot {
			return "not " + e.operand(x.X)
		}
		return op + e.operand(x.X)
	case *ast.Binary:
		return e.operand(x.X) + " " + opSpelling[x.Op] + " " + e.operand(x.Y)
	case *ast.Compare:
		out := e.operand(x.X)
		for _, op := range x.Ops {
			out += " " + op.Op + " " + e.operand(op.Y)
		}
		return out
	case *ast.Ternary:
		return e.operand(x.Then) + " if " + e.operand(x.Cond) + " else " + e.operand(x.Else)
	case *ast.Lambda:
		return "(lambda " + e.params(x.Params) + ": " + e.expr(x.Body) + ")"
	case *ast.Pipe:
		return e.pipe(x)
	case *ast.Walrus:
		return "(" + x.Name + " := " + e.expr(x.Value) + ")"
	case *ast.Call:
		return e.call(x)
	case *ast.Attr:
		return e.operand(x.X) + "." + x.Name
	case *ast.Index:
		return e.operand(x.X) + "[" + e.expr(x.Idx) + "]"
	case *ast.Section:
		return e.section(x)
	case *ast.InfixCall:
		return x.Fn + "(" + e.expr(x.X) + ", " + e.expr(x.Y) + ")"
	case *ast.MatchExpr:
		return e.match(x)
	default:
		panic(fmt.Sprintf("emit: unhandled expression %T", x))
	}
}

// operand renders a subexpression, parenthesizing compound forms so the
// output never relies on the precedence of the source grammar.
func (e *Emitter) operand(x ast.Expr) string {
	switch x.(type) {
	case *ast.Binary, *ast.Compare, *ast.Ternary, *ast.Unary:
		return "(" + e.expr(x) + ")"
	default:
		return e.expr(x)
	}
}

func (e *Emitter) exprList(elems []ast.Expr) string {
	var parts []string
	for _, el := range elems {
		parts = append(parts, e.expr(el))
	}
	return strings.Join(parts, ", ")
}

// call renders a function call. Placeholder arguments turn the call
// into a lambda over the missing positions.
func (e *Emitter) call(c *ast.Call) string {
	if !c.HasPlaceholder() {
		return e.operand(c.Fn) + "(" + e.args(c.Args, nil) + ")"
	}
	var holes []string
	for _, a := range c.Args {
		if a.Placeholder {
			holes = append(holes, e.fresh())
		}
	}
	return "(lambda " + strings.Join(holes, ", ") + ": " +
		e.operand(c.Fn) + "(" + e.args(c.Args, holes) + "))"
}

// args renders an argument list; holes supplies the names substituted
// for placeholder slots, in order.
func (e *Emitter) args(list []ast.Arg, holes []string) string {
	var parts []string
	hole := 0
	for _, a := range list {
		switch {
		case a.Placeholder:
			parts = append(parts, holes[hole])
			hole++
		case a.Name != "":
			parts = append(parts, a.Name+"="+e.expr(a.Value))
		default:
			parts = append(parts, e.expr(a.Value))
		}
	}
	return strings.Join(parts, ", ")
}

// pipe lowers `a |> f |> g` to `g(f(a))`. A stage that is a placeholder
// call receives the piped value in its placeholder slot instead of
// being wrapped in another lambda. A stage with several placeholders
// binds the value once so it is evaluated once.
func (e *Emitter) pipe(p *ast.Pipe) string {
	out := e.expr(p.Stages[0])
	for _, stage := range p.Stages[1:] {
		if c, isCall := stage.(*ast.Call); isCall && c.HasPlaceholder() {
			count := 0
			for _, a := range c.Args {
				if a.Placeholder {
					count++
				}
			}
			if count == 1 {
				out = e.operand(c.Fn) + "(" + e.args(c.Args, []string{out}) + ")"
				continue
			}
			bound := e.fresh()
			holes := make([]string, count)
			for i := range holes {
				holes[i] = bound
			}
			out = "(lambda " + bound + ": " + e.operand(c.Fn) + "(" + e.args(c.Args, holes) + "))(" + out + ")"
			continue
		}
		out = e.operand(stage) + "(" + out + ")"
	}
	return out
}

// section lowers operator sections to lambdas: `(+)` takes both
// operands, `(1 +)` and `(< 2)` take the missing one.
func (e *Emitter) section(s *ast.Section) string {
	op := opSpelling[s.Op]
	switch {
	case s.Left == nil && s.Right == nil:
		a, b := e.fresh(), e.fresh()
		return "(lambda " + a + ", " + b + ": " + a + " " + op + " " + b + ")"
	case s.Left != nil:
		b := e.fresh()
		return "(lambda " + b + ": " + e.operand(s.Left) + " " + op + " " + b + ")"
	default:
		a := e.fresh()
		return "(lambda " + a + ": " + a + " " + op + " " + e.operand(s.Right) + ")"
	}
}

// match lowers a match expression to a conditional chain over a bound
// subject. Arms are tested in source order; a fall-through yields None.
func (e *Emitter) match(m *ast.MatchExpr) string {
	subj := e.fresh()
	out := "None"
	for i := len(m.Arms) - 1; i >= 0; i-- {
		arm := m.Arms[i]
		cond, body := e.matchArm(arm, subj)
		if cond == "" {
			out = body
			continue
		}
		out = body + " if " + cond + " else " + out
	}
	return "(lambda " + subj + ": " + out + ")(" + e.expr(m.Subject) + ")"
}

// matchArm renders one arm's condition and body against the bound
// subject name. An empty condition means the arm always matches.
func (e *Emitter) matchArm(arm ast.MatchArm, subj string) (cond, body string) {
	switch pat := arm.Pat.(type) {
	case *ast.PatWildcard:
		return "", e.operand(arm.Body)
	case *ast.PatCapture:
		// The capture binds the subject under the arm's own name.
		return "", "(lambda " + pat.Name + ": " + e.expr(arm.Body) + ")(" + subj + ")"
	case *ast.PatLiteral:
		return subj + " == " + e.operand(pat.E), e.operand(arm.Body)
	case *ast.PatIn:
		op := " in ("
		if pat.Negated {
			op = " not in ("
		}
		return subj + op + e.exprList(pat.Elems) + ",)", e.operand(arm.Body)
	default:
		panic(fmt.Sprintf("emit: unhandled pattern %T", arm.Pat))
	}
}
