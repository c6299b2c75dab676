package ast

// Inspect traverses the tree in source order, calling f for every node.
// If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Module:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}

	case *TypeAliasStmt:
		Inspect(n.Value, f)
	case *DefStmt:
		for _, p := range n.Params {
			if p.Default != nil {
				Inspect(p.Default, f)
			}
		}
		if n.ExprBody != nil {
			Inspect(n.ExprBody, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *AssignStmt:
		Inspect(n.Value, f)
	case *ExprStmt:
		Inspect(n.E, f)
	case *ReturnStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *YieldStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}

	case *FString:
		for _, p := range n.Parts {
			if p.IsExpr {
				Inspect(p.Expr, f)
			}
		}
	case *ListExpr:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
	case *TupleExpr:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
	case *DictExpr:
		for i := range n.Keys {
			Inspect(n.Keys[i], f)
			Inspect(n.Values[i], f)
		}
	case *Unary:
		Inspect(n.X, f)
	case *Binary:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *Compare:
		Inspect(n.X, f)
		for _, op := range n.Ops {
			Inspect(op.Y, f)
		}
	case *Ternary:
		Inspect(n.Then, f)
		Inspect(n.Cond, f)
		Inspect(n.Else, f)
	case *Lambda:
		for _, p := range n.Params {
			if p.Default != nil {
				Inspect(p.Default, f)
			}
		}
		Inspect(n.Body, f)
	case *Pipe:
		for _, s := range n.Stages {
			Inspect(s, f)
		}
	case *Walrus:
		Inspect(n.Value, f)
	case *Call:
		Inspect(n.Fn, f)
		for _, a := range n.Args {
			if a.Value != nil {
				Inspect(a.Value, f)
			}
		}
	case *Attr:
		Inspect(n.X, f)
	case *Index:
		Inspect(n.X, f)
		Inspect(n.Idx, f)
	case *Section:
		if n.Left != nil {
			Inspect(n.Left, f)
		}
		if n.Right != nil {
			Inspect(n.Right, f)
		}
	case *InfixCall:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *MatchExpr:
		Inspect(n.Subject, f)
		for _, arm := range n.Arms {
			Inspect(arm.Pat, f)
			Inspect(arm.Body, f)
		}

	case *PatLiteral:
		Inspect(n.E, f)
	case *PatIn:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
	}
}
