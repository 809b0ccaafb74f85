package sqltree

import "fmt"

// === Generic Traversal ===

// Inspect walks the tree rooted at n in pre-order using only Children. If fn
// returns false, the children of that node are skipped. Nil children are not
// visited.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		if c == nil {
			continue
		}
		Inspect(c, fn)
	}
}

// CollectTemporalClauses returns every TimeTravelExpr and TableVersionExpr in
// the tree, in pre-order.
func CollectTemporalClauses(n Node) []Expr {
	var out []Expr
	Inspect(n, func(n Node) bool {
		switch c := n.(type) {
		case *TimeTravelExpr:
			out = append(out, c)
		case *TableVersionExpr:
			out = append(out, c)
		}
		return true
	})
	return out
}

// CountNodes returns the number of nodes in the tree rooted at n.
func CountNodes(n Node) int {
	count := 0
	Inspect(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// === Rewriting ===

// RewriteFunc is applied to every node after its children have been rewritten.
// Returning the node unchanged keeps it; returning another node replaces it.
type RewriteFunc func(n Node) (Node, error)

// Rewrite rebuilds the tree rooted at n bottom-up. Nodes are never modified in
// place: a parent whose children changed is copied, and temporal clauses are
// rebuilt through their constructors, keeping type, mode and location.
// Subtrees in which nothing changed are returned as the same pointers.
func Rewrite(n Node, fn RewriteFunc) (Node, error) {
	if n == nil {
		return nil, nil
	}

	switch x := n.(type) {
	case *Literal, *ColumnRef:
		// leaves
	case *FuncCall:
		var args []Expr
		for i, a := range x.Args {
			na, err := rewriteExpr(a, fn)
			if err != nil {
				return nil, fmt.Errorf("rewrite %s arg %d: %w", x.Name, i, err)
			}
			if na != a && args == nil {
				args = make([]Expr, len(x.Args))
				copy(args, x.Args)
			}
			if args != nil {
				args[i] = na
			}
		}
		if args != nil {
			c := *x
			c.Args = args
			n = &c
		}
	case *BinaryExpr:
		l, err := rewriteExpr(x.Left, fn)
		if err != nil {
			return nil, err
		}
		r, err := rewriteExpr(x.Right, fn)
		if err != nil {
			return nil, err
		}
		if l != x.Left || r != x.Right {
			c := *x
			c.Left, c.Right = l, r
			n = &c
		}
	case *UnaryExpr:
		e, err := rewriteExpr(x.Expr, fn)
		if err != nil {
			return nil, err
		}
		if e != x.Expr {
			c := *x
			c.Expr = e
			n = &c
		}
	case *ParenExpr:
		e, err := rewriteExpr(x.Expr, fn)
		if err != nil {
			return nil, err
		}
		if e != x.Expr {
			c := *x
			c.Expr = e
			n = &c
		}
	case *CastExpr:
		e, err := rewriteExpr(x.Expr, fn)
		if err != nil {
			return nil, err
		}
		if e != x.Expr {
			c := *x
			c.Expr = e
			n = &c
		}
	case *IntervalExpr:
		e, err := rewriteExpr(x.Value, fn)
		if err != nil {
			return nil, err
		}
		if e != x.Value {
			c := *x
			c.Value = e
			n = &c
		}
	case *TimeTravelExpr:
		e, err := rewriteExpr(x.asOf, fn)
		if err != nil {
			return nil, err
		}
		if e != x.asOf {
			rebuilt, err := x.WithValue(e)
			if err != nil {
				return nil, fmt.Errorf("rebuild time travel: %w", err)
			}
			n = rebuilt
		}
	case *TableVersionExpr:
		e, err := rewriteExpr(x.state, fn)
		if err != nil {
			return nil, err
		}
		if e != x.state {
			rebuilt, err := x.WithValue(e)
			if err != nil {
				return nil, fmt.Errorf("rebuild table version: %w", err)
			}
			n = rebuilt
		}
	case *TableName:
		v, err := rewriteExpr(x.Version, fn)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case nil, *TimeTravelExpr, *TableVersionExpr:
		default:
			return nil, fmt.Errorf("rewrite table %s: %s cannot be a temporal clause", x.Name, Kind(v))
		}
		if v != x.Version {
			c := *x
			c.Version = v
			n = &c
		}
	default:
		return nil, fmt.Errorf("rewrite: unexpected node %T", n)
	}

	return fn(n)
}

// rewriteExpr rewrites a child in expression position. The replacement must
// itself be an expression.
func rewriteExpr(e Expr, fn RewriteFunc) (Expr, error) {
	if e == nil {
		return nil, nil
	}
	r, err := Rewrite(e, fn)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	out, ok := r.(Expr)
	if !ok {
		return nil, fmt.Errorf("rewrite: %s cannot replace an expression", Kind(r))
	}
	return out, nil
}
