package prompt

import (
	"reflect"
	"text/template/parse"
)

// extractVars returns the top-level field names referenced by a parsed
// template, in first-seen order. Used to decide which bound arguments the
// docstring consumed and which are leftover.
func extractVars(tree *parse.Tree) []string {
	if tree == nil || tree.Root == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	walkNodes(tree.Root, func(n parse.Node) {
		if fn, ok := n.(*parse.FieldNode); ok && len(fn.Ident) > 0 {
			name := fn.Ident[0]
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	})
	return out
}

func walkNodes(node parse.Node, visit func(parse.Node)) {
	if isNilNode(node) {
		return
	}
	visit(node)
	switch n := node.(type) {
	case *parse.ListNode:
		for _, c := range n.Nodes {
			walkNodes(c, visit)
		}
	case *parse.ActionNode:
		if n.Pipe != nil {
			walkNodes(n.Pipe, visit)
		}
	case *parse.PipeNode:
		for _, c := range n.Cmds {
			walkNodes(c, visit)
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			walkNodes(a, visit)
		}
	case *parse.IfNode:
		walkNodes(n.Pipe, visit)
		walkNodes(n.List, visit)
		walkNodes(n.ElseList, visit)
	case *parse.RangeNode:
		walkNodes(n.Pipe, visit)
		walkNodes(n.List, visit)
		walkNodes(n.ElseList, visit)
	case *parse.WithNode:
		walkNodes(n.Pipe, visit)
		walkNodes(n.List, visit)
		walkNodes(n.ElseList, visit)
	case *parse.TemplateNode:
		if n.Pipe != nil {
			walkNodes(n.Pipe, visit)
		}
	}
}

// isNilNode reports whether node is nil, including typed nils hidden behind
// the interface.
func isNilNode(node parse.Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
