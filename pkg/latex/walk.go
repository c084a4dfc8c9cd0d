package latex

// Walk visits nodes in pre-order: each node, then its arguments, then its
// body. Nil entries are skipped. Returning false from fn skips the node's
// arguments and body.
func Walk(nodes []Node, fn func(Node) bool) {
	stack := make([]Node, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil || !fn(node) {
			continue
		}

		var args *Arguments
		var body []Node
		switch n := node.(type) {
		case *MacroNode:
			args = n.Args
		case *GroupNode:
			body = n.Nodes
		case *EnvironmentNode:
			args, body = n.Args, n.Nodes
		case *SpecialsNode:
			args = n.Args
		case *MathNode:
			body = n.Nodes
		}

		for i := len(body) - 1; i >= 0; i-- {
			stack = append(stack, body[i])
		}
		if args != nil {
			for i := len(args.Nodes) - 1; i >= 0; i-- {
				stack = append(stack, args.Nodes[i])
			}
		}
	}
}

// Environments returns every environment with the given name in document
// order.
func Environments(nodes []Node, name string) []*EnvironmentNode {
	var found []*EnvironmentNode
	Walk(nodes, func(node Node) bool {
		if env, ok := node.(*EnvironmentNode); ok && env.Name == name {
			found = append(found, env)
		}
		return true
	})
	return found
}
