// Schema validation walk: a single forward pass over the normalized
// tree that unwraps unknown elements, applies output-name mappings,
// collects filter matches, and records schema-invalid children for
// the repair stage.
package domparser

// walkResult is the bookkeeping of one validation walk, scoped to a
// single parse call.
type walkResult struct {
	invalidChildren   []*Node
	matchedNodes      map[string][]*Node
	matchedAttributes map[string][]*Node
}

func newWalkResult() *walkResult {
	return &walkResult{
		matchedNodes:      map[string][]*Node{},
		matchedAttributes: map[string][]*Node{},
	}
}

// validateTree walks the tree in document order. Unknown elements are
// unwrapped (never removed) and the walk resumes at the position the
// element occupied, so its children are revisited in place. The walk
// is driven by an explicit position variable, not recursion, to keep
// that resume step exact.
func (p *Parser) validateTree(root *Node, args *ParseArgs) *walkResult {
	res := newWalkResult()

	node := root.Walk()
	for node != nil {
		next := node.Walk()

		if node.Type == ElementNode {
			rule := p.schema.Rule(node.Name)
			if rule == nil && p.opts.Validate {
				if node.FirstChild != nil {
					next = node.FirstChild
				} else {
					next = node.walkAfter()
				}
				node.Unwrap()
				node = next
				continue
			}
			if rule != nil && rule.OutputName != "" {
				node.Name = rule.OutputName
			}
		}

		// Filters match on presence at walk time, before any repair.
		p.matchNode(node, res)

		if p.opts.Validate && node.Type == ElementNode {
			parent := node.Parent
			if parent != nil &&
				p.schema.HasChildRules(node.Name) && p.schema.HasChildRules(parent.Name) &&
				!p.schema.IsValidChild(parent.Name, node.Name) {
				res.invalidChildren = append(res.invalidChildren, node)
			}
		}

		node = next
	}
	return res
}
