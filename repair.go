// Invalid-node repair: reconciles schema-invalid children with their
// surroundings by hoisting, unwrapping or removing them. The repairer
// is a pluggable collaborator; the default implementation here covers
// the common cases (a block inside an inline element, a list item
// outside a list).
package domparser

// RepairFunc repairs the given schema-invalid nodes in place. Nodes it
// creates must be reported through onNew so registered filters still
// see them.
type RepairFunc func(p *Parser, nodes []*Node, onNew func(*Node))

// defaultRepair hoists an invalid node to the closest ancestor that
// accepts it, splitting the ancestors it crosses; when no such
// ancestor exists it unwraps the node if its children fit the parent
// and removes it otherwise.
func defaultRepair(p *Parser, nodes []*Node, onNew func(*Node)) {
	nonEmpty := p.schema.NonEmptyElements()
	whitespace := p.schema.WhitespaceElements()

	for _, node := range nodes {
		if node.Parent == nil {
			continue // detached while repairing an earlier node
		}

		var target *Node
		for a := node.Parent; a != nil; a = a.Parent {
			if p.schema.IsValidChild(a.Name, node.Name) {
				target = a
				break
			}
			if !p.schema.HasChildRules(a.Name) {
				break // opaque custom element, do not split through it
			}
		}
		if target != nil {
			hoist(node, target, onNew, nonEmpty, whitespace)
			continue
		}

		parent := node.Parent
		fits := true
		for c := node.FirstChild; c != nil; c = c.Next {
			if c.Type == ElementNode && p.schema.HasChildRules(c.Name) &&
				!p.schema.IsValidChild(parent.Name, c.Name) {
				fits = false
				break
			}
		}
		if fits {
			node.Unwrap()
		} else {
			node.Remove()
		}
	}
}

// hoist moves node up until it is a direct child of target. Each
// crossed ancestor is split: siblings after node move into a shallow
// clone inserted after the hoisted node, and ancestors left empty are
// dropped.
func hoist(node, target *Node, onNew func(*Node), nonEmpty, whitespace map[string]bool) {
	for node.Parent != target {
		parent := node.Parent
		grand := parent.Parent

		var tail *Node
		if node.Next != nil {
			tail = parent.Clone()
			for s := node.Next; s != nil; {
				sNext := s.Next
				tail.Append(s.Remove())
				s = sNext
			}
		}

		node.Remove()
		grand.InsertAfter(node, parent)
		if tail != nil {
			grand.InsertAfter(tail, node)
			onNew(tail)
		}
		if parent.FirstChild == nil || (len(parent.Attrs) == 0 && parent.IsEmpty(nonEmpty, whitespace)) {
			parent.Remove()
		}
	}
}
