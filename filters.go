// Filter registry: named node and attribute filters registered once on
// a parser and invoked after every successful parse with the nodes
// collected during the validation walk.
package domparser

import "strings"

// FilterFunc is invoked with the surviving matched nodes, the filter
// name that matched, and the per-call arguments.
type FilterFunc func(nodes []*Node, name string, args *ParseArgs)

// Filter is a named, ordered sequence of callbacks.
type Filter struct {
	Name      string
	Callbacks []FilterFunc
}

// AddNodeFilter registers callback for each comma-separated node name.
// Registrations are cumulative for the parser's lifetime and apply to
// every subsequent Parse call.
func (p *Parser) AddNodeFilter(names string, callback FilterFunc) {
	p.nodeFilters = addFilter(p.nodeFilters, names, callback)
}

// AddAttributeFilter registers callback for each comma-separated
// attribute name.
func (p *Parser) AddAttributeFilter(names string, callback FilterFunc) {
	p.attributeFilters = addFilter(p.attributeFilters, names, callback)
}

// NodeFilters returns the registered node filters in registration
// order. The returned slice is shared; treat it as read-only.
func (p *Parser) NodeFilters() []Filter {
	return p.nodeFilters
}

// AttributeFilters returns the registered attribute filters in
// registration order. The returned slice is shared; treat it as
// read-only.
func (p *Parser) AttributeFilters() []Filter {
	return p.attributeFilters
}

func addFilter(filters []Filter, names string, callback FilterFunc) []Filter {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for i := range filters {
			if filters[i].Name == name {
				filters[i].Callbacks = append(filters[i].Callbacks, callback)
				found = true
				break
			}
		}
		if !found {
			filters = append(filters, Filter{Name: name, Callbacks: []FilterFunc{callback}})
		}
	}
	return filters
}

// matchNode records node under every node filter matching its name and
// every attribute filter whose attribute it carries. Attribute filters
// are checked most-recently-registered first; dispatch later runs in
// registration order. The asymmetry is deliberate: plugins observe it.
func (p *Parser) matchNode(node *Node, res *walkResult) {
	for _, f := range p.nodeFilters {
		if f.Name == node.Name {
			res.matchedNodes[f.Name] = append(res.matchedNodes[f.Name], node)
		}
	}
	if node.Type != ElementNode {
		return
	}
	for i := len(p.attributeFilters) - 1; i >= 0; i-- {
		name := p.attributeFilters[i].Name
		if node.HasAttr(name) {
			res.matchedAttributes[name] = append(res.matchedAttributes[name], node)
		}
	}
}

// runFilters dispatches matched nodes to their callbacks, dropping any
// node that was detached by a later pipeline stage.
func (p *Parser) runFilters(res *walkResult, args *ParseArgs) {
	for _, f := range p.nodeFilters {
		nodes := liveNodes(res.matchedNodes[f.Name])
		if len(nodes) == 0 {
			continue
		}
		for _, cb := range f.Callbacks {
			cb(nodes, f.Name, args)
		}
	}
	for _, f := range p.attributeFilters {
		nodes := liveNodes(res.matchedAttributes[f.Name])
		if len(nodes) == 0 {
			continue
		}
		for _, cb := range f.Callbacks {
			cb(nodes, f.Name, args)
		}
	}
}

func liveNodes(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Parent != nil {
			out = append(out, n)
		}
	}
	return out
}
