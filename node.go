// AST node type for parsed HTML trees.
// Nodes form a doubly linked tree: parent/first/last child plus
// prev/next sibling pointers, so structural edits are O(1).
package domparser

import "strings"

// NodeType identifies what kind of node this is. The numeric values
// follow the DOM convention so they survive round-trips through code
// that expects them.
type NodeType int

const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	CDATANode    NodeType = 4
	PINode       NodeType = 7
	CommentNode  NodeType = 8
	FragmentNode NodeType = 11
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is a node in the parsed tree. Exactly one of children or Value
// is meaningful depending on Type: elements and fragments carry
// children, text-like nodes carry Value.
type Node struct {
	Type  NodeType
	Name  string
	Value string

	// Raw marks text whose content must not be entity-encoded on
	// output (script and style bodies).
	Raw bool

	// Attrs preserves insertion order for serialization stability;
	// attrIndex gives O(1) name lookup.
	Attrs     []Attr
	attrIndex map[string]int

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// NewNode creates a detached node of the given type and name.
func NewNode(nodeType NodeType, name string) *Node {
	return &Node{Type: nodeType, Name: name}
}

// NewElement creates a detached element node. The tag name is lowercased.
func NewElement(name string) *Node {
	return &Node{Type: ElementNode, Name: strings.ToLower(name)}
}

// NewText creates a detached text node.
func NewText(value string) *Node {
	return &Node{Type: TextNode, Name: "#text", Value: value}
}

// NewComment creates a detached comment node.
func NewComment(value string) *Node {
	return &Node{Type: CommentNode, Name: "#comment", Value: value}
}

// Attr returns the value of the named attribute, or "" if not present.
func (n *Node) Attr(name string) string {
	if i, ok := n.attrIndex[name]; ok {
		return n.Attrs[i].Value
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrIndex[name]
	return ok
}

// SetAttr sets (or adds) the named attribute. New attributes keep
// insertion order; existing ones keep their position.
func (n *Node) SetAttr(name, value string) {
	if i, ok := n.attrIndex[name]; ok {
		n.Attrs[i].Value = value
		return
	}
	if n.attrIndex == nil {
		n.attrIndex = make(map[string]int)
	}
	n.attrIndex[name] = len(n.Attrs)
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr removes the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	i, ok := n.attrIndex[name]
	if !ok {
		return
	}
	n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
	delete(n.attrIndex, name)
	for j := i; j < len(n.Attrs); j++ {
		n.attrIndex[n.Attrs[j].Name] = j
	}
}

// AttrCount returns the number of attributes on the node.
func (n *Node) AttrCount() int {
	return len(n.Attrs)
}

// Append adds child as the last child of n, detaching it from any
// previous parent first. Returns the appended child.
func (n *Node) Append(child *Node) *Node {
	if child.Parent != nil {
		child.Remove()
	}
	child.Parent = n
	child.Next = nil
	if n.LastChild != nil {
		child.Prev = n.LastChild
		n.LastChild.Next = child
		n.LastChild = child
	} else {
		child.Prev = nil
		n.FirstChild = child
		n.LastChild = child
	}
	return child
}

// InsertBefore inserts node immediately before ref, which must be a
// child of n. Returns the inserted node.
func (n *Node) InsertBefore(node, ref *Node) *Node {
	if node.Parent != nil {
		node.Remove()
	}
	node.Parent = n
	node.Next = ref
	node.Prev = ref.Prev
	if ref.Prev != nil {
		ref.Prev.Next = node
	} else {
		n.FirstChild = node
	}
	ref.Prev = node
	return node
}

// InsertAfter inserts node immediately after ref, which must be a
// child of n. Returns the inserted node.
func (n *Node) InsertAfter(node, ref *Node) *Node {
	if ref.Next != nil {
		return n.InsertBefore(node, ref.Next)
	}
	return n.Append(node)
}

// Remove detaches n from its parent, relinking its siblings. Returns n
// so removals can be chained into inserts.
func (n *Node) Remove() *Node {
	parent := n.Parent
	if parent == nil {
		return n
	}
	if parent.FirstChild == n {
		parent.FirstChild = n.Next
	}
	if parent.LastChild == n {
		parent.LastChild = n.Prev
	}
	if n.Prev != nil {
		n.Prev.Next = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	}
	n.Parent = nil
	n.Prev = nil
	n.Next = nil
	return n
}

// Unwrap replaces n with its children in place, preserving their order.
func (n *Node) Unwrap() {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.Next
		parent.InsertBefore(child.Remove(), n)
		child = next
	}
	n.Remove()
}

// Replace swaps n for node in the tree. Returns node.
func (n *Node) Replace(node *Node) *Node {
	parent := n.Parent
	if parent == nil {
		return node
	}
	parent.InsertBefore(node, n)
	n.Remove()
	return node
}

// Empty removes all children of n. Returns n.
func (n *Node) Empty() *Node {
	for child := n.FirstChild; child != nil; {
		next := child.Next
		child.Remove()
		child = next
	}
	return n
}

// Clone returns a shallow copy of n: same type, name, value and
// attributes, but no tree links and no children.
func (n *Node) Clone() *Node {
	clone := &Node{Type: n.Type, Name: n.Name, Value: n.Value, Raw: n.Raw}
	for _, a := range n.Attrs {
		clone.SetAttr(a.Name, a.Value)
	}
	return clone
}

// Walk returns the next node in document order: first child, else next
// sibling, else the nearest ancestor's next sibling. Returns nil when
// the walk is exhausted.
func (n *Node) Walk() *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for node := n; node != nil; node = node.Parent {
		if node.Next != nil {
			return node.Next
		}
	}
	return nil
}

// walkAfter returns the next node in document order that is not inside
// n's subtree: next sibling, else the nearest ancestor's next sibling.
func (n *Node) walkAfter() *Node {
	for node := n; node != nil; node = node.Parent {
		if node.Next != nil {
			return node.Next
		}
	}
	return nil
}

// IsEmpty reports whether n has no meaningful content relative to the
// schema: no descendant element from nonEmpty, no descendant element
// carrying attributes, and no text other than pure whitespace outside
// whitespace-preserving elements.
func (n *Node) IsEmpty(nonEmpty, whitespace map[string]bool) bool {
	for node := n.FirstChild; node != nil; {
		switch node.Type {
		case ElementNode:
			if nonEmpty[node.Name] {
				return false
			}
			// Attributes mean intent (anchors, bookmarks); keep.
			if len(node.Attrs) > 0 {
				return false
			}
		case TextNode, CDATANode:
			if whitespace[n.Name] || !isWhitespaceText(node.Value) {
				return false
			}
			if node.Parent != nil && whitespace[node.Parent.Name] && node.Value != "" {
				return false
			}
		}
		if node.FirstChild != nil {
			node = node.FirstChild
			continue
		}
		for node != nil && node != n {
			if node.Next != nil {
				node = node.Next
				break
			}
			node = node.Parent
		}
		if node == n {
			break
		}
	}
	return true
}

func isWhitespaceText(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
