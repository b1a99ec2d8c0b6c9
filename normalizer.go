// Whitespace and empty-node normalization. Runs in two passes: a
// preorder pass that collapses whitespace runs and trims at leading
// block boundaries, and a reverse (leaves-first) pass over the
// surviving nodes that trims trailing boundaries and removes or pads
// empty elements. The order matters: trailing trims and emptiness
// checks must see the already-collapsed values.
package domparser

import (
	"regexp"
	"strings"
)

// Sentinel attributes. Elements marked bogus are transient editor
// artifacts: "all" means remove with content, anything else means
// unwrap unless a type marker says the element carries meaning.
const (
	attrBogus        = "data-edit-bogus"
	attrInternalType = "data-edit-type"
)

var whitespaceRe = regexp.MustCompile(`[ \t\r\n]+`)

// nbsp pads elements that must not collapse when empty.
const nbsp = " "

// builtinBlocks are treated as block-equivalent for whitespace
// trimming regardless of the schema's block set.
var builtinBlocks = toSet("script style head html body title meta param")

type normalizer struct {
	schema *Schema
	opts   *Options
	args   *ParseArgs
	root   *Node

	// nodes holds the pass-1 survivors in document order; pass 2
	// iterates it in reverse so leaves are handled before ancestors.
	nodes []*Node
}

func newNormalizer(p *Parser, root *Node, args *ParseArgs) *normalizer {
	return &normalizer{schema: p.schema, opts: &p.opts, args: args, root: root}
}

func (nz *normalizer) isBlockName(name string) bool {
	return nz.schema.IsBlock(name) || builtinBlocks[name]
}

// preserveWhitespace reports whether the node sits inside a
// whitespace-preserving element (pre, script, ...) or carries raw
// content itself.
func (nz *normalizer) preserveWhitespace(node *Node) bool {
	if node.Raw {
		return true
	}
	ws := nz.schema.WhitespaceElements()
	for a := node.Parent; a != nil; a = a.Parent {
		if ws[a.Name] {
			return true
		}
	}
	return false
}

// firstPass walks the tree root to leaves, left to right, handling
// sentinel elements and collapsing text whitespace.
func (nz *normalizer) firstPass() {
	node := nz.root.Walk()
	for node != nil {
		next := node.Walk()
		switch node.Type {
		case ElementNode:
			if bogus := node.Attr(attrBogus); bogus != "" {
				if bogus == "all" {
					next = node.walkAfter()
					node.Remove()
					break
				}
				if !node.HasAttr(attrInternalType) {
					if node.FirstChild == nil {
						next = node.walkAfter()
					}
					node.Unwrap()
					break
				}
			}
			nz.nodes = append(nz.nodes, node)
		case TextNode:
			if nz.preserveWhitespace(node) {
				nz.nodes = append(nz.nodes, node)
				break
			}
			text := whitespaceRe.ReplaceAllString(node.Value, " ")
			if nz.trimLeading(node) {
				text = strings.TrimLeft(text, " ")
			}
			if text == "" {
				node.Remove()
				break
			}
			node.Value = text
			nz.nodes = append(nz.nodes, node)
		}
		node = next
	}
}

// trimLeading reports whether leading whitespace of a text node must
// be stripped: first child of a block parent (the synthetic root only
// counts when the parse is root content), or directly after a line
// break.
func (nz *normalizer) trimLeading(node *Node) bool {
	parent := node.Parent
	if node.Prev == nil && parent != nil && nz.isBlockName(parent.Name) &&
		(parent != nz.root || nz.args.IsRootContent) {
		return true
	}
	return node.Prev != nil && node.Prev.Type == ElementNode && node.Prev.Name == "br"
}

// trimTrailing is the mirror of trimLeading for pass 2: strip when the
// next sibling is block-level or the node closes a block.
func (nz *normalizer) trimTrailing(node *Node) bool {
	if node.Next != nil {
		return node.Next.Type == ElementNode && nz.isBlockName(node.Next.Name)
	}
	parent := node.Parent
	return parent != nil && nz.isBlockName(parent.Name) &&
		(parent != nz.root || nz.args.IsRootContent)
}

// secondPass iterates the pass-1 survivors leaves to root, trimming
// trailing whitespace and applying the schema's empty-element policy.
func (nz *normalizer) secondPass() {
	nonEmpty := nz.schema.NonEmptyElements()
	whitespace := nz.schema.WhitespaceElements()

	for i := len(nz.nodes) - 1; i >= 0; i-- {
		node := nz.nodes[i]
		if node.Parent == nil {
			continue // detached by an earlier pass-2 step
		}
		switch node.Type {
		case TextNode:
			if nz.preserveWhitespace(node) {
				break
			}
			text := node.Value
			if nz.trimTrailing(node) {
				text = strings.TrimRight(text, " ")
			}
			if text == "" {
				node.Remove()
			} else {
				node.Value = text
			}
		case ElementNode:
			rule := nz.schema.Rule(node.Name)
			if rule == nil {
				break
			}
			// An element is never both removed and padded. Empty
			// elements carrying a name or id are link targets and
			// survive removal.
			if rule.RemoveEmpty && !node.HasAttr("name") && !node.HasAttr("id") &&
				node.IsEmpty(nonEmpty, whitespace) {
				if nz.isBlockName(node.Name) {
					node.Remove()
				} else {
					node.Unwrap()
				}
			} else if rule.PaddEmpty && (node.IsEmpty(nonEmpty, whitespace) || isPaddedWithNbsp(node)) {
				nz.pad(node)
			}
		}
	}
}

// pad rewrites an empty element's content to a single padding node.
func (nz *normalizer) pad(node *Node) {
	node.Empty()
	if nz.opts.PaddEmptyWithBR {
		node.Append(NewElement("br"))
	} else {
		node.Append(NewText(nbsp))
	}
}

// isPaddedWithNbsp reports whether the element contains exactly one
// non-breaking-space text node, i.e. it was padded on a previous pass.
func isPaddedWithNbsp(node *Node) bool {
	first := node.FirstChild
	return first != nil && first == node.LastChild &&
		first.Type == TextNode && first.Value == nbsp
}
