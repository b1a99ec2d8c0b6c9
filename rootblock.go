// Root block wrapping: stray text and inline content directly under a
// body-equivalent root gets wrapped into synthetic block elements so
// downstream editing commands always find block structure at the top
// level.
package domparser

import "strings"

// addRootBlocks scans the root's direct children left to right,
// accumulating text nodes and wrappable inline elements into freshly
// created blockName wrappers. A block-level or special child finalizes
// the current wrapper. Skipped entirely when blockName is not a valid
// child of the root.
func (p *Parser) addRootBlocks(root *Node, args *ParseArgs, blockName string) {
	if root.Name != "body" && !args.IsRootContent {
		return
	}
	if !p.schema.IsValidChild(root.Name, blockName) {
		return
	}

	special := p.schema.SpecialElements()
	var block *Node

	node := root.FirstChild
	for node != nil {
		next := node.Next
		if wrappable(p.schema, special, node) {
			if block == nil {
				block = NewElement(blockName)
				for _, a := range p.opts.ForcedRootBlockAttrs {
					block.SetAttr(a.Name, a.Value)
				}
				root.InsertBefore(block, node)
			}
			block.Append(node)
		} else {
			trimRootBlock(block)
			block = nil
		}
		node = next
	}
	trimRootBlock(block)
}

// wrappable reports whether the child belongs inside a root block:
// any text node, or any element that is not a paragraph, not
// block-level, not special, and not an internal typed element.
func wrappable(schema *Schema, special map[string]bool, node *Node) bool {
	if node.Type == TextNode {
		return true
	}
	return node.Type == ElementNode && node.Name != "p" &&
		!schema.IsBlock(node.Name) && !special[node.Name] &&
		!node.HasAttr(attrInternalType)
}

// trimRootBlock trims boundary whitespace of a finished wrapper and
// drops it when nothing remains.
func trimRootBlock(block *Node) {
	if block == nil {
		return
	}
	if first := block.FirstChild; first != nil && first.Type == TextNode {
		first.Value = strings.TrimLeft(first.Value, " \t\r\n")
		if first.Value == "" {
			first.Remove()
		}
	}
	if last := block.LastChild; last != nil && last.Type == TextNode {
		last.Value = strings.TrimRight(last.Value, " \t\r\n")
		if last.Value == "" {
			last.Remove()
		}
	}
	if block.FirstChild == nil {
		block.Remove()
	}
}
