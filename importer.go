// Tree import: transcribes the sanitized native tree into Node form.
package domparser

import (
	"strings"

	"golang.org/x/net/html"
)

// importTree builds the parse tree from the sanitized native tree.
// The returned root is a fragment node named after the parse context
// so later stages can tell a body parse from a contextual one.
func (p *Parser) importTree(native *html.Node, args *ParseArgs) *Node {
	rootName := args.Context
	if rootName == "" {
		rootName = p.opts.RootName
	}
	root := NewNode(FragmentNode, rootName)
	for c := native.FirstChild; c != nil; c = c.NextSibling {
		p.importNode(root, c, false)
	}
	return root
}

// importNode transcribes one native node (and its subtree) under
// parent. raw is true inside script/style elements, whose text must
// not be entity-encoded on output. Native kinds with no tree
// equivalent are dropped.
func (p *Parser) importNode(parent *Node, c *html.Node, raw bool) {
	switch c.Type {
	case html.ElementNode:
		name := strings.ToLower(c.Data)
		node := NewElement(name)
		for _, a := range c.Attr {
			node.SetAttr(strings.ToLower(a.Key), a.Val)
		}
		parent.Append(node)
		childRaw := raw || name == "script" || name == "style"
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			p.importNode(node, cc, childRaw)
		}
	case html.TextNode, html.RawNode:
		node := NewText(c.Data)
		node.Raw = raw
		parent.Append(node)
	case html.CommentNode:
		parent.Append(NewComment(c.Data))
	}
}
