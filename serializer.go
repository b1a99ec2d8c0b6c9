// HTML serialization of Node trees. Downstream consumers (and the
// round-trip tests) need the parsed tree back as a string; attributes
// keep their insertion order and raw text (script/style bodies) stays
// unencoded.
package domparser

import (
	"bytes"

	"golang.org/x/net/html"
)

// voidElements must not get a closing tag on output.
var voidElements = toSet("area base br col embed hr img input link meta param source track wbr")

// Serialize renders a Node tree as HTML. Fragment roots emit their
// children only; any other node emits itself.
func Serialize(n *Node) string {
	var buf bytes.Buffer
	if n.Type == FragmentNode {
		for c := n.FirstChild; c != nil; c = c.Next {
			writeNode(&buf, c)
		}
	} else {
		writeNode(&buf, n)
	}
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case ElementNode, FragmentNode:
		buf.WriteByte('<')
		buf.WriteString(n.Name)
		for _, a := range n.Attrs {
			buf.WriteByte(' ')
			buf.WriteString(a.Name)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Value))
			buf.WriteByte('"')
		}
		if voidElements[n.Name] && n.FirstChild == nil {
			buf.WriteString(" />")
			return
		}
		buf.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.Next {
			writeNode(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Name)
		buf.WriteByte('>')
	case TextNode:
		if n.Raw {
			buf.WriteString(n.Value)
		} else {
			buf.WriteString(html.EscapeString(n.Value))
		}
	case CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Value)
		buf.WriteString("-->")
	case CDATANode:
		buf.WriteString("<![CDATA[")
		buf.WriteString(n.Value)
		buf.WriteString("]]>")
	case PINode:
		buf.WriteString("<?")
		buf.WriteString(n.Name)
		buf.WriteByte(' ')
		buf.WriteString(n.Value)
		buf.WriteString("?>")
	}
}
