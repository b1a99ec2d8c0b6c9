// Raw sanitization stage: parses untrusted HTML with x/net/html and
// strips disallowed markup before the tree is imported. Allow-listing
// is driven by two schema hooks, one per element and one per
// attribute; the element hook always runs before the attribute hook
// for the same node.
package domparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hookAction is the element hook's verdict on a native node.
type hookAction int

const (
	keepNode hookAction = iota
	unwrapNode
	removeNode
)

// uidToken is the literal placeholder in forced/default attribute
// values that is replaced with a freshly minted unique id.
const uidToken = "{$uid}"

// commentToken is the one entry of the default allow-list: comments
// survive sanitization even though no tag rule covers them.
const commentToken = "#comment"

// fragmentContexts maps a leading tag to the context element the raw
// parse must run under so the HTML5 parser does not discard it
// (a bare <tr> is dropped outside a table, a bare <li> outside a
// list). Validation against the caller's context happens later, on
// the imported tree.
var fragmentContexts = map[string]string{
	"tr": "tbody", "td": "tr", "th": "tr",
	"tbody": "table", "thead": "table", "tfoot": "table",
	"caption": "table", "colgroup": "table", "col": "colgroup",
	"li": "ul", "dt": "dl", "dd": "dl",
	"option": "select", "optgroup": "select",
}

var firstTagRe = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9]*)`)

// stripControlChars removes characters not allowed in document
// content. Valid: #x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] |
// [#x10000-#x10FFFF].
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0x9 || r == 0xA || r == 0xD ||
			(r >= 0x20 && r <= 0xD7FF) ||
			(r >= 0xE000 && r <= 0xFFFD) ||
			(r >= 0x10000 && r <= 0x10FFFF) {
			return r
		}
		return -1
	}, s)
}

// sanitize parses htmlIn and returns a native tree with disallowed
// nodes and attributes already stripped. A parse failure degrades to
// an empty container rather than an error.
func (p *Parser) sanitize(htmlIn string, args *ParseArgs) *html.Node {
	htmlIn = stripControlChars(htmlIn)

	ctxName := args.Context
	if ctxName == "" {
		ctxName = p.opts.RootName
	}
	parseCtx := ctxName
	if m := firstTagRe.FindStringSubmatch(htmlIn); m != nil {
		if wrap, ok := fragmentContexts[strings.ToLower(m[1])]; ok {
			parseCtx = wrap
		}
	}

	container := &html.Node{Type: html.ElementNode, Data: ctxName}
	ctxNode := &html.Node{
		Type:     html.ElementNode,
		Data:     parseCtx,
		DataAtom: atom.Lookup([]byte(parseCtx)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(htmlIn), ctxNode)
	if err != nil {
		return container
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	allow := map[string]bool{commentToken: true}
	p.cleanNative(container, allow)
	return container
}

// cleanNative walks the children of n in document order, applying the
// element and attribute hooks and mutating the tree in place.
func (p *Parser) cleanNative(n *html.Node, allow map[string]bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			switch p.elementHook(c, allow) {
			case keepNode:
				p.attributeHooks(c, allow)
				if !p.opts.AllowHTMLInNamedAnchor && strings.EqualFold(c.Data, "a") &&
					dom.GetAttributeOr(c, "name", "") != "" && c.FirstChild != nil {
					// Named anchors stay empty; their content moves
					// after them and is cleaned on the next iterations.
					spliceChildrenAfter(n, c)
					next = c.NextSibling
				} else {
					p.cleanNative(c, allow)
				}
			case unwrapNode:
				if first := spliceChildrenBefore(n, c); first != nil {
					next = first
				}
				n.RemoveChild(c)
			case removeNode:
				n.RemoveChild(c)
			}
		case html.CommentNode:
			if !p.commentAllowed(c.Data) {
				n.RemoveChild(c)
			}
		case html.TextNode, html.RawNode:
			// Kept as-is; whitespace handling happens after import.
		default:
			n.RemoveChild(c)
		}
		c = next
	}
}

// elementHook decides a native element's fate and applies the
// schema-declared forced, default and required attribute rules.
func (p *Parser) elementHook(c *html.Node, allow map[string]bool) hookAction {
	name := strings.ToLower(c.Data)
	rule := p.schema.Rule(name)
	if rule == nil {
		if !p.opts.Validate {
			return keepNode
		}
		// Un-allow-listed. Special elements carry non-HTML content
		// that must not leak into the document as text.
		if p.schema.SpecialElements()[name] {
			return removeNode
		}
		return unwrapNode
	}
	allow[name] = true

	for _, a := range rule.AttributesForced {
		setNativeAttr(c, a.Name, p.expandUID(a.Value))
	}
	for _, a := range rule.AttributesDefault {
		if !hasNativeAttr(c, a.Name) {
			setNativeAttr(c, a.Name, p.expandUID(a.Value))
		}
	}
	if len(rule.AttributesRequired) > 0 {
		found := false
		for _, req := range rule.AttributesRequired {
			if hasNativeAttr(c, req) {
				found = true
				break
			}
		}
		if !found {
			return unwrapNode
		}
	}
	if rule.RemoveEmptyAttrs && len(c.Attr) == 0 {
		return unwrapNode
	}
	return keepNode
}

// attributeHooks filters the attributes of a kept element: data-*
// attributes and schema-valid attributes survive, boolean attributes
// are normalized, URL-bearing attributes are vetted against the
// configured relaxations.
func (p *Parser) attributeHooks(c *html.Node, allow map[string]bool) {
	tag := strings.ToLower(c.Data)
	kept := c.Attr[:0]
	for _, a := range c.Attr {
		name := strings.ToLower(a.Key)
		if !strings.HasPrefix(name, "data-") && !p.schema.IsValidAttr(tag, name) {
			continue
		}
		if p.schema.IsBoolAttr(name) {
			a.Val = name
		}
		if isURLAttr(name) && !p.urlAllowed(a.Val) {
			continue
		}
		allow[name] = true
		kept = append(kept, a)
	}
	c.Attr = kept

	if tag == "a" && !p.opts.AllowUnsafeLinkTarget &&
		dom.GetAttributeOr(c, "target", "") == "_blank" {
		rel := dom.GetAttributeOr(c, "rel", "")
		if !strings.Contains(rel, "noopener") {
			if rel == "" {
				setNativeAttr(c, "rel", "noopener")
			} else {
				setNativeAttr(c, "rel", rel+" noopener")
			}
		}
	}
}

func isURLAttr(name string) bool {
	switch name {
	case "href", "src", "action", "background", "formaction", "poster", "xlink:href":
		return true
	}
	return false
}

// urlAllowed vets an attribute URL value against the parser's
// relaxation options. Entity decoding already happened in the HTML
// parser; embedded control characters and whitespace are stripped so
// smuggled schemes ("java\tscript:") do not slip through.
func (p *Parser) urlAllowed(val string) bool {
	u := strings.Map(func(r rune) rune {
		if r <= 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, val)
	u = strings.ToLower(u)

	switch {
	case strings.HasPrefix(u, "javascript:"), strings.HasPrefix(u, "vbscript:"):
		return p.opts.AllowScriptURLs
	case strings.HasPrefix(u, "data:image/svg"):
		return p.opts.AllowSVGDataURLs || p.opts.AllowHTMLDataURLs
	case strings.HasPrefix(u, "data:image/"):
		return true
	case strings.HasPrefix(u, "data:"):
		return p.opts.AllowHTMLDataURLs
	}
	return true
}

// commentAllowed reports whether a comment survives. Conditional
// comments are an IE script vector and need an explicit opt-in.
func (p *Parser) commentAllowed(value string) bool {
	if p.opts.AllowConditionalComments {
		return true
	}
	trimmed := strings.TrimSpace(strings.ToLower(value))
	return !strings.HasPrefix(trimmed, "[if") && !strings.Contains(trimmed, "[endif]")
}

// expandUID substitutes the uid placeholder with a fresh unique id
// from the parser's monotonic counter.
func (p *Parser) expandUID(val string) string {
	if !strings.Contains(val, uidToken) {
		return val
	}
	p.uid++
	return strings.ReplaceAll(val, uidToken, "uid_"+strconv.Itoa(p.uid))
}

// spliceChildrenBefore moves all children of c into parent n just
// before c, returning the first moved child (nil if none).
func spliceChildrenBefore(n, c *html.Node) *html.Node {
	first := c.FirstChild
	for cc := c.FirstChild; cc != nil; {
		ccNext := cc.NextSibling
		c.RemoveChild(cc)
		n.InsertBefore(cc, c)
		cc = ccNext
	}
	return first
}

// spliceChildrenAfter moves all children of c into parent n just
// after c, preserving their order.
func spliceChildrenAfter(n, c *html.Node) {
	ref := c.NextSibling
	for cc := c.FirstChild; cc != nil; {
		ccNext := cc.NextSibling
		c.RemoveChild(cc)
		if ref != nil {
			n.InsertBefore(cc, ref)
		} else {
			n.AppendChild(cc)
		}
		cc = ccNext
	}
}

func hasNativeAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}

func setNativeAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}
