// Content-model schema: which elements, attributes and nestings are
// valid, plus per-element normalization policy (padding, removal,
// forced attributes). The parser only ever reads a Schema; callers may
// extend one before handing it over.
package domparser

import "strings"

// ElementRule is the per-element policy a Schema declares.
type ElementRule struct {
	// OutputName renames the element on output (e.g. strike -> s).
	OutputName string

	// AttributesDefault are set on the element when absent;
	// AttributesForced always overwrite. A literal "{$uid}" in either
	// value is replaced with a unique id at parse time.
	AttributesDefault []Attr
	AttributesForced  []Attr

	// AttributesRequired lists attribute names of which at least one
	// must be present, otherwise the element is unwrapped.
	AttributesRequired []string

	// RemoveEmpty drops (or unwraps, for inline elements) the element
	// when it has no meaningful content. PaddEmpty instead pads it
	// with a br or non-breaking space. RemoveEmptyAttrs unwraps the
	// element when it ends up with zero attributes.
	RemoveEmpty      bool
	PaddEmpty        bool
	RemoveEmptyAttrs bool
}

// Schema answers the content-model questions the parser asks: is this
// element known, is this attribute valid here, may this child nest
// under that parent, and how should whitespace and emptiness be
// treated for it.
type Schema struct {
	elements   map[string]*ElementRule
	children   map[string]map[string]bool
	globalAttr map[string]bool
	tagAttr    map[string]map[string]bool

	blockElements      map[string]bool
	whitespaceElements map[string]bool
	nonEmptyElements   map[string]bool
	specialElements    map[string]bool
	boolAttrs          map[string]bool
}

const (
	phrasingTags = "a abbr b bdi bdo br cite code data del dfn em i img ins kbd mark q rt rp ruby s samp small span strong sub sup time u var wbr"
	blockTags    = "address article aside blockquote div dl dd dt fieldset figcaption figure footer form h1 h2 h3 h4 h5 h6 header hr li main nav ol p pre section table ul"
	// flowTags is blockTags minus the elements that only nest inside a
	// specific parent (li, dt, dd, figcaption).
	flowTags = "address article aside blockquote div dl fieldset figure footer form h1 h2 h3 h4 h5 h6 header hr main nav ol p pre section table ul"
)

// NewSchema returns a Schema preloaded with an HTML5-flavored rule set:
// common block and phrasing elements, table structure, safe attributes,
// and the default empty-element policy (pad p/h1-h6/li/td, remove empty
// inline formatting elements).
func NewSchema() *Schema {
	s := &Schema{
		elements:   map[string]*ElementRule{},
		children:   map[string]map[string]bool{},
		globalAttr: toSet("id class title dir lang style"),
		tagAttr:    map[string]map[string]bool{},

		blockElements:      toSet(blockTags + " caption colgroup col tbody thead tfoot tr td th noscript"),
		whitespaceElements: toSet("pre script style textarea"),
		nonEmptyElements: toSet("area base br col embed hr img input link meta param source track wbr " +
			"td th iframe video audio object script pre code textarea summary"),
		specialElements: toSet("script style textarea title noscript pre"),
		boolAttrs:       toSet("checked compact declare defer disabled ismap multiple nohref noresize noshade nowrap readonly selected"),
	}

	// script and style are deliberately absent: elements without a
	// rule are stripped, and executable content needs an explicit
	// opt-in via SetRule.
	for _, name := range strings.Fields(phrasingTags + " " + blockTags +
		" body caption col colgroup tbody thead tfoot tr td th") {
		s.elements[name] = &ElementRule{}
	}

	// Empty-element policy defaults.
	for _, name := range strings.Fields("p h1 h2 h3 h4 h5 h6 li td th caption") {
		s.elements[name].PaddEmpty = true
	}
	for _, name := range strings.Fields("a abbr b cite code del dfn em i ins kbd mark q s samp small span strong sub sup u var") {
		s.elements[name].RemoveEmpty = true
	}
	s.elements["span"].RemoveEmptyAttrs = true

	// Per-tag attributes beyond the global set.
	s.tagAttr["a"] = toSet("href name target rel")
	s.tagAttr["img"] = toSet("src alt width height loading")
	s.tagAttr["td"] = toSet("colspan rowspan align valign")
	s.tagAttr["th"] = toSet("colspan rowspan align valign scope")
	s.tagAttr["blockquote"] = toSet("cite")
	s.tagAttr["q"] = toSet("cite")
	s.tagAttr["ol"] = toSet("start reversed type")
	s.tagAttr["time"] = toSet("datetime")
	s.tagAttr["col"] = toSet("span")
	s.tagAttr["colgroup"] = toSet("span")

	// Nesting rules: flow containers take everything, phrasing
	// containers take phrasing content only, tables are strict.
	flow := toSet(phrasingTags + " " + flowTags + " #text #comment")
	phrasing := toSet(phrasingTags + " #text #comment")
	for _, name := range strings.Fields("body div blockquote li dd section article aside header footer main nav fieldset figure form td th caption") {
		s.children[name] = flow
	}
	for _, name := range strings.Fields(phrasingTags + " p h1 h2 h3 h4 h5 h6 pre address dt figcaption") {
		s.children[name] = phrasing
	}
	s.children["ul"] = toSet("li #comment")
	s.children["ol"] = toSet("li #comment")
	s.children["dl"] = toSet("dt dd div #comment")
	s.children["table"] = toSet("caption colgroup col thead tbody tfoot tr #comment")
	s.children["thead"] = toSet("tr #comment")
	s.children["tbody"] = toSet("tr #comment")
	s.children["tfoot"] = toSet("tr #comment")
	s.children["tr"] = toSet("td th #comment")
	s.children["colgroup"] = toSet("col #comment")
	s.children["br"] = toSet("")
	s.children["hr"] = toSet("")
	s.children["img"] = toSet("")

	return s
}

// Rule returns the rule for the named element, or nil if the schema
// does not know the element.
func (s *Schema) Rule(name string) *ElementRule {
	return s.elements[name]
}

// SetRule installs (or replaces) the rule for an element, making it a
// valid element of the schema.
func (s *Schema) SetRule(name string, rule *ElementRule) {
	if rule == nil {
		rule = &ElementRule{}
	}
	s.elements[strings.ToLower(name)] = rule
}

// RemoveRule deletes an element from the schema entirely.
func (s *Schema) RemoveRule(name string) {
	delete(s.elements, strings.ToLower(name))
}

// IsValid reports whether the schema has a rule for the element.
func (s *Schema) IsValid(name string) bool {
	_, ok := s.elements[name]
	return ok
}

// IsValidAttr reports whether the attribute is valid on the given tag.
func (s *Schema) IsValidAttr(tag, attr string) bool {
	if s.globalAttr[attr] {
		return true
	}
	return s.tagAttr[tag][attr]
}

// AddValidAttrs marks the space-separated attribute names valid on the
// given tag ("*" for every tag).
func (s *Schema) AddValidAttrs(tag, attrs string) {
	if tag == "*" {
		for name := range toSet(attrs) {
			s.globalAttr[name] = true
		}
		return
	}
	if s.tagAttr[tag] == nil {
		s.tagAttr[tag] = map[string]bool{}
	}
	for name := range toSet(attrs) {
		s.tagAttr[tag][name] = true
	}
}

// HasChildRules reports whether the schema tracks nesting for the name.
// Untracked names are treated as opaque custom elements.
func (s *Schema) HasChildRules(name string) bool {
	_, ok := s.children[name]
	return ok
}

// IsValidChild reports whether child may nest directly under parent.
// Parents the schema does not track accept anything.
func (s *Schema) IsValidChild(parent, child string) bool {
	allowed, ok := s.children[parent]
	if !ok {
		return true
	}
	return allowed[child]
}

// AddValidChildren adds the space-separated child names to parent's
// allowed children, creating the nesting rule if absent.
func (s *Schema) AddValidChildren(parent, childNames string) {
	if s.children[parent] == nil {
		s.children[parent] = map[string]bool{}
	}
	for name := range toSet(childNames) {
		s.children[parent][name] = true
	}
}

// IsBlock reports whether the element is block-level per the schema.
func (s *Schema) IsBlock(name string) bool {
	return s.blockElements[name]
}

// BlockElements returns the block-level element set.
func (s *Schema) BlockElements() map[string]bool { return s.blockElements }

// WhitespaceElements returns the set of elements whose text content
// preserves whitespace verbatim.
func (s *Schema) WhitespaceElements() map[string]bool { return s.whitespaceElements }

// NonEmptyElements returns the set of elements that count as content
// when deciding whether an ancestor is empty.
func (s *Schema) NonEmptyElements() map[string]bool { return s.nonEmptyElements }

// SpecialElements returns elements with non-HTML or preformatted
// content models (script, style, textarea...).
func (s *Schema) SpecialElements() map[string]bool { return s.specialElements }

// IsBoolAttr reports whether the attribute is boolean-valued; boolean
// attributes are normalized so their value equals their name.
func (s *Schema) IsBoolAttr(name string) bool {
	return s.boolAttrs[name]
}

func toSet(names string) map[string]bool {
	set := map[string]bool{}
	for _, name := range strings.Fields(names) {
		set[name] = true
	}
	return set
}
