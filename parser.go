// Parser: ties the pipeline together. Raw HTML goes through
// sanitization, tree import, whitespace normalization, schema
// validation, invalid-node repair, root-block wrapping and filter
// dispatch, in that order, and comes out as a well-formed Node tree.
package domparser

// Options is the per-parser configuration. The zero value is a
// non-validating parser with root name "body" and no root block.
type Options struct {
	// Validate applies schema-driven filtering and repair: unknown
	// elements are unwrapped and invalid nesting is fixed or flagged.
	Validate bool

	// RootName is the tag name of the synthetic root. Default "body".
	RootName string

	// ForcedRootBlock wraps stray inline/text content directly under
	// the root into this block element; empty disables wrapping.
	// ForcedRootBlockAttrs are applied to each synthetic wrapper.
	ForcedRootBlock      string
	ForcedRootBlockAttrs []Attr

	// PaddEmptyWithBR pads empty elements with <br> instead of a
	// non-breaking space.
	PaddEmptyWithBR bool

	// Repair reconciles schema-invalid children with the tree; nil
	// selects the built-in repairer.
	Repair RepairFunc

	// Sanitizer relaxations. All default to the safe (off) setting.
	AllowHTMLDataURLs        bool
	AllowSVGDataURLs         bool
	AllowScriptURLs          bool
	AllowConditionalComments bool
	AllowHTMLInNamedAnchor   bool
	AllowUnsafeLinkTarget    bool
}

// ParseArgs are the per-call arguments of one Parse invocation.
type ParseArgs struct {
	// Context parses the fragment as content of this tag instead of a
	// full document body.
	Context string

	// IsRootContent treats the root as top-level content even when it
	// is not named body, enabling boundary whitespace trimming and
	// root-block wrapping.
	IsRootContent bool

	// ForcedRootBlock overrides the parser-level setting for this
	// call; nil keeps it, a pointer to "" disables wrapping.
	ForcedRootBlock *string

	// Invalid is set by Parse when a contextual parse found top-level
	// content that cannot legally sit in the context. The tree is
	// still well-formed, but filters are not run and the fragment
	// should not be inserted as-is.
	Invalid bool
}

// Parser converts untrusted HTML strings into validated Node trees.
// One Parser may serve many sequential Parse calls; the filter
// registries and the unique-id counter are the only state carried
// across calls, so concurrent parses need one Parser instance each.
type Parser struct {
	opts   Options
	schema *Schema

	nodeFilters      []Filter
	attributeFilters []Filter

	// uid backs the {$uid} placeholder substitution, monotonic per
	// parser instance.
	uid int
}

// NewParser creates a parser with the given options and schema. A nil
// schema selects the default HTML5 rule set.
func NewParser(opts Options, schema *Schema) *Parser {
	if opts.RootName == "" {
		opts.RootName = "body"
	}
	if schema == nil {
		schema = NewSchema()
	}
	return &Parser{opts: opts, schema: schema}
}

// Schema returns the schema the parser validates against.
func (p *Parser) Schema() *Schema {
	return p.schema
}

// Parse sanitizes and parses htmlIn into a Node tree rooted at a
// synthetic fragment node. It never fails: malformed input degrades to
// a partial or empty tree. The only caller-visible signal is
// args.Invalid for contextual parses.
func (p *Parser) Parse(htmlIn string, args *ParseArgs) *Node {
	if args == nil {
		args = &ParseArgs{}
	}

	native := p.sanitize(htmlIn, args)
	root := p.importTree(native, args)

	nz := newNormalizer(p, root, args)
	nz.firstPass()
	nz.secondPass()

	res := p.validateTree(root, args)

	if p.opts.Validate && len(res.invalidChildren) > 0 {
		repair := p.opts.Repair
		if repair == nil {
			repair = defaultRepair
		}
		// Repaired trees may grow new nodes; matching them keeps the
		// filter contract intact.
		onNew := func(n *Node) { p.matchNode(n, res) }

		if args.Context != "" {
			// Top-level invalid children mean the fragment cannot be
			// inserted at this context at all; everything deeper is
			// still repaired.
			var deeper []*Node
			for _, n := range res.invalidChildren {
				if n.Parent == root {
					args.Invalid = true
				} else {
					deeper = append(deeper, n)
				}
			}
			if len(deeper) > 0 {
				repair(p, deeper, onNew)
			}
		} else {
			repair(p, res.invalidChildren, onNew)
		}
	}

	blockName := p.opts.ForcedRootBlock
	if args.ForcedRootBlock != nil {
		blockName = *args.ForcedRootBlock
	}
	if blockName != "" {
		p.addRootBlocks(root, args, blockName)
	}

	if !args.Invalid {
		p.runFilters(res, args)
	}
	return root
}
