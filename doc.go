// Package domparser is a schema-driven HTML sanitizing parser: it
// converts an untrusted HTML string into a validated in-memory tree
// whose structure is guaranteed consistent with a configurable
// content-model [Schema], removing or neutralizing disallowed markup,
// scripts, and attributes along the way.
//
// # Pipeline
//
// A [Parser.Parse] call runs a fixed pipeline:
//
//  1. Raw sanitization: the input is parsed with golang.org/x/net/html
//     and stripped against a schema-driven allow-list. Unknown
//     elements are unwrapped, dangerous URLs and attributes dropped.
//  2. Tree import into [Node] form.
//  3. Whitespace normalization: collapsing, boundary trimming and
//     empty-element removal or padding, schema-aware and in two
//     passes.
//  4. Schema validation: unknown elements unwrap, output-name
//     mappings apply, invalid nesting is collected.
//  5. Repair: invalid children are hoisted, unwrapped or removed so
//     the final tree conforms to the schema; for contextual parses,
//     irreparable top-level content sets [ParseArgs.Invalid] instead.
//  6. Root-block wrapping of stray top-level inline content.
//  7. Filter dispatch: callbacks registered with
//     [Parser.AddNodeFilter] and [Parser.AddAttributeFilter] receive
//     the matched nodes.
//
// There are no errors on this path: sanitization and validation are
// self-healing, and malformed input degrades to a partial or empty
// tree.
//
// # Concurrency
//
// A Parser is synchronous and single-threaded; use one Parser
// instance per concurrent parse. Filter registries are configuration,
// not per-call state, and must be set up before parsing begins.
//
// # Example
//
//	p := domparser.NewParser(domparser.Options{Validate: true}, nil)
//	root := p.Parse(userInput, nil)
//	clean := domparser.Serialize(root)
package domparser
