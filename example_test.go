package domparser_test

import (
	"fmt"

	"github.com/editorkit/domparser"
)

func Example() {
	p := domparser.NewParser(domparser.Options{Validate: true}, nil)

	root := p.Parse(`<p onclick="evil()">Hello <custom>there</custom></p>`, nil)
	fmt.Println(domparser.Serialize(root))
	// Output: <p>Hello there</p>
}

func ExampleParser_Parse_fragment() {
	p := domparser.NewParser(domparser.Options{Validate: true}, nil)

	args := &domparser.ParseArgs{Context: "tbody"}
	root := p.Parse("<tr><td>cell</td></tr>", args)
	fmt.Println(args.Invalid, domparser.Serialize(root))
	// Output: false <tr><td>cell</td></tr>
}

func ExampleParser_AddNodeFilter() {
	p := domparser.NewParser(domparser.Options{}, nil)
	p.AddNodeFilter("b", func(nodes []*domparser.Node, name string, args *domparser.ParseArgs) {
		for _, n := range nodes {
			n.Name = "strong"
		}
	})

	root := p.Parse("<p><b>bold</b></p>", nil)
	fmt.Println(domparser.Serialize(root))
	// Output: <p><strong>bold</strong></p>
}

func ExampleOptions_forcedRootBlock() {
	p := domparser.NewParser(domparser.Options{
		Validate:        true,
		ForcedRootBlock: "p",
	}, nil)

	root := p.Parse("loose text<p>kept</p>more", nil)
	fmt.Println(domparser.Serialize(root))
	// Output: <p>loose text</p><p>kept</p><p>more</p>
}
