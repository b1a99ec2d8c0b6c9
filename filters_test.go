package domparser

import (
	"strings"
	"testing"
)

func TestNodeFilterDispatch(t *testing.T) {
	p := NewParser(Options{}, nil)

	var got []string
	p.AddNodeFilter("em", func(nodes []*Node, name string, args *ParseArgs) {
		for _, n := range nodes {
			got = append(got, name+":"+n.Name)
		}
	})

	p.Parse("<em>a</em><strong>b</strong><em>c</em>", nil)
	if len(got) != 2 || got[0] != "em:em" || got[1] != "em:em" {
		t.Errorf("got %v, want two em matches", got)
	}
}

func TestAttributeFilterDispatch(t *testing.T) {
	p := NewParser(Options{}, nil)

	var names []string
	p.AddAttributeFilter("href", func(nodes []*Node, name string, args *ParseArgs) {
		for _, n := range nodes {
			names = append(names, n.Name)
		}
	})

	p.Parse(`<a href="https://x.test/">x</a><p id="y">y</p>`, nil)
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("got %v, want only the anchor", names)
	}
}

func TestCommaSeparatedFilterNames(t *testing.T) {
	p := NewParser(Options{}, nil)

	var seen []string
	p.AddNodeFilter("em, strong", func(nodes []*Node, name string, args *ParseArgs) {
		seen = append(seen, name)
	})

	p.Parse("<em>a</em><strong>b</strong>", nil)
	if len(seen) != 2 || seen[0] != "em" || seen[1] != "strong" {
		t.Errorf("got %v, want [em strong]", seen)
	}
}

func TestFilterCallbacksRunInRegistrationOrder(t *testing.T) {
	p := NewParser(Options{}, nil)

	var order []string
	p.AddNodeFilter("em", func([]*Node, string, *ParseArgs) { order = append(order, "first") })
	p.AddNodeFilter("em", func([]*Node, string, *ParseArgs) { order = append(order, "second") })

	p.Parse("<em>x</em>", nil)
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("got %v", order)
	}
}

// Attribute filters registered later still dispatch after earlier ones.
// Matching walks the registry newest first, but dispatch order is
// registration order; a mismatch here breaks plugins that rely on it.
func TestAttributeFilterDispatchOrder(t *testing.T) {
	p := NewParser(Options{}, nil)

	var order []string
	p.AddAttributeFilter("id", func([]*Node, string, *ParseArgs) { order = append(order, "id") })
	p.AddAttributeFilter("class", func([]*Node, string, *ParseArgs) { order = append(order, "class") })

	p.Parse(`<p id="a" class="b">x</p>`, nil)
	if strings.Join(order, ",") != "id,class" {
		t.Errorf("got %v, want id before class", order)
	}
}

func TestFilterMutatesTree(t *testing.T) {
	p := NewParser(Options{}, nil)
	p.AddNodeFilter("em", func(nodes []*Node, name string, args *ParseArgs) {
		for _, n := range nodes {
			n.Name = "strong"
		}
	})

	root := p.Parse("<em>x</em>", nil)
	if got := Serialize(root); got != "<strong>x</strong>" {
		t.Errorf("got %q", got)
	}
}

func TestFilterSkipsDetachedNodes(t *testing.T) {
	p := NewParser(Options{Validate: true}, nil)

	var count int
	p.AddNodeFilter("li", func(nodes []*Node, name string, args *ParseArgs) { count += len(nodes) })

	// The list item is unwrapped by repair before filters run.
	p.Parse("<li>x</li>", nil)
	if count != 0 {
		t.Errorf("detached node reached a filter, count = %d", count)
	}
}

func TestFiltersSkippedForInvalidFragment(t *testing.T) {
	p := NewParser(Options{Validate: true}, nil)

	var called bool
	p.AddNodeFilter("tr", func([]*Node, string, *ParseArgs) { called = true })

	args := &ParseArgs{Context: "p"}
	p.Parse("<tr><td>x</td></tr>", args)
	if !args.Invalid {
		t.Fatal("expected the fragment to be flagged invalid")
	}
	if called {
		t.Error("filters must not run on invalid fragments")
	}
}

func TestFilterAccessors(t *testing.T) {
	p := NewParser(Options{}, nil)
	p.AddNodeFilter("em", func([]*Node, string, *ParseArgs) {})
	p.AddNodeFilter("em", func([]*Node, string, *ParseArgs) {})
	p.AddAttributeFilter("href", func([]*Node, string, *ParseArgs) {})

	nf := p.NodeFilters()
	if len(nf) != 1 || nf[0].Name != "em" || len(nf[0].Callbacks) != 2 {
		t.Errorf("node filters: %+v", nf)
	}
	af := p.AttributeFilters()
	if len(af) != 1 || af[0].Name != "href" {
		t.Errorf("attribute filters: %+v", af)
	}
}
