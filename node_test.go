package domparser

import "testing"

// checkTreeLinks verifies the doubly linked tree invariant for every
// node reachable from root: parent/child lists and prev/next chains
// must agree in both directions.
func checkTreeLinks(t *testing.T, root *Node) {
	t.Helper()
	var walk func(n *Node)
	walk = func(n *Node) {
		// Forward chain from firstChild must reach lastChild.
		var prev *Node
		for c := n.FirstChild; c != nil; c = c.Next {
			if c.Parent != n {
				t.Fatalf("child %q has parent %v, want %q", c.Name, c.Parent, n.Name)
			}
			if c.Prev != prev {
				t.Fatalf("child %q has wrong prev link", c.Name)
			}
			if c.Next == nil && n.LastChild != c {
				t.Fatalf("lastChild of %q is not the end of the sibling chain", n.Name)
			}
			prev = c
		}
		if n.FirstChild == nil && n.LastChild != nil {
			t.Fatalf("node %q has lastChild without firstChild", n.Name)
		}
		for c := n.FirstChild; c != nil; c = c.Next {
			walk(c)
		}
	}
	walk(root)
}

func TestAppendAndRemove(t *testing.T) {
	p := NewElement("p")
	a := p.Append(NewText("a"))
	b := p.Append(NewText("b"))
	c := p.Append(NewText("c"))
	checkTreeLinks(t, p)

	if p.FirstChild != a || p.LastChild != c {
		t.Fatal("wrong first/last child after appends")
	}

	b.Remove()
	checkTreeLinks(t, p)
	if a.Next != c || c.Prev != a {
		t.Error("siblings not relinked after remove")
	}
	if b.Parent != nil || b.Prev != nil || b.Next != nil {
		t.Error("removed node still carries tree links")
	}

	a.Remove()
	c.Remove()
	checkTreeLinks(t, p)
	if p.FirstChild != nil || p.LastChild != nil {
		t.Error("parent not emptied after removing all children")
	}
}

func TestAppendReparents(t *testing.T) {
	p1 := NewElement("p")
	p2 := NewElement("p")
	a := p1.Append(NewText("a"))
	p2.Append(a)
	checkTreeLinks(t, p1)
	checkTreeLinks(t, p2)
	if p1.FirstChild != nil {
		t.Error("node still attached to old parent")
	}
	if a.Parent != p2 {
		t.Error("node not attached to new parent")
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	p := NewElement("p")
	b := p.Append(NewText("b"))
	a := p.InsertBefore(NewText("a"), b)
	c := p.InsertAfter(NewText("c"), b)
	checkTreeLinks(t, p)
	if p.FirstChild != a || a.Next != b || b.Next != c || p.LastChild != c {
		t.Errorf("got order %q %q %q", p.FirstChild.Value, p.FirstChild.Next.Value, p.LastChild.Value)
	}
}

func TestUnwrap(t *testing.T) {
	p := NewElement("p")
	p.Append(NewText("a"))
	em := p.Append(NewElement("em"))
	x := em.Append(NewText("x"))
	y := em.Append(NewText("y"))
	p.Append(NewText("b"))

	em.Unwrap()
	checkTreeLinks(t, p)

	want := []string{"a", "x", "y", "b"}
	i := 0
	for c := p.FirstChild; c != nil; c = c.Next {
		if c.Value != want[i] {
			t.Fatalf("child %d = %q, want %q", i, c.Value, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("got %d children, want %d", i, len(want))
	}
	if x.Parent != p || y.Parent != p {
		t.Error("unwrapped children not reparented")
	}
}

func TestReplace(t *testing.T) {
	p := NewElement("p")
	p.Append(NewText("a"))
	old := p.Append(NewElement("em"))
	p.Append(NewText("b"))

	span := old.Replace(NewElement("span"))
	checkTreeLinks(t, p)
	if p.FirstChild.Next != span || old.Parent != nil {
		t.Error("replace did not swap nodes in place")
	}
}

func TestAttrOrderAndLookup(t *testing.T) {
	n := NewElement("a")
	n.SetAttr("href", "x")
	n.SetAttr("title", "t")
	n.SetAttr("href", "y") // overwrite keeps position

	if got := n.Attr("href"); got != "y" {
		t.Errorf("Attr(href) = %q, want y", got)
	}
	if !n.HasAttr("title") || n.HasAttr("class") {
		t.Error("HasAttr wrong")
	}
	if n.Attrs[0].Name != "href" || n.Attrs[1].Name != "title" {
		t.Error("insertion order not preserved")
	}

	n.RemoveAttr("href")
	if n.HasAttr("href") || n.Attrs[0].Name != "title" {
		t.Error("RemoveAttr broke ordering or index")
	}
	if got := n.Attr("title"); got != "t" {
		t.Errorf("index stale after removal: Attr(title) = %q", got)
	}
}

func TestWalkDocumentOrder(t *testing.T) {
	root := NewNode(FragmentNode, "body")
	p := root.Append(NewElement("p"))
	p.Append(NewText("a"))
	em := p.Append(NewElement("em"))
	em.Append(NewText("b"))
	root.Append(NewElement("hr"))

	var names []string
	for n := root.Walk(); n != nil; n = n.Walk() {
		names = append(names, n.Name)
	}
	want := []string{"p", "#text", "em", "#text", "hr"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	schema := NewSchema()
	nonEmpty := schema.NonEmptyElements()
	ws := schema.WhitespaceElements()

	tests := []struct {
		name  string
		build func() *Node
		want  bool
	}{
		{"no children", func() *Node { return NewElement("p") }, true},
		{"whitespace text only", func() *Node {
			p := NewElement("p")
			p.Append(NewText("  \n "))
			return p
		}, true},
		{"real text", func() *Node {
			p := NewElement("p")
			p.Append(NewText("x"))
			return p
		}, false},
		{"nested empty inline", func() *Node {
			p := NewElement("p")
			p.Append(NewElement("em")).Append(NewElement("b"))
			return p
		}, true},
		{"non-empty element descendant", func() *Node {
			p := NewElement("p")
			p.Append(NewElement("img"))
			return p
		}, false},
		{"descendant with attributes", func() *Node {
			p := NewElement("p")
			a := p.Append(NewElement("a"))
			a.SetAttr("name", "anchor")
			return p
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().IsEmpty(nonEmpty, ws); got != tt.want {
				t.Errorf("IsEmpty = %v, want %v", got, tt.want)
			}
		})
	}
}
