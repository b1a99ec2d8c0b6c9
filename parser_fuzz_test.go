package domparser

import "testing"

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"<p>hello</p>",
		"text<p>x</p>text2",
		"<p>  a  b  </p>",
		"<script>alert(1)</script>",
		`<a href="javascript:x">y</a>`,
		"<em>a<div>b</div></em>",
		"<li>stray</li>",
		"<table><tr><td>x</td></tr></table>",
		"<p><custom foo=bar>x</custom></p>",
		"<!-- comment --><p>a</p>",
		"<p>a\x00b\x0bc</p>",
		"<div><div><div><p>deep</p></div></div></div>",
		"<p>&amp;&lt;&gt;&quot;&nbsp;</p>",
		"<p a=1 a=2 a=3>dupes</p>",
		"</p></div><p",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		p := NewParser(Options{Validate: true, ForcedRootBlock: "p"}, nil)

		root := p.Parse(input, nil)
		if root == nil {
			t.Fatal("nil root")
		}
		checkTreeLinks(t, root)

		// The output must reparse without structural change.
		first := Serialize(root)
		second := Serialize(p.Parse(first, nil))
		if first != second {
			t.Errorf("unstable: %q reparsed to %q", first, second)
		}
	})
}
