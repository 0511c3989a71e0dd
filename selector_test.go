package stun

import (
	"errors"
	"slices"
	"testing"
)

// buildPage returns:
//
//	body#root
//	  div.content#post
//	    img.zoom#a
//	    p#para
//	      img#b
//	    img.hide#c
//	  div.gallery#gal
//	    img#d
func buildPage() *Node {
	root := NewElement("body", "root")
	content := NewElement("div", "post")
	content.AddClass("content")
	a := NewElement("img", "a")
	a.AddClass("zoom")
	p := NewElement("p", "para")
	b := NewElement("img", "b")
	c := NewElement("img", "c")
	c.AddClass(ClassHide)
	gallery := NewElement("div", "gal")
	gallery.AddClass("gallery")
	d := NewElement("img", "d")

	root.AddChild(content)
	content.AddChild(a)
	content.AddChild(p)
	p.AddChild(b)
	content.AddChild(c)
	root.AddChild(gallery)
	gallery.AddChild(d)
	return root
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestSelectorQueryAll(t *testing.T) {
	root := buildPage()
	tests := []struct {
		sel  string
		want []string
	}{
		{"img", []string{"a", "b", "c", "d"}},
		{"IMG", []string{"a", "b", "c", "d"}},
		{".zoom", []string{"a"}},
		{"#b", []string{"b"}},
		{"img.zoom", []string{"a"}},
		{".content img", []string{"a", "b", "c"}},
		{".content > img", []string{"a", "c"}},
		{"body > div > img", []string{"a", "c", "d"}},
		{"img:not(.hide)", []string{"a", "b", "d"}},
		{".content img:not(.hide):not(.zoom)", []string{"b"}},
		{".gallery img, .zoom", []string{"a", "d"}},
		{"*", []string{"root", "post", "a", "para", "b", "c", "gal", "d"}},
		{"p img", []string{"b"}},
		{"span", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			sel, err := ParseSelector(tt.sel)
			if err != nil {
				t.Fatalf("ParseSelector(%q): %v", tt.sel, err)
			}
			if got := names(sel.QueryAll(root)); !slices.Equal(got, tt.want) {
				t.Errorf("QueryAll(%q) = %v, want %v", tt.sel, got, tt.want)
			}
			if sel.String() != tt.sel {
				t.Errorf("String() = %q", sel.String())
			}
		})
	}
}

func TestParseSelectorErrors(t *testing.T) {
	for _, src := range []string{"", "  ", "img,", ".", "#", "img >", "img:hover", "img:not(.a", "img)"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseSelector(src)
			if err == nil {
				t.Fatalf("ParseSelector(%q) should fail", src)
			}
			if !errors.Is(err, ErrInvalidSelector) {
				t.Errorf("error %v should wrap ErrInvalidSelector", err)
			}
		})
	}
}

func TestSceneQuery(t *testing.T) {
	s := NewScene(DefaultConfig())
	page := buildPage()
	for _, c := range slices.Clone(page.Children()) {
		s.Root().AddChild(c)
	}
	got, err := s.Query(".content > img.zoom")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names(got), []string{"a"}) {
		t.Errorf("Query = %v, want [a]", names(got))
	}
	if _, err := s.Query("::"); err == nil {
		t.Error("invalid selector should fail")
	}
}
