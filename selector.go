package stun

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is wrapped by selector parse errors.
var ErrInvalidSelector = errors.New("invalid selector")

// Selector is a parsed node query. Supported syntax: type (img), universal
// (*), class (.content), name (#hero), compound (img.zoom), :not(compound),
// descendant (.content img) and child (.gallery > img) combinators, and
// comma-separated groups.
type Selector struct {
	src    string
	groups []complexSelector
}

type complexSelector struct {
	parts []compoundSelector
	// combinators[i] joins parts[i] and parts[i+1]: ' ' or '>'.
	combinators []byte
}

type compoundSelector struct {
	tag     string // "" or "*" matches any
	name    string
	classes []string
	not     []compoundSelector
}

// ParseSelector compiles src.
func ParseSelector(src string) (*Selector, error) {
	sel := &Selector{src: src}
	for _, group := range splitGroups(src) {
		p := selectorParser{src: group}
		cs, err := p.parseComplex()
		if err != nil {
			return nil, fmt.Errorf("parse selector %q: %w: %s", src, ErrInvalidSelector, err.Error())
		}
		sel.groups = append(sel.groups, cs)
	}
	if len(sel.groups) == 0 {
		return nil, fmt.Errorf("parse selector %q: %w: empty", src, ErrInvalidSelector)
	}
	return sel, nil
}

// String returns the source text of the selector.
func (sel *Selector) String() string {
	return sel.src
}

// Match reports whether n matches any group of the selector.
func (sel *Selector) Match(n *Node) bool {
	for i := range sel.groups {
		g := &sel.groups[i]
		if g.match(n, len(g.parts)-1) {
			return true
		}
	}
	return false
}

// QueryAll returns every descendant of root (root included) matching sel, in
// document order.
func (sel *Selector) QueryAll(root *Node) []*Node {
	var out []*Node
	walk(root, func(n *Node) bool {
		if sel.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// match checks parts[:i+1] against n and its ancestors.
func (c *complexSelector) match(n *Node, i int) bool {
	if n == nil || !c.parts[i].match(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch c.combinators[i-1] {
	case '>':
		return c.match(n.Parent, i-1)
	default:
		for p := n.Parent; p != nil; p = p.Parent {
			if c.match(p, i-1) {
				return true
			}
		}
		return false
	}
}

func (c *compoundSelector) match(n *Node) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	if c.name != "" && c.name != n.Name {
		return false
	}
	for _, cl := range c.classes {
		if !n.HasClass(cl) {
			return false
		}
	}
	for i := range c.not {
		if c.not[i].match(n) {
			return false
		}
	}
	return true
}

// splitGroups splits on top-level commas, leaving commas inside :not() alone.
func splitGroups(src string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, src[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, src[start:])
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) eof() bool { return p.pos >= len(p.src) }

func (p *selectorParser) peek() byte { return p.src[p.pos] }

func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parseComplex() (complexSelector, error) {
	var cs complexSelector
	p.skipSpace()
	if p.eof() {
		return cs, errors.New("empty group")
	}
	for {
		comp, err := p.parseCompound()
		if err != nil {
			return cs, err
		}
		cs.parts = append(cs.parts, comp)

		spaced := p.skipSpace()
		if p.eof() {
			return cs, nil
		}
		comb := byte(' ')
		if p.peek() == '>' {
			comb = '>'
			p.pos++
			p.skipSpace()
			if p.eof() {
				return cs, errors.New("dangling '>'")
			}
		} else if !spaced {
			return cs, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
		}
		cs.combinators = append(cs.combinators, comb)
	}
}

func (p *selectorParser) parseCompound() (compoundSelector, error) {
	var c compoundSelector
	empty := true
	if !p.eof() && p.peek() == '*' {
		c.tag = "*"
		p.pos++
		empty = false
	} else if ident := p.ident(); ident != "" {
		c.tag = ident
		empty = false
	}
	for !p.eof() {
		switch p.peek() {
		case '.':
			p.pos++
			ident := p.ident()
			if ident == "" {
				return c, fmt.Errorf("missing class name at offset %d", p.pos)
			}
			c.classes = append(c.classes, ident)
		case '#':
			p.pos++
			ident := p.ident()
			if ident == "" {
				return c, fmt.Errorf("missing name at offset %d", p.pos)
			}
			c.name = ident
		case ':':
			if !strings.HasPrefix(p.src[p.pos:], ":not(") {
				return c, fmt.Errorf("unsupported pseudo-class at offset %d", p.pos)
			}
			p.pos += len(":not(")
			p.skipSpace()
			inner, err := p.parseCompound()
			if err != nil {
				return c, err
			}
			p.skipSpace()
			if p.eof() || p.peek() != ')' {
				return c, errors.New("unterminated :not(")
			}
			p.pos++
			c.not = append(c.not, inner)
		default:
			if empty {
				return c, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
			}
			return c, nil
		}
		empty = false
	}
	if empty {
		return c, errors.New("empty compound")
	}
	return c, nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
