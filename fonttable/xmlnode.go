// seehuhn.de/go/hangul - compose Hangul syllable glyphs from jamo outlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fonttable

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// node is a generic XML element.  Tables which are not interpreted are
// kept as node trees and written back unchanged.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []*node    `xml:",any"`
	Text    string     `xml:",chardata"`
}

func newNode(name string, attrs ...string) *node {
	n := &node{XMLName: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs = append(n.Attrs, xml.Attr{
			Name:  xml.Name{Local: attrs[i]},
			Value: attrs[i+1],
		})
	}
	return n
}

// valueNode returns an element of the form <name value="v"/>.
func valueNode(name string, v string) *node {
	return newNode(name, "value", v)
}

func (n *node) add(children ...*node) *node {
	n.Nodes = append(n.Nodes, children...)
	return n
}

func (n *node) name() string {
	return n.XMLName.Local
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) setAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// child returns the first child element with the given name, or nil.
func (n *node) child(name string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.Nodes {
		if c.name() == name {
			return c
		}
	}
	return nil
}

// children returns all child elements with the given name.
func (n *node) children(name string) []*node {
	if n == nil {
		return nil
	}
	var res []*node
	for _, c := range n.Nodes {
		if c.name() == name {
			res = append(res, c)
		}
	}
	return res
}

// value returns the "value" attribute of the named child element.
func (n *node) value(child string) (string, bool) {
	c := n.child(child)
	if c == nil {
		return "", false
	}
	return c.attr("value")
}

func (n *node) intValue(child string) (int, bool, error) {
	s, ok := n.value(child)
	if !ok {
		return 0, false, nil
	}
	v, err := parseInt(s)
	if err != nil {
		return 0, true, &FormatError{Element: child, Reason: err.Error()}
	}
	return v, true, nil
}

func (n *node) floatValue(child string) (float64, bool, error) {
	s, ok := n.value(child)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, &FormatError{Element: child, Reason: err.Error()}
	}
	return v, true, nil
}

// replace substitutes the first child with the name of c by c.  If no such
// child exists, c is appended.
func (n *node) replace(c *node) {
	for i, old := range n.Nodes {
		if old.name() == c.name() {
			n.Nodes[i] = c
			return
		}
	}
	n.Nodes = append(n.Nodes, c)
}

// shallow returns a copy of n which shares the attributes and children
// with n, but can be modified using replace.
func (n *node) shallow() *node {
	res := *n
	res.Nodes = append([]*node(nil), n.Nodes...)
	return &res
}

func (n *node) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: n.XMLName, Attr: n.Attrs}
	err := enc.EncodeToken(start)
	if err != nil {
		return err
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		err = enc.EncodeToken(xml.CharData(text))
		if err != nil {
			return err
		}
	}
	for _, c := range n.Nodes {
		err = c.encode(enc)
		if err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// parseInt parses decimal and hexadecimal (0x...) integers, as used in
// TTX files.
func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	return int(v), err
}
