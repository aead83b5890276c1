// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

import "strings"

// findAttrvalInGroup returns the attrval carrying attr in one group, or nil.
func findAttrvalInGroup(group []*attrval, attr string) *attrval {
	for _, av := range group {
		if av.attr == attr {
			return av
		}
	}
	return nil
}

// findAttrval returns the attrval carrying attr in any of the groups of an
// attribute list, or nil. The loader guarantees that an attribute appears at
// most once across the groups of a node, so the first match is the only one.
func findAttrval(attrlist [][]*attrval, attr string) *attrval {
	for _, group := range attrlist {
		if av := findAttrvalInGroup(group, attr); av != nil {
			return av
		}
	}
	return nil
}

// getnode returns the node record registered under name, or nil.
func (g *Genders) getnode(name string) *node {
	for _, n := range g.index[name] {
		if n.name == name {
			return n
		}
	}
	return nil
}

// getval substitutes %n and %% in the value of av when queried against node
// n, writing into the handle scratch buffer. It returns the substituted value
// and true when a substitution occurred, and "" and false when the value
// contains neither %n nor %%. A percent followed by any other byte is emitted
// as a literal percent and the next byte is then processed normally; this
// permissiveness is kept for compatibility with existing databases. The
// caller is responsible for av carrying a value.
func (g *Genders) getval(n *node, av *attrval) (string, bool, error) {
	if !strings.Contains(av.val, "%n") && !strings.Contains(av.val, "%%") {
		return "", false, nil
	}
	buf := g.valbuf[:0]
	val := av.val
	for i := 0; i < len(val); i++ {
		if val[i] == '%' && i+1 < len(val) {
			if val[i+1] == '%' {
				buf = append(buf, '%')
				i++
				continue
			}
			if val[i+1] == 'n' {
				if len(av.val)-2+len(n.name) > g.maxvallen+1 {
					return "", false, g.seterr(ErrInternal)
				}
				buf = append(buf, n.name...)
				i++
				continue
			}
		}
		buf = append(buf, val[i])
	}
	return string(buf), true, nil
}

// matchval reports whether the value of av, queried against n, equals val.
// Both the literal value and, when %n or %% occur in it, the substituted
// value are compared; either matching is sufficient.
func (g *Genders) matchval(n *node, av *attrval, val string) (bool, error) {
	subst, ok, err := g.getval(n, av)
	if err != nil {
		return false, err
	}
	return (ok && subst == val) || av.val == val, nil
}

// putInList writes s into slot index of list, failing with ErrOverflow when
// the list is full.
func (g *Genders) putInList(s string, list []string, index int) error {
	if index >= len(list) {
		return g.seterr(ErrOverflow)
	}
	list[index] = s
	return nil
}

// GetNumNodes returns the number of nodes in the database.
func (g *Genders) GetNumNodes() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.numnodes, nil
}

// GetNumAttrs returns the number of distinct attributes in the database.
func (g *Genders) GetNumAttrs() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.numattrs, nil
}

// GetMaxAttrs returns the maximal number of attributes carried by any one
// node.
func (g *Genders) GetMaxAttrs() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.maxattrs, nil
}

// GetMaxNodeLen returns the length of the longest node name. The name of the
// local host participates in the maximum even when it is not listed in the
// database.
func (g *Genders) GetMaxNodeLen() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.maxnodelen, nil
}

// GetMaxAttrLen returns the length of the longest attribute name.
func (g *Genders) GetMaxAttrLen() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.maxattrlen, nil
}

// GetMaxValLen returns an upper bound on the length of any value, accounting
// for %n substitution against every node that can reference it.
func (g *Genders) GetMaxValLen() (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	g.seterr(ErrSuccess)
	return g.maxvallen, nil
}

// GetNodeName returns the short name of the local host.
func (g *Genders) GetNodeName() (string, error) {
	if err := g.checkLoaded(); err != nil {
		return "", err
	}
	g.seterr(ErrSuccess)
	return g.nodename, nil
}

// GetNodes writes into nodes, in database order, the name of every node that
// matches the query, and returns the number of entries written. An empty attr
// selects every node; otherwise a node matches when it carries attr, and,
// when val is not empty, when the value of that attribute equals val either
// literally or after %n substitution. When the list fills up before the scan
// completes, GetNodes fails with ErrOverflow and the list holds the first
// len(nodes) matches.
func (g *Genders) GetNodes(nodes []string, attr, val string) (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	index := 0
	for _, n := range g.nodes {
		save := false
		if attr == "" {
			save = true
		} else if av := findAttrval(n.attrlist, attr); av != nil {
			if val == "" {
				save = true
			} else if av.hasval {
				ok, err := g.matchval(n, av, val)
				if err != nil {
					return -1, err
				}
				save = ok
			}
		}
		if save {
			if err := g.putInList(n.name, nodes, index); err != nil {
				return -1, err
			}
			index++
		}
	}
	g.seterr(ErrSuccess)
	return index, nil
}

// GetAttr writes into attrs every attribute of a node, and, unless vals is
// nil, the value of each attribute into the matching slot of vals, with %n
// substitution applied. The slot of an attribute without a value is left as
// set by the caller. An empty node selects the local host. It returns the
// number of attributes written, or fails with ErrNotFound when the node is
// not in the database.
func (g *Genders) GetAttr(attrs, vals []string, nodename string) (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	if nodename == "" {
		nodename = g.nodename
	}
	n := g.getnode(nodename)
	if n == nil {
		return -1, g.seterr(ErrNotFound)
	}
	index := 0
	for _, group := range n.attrlist {
		for _, av := range group {
			if err := g.putInList(av.attr, attrs, index); err != nil {
				return -1, err
			}
			if vals != nil && av.hasval {
				subst, ok, err := g.getval(n, av)
				if err != nil {
					return -1, err
				}
				if !ok {
					subst = av.val
				}
				if err := g.putInList(subst, vals, index); err != nil {
					return -1, err
				}
			}
			index++
		}
	}
	g.seterr(ErrSuccess)
	return index, nil
}

// GetAttrAll writes every distinct attribute name of the database into attrs,
// in order of first appearance, and returns the number of entries written.
func (g *Genders) GetAttrAll(attrs []string) (int, error) {
	if err := g.checkLoaded(); err != nil {
		return -1, err
	}
	if g.numattrs > len(attrs) {
		return -1, g.seterr(ErrOverflow)
	}
	for i, attr := range g.attrs {
		attrs[i] = attr
	}
	g.seterr(ErrSuccess)
	return len(g.attrs), nil
}

// TestAttr reports whether a node carries an attribute. When it does and the
// attribute has a value, the value is returned with %n substitution applied;
// otherwise the returned value is empty. An empty nodename selects the local
// host. A node absent from the database fails with ErrNotFound.
func (g *Genders) TestAttr(nodename, attr string) (string, bool, error) {
	if err := g.checkLoaded(); err != nil {
		return "", false, err
	}
	if attr == "" {
		return "", false, g.seterr(ErrParameters)
	}
	if nodename == "" {
		nodename = g.nodename
	}
	n := g.getnode(nodename)
	if n == nil {
		return "", false, g.seterr(ErrNotFound)
	}
	av := findAttrval(n.attrlist, attr)
	if av == nil {
		g.seterr(ErrSuccess)
		return "", false, nil
	}
	val := ""
	if av.hasval {
		subst, ok, err := g.getval(n, av)
		if err != nil {
			return "", false, err
		}
		if ok {
			val = subst
		} else {
			val = av.val
		}
	}
	g.seterr(ErrSuccess)
	return val, true, nil
}

// TestAttrVal reports whether a node carries an attribute with a given value,
// comparing both the literal and the substituted form. An empty val makes
// TestAttrVal equivalent to TestAttr. An empty nodename selects the local
// host.
func (g *Genders) TestAttrVal(nodename, attr, val string) (bool, error) {
	if err := g.checkLoaded(); err != nil {
		return false, err
	}
	if attr == "" {
		return false, g.seterr(ErrParameters)
	}
	if nodename == "" {
		nodename = g.nodename
	}
	n := g.getnode(nodename)
	if n == nil {
		return false, g.seterr(ErrNotFound)
	}
	av := findAttrval(n.attrlist, attr)
	retval := false
	if av != nil {
		if val == "" {
			retval = true
		} else if av.hasval {
			ok, err := g.matchval(n, av, val)
			if err != nil {
				return false, err
			}
			retval = ok
		}
	}
	g.seterr(ErrSuccess)
	return retval, nil
}

// IsNode reports whether a node is listed in the database. An empty nodename
// selects the local host.
func (g *Genders) IsNode(nodename string) (bool, error) {
	if err := g.checkLoaded(); err != nil {
		return false, err
	}
	if nodename == "" {
		nodename = g.nodename
	}
	g.seterr(ErrSuccess)
	return g.getnode(nodename) != nil, nil
}

// IsAttr reports whether an attribute is used anywhere in the database.
func (g *Genders) IsAttr(attr string) (bool, error) {
	if err := g.checkLoaded(); err != nil {
		return false, err
	}
	if attr == "" {
		return false, g.seterr(ErrParameters)
	}
	g.seterr(ErrSuccess)
	return g.attrset[attr], nil
}

// IsAttrVal reports whether some node carries attr with value val, comparing
// both the literal and the substituted form of each value. The scan is linear
// over the node table.
func (g *Genders) IsAttrVal(attr, val string) (bool, error) {
	if err := g.checkLoaded(); err != nil {
		return false, err
	}
	if attr == "" || val == "" {
		return false, g.seterr(ErrParameters)
	}
	for _, n := range g.nodes {
		av := findAttrval(n.attrlist, attr)
		if av == nil || !av.hasval {
			continue
		}
		ok, err := g.matchval(n, av, val)
		if err != nil {
			return false, err
		}
		if ok {
			g.seterr(ErrSuccess)
			return true, nil
		}
	}
	g.seterr(ErrSuccess)
	return false, nil
}
