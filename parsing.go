// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"
)

// parseState carries the tables being populated by one parsing pass. Load
// commits the state to the handle; Parse uses a throwaway state and discards
// it when linting completes.
type parseState struct {
	nodes    []*node
	nodemap  map[string]*node
	attrvals [][]*attrval
}

func newParseState() *parseState {
	return &parseState{nodemap: make(map[string]*node)}
}

// insertNode returns the node record bearing name, creating it on first use.
func (st *parseState) insertNode(name string) *node {
	if n, ok := st.nodemap[name]; ok {
		return n
	}
	n := &node{name: name}
	st.nodemap[name] = n
	st.nodes = append(st.nodes, n)
	return n
}

// insertAttr adds attr to the set of distinct attribute names and reports
// whether it was new.
func (g *Genders) insertAttr(attr string) bool {
	if g.attrset[attr] {
		return false
	}
	g.attrset[attr] = true
	g.attrs = append(g.attrs, attr)
	return true
}

// parseErr reports one parse error. In lint mode (lineNum > 0) it writes a
// "Line N: reason" diagnostic to w, the line counts as failed, and parsing
// continues with the next line; during Load it aborts with ErrParse.
func (g *Genders) parseErr(lineNum int, w io.Writer, format string, args ...interface{}) (int, error) {
	if lineNum > 0 {
		fmt.Fprintf(w, "Line %d: %s\n", lineNum, fmt.Sprintf(format, args...))
		g.errnum = ErrParse
		return 1, nil
	}
	return 0, g.seterr(ErrParse)
}

// parseLine parses one line of a genders database into st. During Load
// (lineNum == 0) it also maintains the handle statistics; in lint mode the
// statistics are left alone.
func (g *Genders) parseLine(st *parseState, line string, lineNum int, w io.Writer) (int, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if line == "" {
		return 0, nil
	}
	line = strings.TrimLeftFunc(line, unicode.IsSpace)

	// the first whitespace delimited token names the nodes, the rest of the
	// line is the attribute list
	rangetok := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		rangetok = line[:i]
		line = strings.TrimLeftFunc(line[i+1:], unicode.IsSpace)
	} else {
		line = ""
	}

	var group []*attrval
	maxSubstLen := 0
	if line != "" {
		if strings.ContainsAny(line, " \t") {
			return g.parseErr(lineNum, w, "white space in attribute list")
		}
		for _, elem := range strings.Split(line, ",") {
			if elem == "" {
				continue
			}
			av := &attrval{attr: elem}
			if i := strings.IndexByte(elem, '='); i >= 0 {
				av.attr, av.val, av.hasval = elem[:i], elem[i+1:], true
			}
			if findAttrvalInGroup(group, av.attr) != nil {
				return g.parseErr(lineNum, w, "duplicate attribute %q listed", av.attr)
			}
			group = append(group, av)
			if lineNum == 0 {
				if g.insertAttr(av.attr) {
					g.numattrs++
				}
				if len(av.attr) > g.maxattrlen {
					g.maxattrlen = len(av.attr)
				}
				if av.hasval {
					if strings.Contains(av.val, "%n") {
						if len(av.val) > maxSubstLen {
							maxSubstLen = len(av.val)
						}
					} else if len(av.val) > g.maxvallen {
						g.maxvallen = len(av.val)
					}
				}
			}
		}
	}

	hosts, err := expandHostRange(rangetok)
	if err != nil {
		return g.parseErr(lineNum, w, "bad node range %q", rangetok)
	}
	lineMaxNodeLen := 0
	for _, name := range hosts {
		if len(name) > _MAXHOSTNAMELEN {
			return g.parseErr(lineNum, w, "hostname too long")
		}
		if strings.IndexByte(name, '.') >= 0 {
			return g.parseErr(lineNum, w, "node not a shortened hostname")
		}
		n := st.insertNode(name)
		if group != nil {
			for _, av := range group {
				if findAttrval(n.attrlist, av.attr) != nil {
					return g.parseErr(lineNum, w, "duplicate attribute listed for node %q", name)
				}
			}
			n.attrlist = append(n.attrlist, group)
			n.attrcount += len(group)
		}
		if lineNum == 0 {
			if n.attrcount > g.maxattrs {
				g.maxattrs = n.attrcount
			}
			if len(name) > g.maxnodelen {
				g.maxnodelen = len(name)
			}
			if len(name) > lineMaxNodeLen {
				lineMaxNodeLen = len(name)
			}
		}
	}

	// a %n substitution on this line bounds maxvallen by each such value
	// expanded, at every %n it contains, against the longest node name of the
	// line
	if lineNum == 0 && maxSubstLen > 0 {
		for _, av := range group {
			if k := strings.Count(av.val, "%n"); k > 0 {
				if v := len(av.val) + k*(lineMaxNodeLen-2); v > g.maxvallen {
					g.maxvallen = v
				}
			}
		}
	}
	if group != nil {
		st.attrvals = append(st.attrvals, group)
	}
	return 0, nil
}

// Load opens and parses a genders database and populates the handle with its
// contents. An empty filename selects DefaultFile. A handle can be loaded
// only once; a second call fails with ErrIsLoaded. On failure the handle is
// restored to its unloaded state and Load can be attempted again.
func (g *Genders) Load(filename string) error {
	if err := g.check(); err != nil {
		return err
	}
	if g.loaded {
		return g.seterr(ErrIsLoaded)
	}
	if filename == "" {
		filename = DefaultFile
	}
	f, err := os.Open(filename)
	if err != nil {
		return g.seterr(ErrOpen)
	}
	defer f.Close()

	st := newParseState()
	g.attrset = make(map[string]bool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), _BUFLEN-1)
	for scanner.Scan() {
		if _, err := g.parseLine(st, scanner.Text(), 0, nil); err != nil {
			g.reset()
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		g.reset()
		if errors.Is(err, bufio.ErrTooLong) {
			return g.seterr(ErrParse)
		}
		return g.seterr(ErrRead)
	}
	if len(st.nodes) == 0 {
		g.reset()
		return g.seterr(ErrParse)
	}

	name := g.hostname
	if name == "" {
		if name, err = os.Hostname(); err != nil {
			g.reset()
			return g.seterr(ErrInternal)
		}
	}
	if len(name) > _MAXHOSTNAMELEN {
		name = name[:_MAXHOSTNAMELEN]
	}
	// shorten hostname if necessary
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	g.nodename = name
	if len(name) > g.maxnodelen {
		g.maxnodelen = len(name)
	}

	g.nodes = st.nodes
	g.attrvals = st.attrvals
	g.numnodes = len(st.nodes)
	g.index = make(map[string][]*node, g.numnodes*_HASHMULTIPLIER)
	for _, n := range g.nodes {
		g.index[n.name] = append(g.index[n.name], n)
	}
	g.valbuf = make([]byte, 0, g.maxvallen+1)
	g.loaded = true
	if _LOGLEVEL > 0 {
		log.Printf("loaded %d nodes and %d attributes from %s\n", g.numnodes, g.numattrs, filename)
	}
	return g.seterr(ErrSuccess)
}

// Parse checks a genders database for errors without populating the handle.
// Diagnostics of the form "Line N: reason" are written to w (the standard
// error when w is nil) and the number of lines in error is returned; zero
// means the database is clean. A database from which no node can be parsed is
// itself an error. Only an overlong line or an I/O error aborts the pass.
func (g *Genders) Parse(filename string, w io.Writer) (int, error) {
	if err := g.check(); err != nil {
		return -1, err
	}
	if filename == "" {
		filename = DefaultFile
	}
	if w == nil {
		w = os.Stderr
	}
	f, err := os.Open(filename)
	if err != nil {
		return -1, g.seterr(ErrOpen)
	}
	defer f.Close()

	st := newParseState()
	errcount := 0
	lineNum := 1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), _BUFLEN-1)
	for scanner.Scan() {
		rv, err := g.parseLine(st, scanner.Text(), lineNum, w)
		if err != nil {
			return -1, err
		}
		errcount += rv
		lineNum++
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			fmt.Fprintf(w, "Line %d: exceeds maximum allowed length\n", lineNum)
			return -1, g.seterr(ErrParse)
		}
		return -1, g.seterr(ErrRead)
	}
	if len(st.nodes) == 0 {
		fmt.Fprintln(w, "No nodes successfully parsed")
		return -1, g.seterr(ErrParse)
	}
	g.seterr(ErrSuccess)
	return errcount, nil
}
