// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Stats returns information about the handle
func (g *Genders) Stats() string {
	if err := g.check(); err != nil {
		return fmt.Sprintf("Error: %s\n", err)
	}
	res := fmt.Sprintf("Loaded:      %t\n", g.loaded)
	res += fmt.Sprintf("Nodes:       %d\n", g.numnodes)
	res += fmt.Sprintf("Attributes:  %d\n", g.numattrs)
	res += fmt.Sprintf("Maxattrs:    %d\n", g.maxattrs)
	res += fmt.Sprintf("Maxnodelen:  %d\n", g.maxnodelen)
	res += fmt.Sprintf("Maxattrlen:  %d\n", g.maxattrlen)
	res += fmt.Sprintf("Maxvallen:   %d\n", g.maxvallen)
	if g.loaded {
		res += "==============\n"
		res += fmt.Sprintf("Local node:  %s\n", g.nodename)
		res += fmt.Sprintf("Index slots: %d\n", len(g.index))
	}
	return res
}

// Print writes a textual dump of the database to w, one node per line with
// its attributes in value-substituted form, sorted by node name. The output
// is a valid genders database, modulo the substitution.
func (g *Genders) Print(w io.Writer) error {
	if err := g.checkLoaded(); err != nil {
		return err
	}
	nodes := make([]*node, len(g.nodes))
	copy(nodes, g.nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].name < nodes[j].name })
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, n := range nodes {
		attrs := make([]string, 0, n.attrcount)
		for _, group := range n.attrlist {
			for _, av := range group {
				if !av.hasval {
					attrs = append(attrs, av.attr)
					continue
				}
				subst, ok, err := g.getval(n, av)
				if err != nil {
					return err
				}
				if !ok {
					subst = av.val
				}
				attrs = append(attrs, av.attr+"="+subst)
			}
		}
		if len(attrs) == 0 {
			fmt.Fprintf(tw, "%s\n", n.name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", n.name, strings.Join(attrs, ","))
	}
	g.seterr(ErrSuccess)
	return tw.Flush()
}
