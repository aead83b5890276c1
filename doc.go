// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package genders implements an in-memory cluster configuration database. It
reads a text file that maps node name ranges to attribute and value pairs,
builds indices over it, and answers read-only queries such as "which nodes
carry attribute A with value V" or "what attributes does node N carry".

Basics

A database is a text file with one record per line:

	<node-range>  <attr>[=<val>][,<attr>[=<val>]]*

The node range is either a plain hostname or a range expression such as
node[01-03], which stands for node01, node02 and node03. Node names are short
hostnames (no dot, at most 64 bytes). The attribute list may not contain
whitespace; a # starts a comment and blank lines are ignored. The same node
may appear on several lines, each line contributing one group of attributes,
as long as no attribute is listed twice for one node.

A value may contain the token %n, which expands to the name of the node being
queried, so that a single line

	node[1-9]  scratch=/tmp/%n

gives every node its own scratch directory. A literal percent is written %%.

Use of the handle

All the information of a database file is cached in a handle created with New
and populated, once, with Load. The handle then answers queries until it is
released with Destroy:

	g := genders.New()
	if err := g.Load(""); err != nil {
		log.Fatal(err)
	}
	nodes, _ := g.NodelistCreate()
	count, _ := g.GetNodes(nodes, "scratch", "")

Every operation also records its outcome as a numeric code in the handle,
available through Errnum and translated with Strerror; the codes and their
messages are those of the genders C library distributed by LLNL, of which
this package is a pure Go reimplementation. Like with that library, Parse
offers a non-destructive lint mode that reports each faulty line of a file,
with its line number and the first error found on it, without populating the
handle.

A handle is not safe for concurrent use: queries share a value substitution
buffer sized during Load. Two goroutines each holding their own handle can
operate without coordination.
*/
package genders
