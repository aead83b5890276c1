// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

// Genders is a handle to an in-memory genders database. It caches all the
// information loaded from a database file. Consider the following database:
//
//	nodename[1-2]  attrname1=val1,attrname2=val2
//	nodename1      attrname3=val3,attrname4
//	nodename3      attrname5
//
// After a call to Load, the handle can be viewed like the following:
//
//	numnodes   = 3
//	numattrs   = 5
//	maxattrs   = 4            (nodename1 carries attrname1 to attrname4)
//	nodes      = nodename1 -> nodename2 -> nodename3
//	attrvals   = group1 {attrname1=val1, attrname2=val2}
//	             group2 {attrname3=val3, attrname4}
//	             group3 {attrname5}
//	attrs      = attrname1 ... attrname5
//	index      = nodename1 -> {node1}, nodename2 -> {node2}, ...
//
// where nodename1 references group1 and group2, nodename2 references group1,
// and nodename3 references group3. The groups are owned by the handle and
// shared between the nodes of one source line.
type Genders struct {
	magic      uint32 // handle sentinel, see _MAGIC
	errnum     Errno  // error code of the most recent operation
	loaded     bool   // database loaded?
	numnodes   int    // number of nodes in the database
	numattrs   int    // number of distinct attributes in the database
	maxattrs   int    // max attributes any one node carries
	maxnodelen int    // max node name length
	maxattrlen int    // max attribute name length
	maxvallen  int    // max value length, after %n substitution
	hostname   string // local hostname set with the Hostname option
	nodename   string // local short hostname, resolved during Load
	nodes      []*node
	attrvals   [][]*attrval      // attrval groups, one per source line
	attrs      []string          // distinct attributes, in appearance order
	attrset    map[string]bool   // membership set over attrs
	index      map[string][]*node
	valbuf     []byte            // scratch buffer for %n substitution
}

// node stores a node name and references to the attrval groups contributed by
// every source line that lists the node. attrcount caches the total number of
// attrval pairs in those groups.
type node struct {
	name      string
	attrlist  [][]*attrval
	attrcount int
}

// attrval stores one attribute and its value. hasval distinguishes an
// attribute with an empty value (attr=) from an attribute without a value.
type attrval struct {
	attr   string
	val    string
	hasval bool
}

// New returns a new, unloaded handle. It is possible to set optional
// (configuration) parameters, such as the name of the local host (Hostname),
// using configs functions. The handle must be populated with Load before it
// can answer queries.
func New(options ...func(*configs)) *Genders {
	config := makeconfigs()
	for _, f := range options {
		f(config)
	}
	g := &Genders{magic: _MAGIC, hostname: config.hostname}
	g.reset()
	return g
}

// reset restores the handle to its post-New state, dropping every table. The
// magic sentinel, error code and configured hostname are left alone.
func (g *Genders) reset() {
	g.loaded = false
	g.numnodes = 0
	g.numattrs = 0
	g.maxattrs = 0
	g.maxnodelen = 0
	g.maxattrlen = 0
	g.maxvallen = 0
	g.nodename = ""
	g.nodes = nil
	g.attrvals = nil
	g.attrs = nil
	g.attrset = nil
	g.index = nil
	g.valbuf = nil
}

// Destroy drops every table owned by the handle and poisons its magic
// sentinel. Any call after Destroy fails with ErrMagic.
func (g *Genders) Destroy() error {
	if err := g.check(); err != nil {
		return err
	}
	g.reset()
	g.errnum = ErrSuccess
	g.magic = ^_MAGIC
	return nil
}

// check validates the handle sentinel. It is the first step of every public
// operation. The error code of a handle that fails the check is never
// touched.
func (g *Genders) check() error {
	if g == nil {
		return ErrNullHandle
	}
	if g.magic != _MAGIC {
		return ErrMagic
	}
	return nil
}

// checkLoaded validates the sentinel and requires a loaded handle.
func (g *Genders) checkLoaded() error {
	if err := g.check(); err != nil {
		return err
	}
	if !g.loaded {
		return g.seterr(ErrNotLoaded)
	}
	return nil
}
