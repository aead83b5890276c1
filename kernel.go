// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

// _MAGIC is the sentinel stored in every live handle. Destroy overwrites it
// with its complement so that a destroyed handle can be told apart from a
// valid one.
const _MAGIC uint32 = 0xdeadbeef

// _BUFLEN sizes the line buffer used when reading a genders database file.
// Lines of _BUFLEN bytes or more are a parse error.
const _BUFLEN int = 65536

// _MAXHOSTNAMELEN is the maximal length of a node name. Expanded node names
// longer than this are a parse error.
const _MAXHOSTNAMELEN int = 64

// _HASHMULTIPLIER sizes the node index. We reserve room for numnodes *
// _HASHMULTIPLIER entries to keep the probability of collisions low.
const _HASHMULTIPLIER int = 2

// DefaultFile is the genders database read by Load and Parse when the caller
// passes an empty filename.
const DefaultFile string = "/etc/genders"
