// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

// configs is used to store the values of different parameters of the handle
type configs struct {
	hostname string // local short hostname, queried from the OS if empty
}

func makeconfigs() *configs {
	return &configs{}
}

// Hostname is a configuration option (function). Used as a parameter in New
// it sets the name of the local host instead of querying the operating
// system. Queries that take a node name use this value when the caller passes
// an empty one. The name is truncated at the first dot during Load, like a
// name obtained from the OS.
func Hostname(name string) func(*configs) {
	return func(c *configs) {
		c.hostname = name
	}
}
