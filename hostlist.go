// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

import (
	"fmt"
	"strconv"
	"strings"
)

// expandHostRange expands a comma separated list of host range tokens into
// the ordered sequence of node names it denotes. A token is either a plain
// hostname or of the form prefix[ranges]suffix, where ranges is a comma
// separated list of numbers (n[2]) or ascending intervals (n[1-3]). A lower
// bound written with leading zeros fixes the width of every generated number,
// so that node[01-03] expands to node01, node02, node03.
func expandHostRange(s string) ([]string, error) {
	var hosts []string
	for _, tok := range splitRanges(s) {
		if tok == "" {
			return nil, fmt.Errorf("empty host range token in %q", s)
		}
		expanded, err := expandToken(tok)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, expanded...)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("empty host range %q", s)
	}
	return hosts, nil
}

// splitRanges splits s on the commas that sit outside brackets, so that
// "a,b[1-2,5]" yields the two tokens "a" and "b[1-2,5]".
func splitRanges(s string) []string {
	var toks []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				toks = append(toks, s[start:i])
				start = i + 1
			}
		}
	}
	return append(toks, s[start:])
}

func expandToken(tok string) ([]string, error) {
	open := strings.IndexByte(tok, '[')
	if open < 0 {
		if strings.IndexByte(tok, ']') >= 0 {
			return nil, fmt.Errorf("unbalanced brackets in %q", tok)
		}
		return []string{tok}, nil
	}
	end := strings.IndexByte(tok, ']')
	if end < open {
		return nil, fmt.Errorf("unbalanced brackets in %q", tok)
	}
	prefix, ranges, suffix := tok[:open], tok[open+1:end], tok[end+1:]
	if strings.ContainsAny(suffix, "[]") {
		return nil, fmt.Errorf("more than one bracket pair in %q", tok)
	}
	if ranges == "" {
		return nil, fmt.Errorf("empty range in %q", tok)
	}
	var hosts []string
	for _, r := range strings.Split(ranges, ",") {
		lo, hi := r, r
		if i := strings.IndexByte(r, '-'); i >= 0 {
			lo, hi = r[:i], r[i+1:]
		}
		min, err := parseBound(lo, tok)
		if err != nil {
			return nil, err
		}
		max, err := parseBound(hi, tok)
		if err != nil {
			return nil, err
		}
		if max < min {
			return nil, fmt.Errorf("descending range %q in %q", r, tok)
		}
		// leading zeros on the lower bound fix the number width
		width := 0
		if len(lo) > 1 && lo[0] == '0' {
			width = len(lo)
		}
		for k := min; k <= max; k++ {
			hosts = append(hosts, fmt.Sprintf("%s%0*d%s", prefix, width, k, suffix))
		}
	}
	return hosts, nil
}

func parseBound(s, tok string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing range bound in %q", tok)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("bad range bound %q in %q", s, tok)
		}
	}
	return strconv.Atoi(s)
}
