// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// basicdb is a small database with shared attrval groups: n1 and n2 share the
// group of the first line, and n1 carries a second group of its own.
const basicdb = `n[1-2]  a=1,b=2
n1      c=3
n3      d
`

// substdb exercises %n and %% substitution.
const substdb = `n[1-2]  path=/srv/%n/data,owner=%%root
`

func writeGenders(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genders")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadGenders(t *testing.T, content string, options ...func(*configs)) *Genders {
	t.Helper()
	g := New(options...)
	if err := g.Load(writeGenders(t, content)); err != nil {
		t.Fatalf("Load: unexpected error %s", err)
	}
	return g
}

//********************************************************************************************

func TestLoadBasic(t *testing.T) {
	g := loadGenders(t, basicdb, Hostname("n1"))
	var statTests = []struct {
		name     string
		fn       func() (int, error)
		expected int
	}{
		{"numnodes", g.GetNumNodes, 3},
		{"numattrs", g.GetNumAttrs, 4},
		{"maxattrs", g.GetMaxAttrs, 3},
		{"maxnodelen", g.GetMaxNodeLen, 2},
		{"maxattrlen", g.GetMaxAttrLen, 1},
		{"maxvallen", g.GetMaxValLen, 1},
	}
	for _, tt := range statTests {
		actual, err := tt.fn()
		if err != nil {
			t.Fatalf("%s: unexpected error %s", tt.name, err)
		}
		if actual != tt.expected {
			t.Errorf("%s: expected %d, actual %d", tt.name, tt.expected, actual)
		}
	}
}

func TestLoadAttrGroups(t *testing.T) {
	g := loadGenders(t, basicdb, Hostname("n1"))
	attrs, _ := g.AttrlistCreate()
	vals, _ := g.VallistCreate()
	count, err := g.GetAttr(attrs, vals, "n1")
	if err != nil {
		t.Fatalf("GetAttr(n1): unexpected error %s", err)
	}
	if count != 3 {
		t.Fatalf("GetAttr(n1): expected 3 attributes, actual %d", count)
	}
	expected := map[string]string{"a": "1", "b": "2", "c": "3"}
	for i := 0; i < count; i++ {
		if expected[attrs[i]] != vals[i] {
			t.Errorf("GetAttr(n1): attribute %s: expected value %q, actual %q", attrs[i], expected[attrs[i]], vals[i])
		}
	}

	// an attribute without a value must leave the caller's slot alone
	for i := range vals {
		vals[i] = "KEEP"
	}
	count, err = g.GetAttr(attrs, vals, "n3")
	if err != nil || count != 1 {
		t.Fatalf("GetAttr(n3): expected 1 attribute, actual %d (%v)", count, err)
	}
	if attrs[0] != "d" {
		t.Errorf("GetAttr(n3): expected attribute d, actual %s", attrs[0])
	}
	if vals[0] != "KEEP" {
		t.Errorf("GetAttr(n3): value slot of a valueless attribute was overwritten to %q", vals[0])
	}
}

func TestLoadCommentsAndBlanks(t *testing.T) {
	g := loadGenders(t, `
# cluster description
  n[1-2]   compute  # trailing comment

n3
`, Hostname("n1"))
	numnodes, _ := g.GetNumNodes()
	if numnodes != 3 {
		t.Errorf("expected 3 nodes, actual %d", numnodes)
	}
	if _, ok, _ := g.TestAttr("n2", "compute"); !ok {
		t.Errorf("expected n2 to carry compute")
	}
	count, err := g.GetAttr(make([]string, 4), nil, "n3")
	if err != nil || count != 0 {
		t.Errorf("expected n3 to carry no attributes, actual %d (%v)", count, err)
	}
}

func TestLoadErrors(t *testing.T) {
	var errorTests = []struct {
		name     string
		content  string
		expected Errno
	}{
		{"duplicate attr across lines", "n1  a=1\nn1  a=2\n", ErrParse},
		{"duplicate attr same line", "n1  a=1,a=2\n", ErrParse},
		{"white space in attrs", "n1  a=1, b=2\n", ErrParse},
		{"dot in node name", "n1.example  a\n", ErrParse},
		{"hostname too long", strings.Repeat("a", 65) + "  x\n", ErrParse},
		{"bad node range", "n[1-  a\n", ErrParse},
		{"no nodes", "# empty database\n", ErrParse},
	}
	for _, tt := range errorTests {
		g := New(Hostname("n1"))
		err := g.Load(writeGenders(t, tt.content))
		if err != tt.expected {
			t.Errorf("%s: expected error %v, actual %v", tt.name, tt.expected, err)
		}
		if g.Errnum() != int(tt.expected) {
			t.Errorf("%s: expected errnum %d, actual %d", tt.name, tt.expected, g.Errnum())
		}
		// a failed Load leaves the handle unloaded and reusable
		if err := g.Load(writeGenders(t, basicdb)); err != nil {
			t.Errorf("%s: Load after failed Load: unexpected error %s", tt.name, err)
		}
	}
}

func TestLoadTwice(t *testing.T) {
	g := loadGenders(t, basicdb, Hostname("n1"))
	if err := g.Load(writeGenders(t, basicdb)); err != ErrIsLoaded {
		t.Errorf("expected ErrIsLoaded, actual %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	g := New()
	if err := g.Load(filepath.Join(t.TempDir(), "nosuchfile")); err != ErrOpen {
		t.Errorf("expected ErrOpen, actual %v", err)
	}
}

func TestLoadLineOverflow(t *testing.T) {
	content := "n1  a=" + strings.Repeat("v", _BUFLEN+16) + "\n"
	g := New(Hostname("n1"))
	if err := g.Load(writeGenders(t, content)); err != ErrParse {
		t.Errorf("Load: expected ErrParse, actual %v", err)
	}

	out := new(bytes.Buffer)
	count, err := g.Parse(writeGenders(t, content), out)
	if count != -1 || err != ErrParse {
		t.Errorf("Parse: expected (-1, ErrParse), actual (%d, %v)", count, err)
	}
	if !strings.Contains(out.String(), "Line 1: exceeds maximum allowed length") {
		t.Errorf("Parse: missing overflow diagnostic, actual %q", out.String())
	}
}

func TestLoadHostnameShortened(t *testing.T) {
	g := loadGenders(t, basicdb, Hostname("login.example.com"))
	name, err := g.GetNodeName()
	if err != nil {
		t.Fatalf("GetNodeName: unexpected error %s", err)
	}
	if name != "login" {
		t.Errorf("GetNodeName: expected login, actual %s", name)
	}
	// the local hostname participates in maxnodelen even when unlisted
	maxnodelen, _ := g.GetMaxNodeLen()
	if maxnodelen != 5 {
		t.Errorf("maxnodelen: expected 5, actual %d", maxnodelen)
	}
}

func TestLoadSubstitutionStatistics(t *testing.T) {
	g := loadGenders(t, substdb, Hostname("n1"))
	// /srv/%n/data is 12 bytes and expands to 12 against n1 and n2; %%root
	// stays at its literal length
	maxvallen, _ := g.GetMaxValLen()
	if maxvallen != 12 {
		t.Errorf("maxvallen: expected 12, actual %d", maxvallen)
	}
}

//********************************************************************************************

func TestParseLint(t *testing.T) {
	content := `n1 a b,c
n2 d, e
n3 f
`
	g := New()
	out := new(bytes.Buffer)
	count, err := g.Parse(writeGenders(t, content), out)
	if err != nil {
		t.Fatalf("Parse: unexpected error %s", err)
	}
	if count != 2 {
		t.Errorf("Parse: expected 2 errors, actual %d", count)
	}
	expected := "Line 1: white space in attribute list\nLine 2: white space in attribute list\n"
	if out.String() != expected {
		t.Errorf("Parse: expected diagnostics %q, actual %q", expected, out.String())
	}
	// lint must not populate the handle
	if _, err := g.GetNumNodes(); err != ErrNotLoaded {
		t.Errorf("expected ErrNotLoaded after Parse, actual %v", err)
	}
}

func TestParseLintNonFatal(t *testing.T) {
	// every line error is reported and parsing continues with the next line
	content := `n1.bad  a
` + strings.Repeat("a", 65) + `  b
n2  c=1,c=2
n3  ok
`
	g := New()
	out := new(bytes.Buffer)
	count, err := g.Parse(writeGenders(t, content), out)
	if err != nil {
		t.Fatalf("Parse: unexpected error %s", err)
	}
	if count != 3 {
		t.Errorf("Parse: expected 3 errors, actual %d", count)
	}
	for _, diag := range []string{
		"Line 1: node not a shortened hostname",
		"Line 2: hostname too long",
		"Line 3: duplicate attribute \"c\" listed",
	} {
		if !strings.Contains(out.String(), diag) {
			t.Errorf("Parse: missing diagnostic %q in %q", diag, out.String())
		}
	}
}

func TestParseNoNodes(t *testing.T) {
	g := New()
	out := new(bytes.Buffer)
	count, err := g.Parse(writeGenders(t, "# nothing here\n"), out)
	if count != -1 || err != ErrParse {
		t.Errorf("Parse: expected (-1, ErrParse), actual (%d, %v)", count, err)
	}
	if !strings.Contains(out.String(), "No nodes successfully parsed") {
		t.Errorf("Parse: missing diagnostic, actual %q", out.String())
	}
}

func TestParseCleanDatabases(t *testing.T) {
	// every database accepted by Load must lint clean
	for _, content := range []string{basicdb, substdb, "n[1-9]  compute\n"} {
		path := writeGenders(t, content)
		g := New(Hostname("n1"))
		if err := g.Load(path); err != nil {
			t.Fatalf("Load: unexpected error %s", err)
		}
		count, err := g.Parse(path, new(bytes.Buffer))
		if err != nil || count != 0 {
			t.Errorf("Parse(%q): expected 0 errors, actual %d (%v)", content, count, err)
		}
	}
}

func TestParseDuplicateForNode(t *testing.T) {
	content := `n[1-2]  a=1
n2      a=2
`
	g := New()
	out := new(bytes.Buffer)
	count, err := g.Parse(writeGenders(t, content), out)
	if err != nil {
		t.Fatalf("Parse: unexpected error %s", err)
	}
	if count != 1 {
		t.Errorf("Parse: expected 1 error, actual %d", count)
	}
	if !strings.Contains(out.String(), "Line 2: duplicate attribute listed for node \"n2\"") {
		t.Errorf("Parse: missing diagnostic, actual %q", out.String())
	}
}
