// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package genders

// listCreate allocates a list of length string slots.
func (g *Genders) listCreate(length int) ([]string, error) {
	if err := g.checkLoaded(); err != nil {
		return nil, err
	}
	g.seterr(ErrSuccess)
	if length <= 0 {
		return nil, nil
	}
	return make([]string, length), nil
}

// listClear resets every slot of list to the empty string.
func (g *Genders) listClear(list []string) error {
	if err := g.checkLoaded(); err != nil {
		return err
	}
	for i := range list {
		list[i] = ""
	}
	return g.seterr(ErrSuccess)
}

// listDestroy releases a list. Storage is reclaimed by the runtime once the
// caller drops its reference; the call only validates the handle, for
// symmetry with listCreate.
func (g *Genders) listDestroy(list []string) error {
	if err := g.checkLoaded(); err != nil {
		return err
	}
	return g.seterr(ErrSuccess)
}

// NodelistCreate returns a list with one slot per node of the database,
// suitable as the output parameter of GetNodes.
func (g *Genders) NodelistCreate() ([]string, error) {
	if err := g.checkLoaded(); err != nil {
		return nil, err
	}
	return g.listCreate(g.numnodes)
}

// NodelistClear resets a list obtained from NodelistCreate.
func (g *Genders) NodelistClear(list []string) error {
	return g.listClear(list)
}

// NodelistDestroy releases a list obtained from NodelistCreate.
func (g *Genders) NodelistDestroy(list []string) error {
	return g.listDestroy(list)
}

// AttrlistCreate returns a list with one slot per distinct attribute of the
// database, suitable as the output parameter of GetAttr and GetAttrAll.
func (g *Genders) AttrlistCreate() ([]string, error) {
	if err := g.checkLoaded(); err != nil {
		return nil, err
	}
	return g.listCreate(g.numattrs)
}

// AttrlistClear resets a list obtained from AttrlistCreate.
func (g *Genders) AttrlistClear(list []string) error {
	return g.listClear(list)
}

// AttrlistDestroy releases a list obtained from AttrlistCreate.
func (g *Genders) AttrlistDestroy(list []string) error {
	return g.listDestroy(list)
}

// VallistCreate returns a list with one slot per distinct attribute of the
// database, suitable as the vals output parameter of GetAttr.
func (g *Genders) VallistCreate() ([]string, error) {
	if err := g.checkLoaded(); err != nil {
		return nil, err
	}
	return g.listCreate(g.numattrs)
}

// VallistClear resets a list obtained from VallistCreate.
func (g *Genders) VallistClear(list []string) error {
	return g.listClear(list)
}

// VallistDestroy releases a list obtained from VallistCreate.
func (g *Genders) VallistDestroy(list []string) error {
	return g.listDestroy(list)
}
