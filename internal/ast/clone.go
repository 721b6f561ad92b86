package ast

// CloneType returns a deep copy of t. Source positions are kept, so a clone
// still prints and locates exactly like the original.
func CloneType(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *PathType:
		return clonePath(t)
	case *ReferenceType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *PointerType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *TupleType:
		c := *t
		c.Elems = cloneTypes(t.Elems)
		return &c
	case *ParenType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *SliceType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *ArrayType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *ImplTraitType:
		c := *t
		c.Bounds = CloneBounds(t.Bounds)
		return &c
	case *TraitObjectType:
		c := *t
		c.Bounds = CloneBounds(t.Bounds)
		return &c
	case *BareFnType:
		c := *t
		c.ForLifetimes = cloneStrings(t.ForLifetimes)
		if t.Inputs != nil {
			c.Inputs = make([]*BareFnArg, len(t.Inputs))
			for i, in := range t.Inputs {
				c.Inputs[i] = &BareFnArg{Name: in.Name, Type: CloneType(in.Type)}
			}
		}
		c.Output = CloneType(t.Output)
		return &c
	case *NeverType:
		c := *t
		return &c
	case *InferType:
		c := *t
		return &c
	case *MacroType:
		c := *t
		return &c
	}
	return t
}

// CloneBounds returns a deep copy of a bound list.
func CloneBounds(bounds []Bound) []Bound {
	if bounds == nil {
		return nil
	}
	out := make([]Bound, len(bounds))
	for i, b := range bounds {
		out[i] = cloneBound(b)
	}
	return out
}

func cloneBound(b Bound) Bound {
	switch b := b.(type) {
	case *TraitBound:
		c := *b
		c.ForLifetimes = cloneStrings(b.ForLifetimes)
		c.Path = clonePath(b.Path)
		return &c
	case *LifetimeBound:
		c := *b
		return &c
	}
	return b
}

func clonePath(p *PathType) *PathType {
	if p == nil {
		return nil
	}
	c := *p
	if p.QSelf != nil {
		q := *p.QSelf
		q.Type = CloneType(p.QSelf.Type)
		q.As = clonePath(p.QSelf.As)
		c.QSelf = &q
	}
	if p.Segments != nil {
		c.Segments = make([]*PathSegment, len(p.Segments))
		for i, seg := range p.Segments {
			name := *seg.Name
			c.Segments[i] = &PathSegment{Name: &name, Args: cloneGenericArgs(seg.Args)}
		}
	}
	return &c
}

func cloneGenericArgs(ga *GenericArgs) *GenericArgs {
	if ga == nil {
		return nil
	}
	c := *ga
	if ga.Args != nil {
		c.Args = make([]GenericArg, len(ga.Args))
		for i, a := range ga.Args {
			c.Args[i] = cloneGenericArg(a)
		}
	}
	c.Inputs = cloneTypes(ga.Inputs)
	c.Output = CloneType(ga.Output)
	return &c
}

func cloneGenericArg(a GenericArg) GenericArg {
	switch a := a.(type) {
	case *TypeArg:
		return &TypeArg{Type: CloneType(a.Type)}
	case *LifetimeArg:
		c := *a
		return &c
	case *BindingArg:
		c := *a
		c.Args = cloneGenericArgs(a.Args)
		c.Type = CloneType(a.Type)
		return &c
	case *ConstraintArg:
		c := *a
		c.Bounds = CloneBounds(a.Bounds)
		return &c
	case *ConstArg:
		c := *a
		return &c
	}
	return a
}

func cloneTypes(ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = CloneType(t)
	}
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}
