package types

// CaptureFreeVars collects the capture unification variables free in t,
// walking into any Boxed values nested in value parameters or results. It
// is the capture-id-space counterpart to ValueType.FreeVars, kept separate
// so the two numberings (both starting at zero) are never unioned together.
func CaptureFreeVars(t ValueType) VarSet {
	switch v := t.(type) {
	case Boxed:
		return v.Captures.FreeVars().Union(functionCaptureFreeVars(v.Block))
	case Constructor:
		var out VarSet
		for _, a := range v.Args {
			out = out.Union(CaptureFreeVars(a))
		}
		return out
	case TypeAlias:
		var out VarSet
		for _, a := range v.Args {
			out = out.Union(CaptureFreeVars(a))
		}
		return out
	default:
		return nil
	}
}

func functionCaptureFreeVars(f *Function) VarSet {
	var out VarSet
	for _, v := range f.VParams {
		out = out.Union(CaptureFreeVars(v))
	}
	for _, b := range f.BParams {
		out = out.Union(functionCaptureFreeVars(b))
	}
	out = out.Union(CaptureFreeVars(f.Result))
	return out
}
