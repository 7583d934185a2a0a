package mlast

// Type is the minimal type grammar a DataBind's constructor payloads need;
// ordinary val/fun bindings are left unannotated and rely on the target
// compiler's own inference (spec §6 only names types in DataBind's
// optPayloadType, nowhere else).
type Type interface {
	isType()
}

// TyVar is a type variable ('a, 'b, ...).
type TyVar struct{ Name string }

func (TyVar) isType() {}

// TyCon is a named type constructor applied to Args (nil Args for a
// nullary type like `int`).
type TyCon struct {
	Name string
	Args []Type
}

func (TyCon) isType() {}

// TyTuple is a tuple type (`t1 * t2 * ...`), how a multi-field constructor
// payload is represented (spec §4.5.2: "multi-field constructors payload
// as a tuple").
type TyTuple struct{ Elems []Type }

func (TyTuple) isType() {}

// Binding is the closed variant set spec §6 hands to the emitter: a
// top-level form or a Let's local form.
type Binding interface {
	isBinding()
}

// ValBind binds Expr to Name, non-recursive (`val name = expr`).
type ValBind struct {
	Name string
	Expr Expr
}

func (ValBind) isBinding() {}

// AnonBind runs Expr for its effects and discards the result
// (`val _ = expr`), the lowering of a wildcard Let (spec §4.5.6).
type AnonBind struct{ Expr Expr }

func (AnonBind) isBinding() {}

// FunBind binds a function, letting Name appear free in Body
// (`fun name p1 ... pn = body`).
type FunBind struct {
	Name   string
	Params []Param
	Body   Expr
}

func (FunBind) isBinding() {}

// DataCtor is one constructor of a DataBind; Payload is nil for a nullary
// constructor.
type DataCtor struct {
	Name    string
	Payload Type
}

// DataBind declares a sum type (`datatype name = c1 of t1 | ...`), the
// lowering of a record type, a sum type, or an arity-indexed interface
// object type (spec §4.5.2).
type DataBind struct {
	Name     string
	TypeVars []string
	Ctors    []DataCtor
}

func (DataBind) isBinding() {}

// RawBind is verbatim target code for an extern definition (spec §6).
type RawBind struct{ Text string }

func (RawBind) isBinding() {}

// Toplevel is a whole compilation unit: an ordered list of Bindings
// followed by the call that runs the module's entry point (spec §4.5.7's
// runMain, spec §6's downstream contract).
type Toplevel struct {
	Bindings []Binding
	MainCall Expr
}
