package diag

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Kind names d's taxonomy member, matching the table in §7 verbatim so the
// YAML dump's `kind` field is stable across refactors of the Go type names
// themselves.
func Kind(d Diagnostic) string {
	switch d.(type) {
	case *ResolutionError:
		return "ResolutionError"
	case *TypeMismatch:
		return "TypeMismatch"
	case *EscapingSkolem:
		return "EscapingSkolem"
	case *EscapingEffect:
		return "EscapingEffect"
	case *Arity:
		return "Arity"
	case *MissingOperation:
		return "MissingOperation"
	case *DuplicateOperation:
		return "DuplicateOperation"
	case *UnusedHandler:
		return "UnusedHandler"
	case *Ambiguous:
		return "Ambiguous"
	case *UnhandledControlEffect:
		return "UnhandledControlEffect"
	case *MutualRecursionUnsupported:
		return "MutualRecursionUnsupported"
	case *PolymorphicExtern:
		return "PolymorphicExtern"
	case *HigherOrderExtern:
		return "HigherOrderExtern"
	default:
		return "Unknown"
	}
}

// record is the YAML-serializable shape of one diagnostic.
type record struct {
	Kind     string          `yaml:"kind"`
	Severity string          `yaml:"severity"`
	Message  string          `yaml:"message"`
	Location *SourceLocation `yaml:"location,omitempty"`
}

// batch is the YAML-serializable shape of a whole Bag, for the driver's
// `--Koutput=yaml` diagnostic dump.
type batch struct {
	Diagnostics []record `yaml:"diagnostics"`
}

func toRecord(d Diagnostic) record {
	return record{
		Kind:     Kind(d),
		Severity: d.Severity().String(),
		Message:  d.Error(),
		Location: d.Loc(),
	}
}

// WriteYAML dumps b's diagnostics as a YAML document to w.
func WriteYAML(w io.Writer, b *Bag) error {
	bat := batch{Diagnostics: make([]record, 0, len(b.Entries()))}
	for _, d := range b.Entries() {
		bat.Diagnostics = append(bat.Diagnostics, toRecord(d))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(bat)
}

// MarshalYAML lets a Bag be embedded directly in a larger YAML document.
func (b *Bag) MarshalYAML() (any, error) {
	bat := batch{Diagnostics: make([]record, 0, len(b.Entries()))}
	for _, d := range b.Entries() {
		bat.Diagnostics = append(bat.Diagnostics, toRecord(d))
	}
	return bat, nil
}
