package generator

import (
	"fmt"
	"strings"
)

// FailureKind classifies what went wrong while processing a binding.
type FailureKind int

const (
	// FailModelLoad: the model document could not be loaded or parsed.
	FailModelLoad FailureKind = iota
	// FailPathQuery: the path expression was invalid or matched nothing.
	FailPathQuery
	// FailAdaptation: a match could not be adapted into objects.
	FailAdaptation
	// FailRender: a template failed to render.
	FailRender
	// FailMissingAttribute: the output file name needed a missing attribute.
	FailMissingAttribute
	// FailWrite: the output file name was unsafe or the file could not be written.
	FailWrite

	numFailureKinds
)

var failureKindNames = [numFailureKinds]string{
	"model load",
	"path query",
	"adaptation",
	"render",
	"missing attribute",
	"write",
}

// String returns the failure kind name.
func (k FailureKind) String() string {
	if k < 0 || k >= numFailureKinds {
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
	return failureKindNames[k]
}

// Action is what the generator does with a failure.
type Action int

const (
	// Skip records the failure and continues with the next unit of work.
	Skip Action = iota
	// Abort stops the run.
	Abort
)

// Policy names.
const (
	PolicyDefault = "default"
	PolicyStrict  = "strict"
	PolicyLenient = "lenient"
)

// Policy maps every failure kind to an action.
type Policy struct {
	name    string
	actions [numFailureKinds]Action
}

// DefaultPolicy skips bindings whose model or path fails and matches that
// cannot be adapted, and aborts on render and write failures.
func DefaultPolicy() Policy {
	p := Policy{name: PolicyDefault}
	p.actions[FailRender] = Abort
	p.actions[FailMissingAttribute] = Abort
	p.actions[FailWrite] = Abort
	return p
}

// StrictPolicy aborts on every failure.
func StrictPolicy() Policy {
	p := Policy{name: PolicyStrict}
	for k := range p.actions {
		p.actions[k] = Abort
	}
	return p
}

// LenientPolicy skips every failure.
func LenientPolicy() Policy {
	return Policy{name: PolicyLenient}
}

// ParsePolicy returns the preset named name. An empty name selects the default.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyDefault:
		return DefaultPolicy(), nil
	case PolicyStrict:
		return StrictPolicy(), nil
	case PolicyLenient:
		return LenientPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown error policy %q (want %s, %s or %s)", name, PolicyDefault, PolicyStrict, PolicyLenient)
	}
}

// Action returns the action for kind.
func (p Policy) Action(kind FailureKind) Action {
	if kind < 0 || kind >= numFailureKinds {
		return Abort
	}
	return p.actions[kind]
}

// With returns a copy of p that applies action to kind.
func (p Policy) With(kind FailureKind, action Action) Policy {
	if kind >= 0 && kind < numFailureKinds {
		p.actions[kind] = action
		p.name = "custom"
	}
	return p
}

// String returns the preset name, or "custom".
func (p Policy) String() string {
	if p.name == "" {
		return PolicyLenient
	}
	return p.name
}
