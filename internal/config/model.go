package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the entire
// on-disk configuration: every alias definition, keyed by alias id.
type Model struct {
	Aliases map[string]*Alias
}

// Alias is the format-agnostic representation of a single `alias` block: a
// named configuration fragment contributing dependencies, source paths and
// arbitrary metadata to a build.
type Alias struct {
	// ID is the alias identifier, unique within one configuration.
	ID string
	// Root is the optional filesystem root associated with this alias. It is
	// required only when the alias is used as a build target.
	Root string
	// Require lists the alias's dependency edges in declared order.
	Require []Ref
	// ExtraDeps maps library coordinates to version specs contributed by
	// this alias.
	ExtraDeps map[string]string
	// ExtraPaths lists filesystem paths contributed by this alias.
	ExtraPaths []string
	// Meta holds every attribute not claimed by one of the fields above.
	// The resolver treats these values as opaque; they survive resolution
	// unchanged and stay addressable per alias.
	Meta map[string]cty.Value
}

// RefKind discriminates the two shapes a require entry can take.
type RefKind int

const (
	// RefDirect is an unconditional reference to a single alias id.
	RefDirect RefKind = iota
	// RefByProfile selects an alias id based on the active profile stack,
	// with an optional default used when no profile matches.
	RefByProfile
)

// Ref is one entry of an alias's require list: either a plain alias id, or
// a profile-conditional choice between several alias ids.
type Ref struct {
	Kind RefKind

	// Target is the referenced alias id. Only meaningful for RefDirect.
	Target string

	// ByProfile maps profile names to alias ids. Only meaningful for
	// RefByProfile.
	ByProfile map[string]string
	// Default is the fallback alias id used when no active profile matches.
	Default string
	// HasDefault reports whether a fallback was declared; an empty Default
	// string is a valid alias id, so absence is tracked explicitly.
	HasDefault bool
}

// DirectRef builds an unconditional reference to the given alias id.
func DirectRef(target string) Ref {
	return Ref{Kind: RefDirect, Target: target}
}

// ProfileRef builds a profile-conditional reference. The byProfile map must
// not contain the default entry; pass it separately via defaultTarget, or an
// empty hasDefault for a reference with no fallback.
func ProfileRef(byProfile map[string]string, defaultTarget string, hasDefault bool) Ref {
	return Ref{
		Kind:       RefByProfile,
		ByProfile:  byProfile,
		Default:    defaultTarget,
		HasDefault: hasDefault,
	}
}

// String renders the reference for diagnostics, matching the configuration
// syntax closely enough to locate the offending entry.
func (r Ref) String() string {
	if r.Kind == RefDirect {
		return r.Target
	}

	keys := make([]string, 0, len(r.ByProfile))
	for k := range r.ByProfile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = %q", k, r.ByProfile[k])
	}
	if r.HasDefault {
		if len(keys) > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "default = %q", r.Default)
	}
	sb.WriteString("}")
	return sb.String()
}
