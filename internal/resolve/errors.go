package resolve

import (
	"fmt"
	"strings"

	"github.com/roterski/basisgo/internal/config"
)

// MissingAliasError reports a referenced or requested alias id that is
// absent from the alias map.
type MissingAliasError struct {
	// ID is the alias id that could not be found.
	ID string
	// RequiredBy is the alias whose require list referenced ID. Empty when
	// ID was requested directly as a seed.
	RequiredBy string
}

func (e *MissingAliasError) Error() string {
	if e.RequiredBy == "" {
		return fmt.Sprintf("requested alias %q not found in configuration", e.ID)
	}
	return fmt.Sprintf("alias %q, required by %q, not found in configuration", e.ID, e.RequiredBy)
}

// ProfileMismatchError reports a profile-conditional reference that matched
// no active profile and declared no default.
type ProfileMismatchError struct {
	// AliasID is the alias whose require list holds the offending entry.
	AliasID string
	// Ref is the offending reference.
	Ref config.Ref
	// Profiles is the profile stack that was active, front to back.
	Profiles []string
}

func (e *ProfileMismatchError) Error() string {
	return fmt.Sprintf("no active profile matches reference %s of alias %q and no default is declared (active profiles: [%s])",
		e.Ref, e.AliasID, strings.Join(e.Profiles, " "))
}

// CycleError reports a require-cycle reachable from the seed set.
type CycleError struct {
	// Path is the sequence of alias ids from the cycle's start back to
	// itself, e.g. ["a", "b", "a"].
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("require cycle detected: %s", strings.Join(e.Path, " -> "))
}

// MissingRootError reports an operation requiring a filesystem root invoked
// on an alias that does not declare one.
type MissingRootError struct {
	AliasID string
}

func (e *MissingRootError) Error() string {
	return fmt.Sprintf("alias %q has no root directory but the requested operation requires one", e.AliasID)
}

// MissingKeyError reports a required configuration key absent from an alias
// or a basis. It is raised by callers of the resolution engine, never by
// the engine itself, but lives here so all tooling shares one error
// vocabulary.
type MissingKeyError struct {
	AliasID string
	Key     string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("alias %q is missing required key %q", e.AliasID, e.Key)
}

// ProgrammingError reports an internal invariant violation, such as a
// projection over an id that is not part of the alias map. It indicates a
// bug in the calling code rather than bad configuration.
type ProgrammingError struct {
	Message string
}

func (e *ProgrammingError) Error() string {
	return "internal error: " + e.Message
}
