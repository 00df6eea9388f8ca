package resolve

import (
	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/profile"
)

// ResolveRef resolves one require entry of the given alias to a concrete
// alias id. Direct references resolve to themselves. Profile-conditional
// references are matched against the stack from highest precedence (most
// recently appended) to lowest; when no active profile carries a matching
// key the declared default is used, and a reference with neither match nor
// default fails with a ProfileMismatchError.
//
// Pure function of its arguments; it does not consult the alias map, so a
// resolved id may still be absent from the configuration. The closure walk
// checks existence separately.
func ResolveRef(aliasID string, ref config.Ref, profiles profile.Stack) (string, error) {
	if ref.Kind == config.RefDirect {
		return ref.Target, nil
	}

	name, ok := profiles.Match(func(p string) bool {
		_, declared := ref.ByProfile[p]
		return declared
	})
	if ok {
		return ref.ByProfile[name], nil
	}

	if ref.HasDefault {
		return ref.Default, nil
	}

	return "", &ProfileMismatchError{
		AliasID:  aliasID,
		Ref:      ref,
		Profiles: profiles.Names(),
	}
}
