package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// exprDefined reports whether an expression was actually written in the
// source file. The decoder fills absent optional attributes with non-nil,
// zero-width expression objects, so a nil check alone is not enough; a
// real attribute occupies bytes in the file.
func exprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// translateAlias converts one raw alias block into the format-agnostic
// model, evaluating its dynamic attributes into concrete values.
func translateAlias(ctx context.Context, block *aliasBlock) (*config.Alias, error) {
	logger := ctxlog.FromContext(ctx).With("alias", block.ID)
	logger.Debug("Translating alias block.")

	alias := &config.Alias{
		ID:         block.ID,
		Root:       block.Root,
		ExtraPaths: block.ExtraPaths,
	}

	require, err := translateRequire(block)
	if err != nil {
		return nil, err
	}
	alias.Require = require

	deps, err := translateExtraDeps(block)
	if err != nil {
		return nil, err
	}
	alias.ExtraDeps = deps

	meta, err := translateMeta(block)
	if err != nil {
		return nil, err
	}
	alias.Meta = meta

	logger.Debug("Alias translated.",
		"require_count", len(alias.Require),
		"dep_count", len(alias.ExtraDeps),
		"path_count", len(alias.ExtraPaths),
		"meta_count", len(alias.Meta),
	)
	return alias, nil
}

// translateRequire evaluates the require attribute into the tagged
// reference union. A string element is an unconditional reference; an
// object element maps profile names to alias ids, its `default` key being
// the fallback.
func translateRequire(block *aliasBlock) ([]config.Ref, error) {
	if !exprDefined(block.Require) {
		return nil, nil
	}
	val, diags := block.Require.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("alias %q: invalid require attribute: %w", block.ID, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("alias %q: require must be a list", block.ID)
	}

	var refs []config.Ref
	for it := val.ElementIterator(); it.Next(); {
		_, el := it.Element()
		ref, err := translateRef(block.ID, el)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// translateRef converts one require list element.
func translateRef(aliasID string, el cty.Value) (config.Ref, error) {
	if el.IsNull() {
		return config.Ref{}, fmt.Errorf("alias %q: require entry must not be null", aliasID)
	}

	if el.Type() == cty.String {
		return config.DirectRef(el.AsString()), nil
	}

	if el.Type().IsObjectType() || el.Type().IsMapType() {
		byProfile := make(map[string]string)
		defaultTarget := ""
		hasDefault := false

		for key, v := range el.AsValueMap() {
			if v.IsNull() || v.Type() != cty.String {
				return config.Ref{}, fmt.Errorf("alias %q: require entry key %q must map to an alias id string", aliasID, key)
			}
			if key == "default" {
				defaultTarget = v.AsString()
				hasDefault = true
				continue
			}
			byProfile[key] = v.AsString()
		}

		if len(byProfile) == 0 && !hasDefault {
			return config.Ref{}, fmt.Errorf("alias %q: profile-conditional require entry is empty", aliasID)
		}
		return config.ProfileRef(byProfile, defaultTarget, hasDefault), nil
	}

	return config.Ref{}, fmt.Errorf("alias %q: require entry must be an alias id or a profile map, got %s",
		aliasID, el.Type().FriendlyName())
}

// translateExtraDeps evaluates the extra_deps attribute into a coordinate
// to version map.
func translateExtraDeps(block *aliasBlock) (map[string]string, error) {
	if !exprDefined(block.ExtraDeps) {
		return nil, nil
	}
	val, diags := block.ExtraDeps.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("alias %q: invalid extra_deps attribute: %w", block.ID, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("alias %q: extra_deps must be a map of coordinate to version", block.ID)
	}

	deps := make(map[string]string)
	for coord, v := range val.AsValueMap() {
		if v.IsNull() || v.Type() != cty.String {
			return nil, fmt.Errorf("alias %q: extra_deps entry %q must map to a version string", block.ID, coord)
		}
		deps[coord] = v.AsString()
	}
	return deps, nil
}

// translateMeta collects every attribute not claimed by the schema as
// opaque metadata. Values are evaluated once here and carried unchanged
// through resolution.
func translateMeta(block *aliasBlock) (map[string]cty.Value, error) {
	if block.Remain == nil {
		return nil, nil
	}
	attrs, diags := block.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("alias %q: invalid metadata attributes: %w", block.ID, diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	meta := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("alias %q: invalid metadata attribute %q: %w", block.ID, name, diags)
		}
		meta[name] = val
	}
	return meta, nil
}
