package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode the top-level blocks of any file.
type fileRoot struct {
	Aliases []*aliasBlock `hcl:"alias,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// aliasBlock is the raw decoded shape of one `alias "<id>"` block. The
// require and extra_deps attributes are kept as expressions because their
// element shapes vary; translation happens in translate.go. Everything not
// named here lands in Remain and becomes opaque metadata.
type aliasBlock struct {
	ID         string         `hcl:"id,label"`
	Root       string         `hcl:"root,optional"`
	Require    hcl.Expression `hcl:"require,optional"`
	ExtraDeps  hcl.Expression `hcl:"extra_deps,optional"`
	ExtraPaths []string       `hcl:"extra_paths,optional"`
	Remain     hcl.Body       `hcl:",remain"`
}

// Load reads every .hcl file reachable from the given paths and merges
// their alias blocks into one model. Each call re-reads from disk so the
// model always reflects the current configuration.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{
		Aliases: make(map[string]*config.Alias),
	}

	hclFiles, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Aliases {
			alias, err := translateAlias(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			if _, exists := model.Aliases[alias.ID]; exists {
				logger.Warn("Duplicate alias definition found, it will be overwritten.", "id", alias.ID)
			}
			model.Aliases[alias.ID] = alias
		}
	}

	logger.Debug("HCL loading complete.", "aliases", len(model.Aliases))
	return model, nil
}
