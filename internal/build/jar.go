package build

import (
	"context"
	"fmt"

	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/resolve"
)

// Jar builds a plain jar for the given target alias of a resolved basis
// and returns the path of the written archive. The archive holds the
// target alias's own source paths plus a generated manifest; dependencies
// are not bundled.
func Jar(ctx context.Context, basis *resolve.Basis, aliasID string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("alias", aliasID)

	t, err := materialize(basis, aliasID)
	if err != nil {
		return "", err
	}
	logger.Debug("Jar target materialized.", "out", t.outPath)

	dirs, err := SourceDirs(basis, []string{aliasID})
	if err != nil {
		return "", err
	}

	zw, f, err := newArchiveWriter(t.outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	written := make(map[string]struct{})
	if err := writeManifest(zw, t); err != nil {
		zw.Close()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := addPathEntries(zw, dirs, written); err != nil {
		zw.Close()
		return "", fmt.Errorf("failed to archive sources: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}

	logger.Info("Jar written.", "path", t.outPath, "entries", len(written))
	return t.outPath, nil
}
