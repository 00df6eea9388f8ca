package build

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/fsutil"
	"github.com/roterski/basisgo/internal/resolve"
)

// Uberjar builds a self-contained jar for the given target alias: the
// closure's source paths, the generated manifest, and the contents of
// every dependency jar found under libDir. Dependency jars must already be
// present on disk; fetching them is someone else's job.
//
// Entry collisions resolve first-wins: project sources shadow dependency
// entries, and earlier jars under libDir shadow later ones.
func Uberjar(ctx context.Context, basis *resolve.Basis, aliasID string, libDir string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("alias", aliasID)

	t, err := materialize(basis, aliasID)
	if err != nil {
		return "", err
	}
	logger.Debug("Uberjar target materialized.", "out", t.outPath, "lib_dir", libDir)

	// The whole closure's paths go in, not just the target's.
	dirs, err := SourceDirs(basis, basis.Require)
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

	if libDir != "" {
		jars, err := fsutil.FindFilesByExtension([]string{libDir}, ".jar")
		if err != nil {
			return "", err
		}
		logger.Debug("Merging dependency jars.", "count", len(jars))
		for _, jar := range jars {
			if err := mergeJar(zw, jar, written); err != nil {
				zw.Close()
				return "", fmt.Errorf("failed to merge %s: %w", jar, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}

	logger.Info("Uberjar written.", "path", t.outPath, "entries", len(written))
	return t.outPath, nil
}

// mergeJar copies the entries of one dependency jar into the archive,
// skipping entries already present and jar bookkeeping that must not be
// carried into an uberjar (manifests and signature files).
func mergeJar(zw *zip.Writer, jarPath string, written map[string]struct{}) error {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, entry := range r.File {
		name := entry.Name
		if entry.FileInfo().IsDir() || skipUberjarEntry(name) {
			continue
		}
		if _, ok := written[name]; ok {
			continue
		}
		written[name] = struct{}{}

		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		src, err := entry.Open()
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return nil
}

// skipUberjarEntry reports whether a dependency jar entry must be dropped
// when merging: per-jar manifests and cryptographic signatures are only
// valid for the jar they came from.
func skipUberjarEntry(name string) bool {
	if name == "META-INF/MANIFEST.MF" {
		return true
	}
	if !strings.HasPrefix(name, "META-INF/") {
		return false
	}
	return strings.HasSuffix(name, ".SF") ||
		strings.HasSuffix(name, ".RSA") ||
		strings.HasSuffix(name, ".DSA")
}
