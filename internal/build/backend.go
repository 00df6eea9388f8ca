package build

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/roterski/basisgo/internal/resolve"
)

// target holds the materialized build inputs for one alias: the basis with
// the alias's own keys merged on, plus the resolved output location.
type target struct {
	basis   *resolve.Basis
	outPath string
}

// materialize shallow-merges the target alias onto the basis and validates
// the keys the backends require.
func materialize(basis *resolve.Basis, aliasID string) (*target, error) {
	derived, err := basis.WithAliasKeys(aliasID)
	if err != nil {
		return nil, err
	}

	// A build target must declare its own root; the project root is not an
	// acceptable stand-in for jar output.
	if alias := basis.Aliases[aliasID]; alias.Root == "" {
		return nil, &resolve.MissingRootError{AliasID: aliasID}
	}

	jarName, ok := derived.StringKey("jar_name")
	if !ok {
		return nil, &resolve.MissingKeyError{AliasID: aliasID, Key: "jar_name"}
	}

	return &target{
		basis:   derived,
		outPath: filepath.Join(derived.Root, "target", jarName),
	}, nil
}

// newArchiveWriter opens the output file and returns a zip writer with the
// klauspost flate encoder registered for Deflate entries.
func newArchiveWriter(outPath string) (*zip.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create archive %s: %w", outPath, err)
	}

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return zw, f, nil
}

// writeManifest emits META-INF/MANIFEST.MF. Main-Class is included only
// when the target alias declares a main_class key.
func writeManifest(zw *zip.Writer, t *target) error {
	w, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("Manifest-Version: 1.0\r\n")
	sb.WriteString("Created-By: basisgo\r\n")
	if mainClass, ok := t.basis.StringKey("main_class"); ok {
		fmt.Fprintf(&sb, "Main-Class: %s\r\n", mainClass)
	}
	sb.WriteString("\r\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

// SourceDirs resolves the extra paths of the given closure subset into
// concrete directories: each alias's paths are taken relative to that
// alias's resolved root, falling back to the basis root for aliases
// without one. Order follows the subset, duplicates collapse.
func SourceDirs(basis *resolve.Basis, ids []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]struct{})
	for _, id := range ids {
		alias := basis.Aliases[id]
		base, err := basis.AliasRoot(id)
		if err != nil {
			return nil, err
		}
		for _, p := range alias.ExtraPaths {
			dir := filepath.Join(base, p)
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// addPathEntries copies the contents of each source directory into the
// archive. Entry names are relative to the source directory itself,
// matching classpath layout. Entries already present are skipped; earlier
// contributions win.
func addPathEntries(zw *zip.Writer, dirs []string, written map[string]struct{}) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue // A declared path that doesn't exist contributes nothing.
			}
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("source path %s is not a directory", dir)
		}

		err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(rel)
			if _, ok := written[name]; ok {
				return nil
			}
			written[name] = struct{}{}

			w, err := zw.Create(name)
			if err != nil {
				return err
			}
			src, err := os.Open(path)
			if err != nil {
				return err
			}
			defer src.Close()
			_, err = io.Copy(w, src)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
