package build

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// buildBasis resolves a two-alias project (app requiring lib) rooted in a
// fresh temp dir with real source files on disk.
func buildBasis(t *testing.T) (*resolve.Basis, string) {
	t.Helper()
	root := t.TempDir()

	appRoot := filepath.Join(root, "apps", "app")
	require.NoError(t, os.MkdirAll(filepath.Join(appRoot, "src", "example"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(appRoot, "src", "example", "main.clj"), []byte("(ns example.main)"), 0644))

	libRoot := filepath.Join(root, "libs", "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(libRoot, "src", "example"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(libRoot, "src", "example", "util.clj"), []byte("(ns example.util)"), 0644))

	model := &config.Model{Aliases: map[string]*config.Alias{
		"app": {
			ID:         "app",
			Root:       appRoot,
			Require:    []config.Ref{config.DirectRef("lib")},
			ExtraPaths: []string{"src"},
			Meta: map[string]cty.Value{
				"jar_name":   cty.StringVal("app.jar"),
				"main_class": cty.StringVal("example.main"),
			},
		},
		"lib": {
			ID:         "lib",
			Root:       libRoot,
			ExtraPaths: []string{"src"},
		},
	}}

	basis, err := resolve.Resolve(context.Background(), model, resolve.Params{
		SeedAliases: []string{"app"},
	})
	require.NoError(t, err)
	return basis, root
}

// readArchive returns entry name -> content for the given archive.
func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = string(data)
	}
	return entries
}

func TestJar(t *testing.T) {
	t.Parallel()

	basis, _ := buildBasis(t)

	out, err := Jar(context.Background(), basis, "app")
	require.NoError(t, err)
	assert.Equal(t, "app.jar", filepath.Base(out))

	entries := readArchive(t, out)
	assert.Contains(t, entries, "example/main.clj")
	assert.NotContains(t, entries, "example/util.clj", "a plain jar holds only the target's own paths")

	manifest := entries["META-INF/MANIFEST.MF"]
	assert.Contains(t, manifest, "Manifest-Version: 1.0")
	assert.Contains(t, manifest, "Main-Class: example.main")
}

func TestJar_MissingRoot(t *testing.T) {
	t.Parallel()

	basis, _ := buildBasis(t)
	basis.Aliases["app"].Root = ""

	_, err := Jar(context.Background(), basis, "app")
	var missingRoot *resolve.MissingRootError
	require.True(t, errors.As(err, &missingRoot))
	assert.Equal(t, "app", missingRoot.AliasID)
}

func TestJar_MissingJarName(t *testing.T) {
	t.Parallel()

	basis, _ := buildBasis(t)
	delete(basis.Aliases["app"].Meta, "jar_name")

	_, err := Jar(context.Background(), basis, "app")
	var missingKey *resolve.MissingKeyError
	require.True(t, errors.As(err, &missingKey))
	assert.Equal(t, "jar_name", missingKey.Key)
}

// writeLibJar creates a dependency jar with the given entries under dir.
func writeLibJar(t *testing.T, dir, name string, entries map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for entryName, content := range entries {
		w, err := zw.Create(entryName)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestUberjar(t *testing.T) {
	t.Parallel()

	basis, root := buildBasis(t)
	libDir := filepath.Join(root, ".lib")
	writeLibJar(t, libDir, "dep.jar", map[string]string{
		"dep/core.class":         "dep-bytes",
		"example/main.clj":       "shadowed",
		"META-INF/MANIFEST.MF":   "Manifest-Version: 1.0",
		"META-INF/SIGNATURE.SF":  "sig",
		"META-INF/SIGNATURE.RSA": "sig",
	})

	out, err := Uberjar(context.Background(), basis, "app", libDir)
	require.NoError(t, err)

	entries := readArchive(t, out)

	// Closure sources, not just the target's.
	assert.Contains(t, entries, "example/main.clj")
	assert.Contains(t, entries, "example/util.clj")

	// Dependency content is merged in.
	assert.Equal(t, "dep-bytes", entries["dep/core.class"])

	// Project sources shadow dependency entries of the same name.
	assert.Equal(t, "(ns example.main)", entries["example/main.clj"])

	// Signatures and per-jar manifests are dropped; ours is generated.
	assert.NotContains(t, entries, "META-INF/SIGNATURE.SF")
	assert.NotContains(t, entries, "META-INF/SIGNATURE.RSA")
	assert.Contains(t, entries["META-INF/MANIFEST.MF"], "Created-By: basisgo")
}

func TestUberjar_NoLibDir(t *testing.T) {
	t.Parallel()

	basis, _ := buildBasis(t)

	out, err := Uberjar(context.Background(), basis, "app", "")
	require.NoError(t, err)

	entries := readArchive(t, out)
	assert.Contains(t, entries, "example/util.clj")
}
