// Package nsfind discovers the namespaces declared below a set of source
// directories. It is a pure I/O helper: callers scope the scan with a
// resolved basis's require list, and nsfind itself knows nothing about
// resolution.
package nsfind

import (
	"context"
	"os"
	"regexp"
	"sort"

	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/fsutil"
)

// sourceExtensions lists the Clojure source variants to scan.
var sourceExtensions = []string{".clj", ".cljs", ".cljc"}

// nsDeclRe extracts the name from an (ns ...) declaration. Anything after
// the name, such as docstrings or require forms, is ignored.
var nsDeclRe = regexp.MustCompile(`\(ns\s+([A-Za-z][\w.$*+!?<>=-]*)`)

// Namespaces scans the given source directories and returns every declared
// namespace, sorted and deduplicated. Directories that do not exist are
// skipped; unreadable files fail the scan.
func Namespaces(ctx context.Context, dirs []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, ext := range sourceExtensions {
		found, err := fsutil.FindFilesByExtension(dirs, ext)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Scanning source files for namespace declarations.", "file_count", len(files))

	seen := make(map[string]struct{})
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if m := nsDeclRe.FindSubmatch(data); m != nil {
			seen[string(m[1])] = struct{}{}
		}
	}

	namespaces := make([]string, 0, len(seen))
	for ns := range seen {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	logger.Debug("Namespace discovery complete.", "count", len(namespaces))
	return namespaces, nil
}
