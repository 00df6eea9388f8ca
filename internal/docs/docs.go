// Package docs renders help output: the task list and per-alias
// documentation drawn from each alias's free-form doc metadata. It reads
// the alias map of a resolved basis and nothing else.
package docs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"
	"github.com/roterski/basisgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// wrapWidth bounds description columns in rendered output.
const wrapWidth = 72

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Task describes one CLI task for the help listing.
type Task struct {
	Name        string
	Description string
}

// Tasks is the stable task list rendered by the help output.
var Tasks = []Task{
	{Name: "basis", Description: "Resolve the requested aliases and print a summary of the merged basis."},
	{Name: "paths", Description: "Print the merged source path set of the closure, one path per line."},
	{Name: "deps", Description: "Print the merged dependency coordinates and versions of the closure."},
	{Name: "ns", Description: "Discover namespaces declared below the closure's source paths."},
	{Name: "jar", Description: "Build a plain jar from the target alias's own source paths."},
	{Name: "uberjar", Description: "Build a self-contained jar including the closure and dependency jars from the lib directory."},
	{Name: "help", Description: "Show the task list and per-alias documentation."},
}

// RenderTasks renders the task list.
func RenderTasks() string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Tasks"))
	sb.WriteString("\n")
	for _, task := range Tasks {
		sb.WriteString("  ")
		sb.WriteString(nameStyle.Render(task.Name))
		sb.WriteString("\n")
		sb.WriteString(indent(wordwrap.WrapString(task.Description, wrapWidth), "      "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderAliases renders one line block per alias, sorted by id, showing the
// alias's doc metadata when declared. Aliases without a doc key are listed
// with a placeholder so the full configuration stays visible.
func RenderAliases(aliases map[string]*config.Alias) string {
	ids := make([]string, 0, len(aliases))
	for id := range aliases {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Aliases"))
	sb.WriteString("\n")
	for _, id := range ids {
		sb.WriteString("  ")
		sb.WriteString(nameStyle.Render(id))
		if root := aliases[id].Root; root != "" {
			sb.WriteString(" ")
			sb.WriteString(dimStyle.Render(fmt.Sprintf("(%s)", root)))
		}
		sb.WriteString("\n")
		sb.WriteString(indent(wordwrap.WrapString(aliasDoc(aliases[id]), wrapWidth), "      "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// aliasDoc extracts the free-form doc string of an alias.
func aliasDoc(alias *config.Alias) string {
	if doc, ok := alias.Meta["doc"]; ok && !doc.IsNull() && doc.Type() == cty.String {
		return doc.AsString()
	}
	return "(no documentation)"
}

// indent prefixes every line of s with the given prefix.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
