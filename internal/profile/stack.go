// Package profile implements the ordered, deduplicated stack of active
// profile names that biases alias reference resolution.
//
// Precedence is a single global contract: the stack is scanned back to
// front, so the most recently appended profile wins. A prepended profile
// therefore takes the lowest precedence of all entries present at the time
// it is added.
package profile

// Stack is an ordered sequence of profile names with no duplicates. The
// zero value is an empty stack. All operations return a new Stack; an
// existing value is never mutated, so stacks can be shared freely across a
// resolution.
type Stack struct {
	names []string
}

// NewStack builds a stack from the given names in order, dropping
// duplicates after their first occurrence.
func NewStack(names ...string) Stack {
	return Stack{}.Append(names...)
}

// Append returns a stack with the given names added at the back, in order.
// Names already present are skipped, keeping their original position.
func (s Stack) Append(names ...string) Stack {
	out := make([]string, len(s.names), len(s.names)+len(names))
	copy(out, s.names)
	for _, name := range names {
		if contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	return Stack{names: out}
}

// Prepend returns a stack with the given names added at the front, in
// order. Names already present are skipped, keeping their original
// position, so prepending never raises an existing profile's precedence.
func (s Stack) Prepend(names ...string) Stack {
	front := make([]string, 0, len(names))
	for _, name := range names {
		if contains(s.names, name) || contains(front, name) {
			continue
		}
		front = append(front, name)
	}
	out := make([]string, 0, len(front)+len(s.names))
	out = append(out, front...)
	out = append(out, s.names...)
	return Stack{names: out}
}

// Names returns the stack contents front to back. The slice is a copy.
func (s Stack) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of profiles on the stack.
func (s Stack) Len() int {
	return len(s.names)
}

// Contains reports whether the given profile name is on the stack.
func (s Stack) Contains(name string) bool {
	return contains(s.names, name)
}

// Match scans the stack from highest precedence (back) to lowest (front)
// and returns the first profile name accepted by the given predicate. The
// second return is false when no profile matched.
func (s Stack) Match(accept func(name string) bool) (string, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if accept(s.names[i]) {
			return s.names[i], true
		}
	}
	return "", false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
