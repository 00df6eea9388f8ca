// Package cli translates command-line input into a validated app.Config:
// the task to run, the requested aliases, the profile stack flags and the
// logging options. Failures carry a process exit code via ExitError, so
// the main package stays a thin wrapper around Parse and App.Run.
package cli
