// Package build contains the jar and uberjar backends. They consume a
// resolved basis: the target alias's declared keys are shallow-merged onto
// the basis to obtain the output name and manifest settings, and the
// target's own source paths are archived below its root. The backends hold
// no resolution logic of their own.
package build
