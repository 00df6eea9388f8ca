// Package hcl is the HCL implementation of the config.Loader interface. It
// discovers .hcl files, decodes their alias blocks and translates them into
// the format-agnostic config model consumed by the resolve package.
package hcl
