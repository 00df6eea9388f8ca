// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from disk.
//
// The config.Model is the single source of truth for the resolve package.
// Concrete loader implementations, such as for HCL, are provided in
// separate packages.
package config
