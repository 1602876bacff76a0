// Package config defines the format-agnostic configuration model for an
// event pipeline, along with the Loader interface for reading it from a
// concrete source format.
//
// The `config.Pipeline` is the single source of truth for the validate,
// registry, resolve, and assemble packages. It is read once and never
// mutated after validation begins: everything downstream is a deterministic,
// pure function of it. A concrete loader implementation, such as for HCL,
// is provided in a separate package.
package config
