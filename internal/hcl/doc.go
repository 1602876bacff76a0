// Package hcl implements the config.Loader interface for pipeline
// definitions written in HCL. It parses one file or a directory of .hcl
// files, decodes the single pipeline block they must contain, and translates
// it into the format-agnostic config.Pipeline model with defaults applied.
package hcl
