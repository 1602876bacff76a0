// Package render encodes an assembled graph and its projected outputs as a
// plan document for the orchestration engine, in JSON or YAML.
package render
