// Package resolve computes every cross-resource reference in the pipeline
// graph as a pure function of the configuration, the materialized node set,
// and an explicit cloud identity context.
//
// Resolving a reference to an absent optional node yields a defined null
// value, never an error: absence is a valid, expected outcome for optional
// wiring. The identity context (partition, region, account) is threaded in
// as a parameter rather than read ambiently, so the resolver stays pure and
// independently testable.
package resolve
