// Package app wires the application together: it loads the pipeline
// definition, runs pre-flight validation, assembles the resource graph, and
// renders the resulting plan.
package app
