// Package validate is the pre-flight validation engine for pipeline
// configurations. Every rule runs over the whole configuration and all
// violations are collected before anything is reported, so a user can fix
// every problem in a single edit-retry cycle. Validation is a pure function:
// it has no side effects and graph construction is never attempted on a
// configuration that failed it.
package validate
