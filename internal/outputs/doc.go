// Package outputs projects an assembled graph to the flat, stable map of
// named output values that forms the system's external contract. Every
// output sourced from an absent optional node is exactly null: never an
// error, never an empty string, never an omitted key.
package outputs
