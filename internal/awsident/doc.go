// Package awsident resolves the caller's cloud identity context once, at
// the application boundary. The core packages never touch the provider SDK;
// they receive the resolved identity as an explicit parameter.
package awsident
