// Package driver runs the error-code pass over files: it loads a unit,
// lexes and parses it, rewrites error constructions, prints the result and
// writes it out. Run processes many units in parallel and stops on the first
// fatal error.
package driver
