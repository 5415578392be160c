// Package clop speaks the CLOP optimizer's wire formats: the static
// declaration file it consumes at startup, the connection-script
// argument convention it invokes trials with, and the single-token
// output contract it reads results from.
//
// The package is pure format logic — it performs no I/O beyond writing
// a declaration to an io.Writer. The cli package wires it to the
// process surface.
package clop
