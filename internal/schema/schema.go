// Package schema provides the principal schematics for all other packages. It
// implements thin wrappers around operating system, syscall and subprocess
// functions, so that consuming packages can declare narrow provider
// interfaces and be tested against mocks. The package serves as a
// foundational layer for filesystem and process interactions throughout the
// codebase.
package schema
