// Package model defines the domain types and value objects for the
// foamcut CLI.
//
// This package contains pure data structures with no external dependencies.
// Points, toolpaths, workspace bounds and cutting parameters are produced
// once per invocation and never mutated afterwards. A Job exists only for
// the duration of one conversion and emission; only its InstructionStream
// output is persisted or transmitted.
//
// The package also defines the error taxonomy (GeometryError,
// BoundaryViolation, EmitError), exit codes (ExitCode) and the CLIError
// type that carries exit codes for proper OS process exit handling.
package model
