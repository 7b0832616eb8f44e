// Package common provides shared constants, types, and utilities
// used across upv-cli.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: fixed UPV addresses, file names, and defaults
//   - Errors: sentinel errors and exit-code-carrying failures
//   - Logger: leveled logging with optional rotating file output
//   - Utils: small helpers for file and slice operations
//
// # Exit codes
//
// Operations never call os.Exit themselves; they return errors, optionally
// as a *CodedError naming the exit-code class. Only the entry point maps an
// error to a process exit code, via ExitCodeFor.
package common
