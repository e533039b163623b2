// Package workflow implements Temporal workflow definitions for the
// world-reward platform.
//
// This package contains the orchestration logic that coordinates reward
// computation using the Temporal workflow engine: config loading, candidate
// scoring, and result handling.
//
// All workflows follow Temporal best practices:
//
//   - Deterministic execution
//   - Proper error handling
//   - Versioning support
//
// Workflows contain no non-deterministic operations such as random number
// generation, system time access, or external I/O; those are delegated to
// activities.
package workflow
