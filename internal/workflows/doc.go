// Package workflows implements the securedenv operations as composable
// functions independent of the CLI layer.
//
// Each workflow takes an Options struct and returns a Result struct,
// making operations testable without cobra and reusable by other
// frontends. Workflows return sentinel errors from internal/errors for
// conditions the CLI presents specially.
//
// Every invocation is stateless: the project identity is recomputed from
// the explicitly passed project root, the backup record lives only for
// the duration of the call, and nothing is shared across operations.
// Operations against the same project must not run concurrently; the
// workflows provide no internal locking.
//
// Restore-shaped operations (Restore, Import, Pull) decrypt every entry
// into memory before writing any file, so a wrong key never leaves a
// partially restored working directory.
package workflows
