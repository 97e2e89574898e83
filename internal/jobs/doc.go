// Package jobs persists a ledger of build and batch runs in SQLite.
//
// Every pipeline invocation records a job row when it starts and finalizes
// it with the outcome, so the CLI can list recent runs and their results
// across processes.
package jobs
