// Package main hosts the avatarforge CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline
// runs: scanning and analyzing layer exports, building avatar bundles,
// batch processing, expression graph generation, lip-sync keyframes, and
// configuration scaffolding. It centralizes configuration resolution, job
// ledger access, and structured logging setup so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
