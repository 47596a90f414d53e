// Package main hosts the shoplens CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into listing
// analysis runs, image generation sessions, project library maintenance,
// credit ledger operations, and configuration scaffolding. It centralizes
// configuration resolution, store locking, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// reusable session and workspace components.
package main
