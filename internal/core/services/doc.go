// Package services implements the driving port interfaces.
// Services orchestrate the search engine and calls to driven ports
// (adapters).
//
// Searches started through SearchService never spawn goroutines of their
// own: every step runs on whatever StepScheduler the caller supplies.
// Scheduler is the in-process FIFO implementation used by the CLI and MCP
// adapters; the TUI schedules steps as Bubble Tea messages instead.
package services
