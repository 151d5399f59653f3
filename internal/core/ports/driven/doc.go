// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LineAccessor: Read-only, line-indexed view of one open document
//   - MatchSink: Receives matches, progress and completion from a search
//   - DocumentStore: Holds the set of open documents in open order
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ErrorSink: Receives contained per-document search failures.
//   - HistoryStore: Search history persistence. Without it, history is disabled.
//   - DocumentLoader: Reads files from disk. Without it, only OpenText works.
//   - DocumentWatcher: Reports changes to backing files. Without it, documents
//     only change when explicitly reloaded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
