// Package filesystem opens local files as documents and watches them.
//
// Loader implements driven.DocumentLoader: directories are walked
// recursively, hidden entries and oversized or binary files are skipped,
// and files are read concurrently while results keep a stable order.
//
// Watcher implements driven.DocumentWatcher on top of fsnotify.
package filesystem
