// Package connectors groups the sources documents can be opened from.
// The filesystem connector loads local files as open documents and
// watches them for changes.
package connectors
