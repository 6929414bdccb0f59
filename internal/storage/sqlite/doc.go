// Package sqlite persists save slots in a single SQLite file.
package sqlite
