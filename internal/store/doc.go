// Package store holds the game.Store implementations. filestore keeps chips in a TOML file and
// appends hands to a PHH session file; sqlstore keeps both in SQLite.
package store
