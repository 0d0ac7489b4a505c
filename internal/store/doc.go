// Package store persists match results in a local SQLite database.
//
// Each match attempt is recorded with a generated attempt ID, the folder it
// covered, the headline outcome columns for cheap listing, and the full
// result as JSON for lossless display. A file lock guards the database
// directory against concurrent processes.
package store
