// Package library persists projects, the subscription record, and the
// generation history in a local SQLite database. Storage is quota
// bound: the library holds at most a fixed number of projects and
// assets, evicting the oldest work when a save would exceed them.
package library
