// Package session maintains the in-memory asset graph for one product
// workspace. Assets are append-only: every generation run adds new
// entries and re-points the active selection, so earlier results stay
// reachable through the gallery.
package session
