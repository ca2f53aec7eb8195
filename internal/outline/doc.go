// Package outline models document outlines (trees of named symbols with
// source ranges) and finds the nearest symbol of a requested kind enclosing
// a cursor position.
//
// The package never parses source code. Trees come from an outline provider
// such as a language server and are treated as read-only snapshots.
package outline
