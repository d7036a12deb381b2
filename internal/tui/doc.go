// Package tui holds the terminal pieces of the client: a masked input form
// built on Bubble Tea and lipgloss renderers for sessions and entries.
package tui
