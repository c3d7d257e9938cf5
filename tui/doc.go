// Package tui implements the interactive browser: one tab per catalog
// category plus favorites, a search box and a details pane. Fetches run as
// bubbletea commands and resolve through the view models, so a result that
// arrives after the user moved on is dropped.
package tui
