// Package editor provides a Bubble Tea rich-text editor component backed by
// the editorstate package.
//
// The package is responsible for key handling, shortcut interception on
// typed input, block- and style-aware rendering, viewport scrolling, and
// host integration hooks (clipboard, change events, save requests).
package editor
