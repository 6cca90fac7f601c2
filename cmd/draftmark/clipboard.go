package main

import (
	"github.com/atotto/clipboard"

	"github.com/iw2rmb/draftmark/editor"
)

// systemClipboard backs editor copy and paste with the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// newClipboard returns the OS clipboard, or a process-local one when no
// clipboard utility is installed.
func newClipboard() editor.Clipboard {
	if clipboard.Unsupported {
		return &editor.MemoryClipboard{}
	}
	return systemClipboard{}
}
