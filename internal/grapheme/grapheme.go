// Package grapheme holds the grapheme-cluster helpers shared by the document
// model (offsets) and the editor (cell widths).
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class groups clusters for word motion.
type Class uint8

const (
	ClassWord Class = iota
	ClassSpace
	ClassPunct
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	out := make([]string, 0, len(text))
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters.
func Join(clusters []string) string {
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return clusters[0]
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the terminal cell width of a single cluster. Zero-width
// results from go-runewidth fall back to uniseg, and control clusters
// report 0.
func Width(cluster string) int {
	if cluster == "" {
		return 0
	}
	if w := runewidth.StringWidth(cluster); w > 0 {
		return w
	}
	if w := uniseg.StringWidth(cluster); w > 0 {
		return w
	}
	return 0
}

// ClassOf classifies a cluster by its runes. A cluster counts as space or
// punctuation only when every rune is.
func ClassOf(cluster string) Class {
	if cluster == "" {
		return ClassWord
	}
	space, punct := true, true
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			space = false
		}
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			punct = false
		}
	}
	switch {
	case space:
		return ClassSpace
	case punct:
		return ClassPunct
	default:
		return ClassWord
	}
}
