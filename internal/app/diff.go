package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = diffDelLine.Underline(true)
	diffAddChar = diffAddLine.Underline(true)
	diffSame    = lipgloss.NewStyle().Faint(true)
)

// renderDiff renders the line changes between two plain-text documents.
// Changed line pairs get character-level highlights.
func renderDiff(before, after string) string {
	if before == after {
		return "No changes"
	}

	d := dmp.New()
	// Diff whole lines first so unchanged blocks stay aligned.
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i := 0; i < len(diffs); i++ {
		df := diffs[i]
		switch df.Type {
		case dmp.DiffEqual:
			for _, l := range splitLines(df.Text) {
				sb.WriteString("  " + diffSame.Render(l) + "\n")
			}
		case dmp.DiffDelete:
			// A delete followed by an insert of the same line count is an edit.
			if i+1 < len(diffs) && diffs[i+1].Type == dmp.DiffInsert {
				del, ins := splitLines(df.Text), splitLines(diffs[i+1].Text)
				if len(del) == len(ins) {
					for j := range del {
						writeLinePair(&sb, d, del[j], ins[j])
					}
					i++
					continue
				}
			}
			for _, l := range splitLines(df.Text) {
				sb.WriteString(diffDelLine.Render("- "+l) + "\n")
			}
		case dmp.DiffInsert:
			for _, l := range splitLines(df.Text) {
				sb.WriteString(diffAddLine.Render("+ "+l) + "\n")
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeLinePair(sb *strings.Builder, d *dmp.DiffMatchPatch, before, after string) {
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)

	sb.WriteString(diffDelLine.Render("- "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			sb.WriteString(diffDelChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(diffDelLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(diffAddLine.Render("+ "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			sb.WriteString(diffAddChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(diffAddLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")
}

// splitLines splits diff text on newlines, dropping the empty tail left by a
// trailing newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
