package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/newtron-network/vtysync/pkg/cli"
)

// RenderText returns a line-oriented diff of the running config text
// against the desired one, colored when stdout is a terminal. Shown in
// test mode with --debug as a second opinion next to the command lists.
func RenderText(running, desired string) string {
	dmp := diffmatchpatch.New()

	// Line-mode diff: map lines to runes, diff, then map back, so
	// whole config lines stay intact in the output.
	chars1, chars2, lineArray := dmp.DiffLinesToChars(running, desired)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(cli.Red("-" + line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(cli.Green("+" + line))
			default:
				sb.WriteString(cli.Dim(" " + line))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
