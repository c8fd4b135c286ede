package pretty

import (
	"fmt"
	"strings"

	"github.com/cornish/revu/linter"
)

// FormatSummaryOneLine formats report counts as a single line.
// Example: "3 messages (1 error, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(sum linter.Summary, files int) string {
	total := sum.Errors + sum.Warnings + sum.Notices + sum.Other
	if total == 0 {
		return s.Success.Render("No linter messages") + "\n"
	}

	var parts []string
	if sum.Errors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", sum.Errors, plural(sum.Errors, "error", "errors"))))
	}
	if sum.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", sum.Warnings, plural(sum.Warnings, "warning", "warnings"))))
	}
	if sum.Notices > 0 {
		parts = append(parts, s.Notice.Render(fmt.Sprintf("%d %s", sum.Notices, plural(sum.Notices, "notice", "notices"))))
	}
	if sum.Other > 0 {
		parts = append(parts, s.Other.Render(fmt.Sprintf("%d other", sum.Other)))
	}

	return fmt.Sprintf("%d %s (%s) in %d %s\n",
		total, plural(total, "message", "messages"),
		strings.Join(parts, ", "),
		files, plural(files, "file", "files"))
}
