package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SectionHeader is the exact heading that opens the habit section inside a
// daily note. The section body runs until the next "## " heading or the end
// of the document.
const SectionHeader = "## Habits"

const headingPrefix = "## "

var (
	sectionHeaderRegex = regexp.MustCompile(`^## Habits\s*$`)
	checkboxLineRegex  = regexp.MustCompile(`^- \[([ xX])\] (.*?)(?:\s*\(value:\s*(.*?)\s*\))?\s*$`)
)

// habitLinePattern matches the checkbox line of one specific habit. The name
// is matched literally (regex metacharacters escaped) and case-insensitively,
// anchored to the end of the line with an optional value annotation.
func habitLinePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^- \[([ x])\] ` + regexp.QuoteMeta(name) + `(?:\s*\(value:\s*(.*?)\s*\))?\s*$`)
}

// FormatRecordLine renders one habit's checkbox line. The value annotation
// is emitted only when the trimmed value is non-empty, so switching a habit
// back to plain drops the annotation on the next write.
func FormatRecordLine(name string, completed bool, value string) string {
	mark := " "
	if completed {
		mark = "x"
	}
	line := fmt.Sprintf("- [%s] %s", mark, name)
	if v := strings.TrimSpace(value); v != "" {
		line += fmt.Sprintf(" (value: %s)", v)
	}
	return line
}

// splitLines preserves the document byte-exactly: joining the result with
// "\n" restores the original text, trailing newline included.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// sectionBounds returns the line index of the section header and the
// exclusive end index of the section body.
func sectionBounds(lines []string) (header, end int, ok bool) {
	header = -1
	for i, line := range lines {
		if sectionHeaderRegex.MatchString(line) {
			header = i
			break
		}
	}
	if header == -1 {
		return 0, 0, false
	}
	end = len(lines)
	for i := header + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], headingPrefix) {
			end = i
			break
		}
	}
	return header, end, true
}

// GetRecord scans the habit section for the named habit and returns its
// completion record. found is false when the section or the line is absent;
// that reads the same as an explicitly unchecked line.
func GetRecord(text, name, date string) (HabitCompletion, bool) {
	rec := HabitCompletion{Date: date}

	lines := splitLines(text)
	header, end, ok := sectionBounds(lines)
	if !ok {
		return rec, false
	}

	pattern := habitLinePattern(name)
	for i := header + 1; i < end; i++ {
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		rec.Completed = strings.EqualFold(m[1], "x")
		rec.Value = m[2]
		return rec, true
	}
	return rec, false
}

// newSection renders a fresh habit section appended to text, separated from
// existing content by a blank line when the document is non-empty.
func newSection(text string, recordLines []string) string {
	block := SectionHeader + "\n" + strings.Join(recordLines, "\n") + "\n"
	if strings.TrimSpace(text) == "" {
		return block
	}
	return strings.TrimRight(text, "\n") + "\n\n" + block
}

// UpsertRecordLine rewrites text so the named habit's line reflects the
// given state. An existing line is replaced in place; a new line is inserted
// as the first line of the section body, and a missing section is appended
// to the document.
func UpsertRecordLine(text, name string, completed bool, value string) string {
	recordLine := FormatRecordLine(name, completed, value)

	lines := splitLines(text)
	header, end, ok := sectionBounds(lines)
	if !ok {
		return newSection(text, []string{recordLine})
	}

	pattern := habitLinePattern(name)
	for i := header + 1; i < end; i++ {
		if pattern.MatchString(lines[i]) {
			lines[i] = recordLine
			return strings.Join(lines, "\n")
		}
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:header+1]...)
	updated = append(updated, recordLine)
	updated = append(updated, lines[header+1:]...)
	return strings.Join(updated, "\n")
}

// SectionNames returns the habit names recorded in the section, in document
// order, with value annotations stripped. Empty names are skipped.
func SectionNames(text string) []string {
	lines := splitLines(text)
	header, end, ok := sectionBounds(lines)
	if !ok {
		return nil
	}

	var names []string
	for i := header + 1; i < end; i++ {
		m := checkboxLineRegex.FindStringSubmatch(lines[i])
		if m == nil || strings.TrimSpace(m[2]) == "" {
			continue
		}
		names = append(names, m[2])
	}
	return names
}

// EnsureRecordLines guarantees the section contains one checkbox line per
// name, inserting fresh unchecked lines as a block immediately after the
// header while preserving the given order. Existing lines, checked state and
// values included, are left untouched, which makes the operation idempotent.
func EnsureRecordLines(text string, names []string) (string, bool) {
	names = FilterHabitNames(names)

	if len(names) == 0 {
		return text, false
	}

	lines := splitLines(text)
	header, _, ok := sectionBounds(lines)
	if !ok {
		recordLines := make([]string, 0, len(names))
		for _, n := range names {
			recordLines = append(recordLines, FormatRecordLine(n, false, ""))
		}
		return newSection(text, recordLines), true
	}

	present := make(map[string]bool)
	for _, n := range SectionNames(text) {
		present[strings.ToLower(n)] = true
	}

	var missing []string
	for _, n := range names {
		if !present[strings.ToLower(n)] {
			missing = append(missing, FormatRecordLine(n, false, ""))
		}
	}
	if len(missing) == 0 {
		return text, false
	}

	updated := make([]string, 0, len(lines)+len(missing))
	updated = append(updated, lines[:header+1]...)
	updated = append(updated, missing...)
	updated = append(updated, lines[header+1:]...)
	return strings.Join(updated, "\n"), true
}

// ReplaceRecordName rewrites the habit-name token on every matching line in
// the section, keeping the checked marker and any value annotation verbatim.
func ReplaceRecordName(text, oldName, newName string) (string, bool) {
	lines := splitLines(text)
	header, end, ok := sectionBounds(lines)
	if !ok {
		return text, false
	}

	pattern := regexp.MustCompile(`(?i)^(- \[[ x]\] )` + regexp.QuoteMeta(oldName) + `((?:\s*\(value:.*?\))?\s*)$`)

	changed := false
	for i := header + 1; i < end; i++ {
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		lines[i] = m[1] + newName + m[2]
		changed = true
	}
	if !changed {
		return text, false
	}
	return strings.Join(lines, "\n"), true
}
