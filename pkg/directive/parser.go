// Package directive extracts inline priority and due-date directives from quick-add task text.
//
//	"Buy milk P1 3/20" -> title "Buy milk", priority high, due March 20
package directive

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"productivity-hub/pkg/datemath"
)

// priorityRule pairs a token pattern with the priority it maps to.
type priorityRule struct {
	pattern  *regexp.Regexp
	priority Priority
}

// priorityRules are tried in this order; the first pattern found anywhere in the text wins.
var priorityRules = []priorityRule{
	{pattern: regexp.MustCompile(`(?i)\bP1\b`), priority: PriorityHigh},
	{pattern: regexp.MustCompile(`(?i)\bP2\b`), priority: PriorityMedium},
	{pattern: regexp.MustCompile(`(?i)\bP3\b`), priority: PriorityLow},
}

var datePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

// whitespaceRun matches a run of ECMAScript \s whitespace. Unlike unicode.IsSpace this
// includes U+FEFF and excludes U+0085.
var whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+`)

// Parse extracts at most one priority and one due date from input and returns the cleaned title.
// ref is "now": a month/day that is already past relative to ref's midnight resolves to next year.
// Parse never fails; text that does not match a directive stays in the title.
func Parse(input string, ref time.Time) ParsedTask {
	rest, priority := extractPriority(input)
	rest, dueDate := extractDueDate(rest, ref)

	return ParsedTask{
		Title:    CollapseWhitespace(rest),
		Priority: priority,
		DueDate:  dueDate,
	}
}

// extractPriority removes the first occurrence of the highest-precedence priority token present.
func extractPriority(s string) (string, Priority) {
	for _, rule := range priorityRules {
		loc := rule.pattern.FindStringIndex(s)
		if loc == nil {
			continue
		}
		return removeSpan(s, loc), rule.priority
	}
	return s, PriorityNone
}

// extractDueDate removes the leftmost M/D token and resolves it against ref.
func extractDueDate(s string, ref time.Time) (string, *time.Time) {
	loc := datePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, nil
	}

	// Both groups are 1-2 ASCII digits, so Atoi cannot fail.
	month, _ := strconv.Atoi(s[loc[2]:loc[3]])
	day, _ := strconv.Atoi(s[loc[4]:loc[5]])

	due := datemath.ResolveMonthDay(month, day, ref)
	return removeSpan(s, loc[:2]), &due
}

func removeSpan(s string, loc []int) string {
	return s[:loc[0]] + s[loc[1]:]
}

// CollapseWhitespace collapses every whitespace run to one space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Trim(whitespaceRun.ReplaceAllString(s, " "), " ")
}
