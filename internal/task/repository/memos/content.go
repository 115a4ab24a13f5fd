package memos

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"productivity-hub/internal/model"
)

const (
	taskTag      = "#task"
	userTag      = "#user/"
	priorityTag  = "#priority/"
	projectTag   = "#project/"
	dueTag       = "#due/"
	gcalTag      = "#gcal/"
	dueLayout    = "2006-01-02"
	calendarLink = "[Calendar]("
)

// errNotATask marks memo content that was not written by this repository.
var errNotATask = errors.New("memo is not a task")

// document is the part of a task stored inside memo content.
type document struct {
	UserID          string
	Title           string
	Description     string
	Completed       bool
	DueDate         *time.Time
	Priority        model.Priority
	ProjectID       string
	CalendarEventID string
	CalendarLink    string
}

// encodeContent renders d as memo markdown:
//
//	- [ ] Title
//	description
//
//	[Calendar](link)
//	#task #user/u1 #priority/high #project/inbox #due/2025-01-02 #gcal/evt
//
// The calendar line, when present, always sits directly above the tag line.
func encodeContent(d document) string {
	var b strings.Builder

	box := " "
	if d.Completed {
		box = "x"
	}
	fmt.Fprintf(&b, "- [%s] %s\n", box, d.Title)
	if desc := strings.TrimSpace(d.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if d.CalendarLink != "" {
		fmt.Fprintf(&b, "%s%s)\n", calendarLink, d.CalendarLink)
	}

	tags := []string{taskTag, userTag + tagValue(d.UserID)}
	if d.Priority != "" {
		tags = append(tags, priorityTag+string(d.Priority))
	}
	if d.ProjectID != "" {
		tags = append(tags, projectTag+tagValue(d.ProjectID))
	}
	if d.DueDate != nil {
		tags = append(tags, dueTag+d.DueDate.Format(dueLayout))
	}
	if d.CalendarEventID != "" {
		tags = append(tags, gcalTag+d.CalendarEventID)
	}

	b.WriteString(strings.Join(tags, " "))
	return b.String()
}

// decodeContent parses memo markdown produced by encodeContent. Due dates are
// placed at midnight in loc.
func decodeContent(content string, loc *time.Location) (document, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return document{}, errNotATask
	}

	tagLine := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(tagLine, taskTag+" ") && tagLine != taskTag {
		return document{}, errNotATask
	}

	var d document
	head := strings.TrimSpace(lines[0])
	switch {
	case strings.HasPrefix(head, "- [ ] "):
		d.Title = strings.TrimPrefix(head, "- [ ] ")
	case strings.HasPrefix(head, "- [x] "), strings.HasPrefix(head, "- [X] "):
		d.Completed = true
		d.Title = head[len("- [x] "):]
	default:
		return document{}, errNotATask
	}

	body := lines[1 : len(lines)-1]
	if link, ok := calendarLine(body); ok {
		d.CalendarLink = link
		body = body[:len(body)-1]
	}
	d.Description = strings.TrimSpace(strings.Join(body, "\n"))

	for _, tag := range strings.Fields(tagLine) {
		switch {
		case strings.HasPrefix(tag, userTag):
			d.UserID = parseTagValue(strings.TrimPrefix(tag, userTag))
		case strings.HasPrefix(tag, priorityTag):
			d.Priority = model.Priority(strings.TrimPrefix(tag, priorityTag))
		case strings.HasPrefix(tag, projectTag):
			d.ProjectID = parseTagValue(strings.TrimPrefix(tag, projectTag))
		case strings.HasPrefix(tag, dueTag):
			due, err := time.ParseInLocation(dueLayout, strings.TrimPrefix(tag, dueTag), loc)
			if err != nil {
				return document{}, fmt.Errorf("invalid due tag %q: %w", tag, err)
			}
			d.DueDate = &due
		case strings.HasPrefix(tag, gcalTag):
			d.CalendarEventID = strings.TrimPrefix(tag, gcalTag)
		}
	}
	return d, nil
}

// calendarLine reports the link on the last body line. The description is trimmed on
// write, so that line only holds a link when a blank line separates it from the rest.
func calendarLine(body []string) (string, bool) {
	n := len(body)
	if n == 0 {
		return "", false
	}
	last := strings.TrimSpace(body[n-1])
	if !strings.HasPrefix(last, calendarLink) || !strings.HasSuffix(last, ")") {
		return "", false
	}
	if n > 1 && strings.TrimSpace(body[n-2]) != "" {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(last, calendarLink), ")"), true
}

// tagValue keeps a value inside a single Memos tag. Spaces, '#', '/' and quotes are
// percent-encoded so parseTagValue can restore the exact value.
func tagValue(s string) string {
	return url.PathEscape(s)
}

// parseTagValue reverses tagValue. Hand-written tags that are not valid escapes are kept as is.
func parseTagValue(s string) string {
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
