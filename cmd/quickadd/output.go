package main

import (
	"encoding/json"
	"fmt"
	"io"

	"productivity-hub/pkg/directive"
)

type parseOutput struct {
	Input    string  `json:"input"`
	Title    string  `json:"title"`
	Priority *string `json:"priority"`
	DueDate  *string `json:"due_date"`
}

func newParseOutput(input string, p directive.ParsedTask) parseOutput {
	out := parseOutput{Input: input, Title: p.Title}
	if p.HasPriority() {
		priority := string(p.Priority)
		out.Priority = &priority
	}
	if p.HasDueDate() {
		due := p.DueDate.Format("2006-01-02")
		out.DueDate = &due
	}
	return out
}

func writeParseOutput(w io.Writer, format string, out parseOutput) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Title:    %s\n", out.Title)
	fmt.Fprintf(w, "Priority: %s\n", valueOrDash(out.Priority))
	fmt.Fprintf(w, "Due:      %s\n", valueOrDash(out.DueDate))
	return nil
}

func valueOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
