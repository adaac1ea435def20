// Package render drains an *event.Channel and prints it to a terminal,
// the concrete "event consumer" spec.md §6 leaves external. It is the
// Go-native sibling of original_source's formatters.rs/tables.rs split:
// a colorized line renderer by default, a JSON-lines renderer on
// request.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/formatter"
)

// Renderer drains a Channel and writes one line per event to w.
type Renderer struct {
	w         io.Writer
	useColors bool
	json      bool
}

// New returns a line renderer. Colors are applied when useColors is set;
// when asJSON is set the renderer ignores useColors and writes one JSON
// object per event instead.
func New(w io.Writer, useColors, asJSON bool) *Renderer {
	return &Renderer{w: w, useColors: useColors, json: asJSON}
}

// Drain consumes every event from ch, rendering each, and returns the
// final Result carried by the terminal Completed event. It returns an
// error only if the channel closed without ever sending one (a bug in
// the producer, not a domain failure).
func (r *Renderer) Drain(ch *event.Channel) (event.Result, error) {
	var result event.Result
	var got bool

	for ev := range ch.Events() {
		if r.json {
			r.renderJSON(ev)
		} else {
			r.renderLine(ev)
		}
		if c, ok := ev.(event.Completed); ok {
			result = c.Result
			got = true
		}
	}

	if !got {
		return event.Result{}, fmt.Errorf("render: channel closed without a Completed event")
	}
	return result, nil
}

func (r *Renderer) renderJSON(ev event.PackageEvent) {
	enc := json.NewEncoder(r.w)
	//nolint:errcheck // best-effort stdout write
	enc.Encode(jsonEnvelope(ev))
}

// jsonEnvelope flattens an event into a plain map so every variant
// serializes as one self-describing JSON object (no Go interface type
// info survives encoding/json on its own).
func jsonEnvelope(ev event.PackageEvent) map[string]any {
	m := map[string]any{"kind": eventKind(ev)}

	switch e := ev.(type) {
	case event.Started:
		m["operation"] = e.Base.Op.Operation
		m["package"] = e.Base.Op.PackageName
	case event.Progress:
		m["step"] = e.Step
		m["total"] = e.Total
		m["percent"] = e.Percent
		m["message"] = e.Message
	case event.InfoEvent:
		m["stream"] = streamName(e.Output.Stream)
		m["text"] = e.Output.Text
	case event.Trace:
		m["message"] = e.Message
	case event.Debug:
		m["message"] = e.Message
	case event.Warning:
		m["message"] = e.Message
	case event.Error:
		m["message"] = e.Message
		if e.Err != nil {
			m["error"] = e.Err.Error()
		}
	case event.Canceled:
		m["reason"] = e.Reason
	case event.Completed:
		m["success"] = e.Result.Success
		m["message"] = e.Result.Message
	case event.PackageInfoLoaded:
		m["package"] = e.PackageName
		m["version"] = e.Version
		m["description"] = e.Description
	case event.EnvironmentStatusChecked:
		m["environment"] = e.Environment
		m["current"] = e.IsCurrent
		m["status"] = statusName(e.Status.Kind)
		if e.Status.Reason != "" {
			m["reason"] = e.Status.Reason
		}
	case event.PackageListLoaded:
		m["valid_count"] = len(e.Valid)
		m["invalid_count"] = len(e.Invalid)
	case event.CheckResultCompleted:
		m["installed"] = e.Installed
	case event.ValidationResultCompleted:
		m["issue_count"] = len(e.Issues)
	}
	return m
}

func eventKind(ev event.PackageEvent) string {
	switch ev.(type) {
	case event.Started:
		return "started"
	case event.Progress:
		return "progress"
	case event.InfoEvent:
		return "info"
	case event.Trace:
		return "trace"
	case event.Debug:
		return "debug"
	case event.Warning:
		return "warning"
	case event.Error:
		return "error"
	case event.Canceled:
		return "canceled"
	case event.Completed:
		return "completed"
	case event.PackageInfoLoaded:
		return "package_info"
	case event.EnvironmentStatusChecked:
		return "environment_status"
	case event.PackageListLoaded:
		return "package_list"
	case event.CheckResultCompleted:
		return "check_result"
	case event.ValidationResultCompleted:
		return "validation_result"
	default:
		return "unknown"
	}
}

func streamName(s event.ConsoleStream) string {
	if s == event.ConsoleStderr {
		return "stderr"
	}
	return "stdout"
}

func statusName(k event.EnvironmentStatusKind) string {
	switch k {
	case event.EnvStatusInstalled:
		return "installed"
	case event.EnvStatusNotInstalled:
		return "not_installed"
	case event.EnvStatusUnknown:
		return "unknown"
	default:
		return "none"
	}
}

func (r *Renderer) renderLine(ev event.PackageEvent) {
	switch e := ev.(type) {
	case event.Started:
		r.printf(color.FgCyan, "==> %s %s\n", e.Base.Op.Operation, e.Base.Op.PackageName)
	case event.Progress:
		r.printf(color.FgBlue, "[%d/%d] %s\n", e.Step, e.Total, e.Message)
	case event.InfoEvent:
		fmt.Fprintln(r.w, indent(e.Output.Text))
	case event.Trace:
		// Trace events are diagnostic-only and are not printed to the
		// terminal.
	case event.Debug:
	case event.Warning:
		r.printf(color.FgYellow, "warning: %s\n", e.Message)
	case event.Error:
		r.printf(color.FgRed, "error: %s\n", e.Message)
	case event.Canceled:
		r.printf(color.FgYellow, "canceled: %s\n", e.Reason)
	case event.Completed:
		if e.Result.Success {
			r.printf(color.FgGreen, "✓ %s\n", e.Result.Message)
		} else {
			r.printf(color.FgRed, "✗ %s\n", e.Result.Message)
		}
	case event.PackageInfoLoaded:
		fmt.Fprintf(r.w, "%s %s\n", e.PackageName, e.Version)
		if e.Description != "" {
			fmt.Fprintln(r.w, indent(e.Description))
		}
	case event.EnvironmentStatusChecked:
		marker := " "
		if e.IsCurrent {
			marker = "*"
		}
		fmt.Fprintf(r.w, "  %s%-12s %s\n", marker, e.Environment, statusName(e.Status.Kind))
	case event.PackageListLoaded:
		if len(e.Valid) > 0 {
			t := formatter.NewTable(r.w, "NAME", "SOURCE")
			t.SetMaxWidth(1, 60)
			for _, v := range e.Valid {
				t.AddRow(v.Name, v.SourcePath)
			}
			//nolint:errcheck // best-effort stdout write
			t.Render()
		}
		for _, inv := range e.Invalid {
			r.printf(color.FgRed, "  %s (invalid: %s)\n", inv.Path, inv.Err)
		}
	case event.CheckResultCompleted:
		// Folded into the terminal Completed message; nothing extra
		// to print here.
	case event.ValidationResultCompleted:
		for _, issue := range e.Issues {
			r.printf(severityColor(issue.Level), "  [%s] %s: %s\n", issue.Level, issue.Field, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintln(r.w, indent("  "+issue.Suggestion))
			}
		}
	}
}

func severityColor(level string) color.Attribute {
	if strings.EqualFold(level, "error") {
		return color.FgRed
	}
	return color.FgYellow
}

func (r *Renderer) printf(attr color.Attribute, format string, args ...any) {
	if r.useColors {
		c := color.New(attr)
		//nolint:errcheck // best-effort stdout write
		c.Fprintf(r.w, format, args...)
		return
	}
	fmt.Fprintf(r.w, format, args...)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
