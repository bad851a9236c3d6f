package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/impactboard/admin-cli/pkg/approvals"
	"github.com/impactboard/admin-cli/pkg/util"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Faint   = color.New(color.Faint)
)

var badgeColors = map[approvals.ContentType]*color.Color{
	approvals.ContentPost:     color.New(color.FgBlue),
	approvals.ContentResource: color.New(color.FgMagenta),
	approvals.ContentQnA:      color.New(color.FgYellow),
	approvals.ContentStory:    color.New(color.FgGreen),
}

// Badge renders a content type the way list views show it, e.g. "[qna]".
func Badge(t approvals.ContentType) string {
	label := "[" + string(t) + "]"
	if c, ok := badgeColors[t]; ok {
		return c.Sprint(label)
	}
	return label
}

// Pluralize returns "s" unless count is exactly one.
func Pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// Count formats "3 items", "1 item".
func Count(n int, noun string) string {
	return fmt.Sprintf("%d %s%s", n, noun, Pluralize(n))
}

// Truncate shortens s to max runes, ending with an ellipsis.
func Truncate(s string, max int) string {
	return util.Truncate(s, max)
}

// Date formats a submission time, or "unknown" when it was defaulted.
func Date(t time.Time, missing bool) string {
	if missing || t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// RelativeTime describes t relative to now: "just now", "5m ago", "3d ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := now.Sub(t)
	switch {
	case d < 0:
		return t.Local().Format("2006-01-02")
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}

// Author renders "Name (@handle)" with either part optional.
func Author(name, handle string) string {
	switch {
	case handle == "":
		return name
	case name == "" || name == approvals.DefaultAuthorName:
		return "@" + handle
	default:
		return name + " (@" + handle + ")"
	}
}

// Tags joins tags as "#a #b".
func Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

// OrDash returns "-" for empty strings so table cells never collapse.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
