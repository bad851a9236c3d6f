package service

import (
	"fmt"
	"io"
	"time"

	"github.com/impactboard/admin-cli/pkg/approvals"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/output"
)

// printEmpty prints msg in text modes and an empty array in json mode.
func printEmpty(msg string) error {
	return output.Render([]any{}, func(w io.Writer) {
		fmt.Fprintln(w, msg)
	})
}

// PrintApprovalsPage writes one page of the pending-approvals view.
func PrintApprovalsPage(page approvals.Page, demo bool, now time.Time) error {
	var data any = page
	if demo {
		data = struct {
			approvals.Page
			Demo bool `json:"demo"`
		}{page, true}
		if output.GetOutputFormat() != output.FormatJSON {
			output.PrintWarning("Showing demo data; the backend could not be reached")
		}
	}
	if page.Total == 0 {
		return printEmpty("No pending approvals.")
	}

	rows := make([][]string, 0, len(page.Items))
	for _, it := range page.Items {
		rows = append(rows, []string{
			it.ContentID,
			formatter.Badge(it.ContentType),
			formatter.Truncate(it.Title, 40),
			formatter.Truncate(formatter.Author(it.AuthorName, it.AuthorHandle), 28),
			submitted(it, now),
		})
	}
	if err := output.PrintList(data, []string{"ID", "TYPE", "TITLE", "AUTHOR", "SUBMITTED"}, rows); err != nil {
		return err
	}
	if output.GetOutputFormat() != output.FormatJSON {
		formatter.Faint.Fprintf(output.Out, "Page %d of %d · %s\n", page.Page, page.TotalPages, formatter.Count(page.Total, "item"))
	}
	return nil
}

// PrintApproval writes every field of one pending item.
func PrintApproval(it approvals.Item, now time.Time) error {
	fields := []output.Field{
		{Label: "ID", Value: it.ContentID},
		{Label: "Type", Value: it.ContentType},
		{Label: "Title", Value: it.Title},
		{Label: "Author", Value: formatter.Author(it.AuthorName, it.AuthorHandle)},
		{Label: "Submitted", Value: submitted(it, now)},
	}
	if len(it.Tags) > 0 {
		fields = append(fields, output.Field{Label: "Tags", Value: formatter.Tags(it.Tags)})
	}
	fields = append(fields, detailFields(it.Detail)...)
	if it.Snippet != "" {
		fields = append(fields, output.Field{Label: "Snippet", Value: it.Snippet})
	}
	return output.PrintRecord(it.Title, it, fields)
}

func submitted(it approvals.Item, now time.Time) string {
	if it.SubmittedAtMissing {
		return "unknown"
	}
	return formatter.RelativeTime(it.SubmittedAt, now)
}

func detailFields(d approvals.Detail) []output.Field {
	var out []output.Field
	add := func(label, v string) {
		if v != "" {
			out = append(out, output.Field{Label: label, Value: v})
		}
	}
	switch d := d.(type) {
	case approvals.PostDetail:
		if len(d.MediaURLs) > 0 {
			add("Media", formatter.Count(len(d.MediaURLs), "attachment"))
		}
	case approvals.ResourceDetail:
		add("URL", d.URL)
		add("File type", d.FileType)
		add("Category", d.Category)
	case approvals.QnADetail:
		add("Question", d.Question)
		add("Answers", fmt.Sprint(d.AnswerCount))
	case approvals.StoryDetail:
		add("Location", d.Location)
		add("Impact", d.ImpactMetric)
		add("Cover", d.CoverImage)
	}
	return out
}
