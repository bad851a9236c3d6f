package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/impactboard/admin-cli/pkg/config"
	"github.com/impactboard/admin-cli/pkg/notify"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

// Out is where every printer writes. Tests swap it for a buffer.
var Out io.Writer = color.Output

// SetWriter redirects output and returns a func restoring the previous writer.
func SetWriter(w io.Writer) func() {
	prev := Out
	Out = w
	return func() { Out = prev }
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch config.GetString("output.format") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Field is one labelled value of a record. Records keep field order.
type Field struct {
	Label string
	Value any
}

// Render writes data as JSON when the json format is selected and calls text
// otherwise.
func Render(data any, text func(w io.Writer)) error {
	if GetOutputFormat() == FormatJSON {
		return PrintJSON(data)
	}
	text(Out)
	return nil
}

// PrintList prints rows under headers. In json mode data is encoded instead.
func PrintList(data any, headers []string, rows [][]string) error {
	return Render(data, func(w io.Writer) {
		printTable(w, headers, rows)
	})
}

// PrintRecord prints a single record as aligned label/value lines.
func PrintRecord(title string, data any, fields []Field) error {
	return Render(data, func(w io.Writer) {
		if title != "" {
			color.New(color.Bold, color.Underline).Fprintln(w, title)
		}
		if GetOutputFormat() == FormatTable {
			rows := make([][]string, 0, len(fields))
			for _, f := range fields {
				rows = append(rows, []string{f.Label, fmt.Sprint(f.Value)})
			}
			printTable(w, []string{"Field", "Value"}, rows)
			return
		}
		width := 0
		for _, f := range fields {
			width = max(width, len(f.Label))
		}
		bold := color.New(color.Bold)
		for _, f := range fields {
			bold.Fprintf(w, "%-*s  ", width+1, f.Label+":")
			fmt.Fprintf(w, "%v\n", f.Value)
		}
	})
}

// PrintJSON writes data as indented JSON.
func PrintJSON(data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, string(b))
	return err
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(Out, msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(Out, "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(Out, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(Out, "Warning: "+msg+"\n", args...)
}

// PrintToast writes a toast as one coloured line. It is the sink the CLI
// hands to notify.Queue.
func PrintToast(t notify.Toast) {
	if GetOutputFormat() == FormatJSON {
		return
	}
	var c *color.Color
	var mark string
	switch t.Level {
	case notify.LevelSuccess:
		c, mark = color.New(color.FgGreen), "✓"
	case notify.LevelError:
		c, mark = color.New(color.FgRed), "✗"
	case notify.LevelWarning:
		c, mark = color.New(color.FgYellow), "!"
	default:
		c, mark = color.New(color.FgCyan), "…"
	}
	c.Fprintf(Out, "%s %s\n", mark, t.Message)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// FormatAsJSON converts data to JSON string (convenience function)
func FormatAsJSON(data interface{}) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatAsPrettyJSON converts data to pretty JSON string (convenience function)
func FormatAsPrettyJSON(data interface{}) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
