// Package output provides the machine-readable encodings of CLI results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"gopkg.in/yaml.v3"
)

// Format selects how a result is written.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatICS
)

// Options mirrors the output flags shared by the list commands.
type Options struct {
	JSON bool
	YAML bool
	ICS  bool
}

// Format resolves the flags into a single format. Setting more than one is an error.
func (o Options) Format() (Format, error) {
	format := FormatText
	n := 0
	if o.JSON {
		format = FormatJSON
		n++
	}
	if o.YAML {
		format = FormatYAML
		n++
	}
	if o.ICS {
		format = FormatICS
		n++
	}
	if n > 1 {
		return FormatText, fmt.Errorf("only one of --json, --yaml and --ics may be given")
	}
	return format, nil
}

var htmlTag = regexp.MustCompile(`(?i)<(p|br|div|span|a|b|i|u|strong|em|ul|ol|li|h[1-6]|table|tr|td|font)\b[^>]*>`)

// LooksLikeHTML reports whether notes were entered with the rich text editor.
func LooksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// HTMLToMarkdown converts HTML content to Markdown.
// Returns the original content if conversion fails or content is empty.
func HTMLToMarkdown(html string) string {
	if html == "" {
		return ""
	}

	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return html
	}

	return strings.TrimSpace(md)
}

// NotesToMarkdown converts rich text notes and leaves plain notes alone.
func NotesToMarkdown(notes string) string {
	if !LooksLikeHTML(notes) {
		return notes
	}
	return HTMLToMarkdown(notes)
}

// ListResponse wraps a list result with its paging state.
type ListResponse struct {
	Items   any  `json:"items"`
	Count   int  `json:"count"`
	HasMore bool `json:"hasMore"`
}

// ActionResponse represents the response from an action command (e.g. configure).
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FormatListResponse creates a ListResponse with the given values.
func FormatListResponse(items any, count int, hasMore bool) *ListResponse {
	return &ListResponse{
		Items:   items,
		Count:   count,
		HasMore: hasMore,
	}
}

// FormatActionResponse creates an ActionResponse.
func FormatActionResponse(success bool, message string) *ActionResponse {
	return &ActionResponse{
		Success: success,
		Message: message,
	}
}

// WriteJSON writes a value as JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes a value as YAML using the same field names as WriteJSON.
func WriteYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// JSON is valid YAML; decoding into a node keeps the field order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// Write encodes v in a machine-readable format.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("format %d is not a structured encoding", format)
	}
}

// PrintMoreHint tells a human reader that the window holds more results than were shown.
func PrintMoreHint(w io.Writer, hasMore bool) {
	if hasMore {
		fmt.Fprintln(w, "\nMore events available: use --all to list every event in the window")
	}
}
