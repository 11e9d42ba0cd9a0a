package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Document is a markdown file split into its YAML frontmatter and body.
type Document struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// fence is all body.
func Parse(content string) (Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence) {
		return Document{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return Document{}, fmt.Errorf("frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Document{}, fmt.Errorf("frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Document{Meta: meta, Body: strings.TrimPrefix(rest[idx+1+len(fence):], "\n")}, nil
}

// Merge sets every key of meta, keeping keys the document already has.
func (d *Document) Merge(meta map[string]any) {
	if d.Meta == nil {
		d.Meta = map[string]any{}
	}
	for k, v := range meta {
		d.Meta[k] = v
	}
}

// SetBlock replaces the text between start and end, or appends the block
// when the markers are missing.
func (d *Document) SetBlock(start, end, generated string) {
	block := start + "\n" + generated + "\n" + end
	from := strings.Index(d.Body, start)
	to := strings.Index(d.Body, end)
	if from >= 0 && to > from {
		d.Body = d.Body[:from] + block + d.Body[to+len(end):]
		return
	}
	switch {
	case strings.TrimSpace(d.Body) == "":
		d.Body = block + "\n"
	case strings.HasSuffix(d.Body, "\n"):
		d.Body += "\n" + block + "\n"
	default:
		d.Body += "\n\n" + block + "\n"
	}
}

func (d Document) Render() (string, error) {
	var buf bytes.Buffer
	if len(d.Meta) > 0 {
		raw, err := yaml.Marshal(d.Meta)
		if err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
		buf.WriteString(fence)
		buf.Write(raw)
		buf.WriteString(fence)
		buf.WriteString("\n")
	}
	buf.WriteString(d.Body)
	return buf.String(), nil
}
