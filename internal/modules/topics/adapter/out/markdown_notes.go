package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"kex/internal/modules/topics/domain"
	topicsout "kex/internal/modules/topics/port/out"
	"kex/internal/platform/markdown"
	"kex/internal/platform/slug"
)

// MarkdownNotes writes one markdown file per topic under dir. Re-exporting
// a topic rewrites only the generated blocks and frontmatter keys.
type MarkdownNotes struct {
	dir string
}

var _ topicsout.NoteWriter = (*MarkdownNotes)(nil)

func NewMarkdownNotes(dir string) *MarkdownNotes {
	return &MarkdownNotes{dir: dir}
}

func (m *MarkdownNotes) WriteNote(_ context.Context, note domain.Note) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	path := filepath.Join(m.dir, slug.Make(note.Path.Topic)+".md")

	doc := markdown.Document{Meta: map[string]any{}, Body: "# " + note.Path.Topic + "\n"}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if doc, err = markdown.Parse(string(content)); err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	doc.Merge(map[string]any{
		"topic":    note.Path.Topic,
		"level":    string(note.Level),
		"exported": note.ExportedAt.UTC().Format(time.RFC3339),
		"links":    len(note.Path.Links),
	})
	doc.SetBlock(domain.ManagedSummaryStart, domain.ManagedSummaryEnd, note.SummaryBlock())
	doc.SetBlock(domain.ManagedLinksStart, domain.ManagedLinksEnd, note.LinksBlock())

	rendered, err := doc.Render()
	if err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return path, nil
}
