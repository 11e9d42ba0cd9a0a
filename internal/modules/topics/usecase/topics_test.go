package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"kex/internal/modules/topics/domain"
	"kex/internal/modules/topics/service"
	"kex/internal/platform/clock"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/logger"
)

type stubRemote struct {
	summary string
	topics  []string
}

func (s *stubRemote) LearningPath(_ context.Context, topic string, _ domain.Level) (domain.LearningPath, error) {
	s.topics = append(s.topics, topic)
	return domain.LearningPath{Topic: "Go (programming language)", Summary: "Go.", Links: []string{"C"}}, nil
}

func (s *stubRemote) Summary(_ context.Context, topic string, _ domain.Level) (string, error) {
	s.topics = append(s.topics, topic)
	return s.summary, nil
}

func TestValidation(t *testing.T) {
	t.Parallel()
	uc := NewInteractor(service.NewTopicService(&stubRemote{}, nil, logger.Nop()), nil, nil)
	ctx := context.Background()

	if _, err := uc.LearningPath(ctx, "   ", "basic"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank topic, got %v", err)
	}
	if _, err := uc.Summary(ctx, "Go", "expert"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad level, got %v", err)
	}
}

func TestLearningPathTrimsTopic(t *testing.T) {
	t.Parallel()
	remote := &stubRemote{}
	uc := NewInteractor(service.NewTopicService(remote, nil, logger.Nop()), nil, nil)

	out, err := uc.LearningPath(context.Background(), "  go  ", "Intermediate")
	if err != nil {
		t.Fatalf("learning path: %v", err)
	}
	if remote.topics[0] != "go" {
		t.Fatalf("expected trimmed topic, got %q", remote.topics[0])
	}
	if out.Topic != "Go (programming language)" || out.Level != "intermediate" || len(out.Links) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestSummaryMissingFlag(t *testing.T) {
	t.Parallel()
	uc := NewInteractor(service.NewTopicService(&stubRemote{summary: "Summary not available."}, nil, logger.Nop()), nil, nil)

	out, err := uc.Summary(context.Background(), "Obscure", "basic")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !out.Missing {
		t.Fatalf("expected missing flag, got %+v", out)
	}
}

type recordingNotes struct {
	notes []domain.Note
}

func (r *recordingNotes) WriteNote(_ context.Context, note domain.Note) (string, error) {
	r.notes = append(r.notes, note)
	return "/notes/" + note.Path.Topic + ".md", nil
}

func TestExportNote(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	notes := &recordingNotes{}
	uc := NewInteractor(service.NewTopicService(&stubRemote{}, nil, logger.Nop()), notes, &clock.Fixed{At: at})

	out, err := uc.ExportNote(context.Background(), "go", "advanced")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Topic != "Go (programming language)" || out.Links != 1 || out.Path == "" {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(notes.notes) != 1 || notes.notes[0].Level != domain.LevelAdvanced || !notes.notes[0].ExportedAt.Equal(at) {
		t.Fatalf("unexpected note %+v", notes.notes)
	}
}

func TestExportNoteWithoutWriter(t *testing.T) {
	t.Parallel()
	uc := NewInteractor(service.NewTopicService(&stubRemote{}, nil, logger.Nop()), nil, nil)
	if _, err := uc.ExportNote(context.Background(), "go", "basic"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
