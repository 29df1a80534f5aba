package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/internal/fitness/templates"
	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

var ErrExerciseNotInTemplate = errors.New("exercise does not belong to the session's template")

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (Session, error)
	Get(ctx context.Context, ownerID, id string) (Session, error)
	List(ctx context.Context, ownerID string, params ListParams) ([]Session, int, error)
	ReplaceRecords(ctx context.Context, ownerID, sessionID string, records []Record) error
	Delete(ctx context.Context, ownerID, id string) error
}

type exercisesCatalog interface {
	Get(ctx context.Context, ownerID, id string) (exercises.Exercise, error)
}

type templatesCatalog interface {
	Get(ctx context.Context, ownerID, id string) (templates.Template, error)
}

// Service owns the workout session lifecycle: a session is persisted once
// with its normalized record list, an edit replaces that list wholesale,
// a delete removes the session and its records.
type Service struct {
	repo      sessionsRepo
	catalog   exercisesCatalog
	templates templatesCatalog
}

func NewService(repo sessionsRepo, catalog exercisesCatalog, templatesRepo templatesCatalog) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		templates: templatesRepo,
	}
}

func (s *Service) Create(
	ctx context.Context,
	ownerID, templateID string,
	date time.Time,
	inputs []RecordInput,
) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	template, err := s.templates.Get(ctx, ownerID, templateID)
	if err != nil {
		return Session{}, err
	}

	records, err := s.normalizeAll(ctx, ownerID, template, inputs)
	if err != nil {
		return Session{}, err
	}

	return s.repo.Add(ctx, Session{
		OwnerID:      ownerID,
		TemplateID:   template.ID,
		TemplateName: template.Name,
		Date:         date,
		Records:      records,
	})
}

// Edit replaces the session's exercise records. The template association
// and its name snapshot never change.
func (s *Service) Edit(ctx context.Context, ownerID, sessionID string, inputs []RecordInput) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.edit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.repo.Get(ctx, ownerID, sessionID)
	if err != nil {
		return err
	}

	template, err := s.templates.Get(ctx, ownerID, session.TemplateID)
	if err != nil {
		return fmt.Errorf("resolve session template: %w", err)
	}

	records, err := s.normalizeAll(ctx, ownerID, template, inputs)
	if err != nil {
		return err
	}

	return s.repo.ReplaceRecords(ctx, ownerID, sessionID, records)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Session, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID string, params ListParams) ([]Session, int, error) {
	return s.repo.List(ctx, ownerID, params)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// normalizeAll resolves each input against the exercise catalog, checks it
// belongs to the template, and normalizes it. All records dropping out is a
// validation failure, nothing gets persisted in that case.
func (s *Service) normalizeAll(
	ctx context.Context,
	ownerID string,
	template templates.Template,
	inputs []RecordInput,
) ([]Record, error) {
	allowed := make(map[string]struct{}, len(template.ExerciseIDs))
	for _, id := range template.ExerciseIDs {
		allowed[id] = struct{}{}
	}

	var records []Record
	for _, input := range inputs {
		if _, ok := allowed[input.ExerciseID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrExerciseNotInTemplate, input.ExerciseID)
		}

		exercise, err := s.catalog.Get(ctx, ownerID, input.ExerciseID)
		if err != nil {
			return nil, err
		}

		record, kept, err := Normalize(input, exercise)
		if err != nil {
			return nil, err
		}
		if kept {
			records = append(records, record)
		}
	}

	if len(records) == 0 {
		return nil, ErrNoExerciseData
	}

	return records, nil
}
