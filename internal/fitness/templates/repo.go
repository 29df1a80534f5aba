package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrTemplateNotFound = errors.New("template not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, template Template) (_ Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	template.ID = uuid.NewString()
	template.Status = StatusActive
	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Template{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_templates (id, owner_id, name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		template.ID, template.OwnerID, template.Name, template.Status.String(),
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return Template{}, fmt.Errorf("insert template: %w", err)
	}

	if err = insertTemplateExercises(ctx, tx, template.ID, template.ExerciseIDs); err != nil {
		return Template{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Template{}, fmt.Errorf("commit tx: %w", err)
	}

	return template, nil
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (_ Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx,
		`SELECT t.id, t.owner_id, t.name, t.status, t.created_at, t.updated_at,
				(SELECT MAX(s.date) FROM workout_sessions s WHERE s.template_id = t.id)
			FROM workout_templates t
			WHERE t.id = $1 AND t.owner_id = $2`,
		id, ownerID,
	)

	template, err := scanTemplate(row)
	if err != nil {
		return Template{}, err
	}

	template.ExerciseIDs, err = r.exerciseIDs(ctx, template.ID)
	if err != nil {
		return Template{}, err
	}

	return template, nil
}

type ListParams struct {
	IncludeArchived bool
}

// List returns the owner's templates, newest first. Archived templates are
// skipped unless asked for.
func (r *Repo) List(ctx context.Context, ownerID string, params ListParams) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT t.id, t.owner_id, t.name, t.status, t.created_at, t.updated_at,
			(SELECT MAX(s.date) FROM workout_sessions s WHERE s.template_id = t.id)
		FROM workout_templates t
		WHERE t.owner_id = $1`
	if !params.IncludeArchived {
		query += fmt.Sprintf(" AND t.status = '%s'", StatusActive)
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var found []Template
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, template)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range found {
		found[i].ExerciseIDs, err = r.exerciseIDs(ctx, found[i].ID)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, nil
}

// Update replaces the template's name and exercise list. The exercise list
// replacement is a delete then reinsert, order comes from the slice order.
func (r *Repo) Update(ctx context.Context, ownerID, id, name string, exerciseIDs []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE workout_templates SET name = $1, updated_at = $2
			WHERE id = $3 AND owner_id = $4 AND status = $5`,
		name, time.Now(), id, ownerID, StatusActive.String(),
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM template_exercises WHERE template_id = $1`, id); err != nil {
		return fmt.Errorf("clear template exercises: %w", err)
	}
	if err = insertTemplateExercises(ctx, tx, id, exerciseIDs); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Archive flips the template to archived. The row stays put so sessions
// created from it keep resolving.
func (r *Repo) Archive(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.archive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE workout_templates SET status = $1, updated_at = $2
			WHERE id = $3 AND owner_id = $4`,
		StatusArchived.String(), time.Now(), id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("archive template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *Repo) exerciseIDs(ctx context.Context, templateID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT exercise_id FROM template_exercises
			WHERE template_id = $1 ORDER BY order_index ASC`,
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("query template exercises: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertTemplateExercises(ctx context.Context, tx pgx.Tx, templateID string, exerciseIDs []string) error {
	for i, exerciseID := range exerciseIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO template_exercises (template_id, exercise_id, order_index)
				VALUES ($1, $2, $3)`,
			templateID, exerciseID, i,
		)
		if err != nil {
			return fmt.Errorf("insert template exercise: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (Template, error) {
	var template Template
	err := row.Scan(
		&template.ID, &template.OwnerID, &template.Name, &template.Status,
		&template.CreatedAt, &template.UpdatedAt, &template.LastUsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, ErrTemplateNotFound
		}
		return Template{}, fmt.Errorf("scan template: %w", err)
	}
	return template, nil
}

func (s Status) String() string {
	return string(s)
}
