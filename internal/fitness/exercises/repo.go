package exercises

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with that name already exists")
)

type ListParams struct {
	Kind   Kind
	Search string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Add stores a new user-owned exercise. The name must be unique,
// case-insensitively, among the owner's exercises and the shared defaults.
func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	taken, err := r.nameTaken(ctx, exercise.OwnerID, exercise.Name)
	if err != nil {
		return Exercise{}, fmt.Errorf("check exercise name: %w", err)
	}
	if taken {
		return Exercise{}, ErrExerciseExists
	}

	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now()

	_, err = r.db.Exec(ctx,
		`INSERT INTO exercises (id, owner_id, name, kind, goal, goal_due_date, is_default, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		exercise.ID, ownerOrNull(exercise.OwnerID), exercise.Name, exercise.Kind.String(),
		exercise.Goal, exercise.GoalDueDate, exercise.IsDefault, exercise.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return Exercise{}, ErrExerciseExists
		}
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}

	return exercise, nil
}

// Get returns an exercise visible to the given owner, i.e. one of the
// owner's own exercises or a shared default.
func (r *Repo) Get(ctx context.Context, ownerID, id string) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx,
		`SELECT id, owner_id, name, kind, goal, goal_due_date, is_default, created_at
			FROM exercises
			WHERE id = $1 AND (owner_id = $2 OR owner_id IS NULL)`,
		id, ownerID,
	)
	return scanExercise(row)
}

// List returns the exercises visible to the owner, shared defaults included,
// optionally filtered by kind and by a case-insensitive name substring.
func (r *Repo) List(ctx context.Context, ownerID string, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, owner_id, name, kind, goal, goal_due_date, is_default, created_at
		FROM exercises
		WHERE (owner_id = $1 OR owner_id IS NULL)`
	args := []interface{}{ownerID}

	if params.Kind != "" {
		args = append(args, params.Kind.String())
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		query += fmt.Sprintf(" AND LOWER(name) LIKE $%d", len(args))
	}
	query += " ORDER BY is_default DESC, name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var found []Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, nil
}

// UpdateGoal sets the goal pair of a counter exercise owned by the user.
func (r *Repo) UpdateGoal(ctx context.Context, ownerID, id string, goal float64, goalDueDate string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.updateGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE exercises SET goal = $1, goal_due_date = $2
			WHERE id = $3 AND owner_id = $4 AND kind = $5`,
		goal, goalDueDate, id, ownerID, KindCounter.String(),
	)
	if err != nil {
		return fmt.Errorf("update exercise goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) nameTaken(ctx context.Context, ownerID, name string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises
			WHERE LOWER(name) = LOWER($1) AND (owner_id = $2 OR owner_id IS NULL)`,
		name, ownerID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func ownerOrNull(ownerID string) interface{} {
	if ownerID == "" {
		return nil
	}
	return ownerID
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExercise(row rowScanner) (Exercise, error) {
	var (
		exercise Exercise
		ownerID  *string
	)
	err := row.Scan(
		&exercise.ID, &ownerID, &exercise.Name, &exercise.Kind,
		&exercise.Goal, &exercise.GoalDueDate, &exercise.IsDefault, &exercise.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Exercise{}, ErrExerciseNotFound
		}
		return Exercise{}, fmt.Errorf("scan exercise: %w", err)
	}
	if ownerID != nil {
		exercise.OwnerID = *ownerID
	}
	return exercise, nil
}
