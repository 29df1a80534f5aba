package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type ListParams struct {
	Limit  int
	Offset int
}

func (r *Repo) Add(ctx context.Context, session Session) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session.ID = uuid.NewString()
	session.CreatedAt = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, owner_id, template_id, template_name, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.OwnerID, session.TemplateID, session.TemplateName,
		session.Date, session.CreatedAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	if session.Records, err = insertRecords(ctx, tx, session.ID, session.Records); err != nil {
		return Session{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Session{}, fmt.Errorf("commit tx: %w", err)
	}

	return session, nil
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx,
		`SELECT id, owner_id, template_id, template_name, date, created_at
			FROM workout_sessions
			WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	var session Session
	err = row.Scan(
		&session.ID, &session.OwnerID, &session.TemplateID,
		&session.TemplateName, &session.Date, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("scan session: %w", err)
	}

	session.Records, err = r.records(ctx, session.ID)
	if err != nil {
		return Session{}, err
	}

	return session, nil
}

// List returns a page of the owner's sessions, newest date first, together
// with the total session count.
func (r *Repo) List(ctx context.Context, ownerID string, params ListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sessions WHERE owner_id = $1`, ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, template_id, template_name, date, created_at
			FROM workout_sessions
			WHERE owner_id = $1
			ORDER BY date DESC, created_at DESC
			LIMIT $2 OFFSET $3`,
		ownerID, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var found []Session
	for rows.Next() {
		var session Session
		err = rows.Scan(
			&session.ID, &session.OwnerID, &session.TemplateID,
			&session.TemplateName, &session.Date, &session.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan session: %w", err)
		}
		found = append(found, session)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range found {
		if found[i].Records, err = r.records(ctx, found[i].ID); err != nil {
			return nil, 0, err
		}
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, total, nil
}

// ListAll returns every session of the owner with its records, unpaged.
// Meant for aggregation, the sessions come back in no particular order.
func (r *Repo) ListAll(ctx context.Context, ownerID string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, template_id, template_name, date, created_at
			FROM workout_sessions
			WHERE owner_id = $1`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var found []Session
	for rows.Next() {
		var session Session
		err = rows.Scan(
			&session.ID, &session.OwnerID, &session.TemplateID,
			&session.TemplateName, &session.Date, &session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		found = append(found, session)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range found {
		if found[i].Records, err = r.records(ctx, found[i].ID); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, nil
}

// ReplaceRecords swaps the session's full record list in one transaction.
// The session row is locked first so a concurrent edit or delete of the
// same session cannot interleave with the delete-then-reinsert below.
func (r *Repo) ReplaceRecords(ctx context.Context, ownerID, sessionID string, records []Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.replaceRecords")
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

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM workout_sessions WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		sessionID, ownerID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("lock session: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM session_records WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear session records: %w", err)
	}
	if _, err = insertRecords(ctx, tx, sessionID, records); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
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

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM workout_sessions WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		id, ownerID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("lock session: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM session_records WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete session records: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM workout_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *Repo) records(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, exercise_id, exercise_name, type, payload
			FROM session_records
			WHERE session_id = $1
			ORDER BY order_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record  Record
			payload []byte
		)
		if err := rows.Scan(&record.ID, &record.ExerciseID, &record.ExerciseName, &record.Type, &payload); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		if err := decodePayload(&record, payload); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func insertRecords(ctx context.Context, tx pgx.Tx, sessionID string, records []Record) ([]Record, error) {
	for i := range records {
		records[i].ID = uuid.NewString()
		payload, err := encodePayload(records[i])
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO session_records (id, session_id, order_index, exercise_id, exercise_name, type, payload)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			records[i].ID, sessionID, i, records[i].ExerciseID,
			records[i].ExerciseName, records[i].Type.String(), payload,
		)
		if err != nil {
			return nil, fmt.Errorf("insert session record: %w", err)
		}
	}
	return records, nil
}

func encodePayload(record Record) ([]byte, error) {
	var payload interface{}
	switch record.Type {
	case exercises.KindStrength:
		payload = record.Strength
	case exercises.KindCardio:
		payload = record.Cardio
	case exercises.KindEndurance:
		payload = record.Endurance
	case exercises.KindStretch:
		payload = record.Stretch
	case exercises.KindCounter:
		payload = record.Counter
	default:
		return nil, fmt.Errorf("unknown record type: %s", record.Type)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal record payload: %w", err)
	}
	return data, nil
}

func decodePayload(record *Record, data []byte) error {
	var err error
	switch record.Type {
	case exercises.KindStrength:
		record.Strength = &StrengthData{}
		err = json.Unmarshal(data, record.Strength)
	case exercises.KindCardio:
		record.Cardio = &CardioData{}
		err = json.Unmarshal(data, record.Cardio)
	case exercises.KindEndurance:
		record.Endurance = &EnduranceData{}
		err = json.Unmarshal(data, record.Endurance)
	case exercises.KindStretch:
		record.Stretch = &StretchData{}
		err = json.Unmarshal(data, record.Stretch)
	case exercises.KindCounter:
		record.Counter = &CounterData{}
		err = json.Unmarshal(data, record.Counter)
	default:
		return fmt.Errorf("unknown record type: %s", record.Type)
	}
	if err != nil {
		return fmt.Errorf("unmarshal record payload: %w", err)
	}
	return nil
}
