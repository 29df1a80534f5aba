package measurements

import (
	"context"
	"fmt"
	"time"

	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, measurement Measurement) (_ Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	measurement.ID = uuid.NewString()
	measurement.CreatedAt = time.Now()

	_, err = r.db.Exec(ctx,
		`INSERT INTO body_measurements
			(id, owner_id, date, created_at, weight, chest, waist, hips, upper_arm, forearm, thigh, calf)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		measurement.ID, measurement.OwnerID, measurement.Date, measurement.CreatedAt,
		measurement.Weight, measurement.Chest, measurement.Waist, measurement.Hips,
		measurement.UpperArm, measurement.Forearm, measurement.Thigh, measurement.Calf,
	)
	if err != nil {
		return Measurement{}, fmt.Errorf("insert measurement: %w", err)
	}

	return measurement, nil
}

// List returns all of the owner's measurements, newest date first, entries
// sharing a date ordered by creation time descending.
func (r *Repo) List(ctx context.Context, ownerID string) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, date, created_at, weight, chest, waist, hips, upper_arm, forearm, thigh, calf
			FROM body_measurements
			WHERE owner_id = $1
			ORDER BY date DESC, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var found []Measurement
	for rows.Next() {
		var m Measurement
		err = rows.Scan(
			&m.ID, &m.OwnerID, &m.Date, &m.CreatedAt,
			&m.Weight, &m.Chest, &m.Waist, &m.Hips,
			&m.UpperArm, &m.Forearm, &m.Thigh, &m.Calf,
		)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		found = append(found, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM body_measurements WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete measurement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}
