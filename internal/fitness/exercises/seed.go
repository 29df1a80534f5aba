package exercises

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// advisory lock key for the one-time catalog seeding, shared by all
// service instances pointed at the same database
const seedLockKey = 792134001

var defaultExercises = []Exercise{
	{Name: "Bench Press", Kind: KindStrength},
	{Name: "Squat", Kind: KindStrength},
	{Name: "Deadlift", Kind: KindStrength},
	{Name: "Running", Kind: KindCardio},
	{Name: "Cycling", Kind: KindCardio},
	{Name: "Swimming", Kind: KindEndurance},
	{Name: "Yoga", Kind: KindStretch},
}

// SeedDefaults inserts the shared default catalog entries if they are not
// present yet. Safe to call on every startup and from multiple instances,
// the work happens under a postgres advisory lock.
func (r *Repo) SeedDefaults(ctx context.Context) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn for seeding: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", seedLockKey); err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	defer func() {
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", seedLockKey); err != nil {
			log.Errorf("release seed lock: %s", err)
		}
	}()

	var seeded int
	for _, exercise := range defaultExercises {
		tag, err := conn.Exec(ctx,
			`INSERT INTO exercises (id, owner_id, name, kind, is_default, created_at)
				SELECT $1, NULL, $2, $3, TRUE, $4
				WHERE NOT EXISTS (
					SELECT 1 FROM exercises WHERE owner_id IS NULL AND LOWER(name) = LOWER($2)
				)`,
			uuid.NewString(), exercise.Name, exercise.Kind.String(), time.Now(),
		)
		if err != nil {
			return fmt.Errorf("seed exercise %q: %w", exercise.Name, err)
		}
		seeded += int(tag.RowsAffected())
	}

	if seeded > 0 {
		log.Debugf("seeded %d default exercises", seeded)
	}

	return nil
}
