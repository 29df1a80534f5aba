package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Get returns the owner's settings, falling back to the defaults when the
// owner has never saved any. The defaults are not written on read.
func (r *Repo) Get(ctx context.Context, ownerID string) (_ Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var s Settings
	err = r.db.QueryRow(ctx,
		`SELECT owner_id, dashboard_session_limit, dark_mode, updated_at
			FROM user_settings
			WHERE owner_id = $1`,
		ownerID,
	).Scan(&s.OwnerID, &s.DashboardSessionLimit, &s.DarkMode, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Defaults(ownerID), nil
		}
		return Settings{}, fmt.Errorf("scan settings: %w", err)
	}

	return s, nil
}

func (r *Repo) Save(ctx context.Context, s Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx,
		`INSERT INTO user_settings (owner_id, dashboard_session_limit, dark_mode, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (owner_id) DO UPDATE
			SET dashboard_session_limit = $2, dark_mode = $3, updated_at = $4`,
		s.OwnerID, s.DashboardSessionLimit, s.DarkMode, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
