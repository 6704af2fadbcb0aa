// README: Postgres-backed resolver. Grounded on aiusage.Store/location.Store's
// pgxpool.Pool-held-struct-with-context-methods convention.
package geocode

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresResolver looks up coordinates from a `geo_lookup` table
// (zip text primary key or city text primary key, lat/lng double
// precision columns), maintained out of band.
type PostgresResolver struct {
	db *pgxpool.Pool
}

// NewPostgresResolver returns a resolver backed by db.
func NewPostgresResolver(db *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{db: db}
}

func (r *PostgresResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	var lat, lng float64
	err := r.db.QueryRow(ctx, `SELECT lat, lng FROM geo_lookup WHERE kind = 'zip' AND key = $1`, zip).Scan(&lat, &lng)
	if err != nil {
		return 0, 0, false, nilIfNoRows(err)
	}
	return lat, lng, true, nil
}

func (r *PostgresResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	var lat, lng float64
	err := r.db.QueryRow(ctx, `SELECT lat, lng FROM geo_lookup WHERE kind = 'city' AND key = $1`, city).Scan(&lat, &lng)
	if err != nil {
		return 0, 0, false, nilIfNoRows(err)
	}
	return lat, lng, true, nil
}

// nilIfNoRows collapses pgx.ErrNoRows into a plain miss (ok=false, err=nil)
// so callers only see a real error for genuine connectivity failures.
func nilIfNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
