package db

import (
	"context"
	"errors"

	"synapse/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound возвращается, когда запись отсутствует.
var ErrNotFound = errors.New("not found")

// UpsertProfile сохраняет профиль бизнеса. Существующий профиль с тем же
// id обновляется, updated_at переставляется.
func (db *Database) UpsertProfile(ctx context.Context, p models.BusinessProfile) (models.BusinessProfile, error) {
	row := db.Pool.QueryRow(ctx, `
        INSERT INTO profiles (id, name, industry, website, uvp, proof_points, competitor_urls)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            industry = EXCLUDED.industry,
            website = EXCLUDED.website,
            uvp = EXCLUDED.uvp,
            proof_points = EXCLUDED.proof_points,
            competitor_urls = EXCLUDED.competitor_urls,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id, name, industry, website, uvp, proof_points, competitor_urls, created_at, updated_at
    `, p.ID, p.Name, p.Industry, p.Website, p.UVP, p.ProofPoints, p.CompetitorURLs)

	return scanProfile(row)
}

// GetProfile возвращает профиль по id или ErrNotFound.
func (db *Database) GetProfile(ctx context.Context, id string) (models.BusinessProfile, error) {
	row := db.Pool.QueryRow(ctx, `
        SELECT id, name, industry, website, uvp, proof_points, competitor_urls, created_at, updated_at
        FROM profiles
        WHERE id = $1
    `, id)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.BusinessProfile{}, ErrNotFound
	}
	return p, err
}

// ListProfiles возвращает все профили.
func (db *Database) ListProfiles(ctx context.Context) ([]models.BusinessProfile, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, name, industry, website, uvp, proof_points, competitor_urls, created_at, updated_at
        FROM profiles
        ORDER BY created_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.BusinessProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (models.BusinessProfile, error) {
	var p models.BusinessProfile
	var urls []string
	err := row.Scan(&p.ID, &p.Name, &p.Industry, &p.Website, &p.UVP, &p.ProofPoints, &urls, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.BusinessProfile{}, err
	}
	p.CompetitorURLs = urls
	return p, nil
}
