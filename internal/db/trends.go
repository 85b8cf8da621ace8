package db

import (
	"context"

	"synapse/internal/models"
)

// UpsertTrend сохраняет тренд. Идентичность тренда — пара
// (отрасль, заголовок без учёта регистра): повторное появление того же
// заголовка наращивает source_count и сдвигает last_seen.
func (db *Database) UpsertTrend(ctx context.Context, t models.Trend) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO trends (industry, title, description, category, link)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (industry, lower(title)) DO UPDATE SET
            source_count = trends.source_count + 1,
            last_seen = CURRENT_TIMESTAMP,
            description = CASE WHEN EXCLUDED.description <> '' THEN EXCLUDED.description ELSE trends.description END,
            link = CASE WHEN EXCLUDED.link <> '' THEN EXCLUDED.link ELSE trends.link END
        RETURNING id
    `, t.Industry, t.Title, t.Description, t.Category, t.Link).Scan(&id)
	return id, err
}

// ListTrends возвращает тренды отрасли, самые свежие первыми.
// category — необязательный фильтр, limit <= 0 означает 50.
func (db *Database) ListTrends(ctx context.Context, industry, category string, limit int) ([]models.Trend, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Pool.Query(ctx, `
        SELECT id, industry, title, description, category, link, source_count, first_seen, last_seen
        FROM trends
        WHERE industry = $1 AND ($2 = '' OR category = $2)
        ORDER BY last_seen DESC, source_count DESC
        LIMIT $3
    `, industry, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []models.Trend
	for rows.Next() {
		var t models.Trend
		if err := rows.Scan(&t.ID, &t.Industry, &t.Title, &t.Description, &t.Category,
			&t.Link, &t.SourceCount, &t.FirstSeen, &t.LastSeen); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// CountTrendsByCategory возвращает распределение трендов отрасли по категориям.
func (db *Database) CountTrendsByCategory(ctx context.Context, industry string) (map[string]int, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT category, count(*)
        FROM trends
        WHERE industry = $1
        GROUP BY category
    `, industry)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// SaveSignal сохраняет сигналы со страницы конкурента.
func (db *Database) SaveSignal(ctx context.Context, businessID string, sig models.CompetitorSignal) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO competitor_signals (business_id, url, title, headline, offers, fetched_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, businessID, sig.URL, sig.Title, sig.Headline, sig.Offers, sig.FetchedAt)
	return err
}

// ListSignals возвращает свежие сигналы конкурентов для бизнеса.
func (db *Database) ListSignals(ctx context.Context, businessID string, limit int) ([]models.CompetitorSignal, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Pool.Query(ctx, `
        SELECT url, title, headline, offers, fetched_at
        FROM competitor_signals
        WHERE business_id = $1
        ORDER BY fetched_at DESC
        LIMIT $2
    `, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []models.CompetitorSignal
	for rows.Next() {
		var s models.CompetitorSignal
		var offers []string
		if err := rows.Scan(&s.URL, &s.Title, &s.Headline, &offers, &s.FetchedAt); err != nil {
			return nil, err
		}
		s.Offers = offers
		signals = append(signals, s)
	}
	return signals, rows.Err()
}
