package db

import (
	"context"
	"errors"

	"synapse/internal/models"

	"github.com/jackc/pgx/v5"
)

// SaveContext сохраняет снимок DeepContext бизнеса, затирая предыдущий.
func (db *Database) SaveContext(ctx context.Context, dc models.DeepContext) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO context_snapshots (business_id, payload, confidence, generated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (business_id) DO UPDATE SET
            payload = EXCLUDED.payload,
            confidence = EXCLUDED.confidence,
            generated_at = EXCLUDED.generated_at
    `, dc.BusinessID, dc, dc.Confidence, dc.GeneratedAt)
	return err
}

// GetContext возвращает последний снимок DeepContext или ErrNotFound.
func (db *Database) GetContext(ctx context.Context, businessID string) (models.DeepContext, error) {
	var dc models.DeepContext
	err := db.Pool.QueryRow(ctx, `
        SELECT payload FROM context_snapshots WHERE business_id = $1
    `, businessID).Scan(&dc)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DeepContext{}, ErrNotFound
	}
	return dc, err
}

// ListStaleContexts возвращает id бизнесов, чей снимок старше maxAgeMinutes
// или отсутствует вовсе.
func (db *Database) ListStaleContexts(ctx context.Context, maxAgeMinutes int) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT p.id
        FROM profiles p
        LEFT JOIN context_snapshots s ON s.business_id = p.id
        WHERE s.generated_at IS NULL
           OR s.generated_at < CURRENT_TIMESTAMP - make_interval(mins => $1)
        ORDER BY p.id
    `, maxAgeMinutes)
	if err != nil {
		return nil, err
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

// ReplaceIdeas заменяет сохранённые идеи бизнеса новым набором.
func (db *Database) ReplaceIdeas(ctx context.Context, businessID string, ideas []models.CampaignIdea) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ideas WHERE business_id = $1`, businessID); err != nil {
		return err
	}

	for _, idea := range ideas {
		platforms := make([]string, len(idea.Platforms))
		for i, p := range idea.Platforms {
			platforms[i] = string(p)
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO ideas (id, business_id, template_id, trend_title, title, hook, platforms, score, breakdown, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `, idea.ID, idea.BusinessID, idea.TemplateID, idea.TrendTitle, idea.Title,
			idea.Hook, platforms, idea.Score, idea.Breakdown, idea.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListIdeas возвращает идеи бизнеса по убыванию оценки.
func (db *Database) ListIdeas(ctx context.Context, businessID string) ([]models.CampaignIdea, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, business_id, template_id, trend_title, title, hook, platforms, score, breakdown, created_at
        FROM ideas
        WHERE business_id = $1
        ORDER BY score DESC, created_at
    `, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []models.CampaignIdea
	for rows.Next() {
		var idea models.CampaignIdea
		var platforms []string
		if err := rows.Scan(&idea.ID, &idea.BusinessID, &idea.TemplateID, &idea.TrendTitle,
			&idea.Title, &idea.Hook, &platforms, &idea.Score, &idea.Breakdown, &idea.CreatedAt); err != nil {
			return nil, err
		}
		idea.Platforms = make([]models.Platform, len(platforms))
		for i, p := range platforms {
			idea.Platforms[i] = models.Platform(p)
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// InsertPost сохраняет пост в историю публикаций.
func (db *Database) InsertPost(ctx context.Context, post models.Post) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO posts (id, business_id, idea_id, platform, content, status, platform_post_id, error, created_at, published_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, post.ID, post.BusinessID, post.IdeaID, string(post.Platform), post.Content,
		string(post.Status), post.PlatformPostID, post.Error, post.CreatedAt, post.PublishedAt)
	return err
}

// UpdatePostResult фиксирует исход публикации поста.
func (db *Database) UpdatePostResult(ctx context.Context, post models.Post) error {
	_, err := db.Pool.Exec(ctx, `
        UPDATE posts
        SET status = $2, platform_post_id = $3, error = $4, published_at = $5
        WHERE id = $1
    `, post.ID, string(post.Status), post.PlatformPostID, post.Error, post.PublishedAt)
	return err
}

// ListPosts возвращает историю публикаций бизнеса, новые первыми.
func (db *Database) ListPosts(ctx context.Context, businessID string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Pool.Query(ctx, `
        SELECT id, business_id, idea_id, platform, content, status, platform_post_id, error, created_at, published_at
        FROM posts
        WHERE business_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var platform, status string
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.IdeaID, &platform, &p.Content,
			&status, &p.PlatformPostID, &p.Error, &p.CreatedAt, &p.PublishedAt); err != nil {
			return nil, err
		}
		p.Platform = models.Platform(platform)
		p.Status = models.PostStatus(status)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPostsByStatus возвращает распределение постов бизнеса по статусам.
func (db *Database) CountPostsByStatus(ctx context.Context, businessID string) (map[string]int, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT status, count(*)
        FROM posts
        WHERE business_id = $1
        GROUP BY status
    `, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
