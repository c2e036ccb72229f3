package repositories

import (
	"context"
	"time"

	"wakeup-cafe/models"
)

type FeedbackRepository struct{}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return models.DB.QueryRow(ctx, query,
		fb.UserID, fb.ProductID, fb.Rating, fb.Comment, time.Now(),
	).Scan(&fb.ID, &fb.CreatedAt)
}

func (r *FeedbackRepository) GetAllBlogs(ctx context.Context) ([]models.BlogPost, error) {
	query := `SELECT id, title, content, COALESCE(image_url, ''), created_at FROM blogs ORDER BY created_at DESC`

	rows, err := models.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []models.BlogPost{}
	for rows.Next() {
		var b models.BlogPost
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.ImageURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}
