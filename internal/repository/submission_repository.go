package repository

import (
	"context"

	"gorm.io/gorm"

	"parampara/internal/model"
)

// SubmissionStats aggregates submission counts for the public stats endpoint.
type SubmissionStats struct {
	Total         int64            `json:"total_submissions"`
	ByCategory    map[string]int64 `json:"by_category"`
	ByContentType map[string]int64 `json:"by_content_type"`
	ByRegion      map[string]int64 `json:"by_region"`
}

// SubmissionRepository defines submission persistence operations. Submissions
// are immutable: there is no update method.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uint) (*model.Submission, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Submission, error)
	Stats(ctx context.Context) (*SubmissionStats, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository builds a GORM-backed repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create persists the submission in a single transaction so metadata and media
// reference are never stored inconsistently.
func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(submission).Error
	})
}

func (r *submissionRepository) FindByID(ctx context.Context, id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByUser returns the user's submissions newest first.
func (r *submissionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

type countRow struct {
	Label string
	Count int64
}

// Stats aggregates totals plus counts by category, content type, and the ten
// most active regions.
func (r *submissionRepository) Stats(ctx context.Context) (*SubmissionStats, error) {
	stats := &SubmissionStats{
		ByCategory:    map[string]int64{},
		ByContentType: map[string]int64{},
		ByRegion:      map[string]int64{},
	}

	if err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var rows []countRow
	if err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Select("category AS label, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByCategory[row.Label] = row.Count
	}

	rows = rows[:0]
	if err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Select("content_type AS label, COUNT(*) AS count").
		Group("content_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByContentType[row.Label] = row.Count
	}

	rows = rows[:0]
	if err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Select("region AS label, COUNT(*) AS count").
		Where("region IS NOT NULL").
		Group("region").
		Order("count DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByRegion[row.Label] = row.Count
	}

	return stats, nil
}
