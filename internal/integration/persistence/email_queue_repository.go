package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error
	if isUniqueViolation(err) {
		return domainerror.ErrDuplicateEmailJob
	}
	return err
}

// ClaimDue flips each candidate with a guarded UPDATE, so concurrent workers
// never claim the same job.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var candidates []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due emails: %w", err)
	}

	claimed := make([]*entity.EmailJob, 0, len(candidates))
	for i := range candidates {
		result := r.db.WithContext(ctx).
			Model(&model.EmailQueueModel{}).
			Where("id = ? AND status = ?", candidates[i].ID, entity.EmailStatusPending).
			Update("status", entity.EmailStatusProcessing)
		if result.Error != nil {
			return claimed, fmt.Errorf("failed to claim email %s: %w", candidates[i].ID, result.Error)
		}
		if result.RowsAffected == 0 {
			continue
		}
		job := candidates[i].ToEntity()
		job.Status = entity.EmailStatusProcessing
		claimed = append(claimed, job)
	}
	return claimed, nil
}

func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}

func (r *emailQueueRepository) PurgeFinished(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ?", []entity.EmailStatus{entity.EmailStatusSent, entity.EmailStatusFailed}).
		Where("processed_at < ?", cutoff.UTC()).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
