package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table. DedupeKey is NULL for
// jobs that may repeat, so the unique index only binds keyed jobs.
type EmailQueueModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index"`
	TemplateType   string         `gorm:"type:varchar(50);not null"`
	RecipientEmail string         `gorm:"type:varchar(255);not null;index"`
	RecipientName  string         `gorm:"type:varchar(255)"`
	Subject        string         `gorm:"type:varchar(500);not null"`
	TemplateData   map[string]any `gorm:"type:jsonb;serializer:json;not null"`
	DedupeKey      *string        `gorm:"type:varchar(120);uniqueIndex"`
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts       int            `gorm:"not null;default:0"`
	MaxAttempts    int            `gorm:"not null"`
	LastError      string         `gorm:"type:text"`
	ProviderID     string         `gorm:"type:varchar(100)"`
	CreatedAt      time.Time      `gorm:"not null"`
	ScheduledAt    time.Time      `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	job := &entity.EmailJob{
		ID:             m.ID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   m.TemplateData,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    m.ProcessedAt,
	}
	if m.UserID != nil {
		job.UserID = *m.UserID
	}
	if m.DedupeKey != nil {
		job.DedupeKey = *m.DedupeKey
	}
	if job.TemplateData == nil {
		job.TemplateData = map[string]any{}
	}
	return job
}

// EmailQueueModelFromEntity creates the row for job.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	m := &EmailQueueModel{
		ID:             job.ID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   job.TemplateData,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    job.ProcessedAt,
	}
	if job.UserID != uuid.Nil {
		userID := job.UserID
		m.UserID = &userID
	}
	if job.DedupeKey != "" {
		key := job.DedupeKey
		m.DedupeKey = &key
	}
	if m.TemplateData == nil {
		m.TemplateData = map[string]any{}
	}
	return m
}
