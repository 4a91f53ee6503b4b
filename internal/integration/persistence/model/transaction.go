package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/domain/entity"
)

// TransactionModel is a row of the transactions table. Amount keeps the sign
// of the entity, so SUM(amount) is the net of any selection.
type TransactionModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID              `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	Date        time.Time              `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	Description string                 `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal        `gorm:"type:decimal(15,2);not null"`
	Type        entity.TransactionType `gorm:"type:varchar(10);not null"`
	Category    string                 `gorm:"type:varchar(50);index"`
	Notes       string                 `gorm:"type:text"`
	ImportedAt  *time.Time
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        m.Type,
		Category:    m.Category,
		Notes:       m.Notes,
		ImportedAt:  m.ImportedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Notes:       t.Notes,
		ImportedAt:  t.ImportedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TransactionsToEntities converts a result set in order.
func TransactionsToEntities(rows []TransactionModel) []*entity.Transaction {
	out := make([]*entity.Transaction, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEntity()
	}
	return out
}
