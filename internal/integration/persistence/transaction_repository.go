package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

// importBatchSize bounds the rows of one INSERT during statement import.
const importBatchSize = 200

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

func (r *transactionRepository) BulkCreate(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	rows := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		rows[i] = model.TransactionFromEntity(t)
	}
	// CreateInBatches wraps the batches in one transaction.
	return r.db.WithContext(ctx).CreateInBatches(rows, importBatchSize).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var row model.TransactionModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

// scope narrows a query to the filter. Category compares case-insensitively
// and Search is a substring of the description.
func scope(filter adapter.TransactionFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", filter.UserID)
		if filter.StartDate != nil {
			q = q.Where("date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			q = q.Where("date <= ?", *filter.EndDate)
		}
		if filter.Type != nil {
			q = q.Where("type = ?", *filter.Type)
		}
		if c := strings.TrimSpace(filter.Category); c != "" {
			q = q.Where("LOWER(category) = ?", strings.ToLower(c))
		}
		if filter.Search != "" {
			q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
		}
		return q
	}
}

func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, page adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	base := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Scopes(scope(filter))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []model.TransactionModel
	err := base.Session(&gorm.Session{}).
		Order("date DESC, created_at DESC").
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return &adapter.TransactionListResult{
		Transactions: model.TransactionsToEntities(rows),
		Total:        total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   max(pages, 1),
	}, nil
}

func (r *transactionRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var rows []model.TransactionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date, created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return model.TransactionsToEntities(rows), nil
}

// GetTotals sums the selection per type in a single grouped query.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	var sums []struct {
		Type  entity.TransactionType
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Scopes(scope(filter)).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, s := range sums {
		switch s.Type {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = s.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = s.Total
		}
	}
	totals.NetTotal = totals.IncomeTotal.Add(totals.ExpenseTotal)
	return totals, nil
}

func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(model.TransactionFromEntity(transaction)).Error
}

// Delete soft-deletes the transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
