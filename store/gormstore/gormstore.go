// Package gormstore 基于 gorm 的记录存储（MySQL / PostgreSQL）
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"fintrack/models"
	"fintrack/store"

	"gorm.io/gorm"
)

// Store gorm 实现
type Store struct {
	db *gorm.DB
}

var (
	_ store.Store     = (*Store)(nil)
	_ store.UserStore = (*Store)(nil)
)

// New 创建 gorm 存储
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

type record[T any] interface {
	*T
	Normalize()
}

func listOwned[T any, P record[T]](ctx context.Context, db *gorm.DB, owner uint, order string) ([]T, error) {
	var list []T
	if err := db.WithContext(ctx).Where("user_id = ?", owner).Order(order).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询失败: %w", err)
	}
	for i := range list {
		P(&list[i]).Normalize()
	}
	return list, nil
}

func getOwned[T any, P record[T]](ctx context.Context, db *gorm.DB, owner, id uint) (*T, error) {
	var item T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("查询失败: %w", err)
	}
	P(&item).Normalize()
	return &item, nil
}

func create[T any, P record[T]](ctx context.Context, db *gorm.DB, item P) error {
	item.Normalize()
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("创建失败: %w", err)
	}
	return nil
}

// updateOwned 只更新属于 owner 的记录，未命中时返回 ErrNotFound
func updateOwned[T any](ctx context.Context, db *gorm.DB, id, owner uint, fields map[string]any) error {
	var model T
	res := db.WithContext(ctx).Model(&model).Where("id = ? AND user_id = ?", id, owner).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("更新失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, owner, id uint) error {
	var model T
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model)
	if res.Error != nil {
		return fmt.Errorf("删除失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ===== 收入 =====

func (s *Store) ListIncome(ctx context.Context, owner uint) ([]models.Income, error) {
	return listOwned[models.Income](ctx, s.db, owner, "created_at DESC, id DESC")
}

func (s *Store) GetIncome(ctx context.Context, owner, id uint) (*models.Income, error) {
	return getOwned[models.Income](ctx, s.db, owner, id)
}

func (s *Store) CreateIncome(ctx context.Context, in *models.Income) error {
	return create(ctx, s.db, in)
}

func (s *Store) UpdateIncome(ctx context.Context, in *models.Income) error {
	in.Normalize()
	return updateOwned[models.Income](ctx, s.db, in.ID, in.UserID, map[string]any{
		"source":      in.Source,
		"amount":      in.Amount,
		"date":        in.Date,
		"notes":       in.Notes,
		"invoice_url": in.InvoiceURL,
	})
}

func (s *Store) DeleteIncome(ctx context.Context, owner, id uint) error {
	return deleteOwned[models.Income](ctx, s.db, owner, id)
}

// ===== 支出 =====

func (s *Store) ListExpense(ctx context.Context, owner uint) ([]models.Expense, error) {
	return listOwned[models.Expense](ctx, s.db, owner, "created_at DESC, id DESC")
}

func (s *Store) GetExpense(ctx context.Context, owner, id uint) (*models.Expense, error) {
	return getOwned[models.Expense](ctx, s.db, owner, id)
}

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	return create(ctx, s.db, e)
}

func (s *Store) UpdateExpense(ctx context.Context, e *models.Expense) error {
	e.Normalize()
	return updateOwned[models.Expense](ctx, s.db, e.ID, e.UserID, map[string]any{
		"category":    e.Category,
		"amount":      e.Amount,
		"date":        e.Date,
		"notes":       e.Notes,
		"receipt_url": e.ReceiptURL,
	})
}

func (s *Store) DeleteExpense(ctx context.Context, owner, id uint) error {
	return deleteOwned[models.Expense](ctx, s.db, owner, id)
}

// ===== 储蓄目标 =====

func (s *Store) ListGoals(ctx context.Context, owner uint) ([]models.SavingGoal, error) {
	return listOwned[models.SavingGoal](ctx, s.db, owner, "created_at DESC, id DESC")
}

func (s *Store) GetGoal(ctx context.Context, owner, id uint) (*models.SavingGoal, error) {
	return getOwned[models.SavingGoal](ctx, s.db, owner, id)
}

func (s *Store) CreateGoal(ctx context.Context, g *models.SavingGoal) error {
	return create(ctx, s.db, g)
}

func (s *Store) UpdateGoal(ctx context.Context, g *models.SavingGoal) error {
	g.Normalize()
	return updateOwned[models.SavingGoal](ctx, s.db, g.ID, g.UserID, map[string]any{
		"goal_name":      g.GoalName,
		"category":       g.Category,
		"target_amount":  g.TargetAmount,
		"current_amount": g.CurrentAmount,
		"notes":          g.Notes,
	})
}

func (s *Store) DeleteGoal(ctx context.Context, owner, id uint) error {
	return deleteOwned[models.SavingGoal](ctx, s.db, owner, id)
}

// ===== 提醒 =====

func (s *Store) ListReminders(ctx context.Context, owner uint) ([]models.Reminder, error) {
	return listOwned[models.Reminder](ctx, s.db, owner, "due_date ASC, id ASC")
}

func (s *Store) GetReminder(ctx context.Context, owner, id uint) (*models.Reminder, error) {
	return getOwned[models.Reminder](ctx, s.db, owner, id)
}

func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	return create(ctx, s.db, r)
}

func (s *Store) UpdateReminder(ctx context.Context, r *models.Reminder) error {
	r.Normalize()
	return updateOwned[models.Reminder](ctx, s.db, r.ID, r.UserID, map[string]any{
		"title":     r.Title,
		"due_date":  r.DueDate,
		"amount":    r.Amount,
		"recurring": r.Recurring,
		"status":    r.Status,
	})
}

func (s *Store) DeleteReminder(ctx context.Context, owner, id uint) error {
	return deleteOwned[models.Reminder](ctx, s.db, owner, id)
}

// ===== 类别 =====

func (s *Store) ExpenseCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	var list []models.ExpenseCategory
	if err := s.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询失败: %w", err)
	}
	return list, nil
}

func (s *Store) IncomeCategories(ctx context.Context) ([]models.IncomeCategory, error) {
	var list []models.IncomeCategory
	if err := s.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询失败: %w", err)
	}
	return list, nil
}
