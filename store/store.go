// Package store 定义记录存储适配器。所有操作都显式传入所属用户 ID。
package store

import (
	"context"
	"errors"

	"fintrack/models"
)

var (
	// ErrNotFound 记录不存在或不属于该用户
	ErrNotFound = errors.New("记录不存在")
	// ErrNotConfigured 后端未配置（演示模式），写操作不可用
	ErrNotConfigured = errors.New("未配置数据存储，请先连接数据库")
)

// IncomeStore 收入记录
type IncomeStore interface {
	ListIncome(ctx context.Context, owner uint) ([]models.Income, error)
	GetIncome(ctx context.Context, owner, id uint) (*models.Income, error)
	CreateIncome(ctx context.Context, in *models.Income) error
	UpdateIncome(ctx context.Context, in *models.Income) error
	DeleteIncome(ctx context.Context, owner, id uint) error
}

// ExpenseStore 支出记录
type ExpenseStore interface {
	ListExpense(ctx context.Context, owner uint) ([]models.Expense, error)
	GetExpense(ctx context.Context, owner, id uint) (*models.Expense, error)
	CreateExpense(ctx context.Context, e *models.Expense) error
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, owner, id uint) error
}

// GoalStore 储蓄目标
type GoalStore interface {
	ListGoals(ctx context.Context, owner uint) ([]models.SavingGoal, error)
	GetGoal(ctx context.Context, owner, id uint) (*models.SavingGoal, error)
	CreateGoal(ctx context.Context, g *models.SavingGoal) error
	UpdateGoal(ctx context.Context, g *models.SavingGoal) error
	DeleteGoal(ctx context.Context, owner, id uint) error
}

// ReminderStore 账单提醒，列表按到期日升序
type ReminderStore interface {
	ListReminders(ctx context.Context, owner uint) ([]models.Reminder, error)
	GetReminder(ctx context.Context, owner, id uint) (*models.Reminder, error)
	CreateReminder(ctx context.Context, r *models.Reminder) error
	UpdateReminder(ctx context.Context, r *models.Reminder) error
	DeleteReminder(ctx context.Context, owner, id uint) error
}

// CategoryStore 类别建议列表
type CategoryStore interface {
	ExpenseCategories(ctx context.Context) ([]models.ExpenseCategory, error)
	IncomeCategories(ctx context.Context) ([]models.IncomeCategory, error)
}

// Store 记录存储适配器
type Store interface {
	IncomeStore
	ExpenseStore
	GoalStore
	ReminderStore
	CategoryStore
}

// UserStore 账号存储（身份认证）
type UserStore interface {
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}
