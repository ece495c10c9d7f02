// Package memory 演示模式的记录存储。数据只保存在进程内，重启即丢失。
//
// 未连接数据库时，收入/支出为只读的演示数据，写入返回 store.ErrNotConfigured；
// 储蓄目标与提醒可以在本地增删改，但不会持久化。
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"fintrack/models"
	"fintrack/store"
)

// DemoUserID 演示会话使用的用户 ID
const DemoUserID uint = 1

// Config 内存存储配置
type Config struct {
	// AllowLedgerWrites 允许写入收入/支出（测试或单机使用）
	AllowLedgerWrites bool
}

// Store 内存实现
type Store struct {
	cfg Config
	now func() time.Time

	mu        sync.RWMutex
	nextID    uint
	incomes   []models.Income
	expenses  []models.Expense
	goals     []models.SavingGoal
	reminders []models.Reminder
}

var _ store.Store = (*Store)(nil)

// New 创建空的内存存储
func New(cfg Config) *Store {
	return &Store{cfg: cfg, now: time.Now}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func index[T any](rows []T, match func(*T) bool) int {
	for i := range rows {
		if match(&rows[i]) {
			return i
		}
	}
	return -1
}

func owned[T any](rows []T, owner func(*T) uint, uid uint) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		if owner(&rows[i]) == uid {
			out = append(out, rows[i])
		}
	}
	return out
}

func newestFirst(a, b time.Time, aid, bid uint) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return cmp.Compare(bid, aid)
}

// ===== 收入 =====

func (s *Store) ListIncome(_ context.Context, owner uint) ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := owned(s.incomes, func(in *models.Income) uint { return in.UserID }, owner)
	slices.SortStableFunc(list, func(a, b models.Income) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return list, nil
}

func (s *Store) GetIncome(_ context.Context, owner, id uint) (*models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := index(s.incomes, func(in *models.Income) bool { return in.ID == id && in.UserID == owner })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	in := s.incomes[i]
	return &in, nil
}

func (s *Store) CreateIncome(_ context.Context, in *models.Income) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.Normalize()
	in.ID = s.id()
	in.CreatedAt = s.now()
	in.UpdatedAt = in.CreatedAt
	s.incomes = append(s.incomes, *in)
	return nil
}

func (s *Store) UpdateIncome(_ context.Context, in *models.Income) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.incomes, func(x *models.Income) bool { return x.ID == in.ID && x.UserID == in.UserID })
	if i < 0 {
		return store.ErrNotFound
	}
	in.Normalize()
	in.CreatedAt = s.incomes[i].CreatedAt
	in.UpdatedAt = s.now()
	s.incomes[i] = *in
	return nil
}

func (s *Store) DeleteIncome(_ context.Context, owner, id uint) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.incomes, func(x *models.Income) bool { return x.ID == id && x.UserID == owner })
	if i < 0 {
		return store.ErrNotFound
	}
	s.incomes = slices.Delete(s.incomes, i, i+1)
	return nil
}

// ===== 支出 =====

func (s *Store) ListExpense(_ context.Context, owner uint) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := owned(s.expenses, func(e *models.Expense) uint { return e.UserID }, owner)
	slices.SortStableFunc(list, func(a, b models.Expense) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return list, nil
}

func (s *Store) GetExpense(_ context.Context, owner, id uint) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := index(s.expenses, func(e *models.Expense) bool { return e.ID == id && e.UserID == owner })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	e := s.expenses[i]
	return &e, nil
}

func (s *Store) CreateExpense(_ context.Context, e *models.Expense) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Normalize()
	e.ID = s.id()
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *Store) UpdateExpense(_ context.Context, e *models.Expense) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.expenses, func(x *models.Expense) bool { return x.ID == e.ID && x.UserID == e.UserID })
	if i < 0 {
		return store.ErrNotFound
	}
	e.Normalize()
	e.CreatedAt = s.expenses[i].CreatedAt
	e.UpdatedAt = s.now()
	s.expenses[i] = *e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, owner, id uint) error {
	if !s.cfg.AllowLedgerWrites {
		return store.ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.expenses, func(x *models.Expense) bool { return x.ID == id && x.UserID == owner })
	if i < 0 {
		return store.ErrNotFound
	}
	s.expenses = slices.Delete(s.expenses, i, i+1)
	return nil
}

// ===== 储蓄目标 =====

func (s *Store) ListGoals(_ context.Context, owner uint) ([]models.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := owned(s.goals, func(g *models.SavingGoal) uint { return g.UserID }, owner)
	slices.SortStableFunc(list, func(a, b models.SavingGoal) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return list, nil
}

func (s *Store) GetGoal(_ context.Context, owner, id uint) (*models.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := index(s.goals, func(g *models.SavingGoal) bool { return g.ID == id && g.UserID == owner })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	g := s.goals[i]
	return &g, nil
}

func (s *Store) CreateGoal(_ context.Context, g *models.SavingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.Normalize()
	g.ID = s.id()
	g.CreatedAt = s.now()
	g.UpdatedAt = g.CreatedAt
	s.goals = append(s.goals, *g)
	return nil
}

func (s *Store) UpdateGoal(_ context.Context, g *models.SavingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.goals, func(x *models.SavingGoal) bool { return x.ID == g.ID && x.UserID == g.UserID })
	if i < 0 {
		return store.ErrNotFound
	}
	g.Normalize()
	g.CreatedAt = s.goals[i].CreatedAt
	g.UpdatedAt = s.now()
	s.goals[i] = *g
	return nil
}

func (s *Store) DeleteGoal(_ context.Context, owner, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.goals, func(x *models.SavingGoal) bool { return x.ID == id && x.UserID == owner })
	if i < 0 {
		return store.ErrNotFound
	}
	s.goals = slices.Delete(s.goals, i, i+1)
	return nil
}

// ===== 提醒 =====

func (s *Store) ListReminders(_ context.Context, owner uint) ([]models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := owned(s.reminders, func(r *models.Reminder) uint { return r.UserID }, owner)
	for i := range list {
		list[i].Amount = cloneAmount(list[i].Amount)
	}
	slices.SortStableFunc(list, func(a, b models.Reminder) int {
		if c := cmp.Compare(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

func (s *Store) GetReminder(_ context.Context, owner, id uint) (*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := index(s.reminders, func(r *models.Reminder) bool { return r.ID == id && r.UserID == owner })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	r := s.reminders[i]
	r.Amount = cloneAmount(r.Amount)
	return &r, nil
}

func (s *Store) CreateReminder(_ context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Normalize()
	r.ID = s.id()
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	row := *r
	row.Amount = cloneAmount(r.Amount)
	s.reminders = append(s.reminders, row)
	return nil
}

func (s *Store) UpdateReminder(_ context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.reminders, func(x *models.Reminder) bool { return x.ID == r.ID && x.UserID == r.UserID })
	if i < 0 {
		return store.ErrNotFound
	}
	r.Normalize()
	r.CreatedAt = s.reminders[i].CreatedAt
	r.UpdatedAt = s.now()
	row := *r
	row.Amount = cloneAmount(r.Amount)
	s.reminders[i] = row
	return nil
}

func (s *Store) DeleteReminder(_ context.Context, owner, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := index(s.reminders, func(x *models.Reminder) bool { return x.ID == id && x.UserID == owner })
	if i < 0 {
		return store.ErrNotFound
	}
	s.reminders = slices.Delete(s.reminders, i, i+1)
	return nil
}

func cloneAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ===== 类别 =====

func (s *Store) ExpenseCategories(_ context.Context) ([]models.ExpenseCategory, error) {
	return models.DefaultExpenseCategories(), nil
}

func (s *Store) IncomeCategories(_ context.Context) ([]models.IncomeCategory, error) {
	return models.DefaultIncomeCategories(), nil
}
