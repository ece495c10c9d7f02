package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/models"
	"fintrack/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func newDemo() *Store {
	s := New(Config{})
	s.SeedDemo(testNow)
	return s
}

func TestSeedDemo(t *testing.T) {
	s := newDemo()
	ctx := context.Background()

	incomes, err := s.ListIncome(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, "Job", incomes[0].Source)
	assert.Equal(t, "2024-03-15", incomes[0].Date)
	assert.Equal(t, "2024-02-24", incomes[1].Date)

	expenses, err := s.ListExpense(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "2024-03-05", expenses[1].Date)

	reminders, err := s.ListReminders(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "2024-03-20", reminders[0].DueDate)
	assert.Equal(t, "2024-03-25", reminders[1].DueDate)
	require.NotNil(t, reminders[0].Amount)
	assert.Equal(t, 4500.0, *reminders[0].Amount)

	// 其他用户看不到演示数据
	other, err := s.ListIncome(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedgerWrites_NotConfigured(t *testing.T) {
	s := newDemo()
	ctx := context.Background()

	err := s.CreateIncome(ctx, &models.Income{UserID: DemoUserID, Source: "Job", Amount: 1, Date: "2024-01-01"})
	assert.ErrorIs(t, err, store.ErrNotConfigured)
	err = s.CreateExpense(ctx, &models.Expense{UserID: DemoUserID, Category: "Food", Amount: 1, Date: "2024-01-01"})
	assert.ErrorIs(t, err, store.ErrNotConfigured)
	assert.ErrorIs(t, s.DeleteExpense(ctx, DemoUserID, 3), store.ErrNotConfigured)

	incomes, _ := s.ListIncome(ctx, DemoUserID)
	assert.Len(t, incomes, 2)
}

func TestLedgerWrites_Allowed(t *testing.T) {
	s := New(Config{AllowLedgerWrites: true})
	ctx := context.Background()

	in := &models.Income{UserID: 7, Source: " Job ", Amount: 100, Date: "2024-01-01"}
	require.NoError(t, s.CreateIncome(ctx, in))
	assert.NotZero(t, in.ID)
	assert.Equal(t, "Job", in.Source)

	in.Amount = 150
	require.NoError(t, s.UpdateIncome(ctx, in))
	got, err := s.GetIncome(ctx, 7, in.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Amount)

	// 不能修改他人的记录
	err = s.UpdateIncome(ctx, &models.Income{ID: in.ID, UserID: 8, Amount: 1, Date: "2024-01-01"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteIncome(ctx, 7, in.ID))
	_, err = s.GetIncome(ctx, 7, in.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGoalsAndReminders_WritableInDemo(t *testing.T) {
	s := newDemo()
	ctx := context.Background()

	g := &models.SavingGoal{UserID: DemoUserID, GoalName: "Trip", TargetAmount: 1000}
	require.NoError(t, s.CreateGoal(ctx, g))
	assert.Equal(t, models.DefaultGoalCategory, g.Category)

	amount := 50.0
	r := &models.Reminder{UserID: DemoUserID, Title: "Gym", DueDate: "2024-03-01", Amount: &amount}
	require.NoError(t, s.CreateReminder(ctx, r))
	assert.Equal(t, models.ReminderUpcoming, r.Status)
	assert.Equal(t, models.RecurNone, r.Recurring)

	// 调用方修改指针不影响存储内容
	amount = 99
	reminders, err := s.ListReminders(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, reminders, 3)
	assert.Equal(t, "Gym", reminders[0].Title)
	assert.Equal(t, 50.0, *reminders[0].Amount)

	r.Status = models.ReminderPaid
	require.NoError(t, s.UpdateReminder(ctx, r))
	got, err := s.GetReminder(ctx, DemoUserID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderPaid, got.Status)

	require.NoError(t, s.DeleteGoal(ctx, DemoUserID, g.ID))
	goals, _ := s.ListGoals(ctx, DemoUserID)
	assert.Len(t, goals, 2)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	body := `{
		"incomes": [{"source": "Rental", "amount": "1200.50", "date": "2024-01-03"}],
		"expenses": [{"category": "", "amount": "abc", "date": "2024-01-04", "user_id": 9}],
		"goals": [{"goal_name": "House", "target_amount": 5000}],
		"reminders": [{"title": "Rent", "due_date": "2024-02-01", "status": "bogus"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s := New(Config{})
	n, err := s.LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	ctx := context.Background()
	incomes, _ := s.ListIncome(ctx, DemoUserID)
	require.Len(t, incomes, 1)
	assert.Equal(t, 1200.5, incomes[0].Amount)

	expenses, _ := s.ListExpense(ctx, 9)
	require.Len(t, expenses, 1)
	assert.Equal(t, 0.0, expenses[0].Amount)

	reminders, _ := s.ListReminders(ctx, DemoUserID)
	require.Len(t, reminders, 1)
	assert.Equal(t, models.ReminderUpcoming, reminders[0].Status)
	assert.Nil(t, reminders[0].Amount)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := New(Config{}).LoadSeedFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	s := New(Config{})
	cats, err := s.ExpenseCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryHousing, cats[0].Name)
	assert.Equal(t, "#14b8a6", cats[0].Color)
}
