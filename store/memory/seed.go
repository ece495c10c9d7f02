package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fintrack/models"
)

const day = 24 * time.Hour

// SeedDemo 写入演示数据，日期相对 now 计算
func (s *Store) SeedDemo(now time.Time) {
	date := func(offset time.Duration) string {
		return now.Add(offset).Format("2006-01-02")
	}
	amount := func(v float64) *float64 { return &v }

	s.mu.Lock()
	defer s.mu.Unlock()

	// 列表按创建时间倒序，第一条最新
	stamp := func(i int) time.Time { return now.Add(-time.Duration(i) * time.Second) }

	incomes := []models.Income{
		{Source: "Job", Amount: 2500, Date: date(0), Notes: "Salary"},
		{Source: "Freelancing", Amount: 900, Date: date(-20 * day), Notes: "Landing page"},
	}
	for i := range incomes {
		incomes[i].ID, incomes[i].UserID, incomes[i].CreatedAt = s.id(), DemoUserID, stamp(i)
		incomes[i].UpdatedAt = incomes[i].CreatedAt
	}
	expenses := []models.Expense{
		{Category: models.CategoryHousing, Amount: 900, Date: date(0), Notes: "Rent"},
		{Category: models.CategoryFood, Amount: 220, Date: date(-10 * day), Notes: "Groceries"},
	}
	for i := range expenses {
		expenses[i].ID, expenses[i].UserID, expenses[i].CreatedAt = s.id(), DemoUserID, stamp(i)
		expenses[i].UpdatedAt = expenses[i].CreatedAt
	}
	goals := []models.SavingGoal{
		{GoalName: "Emergency Fund", Category: "Safety", TargetAmount: 200000, CurrentAmount: 65000, Notes: "6 months runway"},
		{GoalName: "New Laptop", Category: "Gear", TargetAmount: 120000, CurrentAmount: 30000},
	}
	for i := range goals {
		goals[i].ID, goals[i].UserID, goals[i].CreatedAt = s.id(), DemoUserID, stamp(i)
		goals[i].UpdatedAt = goals[i].CreatedAt
	}
	reminders := []models.Reminder{
		{Title: "Credit Card Bill", DueDate: date(5 * day), Amount: amount(4500), Recurring: models.RecurMonthly, Status: models.ReminderUpcoming},
		{Title: "Internet Bill", DueDate: date(10 * day), Amount: amount(799), Recurring: models.RecurMonthly, Status: models.ReminderUpcoming},
	}
	for i := range reminders {
		reminders[i].ID, reminders[i].UserID, reminders[i].CreatedAt = s.id(), DemoUserID, stamp(i)
		reminders[i].UpdatedAt = reminders[i].CreatedAt
	}

	s.incomes = append(s.incomes, incomes...)
	s.expenses = append(s.expenses, expenses...)
	s.goals = append(s.goals, goals...)
	s.reminders = append(s.reminders, reminders...)
}

// seedFile 种子文件格式，字段按文档风格松散书写
type seedFile struct {
	Incomes   []map[string]any `json:"incomes"`
	Expenses  []map[string]any `json:"expenses"`
	Goals     []map[string]any `json:"goals"`
	Reminders []map[string]any `json:"reminders"`
}

// LoadSeedFile 从 JSON 文件导入记录，未指定 user_id 的记录归属演示用户
func (s *Store) LoadSeedFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("打开种子文件失败: %w", err)
	}
	defer f.Close()

	var seed seedFile
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&seed); err != nil {
		return 0, fmt.Errorf("解析种子文件失败: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	owner := func(uid uint) uint {
		if uid == 0 {
			return DemoUserID
		}
		return uid
	}
	n := 0
	for _, doc := range seed.Incomes {
		in := models.IncomeFromDoc(doc)
		in.ID, in.UserID, in.CreatedAt, in.UpdatedAt = s.id(), owner(in.UserID), now, now
		s.incomes = append(s.incomes, in)
		n++
	}
	for _, doc := range seed.Expenses {
		e := models.ExpenseFromDoc(doc)
		e.ID, e.UserID, e.CreatedAt, e.UpdatedAt = s.id(), owner(e.UserID), now, now
		s.expenses = append(s.expenses, e)
		n++
	}
	for _, doc := range seed.Goals {
		g := models.GoalFromDoc(doc)
		g.ID, g.UserID, g.CreatedAt, g.UpdatedAt = s.id(), owner(g.UserID), now, now
		s.goals = append(s.goals, g)
		n++
	}
	for _, doc := range seed.Reminders {
		r := models.ReminderFromDoc(doc)
		r.ID, r.UserID, r.CreatedAt, r.UpdatedAt = s.id(), owner(r.UserID), now, now
		s.reminders = append(s.reminders, r)
		n++
	}
	return n, nil
}
