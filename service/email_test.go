package service

import (
	"bytes"
	"errors"
	"testing"

	"fintrack/aggregate"
	"fintrack/config"
	"fintrack/models"
	"fintrack/planner"
	"fintrack/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func newTestEmailService(enabled bool) (*EmailService, *[]*gomail.Message) {
	s := NewEmailService(&config.EmailConfig{Enabled: enabled, Username: "bot@example.com", From: "FinTrack"})
	var sent []*gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = append(sent, m)
		return nil
	}
	return s, &sent
}

func amountPtr(v float64) *float64 { return &v }

func TestGenerateDigestBody(t *testing.T) {
	s, _ := newTestEmailService(true)
	body := s.generateDigestBody("张三", []planner.ReminderView{
		{Reminder: models.Reminder{Title: "Credit <Card>", DueDate: "2024-01-10", Amount: amountPtr(4500), Recurring: "monthly"}, Overdue: true},
		{Reminder: models.Reminder{Title: "Internet", DueDate: "2024-01-20", Recurring: "none"}},
	})
	assert.Contains(t, body, "张三")
	assert.Contains(t, body, "Credit &lt;Card&gt;")
	assert.Contains(t, body, "4500.00")
	assert.Contains(t, body, "已逾期")
	assert.Contains(t, body, "<td>-</td>")
}

func TestSendReminderDigest_Disabled(t *testing.T) {
	s, sent := newTestEmailService(false)
	err := s.SendReminderDigest("a@example.com", "a", nil)
	assert.ErrorIs(t, err, ErrEmailDisabled)
	assert.Empty(t, *sent)
}

func TestSendReport_Attachment(t *testing.T) {
	s, sent := newTestEmailService(true)
	wb := &report.Workbook{
		Name:   "fintrack-itr-2024-01-01-to-2024-03-31",
		Kind:   report.KindITR,
		From:   "2024-01-01",
		To:     "2024-03-31",
		Totals: aggregate.Totals{Income: 3400, Expenses: 1120, Savings: 2280},
	}
	require.NoError(t, s.SendReport("a@example.com", wb, []byte("XLSXDATA")))
	require.Len(t, *sent, 1)

	var buf bytes.Buffer
	_, err := (*sent)[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, `filename="fintrack-itr-2024-01-01-to-2024-03-31.xlsx"`)
	assert.Contains(t, raw, "a@example.com")
}

func TestGenerateReportBody(t *testing.T) {
	s, _ := newTestEmailService(true)
	body := s.generateReportBody(&report.Workbook{Name: "x", Kind: report.KindGST, Totals: aggregate.Totals{Income: 10, Expenses: 4, Savings: 6}})
	assert.Contains(t, body, "GST")
	assert.Contains(t, body, "全部")
	assert.Contains(t, body, "6.00")
}

func TestSendEmail_Error(t *testing.T) {
	s, _ := newTestEmailService(true)
	s.send = func(*gomail.Message) error { return errors.New("smtp down") }
	err := s.SendTestEmail("a@example.com")
	assert.ErrorContains(t, err, "smtp down")
}
