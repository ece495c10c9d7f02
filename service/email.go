package service

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"fintrack/config"
	"fintrack/planner"
	"fintrack/report"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 FINTRACK_EMAIL_ENABLED=true")

// EmailService 邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(*gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// Enabled 是否已启用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendReminderDigest 发送待付账单提醒汇总
func (s *EmailService) SendReminderDigest(toEmail, username string, reminders []planner.ReminderView) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	subject := fmt.Sprintf("【FinTrack】您有 %d 笔待付账单", len(reminders))
	return s.sendEmail(toEmail, subject, s.generateDigestBody(username, reminders), nil)
}

// generateDigestBody 生成提醒汇总邮件内容
func (s *EmailService) generateDigestBody(username string, reminders []planner.ReminderView) string {
	var rows strings.Builder
	for _, r := range reminders {
		amount := "-"
		if r.Amount != nil {
			amount = fmt.Sprintf("%.2f", *r.Amount)
		}
		due := html.EscapeString(r.DueDate)
		if r.Overdue {
			due += ` <span class="overdue">已逾期</span>`
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Title), due, amount, html.EscapeString(r.Recurring))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #14b8a6, #0d9488); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 16px; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { text-align: left; padding: 10px; border-bottom: 1px solid #eee; font-size: 14px; }
        th { background: #f8f9fa; color: #555; }
        .overdue { color: #ef4444; font-size: 12px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 FinTrack 账单提醒</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>以下账单尚未支付：</p>
            <table>
                <tr><th>账单</th><th>到期日</th><th>金额</th><th>重复</th></tr>
%s            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(username), rows.String())
}

// SendReport 以附件形式发送报表
func (s *EmailService) SendReport(toEmail string, wb *report.Workbook, data []byte) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	subject := fmt.Sprintf("【FinTrack】%s 报表 %s", wb.Kind, wb.Name)
	body := s.generateReportBody(wb)
	return s.sendEmail(toEmail, subject, body, func(m *gomail.Message) {
		m.Attach(wb.FileName(), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	})
}

// generateReportBody 生成报表邮件正文
func (s *EmailService) generateReportBody(wb *report.Workbook) string {
	period := "全部"
	if wb.From != "" || wb.To != "" {
		period = fmt.Sprintf("%s 至 %s", wb.From, wb.To)
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px;">
    <h2>📊 %s 报表</h2>
    <p>统计区间：%s</p>
    <p>总收入：%.2f<br>总支出：%.2f<br>结余：%.2f</p>
    <p>完整明细见附件 <strong>%s</strong>。</p>
    <p style="color: #666;">—— FinTrack</p>
</body>
</html>
`, wb.Kind, html.EscapeString(period), wb.Totals.Income, wb.Totals.Expenses, wb.Totals.Savings, html.EscapeString(wb.FileName()))
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	subject := "【FinTrack】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— FinTrack</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body, nil)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string, extra func(*gomail.Message)) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if extra != nil {
		extra(m)
	}

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
