package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"fintrack/api"
	"fintrack/database"
	"fintrack/report"
	"fintrack/store"
	"fintrack/store/memory"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	UserID uint
	Kind   string
	From   string
	To     string
	Out    string
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出 ITR/GST 报表为 xlsx 文件",
	Example: `  fintrack export --kind itr --from 2024-04-01 --to 2025-03-31
  fintrack export --kind gst --user 3 -o gst.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		backend, err := database.OpenStore(cfg)
		if err != nil {
			return fmt.Errorf("记录存储初始化失败: %w", err)
		}
		defer backend.Close()

		opts := exportOpts
		if opts.UserID == 0 {
			if !backend.Demo {
				return fmt.Errorf("请通过 --user 指定用户")
			}
			opts.UserID = memory.DemoUserID
		}
		opts.defaults(time.Now())

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		wb, err := buildReport(ctx, backend.Store, cfg.Report.Product, opts)
		if err != nil {
			return err
		}

		out := opts.Out
		if out == "" {
			out = wb.FileName()
		}
		if err := writeFile(out, func(w io.Writer) error { return report.WriteXLSX(w, wb) }); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"file":     out,
			"income":   wb.Totals.Income,
			"expenses": wb.Totals.Expenses,
		}).Info("报表已导出")
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.UintVar(&exportOpts.UserID, "user", 0, "用户 ID，演示模式下默认演示用户")
	f.StringVar(&exportOpts.Kind, "kind", "itr", "报表类型 itr | gst")
	f.StringVar(&exportOpts.From, "from", "", "开始日期 YYYY-MM-DD，默认当年 1 月 1 日")
	f.StringVar(&exportOpts.To, "to", "", "结束日期 YYYY-MM-DD，默认今天")
	f.StringVarP(&exportOpts.Out, "out", "o", "", "输出文件，默认使用报表名")
}

// writeFile 写入文件；写入或关闭失败时删除不完整的文件
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭文件失败: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}

func (o *exportOptions) defaults(now time.Time) {
	if o.From == "" {
		o.From = fmt.Sprintf("%04d-01-01", now.Year())
	}
	if o.To == "" {
		o.To = now.Format("2006-01-02")
	}
}

func (o exportOptions) validate() error {
	for _, d := range []string{o.From, o.To} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("日期格式错误 %q，应为 YYYY-MM-DD", d)
		}
	}
	return nil
}

func buildReport(ctx context.Context, s store.Store, product string, opts exportOptions) (*report.Workbook, error) {
	kind, err := report.ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	incomes, expenses, err := api.LoadLedger(ctx, s, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("加载记录失败: %w", err)
	}
	return report.Build(product, kind, incomes, expenses, opts.From, opts.To), nil
}
