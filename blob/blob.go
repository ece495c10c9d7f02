// Package blob 保存发票/收据等附件，返回可访问的 URL
package blob

import (
	"context"
	"fmt"
	"path"
	"strings"

	"fintrack/config"

	"github.com/google/uuid"
)

// Store 附件存储
type Store interface {
	// Put 写入对象并返回公开访问地址
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	// Delete 删除对象，对象不存在时不报错
	Delete(ctx context.Context, name string) error
}

// 附件目录
const (
	PrefixInvoices = "invoices"
	PrefixReceipts = "receipts"
)

// ObjectPath 生成对象路径，如 invoices/<uid>/<id>/<file>
func ObjectPath(prefix string, uid, id uint, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		name = uuid.NewString()
	}
	return fmt.Sprintf("%s/%d/%d/%s", prefix, uid, id, name)
}

// Open 按配置创建附件存储
func Open(ctx context.Context, cfg config.BlobConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.PublicBaseURL), nil
	case "gcs":
		return NewGCS(ctx, cfg.Bucket, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("不支持的附件存储类型: %s", cfg.Driver)
	}
}
