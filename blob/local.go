package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Local 本地目录存储，由 router 以静态文件形式提供访问
type Local struct {
	dir     string
	baseURL string
}

// NewLocal 创建本地存储
func NewLocal(dir, baseURL string) *Local {
	if dir == "" {
		dir = "./uploads"
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir 存储根目录
func (l *Local) Dir() string {
	return l.dir
}

// path 对象在磁盘上的位置，不允许跳出根目录
func (l *Local) path(name string) (string, error) {
	full := filepath.Join(l.dir, filepath.FromSlash(name))
	if rel, err := filepath.Rel(l.dir, full); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("非法的文件路径: %s", name)
	}
	return full, nil
}

func (l *Local) Put(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := l.path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return l.baseURL + "/" + (&url.URL{Path: name}).EscapedPath(), nil
}

func (l *Local) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}
