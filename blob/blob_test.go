package blob

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "invoices/1/2/bill.pdf", ObjectPath(PrefixInvoices, 1, 2, "bill.pdf"))
	assert.Equal(t, "receipts/3/4/r.png", ObjectPath(PrefixReceipts, 3, 4, "../../etc/r.png"))
	assert.Equal(t, "receipts/3/4/r.png", ObjectPath(PrefixReceipts, 3, 4, `C:\tmp\r.png`))

	p := ObjectPath(PrefixReceipts, 3, 4, "")
	assert.True(t, strings.HasPrefix(p, "receipts/3/4/"))
	assert.Len(t, strings.TrimPrefix(p, "receipts/3/4/"), 36)
}

func TestLocal_Put(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "http://localhost:8080/uploads/")

	u, err := l.Put(context.Background(), "invoices/1/2/a.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/invoices/1/2/a.txt", u)

	data, err := os.ReadFile(filepath.Join(dir, "invoices", "1", "2", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = l.Put(context.Background(), "../escape.txt", []byte("x"), "")
	assert.Error(t, err)

	// 文件名中的空格与 # 需要转义
	u, err = l.Put(context.Background(), "invoices/1/2/inv #1.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/invoices/1/2/inv%20%231.pdf", u)
	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Empty(t, parsed.Fragment)
	assert.Equal(t, "/uploads/invoices/1/2/inv #1.pdf", parsed.Path)
}

func TestLocal_Delete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")
	ctx := context.Background()

	_, err := l.Put(ctx, "receipts/1/2/r.png", []byte("x"), "image/png")
	require.NoError(t, err)
	require.NoError(t, l.Delete(ctx, "receipts/1/2/r.png"))
	_, err = os.Stat(filepath.Join(dir, "receipts", "1", "2", "r.png"))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, l.Delete(ctx, "receipts/1/2/r.png"))
	assert.Error(t, l.Delete(ctx, "../outside.txt"))
}

func TestLocal_PutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir(), "").Put(ctx, "a.txt", nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.BlobConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = Open(context.Background(), config.BlobConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = Open(context.Background(), config.BlobConfig{Driver: "gcs"})
	assert.Error(t, err)
}

func TestGCS_Put(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "receipts/1/2/a b.png", "bucket": "fin"})
	}))
	defer srv.Close()

	g, err := NewGCS(context.Background(), "fin", "",
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	u, err := g.Put(context.Background(), "receipts/1/2/a b.png", []byte("PNGDATA"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/fin/receipts/1/2/a%20b.png", u)
	assert.Contains(t, gotPath, "/b/fin/o")
	// multipart 上传：元数据 + 文件内容
	assert.Contains(t, gotBody, `"name":"receipts/1/2/a b.png"`)
	assert.Contains(t, gotBody, "PNGDATA")
}

func TestGCS_Delete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"code":404,"message":"No such object"}}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g, err := NewGCS(context.Background(), "fin", "",
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.NoError(t, g.Delete(context.Background(), "receipts/1/2/a.png"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Contains(t, gotPath, "/b/fin/o/")

	// 对象不存在视为已删除
	assert.NoError(t, g.Delete(context.Background(), "receipts/1/2/missing.png"))
}
