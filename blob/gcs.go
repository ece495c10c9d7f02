package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/googleapi"
	storage "google.golang.org/api/storage/v1"
)

// GCS Google Cloud Storage
type GCS struct {
	bucket  string
	service *storage.Service
}

// NewGCS 创建 GCS 存储；未指定凭据文件时使用默认凭据（GOOGLE_APPLICATION_CREDENTIALS）
func NewGCS(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("未配置 blob.bucket")
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.DevstorageReadWriteScope))

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 GCS 客户端失败: %w", err)
	}
	log.Infof("附件存储: gcs://%s", bucket)
	return &GCS{bucket: bucket, service: service}, nil
}

func (g *GCS) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	obj := &storage.Object{Name: name, ContentType: contentType}
	if _, err := g.service.Objects.Insert(g.bucket, obj).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("上传到 GCS 失败: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, (&url.URL{Path: name}).EscapedPath()), nil
}

func (g *GCS) Delete(ctx context.Context, name string) error {
	err := g.service.Objects.Delete(g.bucket, name).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("删除 GCS 对象失败: %w", err)
	}
	return nil
}
