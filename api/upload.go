package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"fintrack/blob"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// upload 上传的附件
type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// readUpload 读取 multipart 表单中的 file 字段，超过 maxMB 时返回 false
func readUpload(c *gin.Context, maxMB int) (*upload, bool) {
	limit := int64(maxMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请选择要上传的文件")
		return nil, false
	}
	if fh.Size > limit {
		BadRequest(c, fmt.Sprintf("文件不能超过 %dMB", maxMB))
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		BadRequest(c, "读取文件失败")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		BadRequest(c, "读取文件失败")
		return nil, false
	}
	if int64(len(data)) > limit {
		BadRequest(c, fmt.Sprintf("文件不能超过 %dMB", maxMB))
		return nil, false
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &upload{Name: fh.Filename, ContentType: contentType, Data: data}, true
}

// discardBlob 删除孤立附件，失败只记录日志
func discardBlob(ctx context.Context, blobs blob.Store, name string) {
	if err := blobs.Delete(context.WithoutCancel(ctx), name); err != nil {
		log.WithError(err).WithField("object", name).Warn("清理附件失败")
	}
}
