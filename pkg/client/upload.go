package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
)

// Upload отправляет один файл в поле "file". uploadType выбирает подкаталог
// на сервере; пустой - тип по умолчанию.
func (c *Client) Upload(ctx context.Context, uploadType, fileName string, content io.Reader) (*Upload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(fileName)))
	h.Set("Content-Type", contentTypeOf(fileName))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var q url.Values
	if uploadType != "" {
		q = url.Values{"uploadType": {uploadType}}
	}

	var out Upload
	if err := c.send(ctx, http.MethodPost, c.endpoint("/upload", q), &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func contentTypeOf(fileName string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); t != "" {
		return t
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
