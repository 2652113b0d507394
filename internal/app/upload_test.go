package app_test

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"irrigation_backend/internal/config"
	"irrigation_backend/internal/services/dto"
	"irrigation_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedNamePattern = regexp.MustCompile(`^\d+-\d+-[A-Za-z0-9._-]+$`)

func filesIn(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, p)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestUpload(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)
	content := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	t.Run("Stores under uploadType and returns the descriptor", func(t *testing.T) {
		res, body := ts.Upload(t, ts.API("/upload?uploadType=Products"), token, "file", "drip line (new).png", content)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)

		got := testutil.DecodeJSON[dto.UploadResponse](t, body)
		assert.True(t, storedNamePattern.MatchString(got.FileName), got.FileName)
		assert.True(t, strings.HasSuffix(got.FileName, "-drip_line__new_.png"), got.FileName)
		assert.Equal(t, "/uploads/products/"+got.FileName, got.FilePath)
		assert.Equal(t, "drip line (new).png", got.OriginalName)
		assert.Equal(t, "image/png", got.MimeType)
		assert.Equal(t, int64(len(content)), got.Size)

		onDisk, err := os.ReadFile(filepath.Join(ts.UploadDir, "products", got.FileName))
		require.NoError(t, err)
		assert.Equal(t, content, onDisk)

		t.Run("Served with cross-origin headers", func(t *testing.T) {
			res, served := ts.SendRequest(t, http.MethodGet, got.FilePath, "", nil)
			require.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, string(content), served)
			assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "cross-origin", res.Header.Get("Cross-Origin-Resource-Policy"))
			assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
		})

		t.Run("Path can be referenced by a record", func(t *testing.T) {
			res, body := ts.SendRequest(t, http.MethodPost, ts.API("/gallery"), token, map[string]any{
				"title":       "Field install",
				"description": "Drip line on a vineyard",
				"imageUrl":    got.FilePath,
				"category":    "vineyards",
			})
			assert.Equal(t, http.StatusCreated, res.StatusCode, body)
		})
	})

	t.Run("Document name is sanitized", func(t *testing.T) {
		res, body := ts.Upload(t, ts.API("/upload?uploadType=document"), token, "file", "My Report.PDF", []byte("%PDF-1.4"))
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		got := testutil.DecodeJSON[dto.UploadResponse](t, body)
		assert.Regexp(t, `^/uploads/document/\d+-\d+-My_Report\.PDF$`, got.FilePath)
		assert.Equal(t, "application/pdf", got.MimeType)
	})

	t.Run("Default upload type is general", func(t *testing.T) {
		res, body := ts.Upload(t, ts.API("/upload"), token, "file", "note.txt", []byte("hello"))
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		got := testutil.DecodeJSON[dto.UploadResponse](t, body)
		assert.True(t, strings.HasPrefix(got.FilePath, "/uploads/general/"), got.FilePath)
	})

	t.Run("Two uploads of the same name do not collide", func(t *testing.T) {
		_, first := ts.Upload(t, ts.API("/upload?uploadType=dup"), token, "file", "same.png", content)
		_, second := ts.Upload(t, ts.API("/upload?uploadType=dup"), token, "file", "same.png", content)
		a := testutil.DecodeJSON[dto.UploadResponse](t, first)
		b := testutil.DecodeJSON[dto.UploadResponse](t, second)
		assert.NotEqual(t, a.FilePath, b.FilePath)
	})

	t.Run("Oversize is rejected and nothing is written", func(t *testing.T) {
		before := filesIn(t, ts.UploadDir)
		big := bytes.Repeat([]byte("a"), testutil.MaxUploadSize+1)

		res, body := ts.Upload(t, ts.API("/upload?uploadType=big"), token, "file", "big.bin", big)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		assert.Equal(t, "FILE_TOO_LARGE", decodeError(t, body).Error.Code)

		assert.ElementsMatch(t, before, filesIn(t, ts.UploadDir))
		_, err := os.Stat(filepath.Join(ts.UploadDir, "big"))
		if err == nil {
			entries, _ := os.ReadDir(filepath.Join(ts.UploadDir, "big"))
			assert.Empty(t, entries)
		}
	})

	t.Run("Missing file field", func(t *testing.T) {
		res, body := ts.Upload(t, ts.API("/upload"), token, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		assert.Equal(t, "NO_FILE", decodeError(t, body).Error.Code)

		res, body = ts.Upload(t, ts.API("/upload"), token, "attachment", "a.png", content)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		assert.Equal(t, "NO_FILE", decodeError(t, body).Error.Code)
	})

	t.Run("Upload type cannot escape the upload root", func(t *testing.T) {
		for _, bad := range []string{"../etc", "a/b", ".hidden", "sp%20ace"} {
			res, body := ts.Upload(t, ts.API("/upload?uploadType="+bad), token, "file", "a.png", content)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, bad)
			assert.Equal(t, "INVALID_UPLOAD_TYPE", decodeError(t, body).Error.Code, bad)
		}
	})

	t.Run("Requires a token", func(t *testing.T) {
		res, _ := ts.Upload(t, ts.API("/upload"), "", "file", "a.png", content)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Missing and traversal paths are not found", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/uploads/products/nope.png", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodGet, "/uploads/products", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestUploadAllowedTypes(t *testing.T) {
	ts := testutil.NewTestServer(t, func(cfg *config.Config) {
		cfg.Upload.AllowedTypes = []string{"image/*", "application/pdf"}
	})
	token := ts.Login(t)

	res, body := ts.Upload(t, ts.API("/upload"), token, "file", "manual.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.Upload(t, ts.API("/upload"), token, "file", "script.sh", []byte("#!/bin/sh"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Equal(t, "INVALID_FILE_TYPE", decodeError(t, body).Error.Code)
}

func TestSweepUploads(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	_, kept := ts.Upload(t, ts.API("/upload?uploadType=partners"), token, "file", "logo.png", []byte("logo"))
	_, orphan := ts.Upload(t, ts.API("/upload?uploadType=partners"), token, "file", "old.png", []byte("old"))
	keptPath := testutil.DecodeJSON[dto.UploadResponse](t, kept).FilePath
	orphanName := testutil.DecodeJSON[dto.UploadResponse](t, orphan).FileName

	res, body := ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
		"name": "Acme", "logo": "http://api.test" + keptPath, "order": 1,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	report, err := ts.App.SweepUploads(context.Background(), dto.SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, []string{"partners/" + orphanName}, report.Orphans)
	assert.Equal(t, int64(len("old")), report.Bytes)
	assert.Zero(t, report.Removed)
	assert.Equal(t, "http://api.test/uploads/partners/"+orphanName, ts.App.PublicURL(report.Orphans[0]))

	report, err = ts.App.SweepUploads(context.Background(), dto.SweepOptions{Remove: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, []string{"partners/" + filepath.Base(keptPath)}, filesIn(t, ts.UploadDir))
}

func TestSweepUploadsMinAge(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	upload := func(name string) dto.UploadResponse {
		res, body := ts.Upload(t, ts.API("/upload?uploadType=partners"), token, "file", name, []byte(name))
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		return testutil.DecodeJSON[dto.UploadResponse](t, body)
	}

	stale := upload("stale.png")
	fresh := upload("fresh.png")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(ts.UploadDir, "partners", stale.FileName), old, old))

	report, err := ts.App.SweepUploads(context.Background(), dto.SweepOptions{MinAge: 24 * time.Hour, Remove: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, []string{"partners/" + stale.FileName}, report.Orphans)
	assert.Equal(t, 1, report.Recent)
	assert.Equal(t, 1, report.Removed)

	t.Run("Fresh upload survives and can still be referenced", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
			"name": "Late", "logo": fresh.FilePath, "order": 1,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)

		res, _ = ts.SendRequest(t, http.MethodGet, fresh.FilePath, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		res, _ = ts.SendRequest(t, http.MethodGet, stale.FilePath, "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestCustomUploadPrefix(t *testing.T) {
	ts := testutil.NewTestServer(t, func(cfg *config.Config) {
		cfg.Storage.URLPrefix = "/media"
	})
	token := ts.Login(t)

	res, body := ts.Upload(t, ts.API("/upload?uploadType=partners"), token, "file", "logo.png", []byte("logo"))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	logo := testutil.DecodeJSON[dto.UploadResponse](t, body)
	require.True(t, strings.HasPrefix(logo.FilePath, "/media/partners/"), logo.FilePath)

	res, body = ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
		"name": "Acme", "logo": logo.FilePath, "order": 1,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	report, err := ts.App.SweepUploads(context.Background(), dto.SweepOptions{Remove: true})
	require.NoError(t, err)
	assert.Empty(t, report.Orphans)
	assert.Zero(t, report.Removed)

	res, _ = ts.SendRequest(t, http.MethodGet, logo.FilePath, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "referenced file is still served")

	res, page := ts.SendRequest(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, page, `src="http://api.test`+logo.FilePath+`"`)
	assert.Equal(t, "http://api.test"+logo.FilePath, ts.App.PublicURL("partners/"+logo.FileName))

	res, body = ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
		"name": "Old path", "logo": "/uploads/partners/x.png", "order": 2,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "mediaref", errorFields(t, body)["logo"])
}
