package services

import (
	"testing"
	"time"

	"irrigation_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"My Report.PDF":       "My_Report.PDF",
		"фото полива.jpg":     "___________.jpg",
		"../../etc/passwd":    ".._.._etc_passwd",
		"drip-line_v2.tar.gz": "drip-line_v2.tar.gz",
		"":                    "file",
		"a/b\\c:d*e?.png":     "a_b_c_d_e_.png",
		" padded name.png ":   "_padded_name.png_",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}

func TestGenerateFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123-42-My_Report.PDF", GenerateFileName(now, 42, "My Report.PDF"))
}

func TestNormalizeUploadType(t *testing.T) {
	got, err := NormalizeUploadType("", "general")
	require.NoError(t, err)
	assert.Equal(t, "general", got)

	got, err = NormalizeUploadType("  Document ", "general")
	require.NoError(t, err)
	assert.Equal(t, "document", got)

	for _, bad := range []string{"../etc", "a/b", "-lead", "with space", ".hidden"} {
		_, err := NormalizeUploadType(bad, "general")
		assert.ErrorIs(t, err, apperrors.ErrInvalidUploadType, "input %q", bad)
	}
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "image/png", detectMimeType("image/png", "x.bin"))
	assert.Equal(t, "text/plain", detectMimeType("text/plain; charset=utf-8", "x"))
	assert.Equal(t, "application/pdf", detectMimeType("", "Manual.PDF"))
	assert.Equal(t, "application/octet-stream", detectMimeType("", "noext"))
	assert.Equal(t, "image/png", detectMimeType("application/octet-stream", "photo.png"))
}

func TestServerPath(t *testing.T) {
	p, ok := serverPath("/uploads/image/a.png", "/uploads")
	assert.True(t, ok)
	assert.Equal(t, "/uploads/image/a.png", p)

	p, ok = serverPath("https://api.example.com/uploads/image/a.png", "/uploads")
	assert.True(t, ok)
	assert.Equal(t, "/uploads/image/a.png", p)

	_, ok = serverPath("https://cdn.example.com/static/a.png", "/uploads")
	assert.False(t, ok)

	t.Run("configured prefix", func(t *testing.T) {
		p, ok := serverPath("/media/partners/a.png", "/media")
		assert.True(t, ok)
		assert.Equal(t, "/media/partners/a.png", p)

		p, ok = serverPath("http://api.test/media/partners/a.png", "/media")
		assert.True(t, ok)
		assert.Equal(t, "/media/partners/a.png", p)

		_, ok = serverPath("/uploads/partners/a.png", "/media")
		assert.False(t, ok)
	})
}
