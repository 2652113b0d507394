package site

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesEveryPage(t *testing.T) {
	s, err := New(Options{Title: "Test"}, Services{})
	require.NoError(t, err)
	for _, p := range pages {
		tmpl, ok := s.templates[p]
		require.True(t, ok, p)
		assert.NotNil(t, tmpl.Lookup("content"), p)
		assert.NotNil(t, tmpl.Lookup("layout.html"), p)
	}
}

func TestMediaSrc(t *testing.T) {
	const origin = "https://api.example.com"

	cases := []struct {
		in   string
		want any
	}{
		{"/uploads/products/1-2-a.png", template.URL("https://api.example.com/uploads/products/1-2-a.png")},
		{"https://cdn.example.com/a.png", template.URL("https://cdn.example.com/a.png")},
		{"data:image/png;base64,AAAA", template.URL("data:image/png;base64,AAAA")},
		{"blob:https://admin/123", "blob:https://admin/123"},
		{"javascript:alert(1)", "javascript:alert(1)"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mediaSrc(tc.in, origin, "/uploads"), tc.in)
	}

	t.Run("configured upload prefix", func(t *testing.T) {
		assert.Equal(t, template.URL("https://api.example.com/media/a.png"), mediaSrc("/media/a.png", origin, "/media"))
		assert.Equal(t, "/uploads/a.png", mediaSrc("/uploads/a.png", origin, "/media"))
	})
}
