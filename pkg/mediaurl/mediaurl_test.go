package mediaurl_test

import (
	"testing"

	"irrigation_backend/pkg/mediaurl"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want mediaurl.Kind
	}{
		{"", mediaurl.KindEmpty},
		{"   ", mediaurl.KindEmpty},
		{"blob:http://localhost:5173/6f1c-44", mediaurl.KindPreview},
		{"/uploads/image/x.jpg", mediaurl.KindServerRelative},
		{"/uploads/", mediaurl.KindOther},
		{"https://cdn/x.jpg", mediaurl.KindAbsolute},
		{"HTTP://Example.com/a.png", mediaurl.KindAbsolute},
		{"https://", mediaurl.KindOther},
		{"data:image/png;base64,iVBORw0KGgo=", mediaurl.KindAbsolute},
		{"//cdn.example.com/x.jpg", mediaurl.KindAbsolute},
		{"images/x.jpg", mediaurl.KindOther},
		{"/static/x.jpg", mediaurl.KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mediaurl.Classify(tc.in), "input %q", tc.in)
	}
}

func TestClassifyWithPrefix(t *testing.T) {
	assert.Equal(t, mediaurl.KindServerRelative, mediaurl.ClassifyWithPrefix("/media/a.png", "media"))
	assert.Equal(t, mediaurl.KindOther, mediaurl.ClassifyWithPrefix("/uploads/a.png", "/media/"))
}

func TestResolve(t *testing.T) {
	t.Run("server-relative path gets the API origin", func(t *testing.T) {
		assert.Equal(t, "http://api.example.com/uploads/image/x.jpg",
			mediaurl.Resolve("/uploads/image/x.jpg", "http://api.example.com"))
		assert.Equal(t, "http://api.example.com/uploads/image/x.jpg",
			mediaurl.Resolve("/uploads/image/x.jpg", "http://api.example.com/"))
	})

	t.Run("preview passes through", func(t *testing.T) {
		v := "blob:http://localhost/abc"
		assert.Equal(t, v, mediaurl.Resolve(v, "http://api.example.com"))
	})

	t.Run("absolute passes through", func(t *testing.T) {
		assert.Equal(t, "https://cdn/x.jpg", mediaurl.Resolve("https://cdn/x.jpg", "http://api.example.com"))
		assert.Equal(t, "data:image/gif;base64,R0l=", mediaurl.Resolve("data:image/gif;base64,R0l=", "http://api"))
	})

	t.Run("empty origin leaves path relative", func(t *testing.T) {
		assert.Equal(t, "/uploads/a/b.png", mediaurl.Resolve("/uploads/a/b.png", ""))
	})

	t.Run("custom upload prefix", func(t *testing.T) {
		assert.Equal(t, "http://api/media/logo.png", mediaurl.ResolveWithPrefix("/media/logo.png", "http://api", "/media"))
		assert.Equal(t, "/uploads/logo.png", mediaurl.ResolveWithPrefix("/uploads/logo.png", "http://api", "/media"))
	})
}

func TestHasUploadPrefix(t *testing.T) {
	assert.True(t, mediaurl.HasUploadPrefix("/media/a/b.png", "/media"))
	assert.True(t, mediaurl.HasUploadPrefix("/media/a/b.png", "media/"))
	assert.False(t, mediaurl.HasUploadPrefix("/media/", "/media"))
	assert.False(t, mediaurl.HasUploadPrefix("/mediafoo/a.png", "/media"))
}

func TestStorable(t *testing.T) {
	assert.True(t, mediaurl.Storable("/uploads/general/1-2-a.png"))
	assert.True(t, mediaurl.Storable("https://example.com/a.png"))
	assert.False(t, mediaurl.Storable("blob:http://localhost/abc"))
	assert.False(t, mediaurl.Storable(""))
	assert.False(t, mediaurl.Storable("not a url"))
}
