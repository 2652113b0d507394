package app_test

import (
	"net/http"
	"testing"

	"irrigation_backend/internal/models"
	"irrigation_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryBody(title, category string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": title + " installation",
		"imageUrl":    "https://cdn.example.com/gallery/" + title + ".jpg",
		"category":    category,
	}
}

func TestGallery(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	var ids []string
	for _, g := range [][2]string{{"orchard", "farms"}, {"park", "landscape"}, {"greenhouse", "farms"}} {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/gallery"), token, galleryBody(g[0], g[1]))
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		ids = append(ids, testutil.DecodeJSON[idOnly](t, body).ID)
	}

	t.Run("List newest first", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, ts.API("/gallery"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		items := testutil.DecodeJSON[[]models.GalleryItem](t, body)
		require.Len(t, items, 3)
		assert.Equal(t, ids[2], items[0].ID)
		assert.Equal(t, ids[0], items[2].ID)
	})

	t.Run("Filter by tag", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, ts.API("/gallery?category=farms"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		items := testutil.DecodeJSON[[]models.GalleryItem](t, body)
		require.Len(t, items, 2)
		for _, it := range items {
			assert.Equal(t, "farms", it.Category)
		}

		res, body = ts.SendRequest(t, http.MethodGet, ts.API("/gallery?category=deserts"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `[]`, body)
	})

	t.Run("Media reference rules", func(t *testing.T) {
		for ref, want := range map[string]int{
			"/uploads/gallery/1-2-a.jpg":         http.StatusCreated,
			"data:image/png;base64,iVBORw0KGgo=": http.StatusCreated,
			"blob:http://localhost/1234":         http.StatusBadRequest,
			"/etc/passwd":                        http.StatusBadRequest,
			"gallery/a.jpg":                      http.StatusBadRequest,
		} {
			body := galleryBody("ref", "misc")
			body["imageUrl"] = ref
			res, resp := ts.SendRequest(t, http.MethodPost, ts.API("/gallery"), token, body)
			assert.Equal(t, want, res.StatusCode, ref)
			if want == http.StatusBadRequest {
				assert.Equal(t, map[string]string{"imageUrl": "mediaref"}, errorFields(t, resp), ref)
			}
		}
	})

	t.Run("Update and delete", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, ts.API("/gallery/"+ids[1]), token, galleryBody("park-2", "parks"))
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		got := testutil.DecodeJSON[models.GalleryItem](t, body)
		assert.Equal(t, "parks", got.Category)
		assert.Equal(t, ids[1], got.ID)

		res, _ = ts.SendRequest(t, http.MethodDelete, ts.API("/gallery/"+ids[1]), token, nil)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)
		res, _ = ts.SendRequest(t, http.MethodGet, ts.API("/gallery/"+ids[1]), "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		res, _ = ts.SendRequest(t, http.MethodPut, ts.API("/gallery/"+ids[1]), token, galleryBody("x", "y"))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestDownloads(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	body := map[string]any{
		"title":       "Catalog 2024",
		"description": "Full product catalog",
		"fileUrl":     "/uploads/downloads/1700000000000-5-catalog.pdf",
		"fileSize":    "2.4 MB",
		"fileType":    "PDF",
		"category":    "catalogs",
	}
	res, resp := ts.SendRequest(t, http.MethodPost, ts.API("/downloads"), token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, resp)
	created := testutil.DecodeJSON[models.DownloadItem](t, resp)
	assert.Equal(t, "2.4 MB", created.FileSize)

	body["category"] = "manuals"
	body["fileType"] = "DOCX"
	res, resp = ts.SendRequest(t, http.MethodPost, ts.API("/downloads"), token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, resp)

	res, resp = ts.SendRequest(t, http.MethodGet, ts.API("/downloads?category=catalogs"), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	items := testutil.DecodeJSON[[]models.DownloadItem](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	res, resp = ts.SendRequest(t, http.MethodPost, ts.API("/downloads"), token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, map[string]string{
		"description": "required",
		"fileUrl":     "required",
		"fileSize":    "required",
		"fileType":    "required",
		"category":    "required",
	}, errorFields(t, resp))

	res, _ = ts.SendRequest(t, http.MethodDelete, ts.API("/downloads/"+created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodDelete, ts.API("/downloads/"+created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDisplayOrderedContent(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	t.Run("Partners", func(t *testing.T) {
		for _, p := range []struct {
			name  string
			order int
		}{{"Gamma", 2}, {"Alpha", 0}, {"Beta", 2}, {"Zero", 1}} {
			res, body := ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
				"name": p.name, "logo": "/uploads/partners/1-1-" + p.name + ".png", "order": p.order,
			})
			require.Equal(t, http.StatusCreated, res.StatusCode, body)
		}

		res, body := ts.SendRequest(t, http.MethodGet, ts.API("/partners"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var names []string
		for _, p := range testutil.DecodeJSON[[]models.Partner](t, body) {
			names = append(names, p.Name)
		}
		// при равном order - порядок вставки
		assert.Equal(t, []string{"Alpha", "Zero", "Gamma", "Beta"}, names)
	})

	t.Run("Features", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/features"), token, map[string]any{
			"icon": "droplet", "title": "Water saving", "description": "Up to 50% less water", "order": 0,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		feature := testutil.DecodeJSON[models.Feature](t, body)
		assert.Equal(t, 0, feature.Order)

		res, body = ts.SendRequest(t, http.MethodPut, ts.API("/features/"+feature.ID), token, map[string]any{
			"icon": "leaf", "title": "Eco", "description": "Less runoff", "order": 3,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Equal(t, 3, testutil.DecodeJSON[models.Feature](t, body).Order)

		res, body = ts.SendRequest(t, http.MethodGet, ts.API("/features/"+feature.ID), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "leaf", testutil.DecodeJSON[models.Feature](t, body).Icon)
	})

	t.Run("Stats", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/stats"), token, map[string]any{
			"number": "500+", "label": "Projects", "icon": "chart", "order": 1,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		stat := testutil.DecodeJSON[models.Stat](t, body)
		assert.Equal(t, "500+", stat.Number)

		res, _ = ts.SendRequest(t, http.MethodDelete, ts.API("/stats/"+stat.ID), token, nil)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)

		res, body = ts.SendRequest(t, http.MethodGet, ts.API("/stats"), "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `[]`, body)
	})

	t.Run("Order is required and non-negative", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/stats"), token, map[string]any{
			"number": "15", "label": "Years", "icon": "clock", "order": -1,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, map[string]string{"order": "min"}, errorFields(t, body))

		res, body = ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
			"name": "NoOrder", "logo": "/uploads/partners/x.png",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, map[string]string{"order": "required"}, errorFields(t, body))
	})

	t.Run("Wrong order type is listed with the other errors", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{"order": "first"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, map[string]string{"order": "type", "name": "required", "logo": "required"}, errorFields(t, body))

		res, body = ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
			"name": "Acme", "logo": "blob:http://admin/1", "order": 1.5,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, map[string]string{"order": "type", "logo": "mediaref"}, errorFields(t, body))
		assert.NotContains(t, body, "int", "messages use JSON type names")
	})
}

func TestContentMissingIDs(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	cases := []struct {
		resource string
		body     map[string]any
	}{
		{"partners", map[string]any{"name": "Acme", "logo": "/uploads/partners/1-1-acme.png", "order": 0}},
		{"features", map[string]any{"icon": "droplet", "title": "Savings", "description": "Less water", "order": 0}},
		{"stats", map[string]any{"number": "15", "label": "Years", "icon": "clock", "order": 0}},
	}
	for _, tc := range cases {
		t.Run(tc.resource, func(t *testing.T) {
			res, body := ts.SendRequest(t, http.MethodPut, ts.API("/"+tc.resource+"/missing"), token, tc.body)
			assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
			assert.Equal(t, "NOT_FOUND", decodeError(t, body).Error.Code)

			res, body = ts.SendRequest(t, http.MethodPost, ts.API("/"+tc.resource), token, tc.body)
			require.Equal(t, http.StatusCreated, res.StatusCode, body)
			id := testutil.DecodeJSON[idOnly](t, body).ID

			res, _ = ts.SendRequest(t, http.MethodDelete, ts.API("/"+tc.resource+"/"+id), token, nil)
			assert.Equal(t, http.StatusNoContent, res.StatusCode)

			res, body = ts.SendRequest(t, http.MethodDelete, ts.API("/"+tc.resource+"/"+id), token, nil)
			assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

			res, _ = ts.SendRequest(t, http.MethodGet, ts.API("/"+tc.resource+"/"+id), "", nil)
			assert.Equal(t, http.StatusNotFound, res.StatusCode)
		})
	}
}
