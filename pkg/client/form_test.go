package client_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"irrigation_backend/internal/testutil"
	"irrigation_backend/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminClient(t *testing.T) (*testutil.TestServer, *client.Client) {
	t.Helper()
	ts := testutil.NewTestServer(t)

	tokens := &client.TokenStore{}
	c := client.New(ts.Server.URL+ts.API(""), client.WithTokenSource(tokens))

	login, err := c.Login(context.Background(), testutil.AdminEmail, testutil.AdminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	tokens.Set(login.Token)
	return ts, c
}

func TestUploadThenReference(t *testing.T) {
	ts, c := newAdminClient(t)
	ctx := context.Background()

	category, err := c.Categories.Create(ctx, &client.CategoryInput{Name: "Sprinklers"})
	require.NoError(t, err)

	form := c.NewFormSession("products", nil)
	preview := form.Select("rotor.png", []byte("png-bytes"))
	assert.True(t, strings.HasPrefix(preview, "blob:"))
	assert.Equal(t, preview, form.Display("http://api.test"))

	t.Run("Preview is not storable", func(t *testing.T) {
		_, err := c.Products.Create(ctx, &client.ProductInput{
			Name: "Rotor", Description: "Gear driven", Image: preview, CategoryID: category.ID,
		})
		require.Error(t, err)
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		fields := apiErr.Fields()
		require.Len(t, fields, 1)
		assert.Equal(t, "image", fields[0].Field)
		assert.Equal(t, "mediaref", fields[0].Reason)
	})

	stored, err := form.Commit(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "/uploads/products/"), stored)
	assert.Equal(t, stored, form.Current())
	assert.Empty(t, form.Pending())
	assert.Equal(t, "http://api.test"+stored, form.Display("http://api.test"))

	product, err := c.Products.Create(ctx, &client.ProductInput{
		Name: "Rotor", Description: "Gear driven", Image: stored, CategoryID: category.ID,
		Features: []string{"adjustable arc"},
	})
	require.NoError(t, err)
	assert.Equal(t, stored, product.Image)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Sprinklers", product.Category.Name)

	onDisk, err := os.ReadFile(filepath.Join(ts.UploadDir, strings.TrimPrefix(stored, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(onDisk))

	t.Run("Commit without a new file keeps the stored path", func(t *testing.T) {
		edit := c.NewFormSession("products", nil)
		edit.Open(product.Image)
		again, err := edit.Commit(ctx)
		require.NoError(t, err)
		assert.Equal(t, product.Image, again)
	})

	t.Run("Admin writes need the token", func(t *testing.T) {
		anon := client.New(ts.Server.URL + ts.API(""))
		_, err := anon.Upload(ctx, "products", "x.png", strings.NewReader("x"))
		assert.True(t, client.IsUnauthorized(err))
		err = anon.Products.Delete(ctx, product.ID)
		assert.True(t, client.IsUnauthorized(err))

		products, err := anon.ListProducts(ctx, client.ProductFilter{Category: "Sprinklers"})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestContactFlow(t *testing.T) {
	ts, c := newAdminClient(t)
	ctx := context.Background()

	public := client.New(ts.Server.URL + ts.API(""))
	sub, err := public.SubmitContact(ctx, &client.ContactInput{
		Name: "Dana", Email: "dana@example.com", Subject: "Pricing", Message: "Send the price list",
	})
	require.NoError(t, err)
	assert.Equal(t, client.ContactPending, sub.Status)

	updated, err := c.UpdateContactStatus(ctx, sub.ID, client.ContactInProgress)
	require.NoError(t, err)
	assert.Equal(t, client.ContactInProgress, updated.Status)

	_, err = c.UpdateContactStatus(ctx, sub.ID, "ARCHIVED")
	assert.True(t, client.IsValidation(err))

	list, err := c.ListContacts(ctx, client.ContactInProgress)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dana", list[0].Name)

	require.NoError(t, c.Contacts.Delete(ctx, sub.ID))
	_, err = c.Contacts.Get(ctx, sub.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestFormSessionPreviewLifetime(t *testing.T) {
	c := client.New("http://unused.invalid")

	t.Run("Replace releases the previous preview", func(t *testing.T) {
		form := c.NewFormSession("gallery", nil)
		first := form.Select("a.jpg", []byte("a"))
		second := form.Select("b.jpg", []byte("b"))

		assert.NotEqual(t, first, second)
		assert.Equal(t, []string{second}, form.Pending())
		assert.Equal(t, 1, form.Close())
		assert.Empty(t, form.Pending())
		assert.Equal(t, 0, form.Close())
	})

	t.Run("Preview shown by a saved record survives close", func(t *testing.T) {
		var shown string
		form := c.NewFormSession("gallery", func(ref string) bool { return ref == shown })
		shown = form.Select("a.jpg", []byte("a"))

		assert.Equal(t, 0, form.Close())
		assert.Equal(t, []string{shown}, form.Pending())

		shown = ""
		assert.Equal(t, 1, form.Close())
	})

	t.Run("Concurrent selects do not leak", func(t *testing.T) {
		form := c.NewFormSession("gallery", nil)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				form.Select("x.jpg", []byte("x"))
			}()
		}
		wg.Wait()
		form.Close()
		assert.Empty(t, form.Pending())
	})

	t.Run("Display honours the server upload prefix", func(t *testing.T) {
		media := client.New("http://unused.invalid", client.WithUploadPrefix("/media"))
		form := media.NewFormSession("gallery", nil)
		form.Open("/media/gallery/1-2-a.jpg")
		assert.Equal(t, "http://api.test/media/gallery/1-2-a.jpg", form.Display("http://api.test"))

		form.Open("/uploads/gallery/1-2-a.jpg")
		assert.Equal(t, "/uploads/gallery/1-2-a.jpg", form.Display("http://api.test"))
	})
}

func TestUploadErrors(t *testing.T) {
	ts, c := newAdminClient(t)
	ctx := context.Background()

	_, err := c.Upload(ctx, "../../etc", "a.png", strings.NewReader("x"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_UPLOAD_TYPE", apiErr.Code)

	big := strings.NewReader(strings.Repeat("z", testutil.MaxUploadSize+1))
	_, err = c.Upload(ctx, "big", "big.bin", big)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "FILE_TOO_LARGE", apiErr.Code)

	entries, err := os.ReadDir(ts.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
