package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"irrigation_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productLike struct {
	Name     string   `json:"name" validate:"required,notblank,max=10"`
	Image    string   `json:"image" validate:"required,mediaref"`
	Features []string `json:"features" validate:"omitempty,dive,max=5"`
	Order    *int     `json:"order" validate:"required,min=0"`
	Hidden   string   `json:"-" validate:"max=1"`
}

type contactLike struct {
	Email  string               `json:"email" validate:"required,email"`
	Status models.ContactStatus `json:"status" validate:"required,contactstatus"`
}

func intPtr(v int) *int { return &v }

func TestValidateCollectsEveryField(t *testing.T) {
	v := New()

	err := v.Validate(&productLike{
		Name:     "   ",
		Image:    "blob:http://localhost/abc",
		Features: []string{"ok", "far too long"},
		Order:    intPtr(-1),
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"name", "image", "features[1]", "order"}, vErr.Fields())

	reasons := map[string]string{}
	for _, fe := range vErr.Errors {
		reasons[fe.Field] = fe.Reason
		assert.NotEmpty(t, fe.Message)
	}
	assert.Equal(t, "notblank", reasons["name"])
	assert.Equal(t, "mediaref", reasons["image"])
	assert.Equal(t, "max", reasons["features[1]"])
	assert.Equal(t, "min", reasons["order"])
}

func TestValidateRequired(t *testing.T) {
	err := New().Validate(&productLike{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"name", "image", "order"}, vErr.Fields())
	for _, fe := range vErr.Errors {
		assert.Equal(t, "required", fe.Reason)
	}
}

func TestValidateOrderZeroIsAllowed(t *testing.T) {
	err := New().Validate(&productLike{Name: "Drip", Image: "/uploads/products/1-2-a.png", Order: intPtr(0)})
	assert.NoError(t, err)
}

func TestMediaRef(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"/uploads/products/1700000000000-42-pump.png", true},
		{"https://cdn.example.com/a.png", true},
		{"http://example.com/a.png", true},
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"//cdn.example.com/a.png", true},
		{"blob:http://localhost:3000/9b1c", false},
		{"/etc/passwd", false},
		{"uploads/products/a.png", false},
		{"/uploads/", false},
		{"javascript:alert(1)", false},
		{"https://", false},
	}

	v := New()
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			err := v.Validate(&productLike{Name: "x", Image: tc.value, Order: intPtr(1)})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, []string{"image"}, vErr.Fields())
			}
		})
	}
}

func TestMediaRefCustomPrefix(t *testing.T) {
	v := NewWithOptions(Options{UploadPrefix: "/media"})

	assert.NoError(t, v.Validate(&productLike{Name: "x", Image: "/media/gallery/a.jpg", Order: intPtr(1)}))
	assert.Error(t, v.Validate(&productLike{Name: "x", Image: "/uploads/gallery/a.jpg", Order: intPtr(1)}))
}

func TestContactStatus(t *testing.T) {
	v := New()

	for _, s := range models.ContactStatuses {
		assert.NoError(t, v.Validate(&contactLike{Email: "a@b.co", Status: s}), s)
	}

	err := v.Validate(&contactLike{Email: "not-an-email", Status: "DONE"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"email", "status"}, vErr.Fields())
}

func TestFromDecodeError(t *testing.T) {
	decode := func(body string) (*productLike, error) {
		var dst productLike
		return &dst, json.Unmarshal([]byte(body), &dst)
	}

	t.Run("Every mistyped field is reported", func(t *testing.T) {
		body := `{"name":"x","order":"first","features":"x"}`
		dst, err := decode(body)
		require.Error(t, err)

		vErr, ok := FromDecodeError(err, []byte(body), dst)
		require.True(t, ok)
		require.Len(t, vErr.Errors, 2)
		assert.Equal(t, FieldError{Field: "features", Reason: "type", Message: "Expected array of strings, got string"}, vErr.Errors[0])
		assert.Equal(t, FieldError{Field: "order", Reason: "type", Message: "Expected integer, got string"}, vErr.Errors[1])
	})

	t.Run("Without the body only the first error is known", func(t *testing.T) {
		dst, err := decode(`{"order":1.5}`)
		vErr, ok := FromDecodeError(err, nil, dst)
		require.True(t, ok)
		assert.Equal(t, []FieldError{{Field: "order", Reason: "type", Message: "Expected integer, got number 1.5"}}, vErr.Errors)
	})

	t.Run("Wrong top-level value", func(t *testing.T) {
		dst, err := decode(`[1]`)
		vErr, ok := FromDecodeError(err, []byte(`[1]`), dst)
		require.True(t, ok)
		assert.Equal(t, "body", vErr.Errors[0].Field)
		assert.Equal(t, "Expected object, got array", vErr.Errors[0].Message)
	})

	t.Run("Syntax errors are not field errors", func(t *testing.T) {
		dst, err := decode(`{`)
		_, ok := FromDecodeError(err, []byte(`{`), dst)
		assert.False(t, ok)
	})
}

func TestMergeKeepsTypeErrors(t *testing.T) {
	body := `{"image":"blob:http://admin/1","order":"first"}`
	var dst productLike
	decodeErr := json.Unmarshal([]byte(body), &dst)

	vErr, ok := FromDecodeError(decodeErr, []byte(body), &dst)
	require.True(t, ok)
	vErr.Merge(New().Validate(&dst))

	got := map[string]string{}
	for _, fe := range vErr.Errors {
		got[fe.Field] = fe.Reason
	}
	assert.Equal(t, map[string]string{"order": "type", "name": "required", "image": "mediaref"}, got)

	assert.Same(t, vErr, vErr.Merge(errors.New("not a validation error")))
}

func TestJSONTypeName(t *testing.T) {
	var n *int
	cases := map[string]any{
		"boolean":                    true,
		"integer":                    n,
		"number":                     1.5,
		"string":                     "",
		"array of strings":           []string{},
		"array of arrays of strings": [][]string{},
		"object":                     struct{}{},
	}
	for want, v := range cases {
		assert.Equal(t, want, jsonTypeName(reflect.TypeOf(v)), want)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Single("categoryId", "exists", "Category does not exist")
	assert.True(t, strings.Contains(err.Error(), "categoryId"))
	assert.Equal(t, []string{"categoryId"}, err.Fields())
}
