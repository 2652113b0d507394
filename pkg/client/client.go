// Package client - Go-клиент REST API для админки.
//
// Токен берется из TokenSource на каждом запросе. Файлы загружаются отдельно
// (Upload), полученный путь записывается в поле сущности обычным Create/Update.
// Ошибка возвращается вызывающему как есть, повторов нет.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"irrigation_backend/pkg/mediaurl"
)

// TokenSource возвращает текущий токен администратора. Пустая строка - без токена.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken - неизменный токен
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// TokenStore хранит токен, полученный после Login
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *TokenStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUploadPrefix - префикс, под которым сервер отдает файлы (storage.url_prefix)
func WithUploadPrefix(prefix string) Option {
	return func(c *Client) { c.uploadPrefix = prefix }
}

type Client struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	uploadPrefix string

	Categories *Resource[Category, CategoryInput]
	Products   *Resource[Product, ProductInput]
	Gallery    *Resource[GalleryItem, GalleryItemInput]
	Downloads  *Resource[DownloadItem, DownloadItemInput]
	Contacts   *Resource[ContactSubmission, ContactInput]
	Partners   *Resource[Partner, PartnerInput]
	Features   *Resource[Feature, FeatureInput]
	Stats      *Resource[Stat, StatInput]
}

// New - baseURL включает base path API, например "http://localhost:4000/api"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		uploadPrefix: mediaurl.DefaultUploadPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Categories = &Resource[Category, CategoryInput]{c: c, path: "/categories"}
	c.Products = &Resource[Product, ProductInput]{c: c, path: "/products"}
	c.Gallery = &Resource[GalleryItem, GalleryItemInput]{c: c, path: "/gallery"}
	c.Downloads = &Resource[DownloadItem, DownloadItemInput]{c: c, path: "/downloads"}
	c.Contacts = &Resource[ContactSubmission, ContactInput]{c: c, path: "/contact"}
	c.Partners = &Resource[Partner, PartnerInput]{c: c, path: "/partners"}
	c.Features = &Resource[Feature, FeatureInput]{c: c, path: "/features"}
	c.Stats = &Resource[Stat, StatInput]{c: c, path: "/stats"}
	return c
}

// Login не сохраняет токен сам: это дело TokenSource
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// CategoryProducts - товары одной категории
func (c *Client) CategoryProducts(ctx context.Context, categoryID string) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(categoryID)+"/products", nil, nil, &out)
	return out, err
}

// ProductFilter - пустые поля не передаются
type ProductFilter struct {
	Category string
	Featured *bool
}

func (f ProductFilter) values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Featured != nil {
		q.Set("featured", fmt.Sprint(*f.Featured))
	}
	return q
}

func (c *Client) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	return c.Products.List(ctx, f.values())
}

// ByTag - фильтр галереи и документов
func ByTag(category string) url.Values {
	if category == "" {
		return nil
	}
	return url.Values{"category": {category}}
}

func (c *Client) ListContacts(ctx context.Context, status ContactStatus) ([]ContactSubmission, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	return c.Contacts.List(ctx, q)
}

// SubmitContact - публичная отправка заявки, токен не нужен
func (c *Client) SubmitContact(ctx context.Context, in *ContactInput) (*ContactSubmission, error) {
	return c.Contacts.Create(ctx, in)
}

func (c *Client) UpdateContactStatus(ctx context.Context, id string, status ContactStatus) (*ContactSubmission, error) {
	var out ContactSubmission
	body := map[string]ContactStatus{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/contact/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================
// Resource - CRUD одной сущности
// ============================================

type Resource[T any, In any] struct {
	c    *Client
	path string
}

func (r *Resource[T, In]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, In]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in *In) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) Update(ctx context.Context, id string, in *In) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.item(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Resource[T, In]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// ============================================
// Транспорт
// ============================================

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	return c.send(ctx, method, c.endpoint(path, query), body, "application/json", out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, data)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
