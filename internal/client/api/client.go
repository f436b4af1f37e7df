package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/client/session"
)

// ErrSessionExpired se devuelve cuando el servidor responde 401: la sesión
// local se limpia y el usuario debe volver a hacer login.
var ErrSessionExpired = errors.New("sesión expirada, vuelve a iniciar sesión")

// ErrNoSession indica que no hay sesión guardada para una operación protegida.
var ErrNoSession = errors.New("no hay sesión activa, usa login primero")

// APIError error de negocio devuelto por el servidor ({code, message}).
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("error del servidor (HTTP %d)", e.StatusCode)
}

// Client cliente HTTP del API. Timeout fijo por petición; el token se toma
// de la sesión persistida y un 401 la invalida.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
}

// New construye el cliente. timeout acota cada petición completa.
func New(baseURL string, timeout time.Duration, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

// ── Auth ────────────────────────────────────────────────────────────────

// Register crea la cuenta y persiste la sesión resultante.
func (c *Client) Register(ctx context.Context, username, password string) (*session.Session, error) {
	return c.authenticate(ctx, "/api/users/register", username, password)
}

// Login autentica y persiste la sesión resultante.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Session, error) {
	return c.authenticate(ctx, "/api/users/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*session.Session, error) {
	var resp dto.AuthResponse
	body := dto.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, path, false, body, &resp); err != nil {
		return nil, err
	}
	sess := &session.Session{UserID: resp.ID, Username: resp.Username, Token: resp.Token}
	if err := c.store.Save(sess); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return sess, nil
}

// Logout limpia la sesión local. No hay invalidación en el servidor.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// ── Categorías ──────────────────────────────────────────────────────────

func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	err := c.do(ctx, http.MethodGet, "/api/categories/", true, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/api/categories/", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), true, nil, nil)
}

// ── Productos ───────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context) ([]dto.ItemResponse, error) {
	var out []dto.ItemResponse
	err := c.do(ctx, http.MethodGet, "/api/products/", true, nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.do(ctx, http.MethodPost, "/api/products/", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), true, nil, nil)
}

// AppendQuantity suma delta a la cantidad del producto existente.
func (c *Client) AppendQuantity(ctx context.Context, id string, delta int) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	in := dto.AppendQuantityRequest{Quantity: delta}
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id)+"/append", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Expiring consulta los productos que vencen dentro de days días.
func (c *Client) Expiring(ctx context.Context, days int) ([]dto.ItemResponse, error) {
	var out []dto.ItemResponse
	path := fmt.Sprintf("/api/products/expiring/%d", days)
	err := c.do(ctx, http.MethodGet, path, true, nil, &out)
	return out, err
}

// CheckDuplicate pregunta si ya existe un producto con ese SKU venciendo en
// el mismo año y mes que expiry.
func (c *Client) CheckDuplicate(ctx context.Context, sku, expiry string) (*dto.DuplicateCheckResponse, error) {
	var out dto.DuplicateCheckResponse
	path := "/api/products/check?sku=" + url.QueryEscape(sku) + "&expiry=" + url.QueryEscape(expiry)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Transporte ──────────────────────────────────────────────────────────

// do arma la petición, adjunta el Bearer si la ruta es protegida y decodifica
// la respuesta. Un 401 limpia la sesión persistida antes de devolver
// ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		sess, err := c.store.Load()
		if err != nil {
			return err
		}
		if sess == nil {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("petición al servidor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && authed {
		_ = c.store.Clear()
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code = e.Code
			apiErr.Message = e.Message
		}
		return apiErr
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decodificar respuesta: %w", err)
		}
	}
	return nil
}
