package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and initialises the shared HMAC
// hasher pool used for transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeBearerToken(resp)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeBearerToken(resp)
}

// Commit implements [ServerAdapter]. It computes a transport integrity hash
// over the batch items, sets req.Length, and POSTs the batch to
// POST /api/records/commit. Requires a valid bearer token.
func (h *httpServerAdapter) Commit(ctx context.Context, req models.CommitRequest) (models.CommitResponse, error) {
	req.Hash = computeTransportHash(struct {
		Saves   []models.RecordSave   `json:"saves"`
		Deletes []models.RecordDelete `json:"deletes"`
	}{req.Saves, req.Deletes}, h.hashKey)
	req.Length = req.Items()

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/records/commit")
	if err != nil {
		return models.CommitResponse{}, fmt.Errorf("commit request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CommitResponse{}, err
	}

	var result models.CommitResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.CommitResponse{}, fmt.Errorf("decode commit response: %w", err)
	}

	return result, nil
}

// FetchChanges implements [ServerAdapter]. It POSTs the cursor to
// POST /api/changes/fetch and decodes one feed page. Requires a valid bearer
// token. HTTP 410 surfaces as [ErrTokenExpired].
func (h *httpServerAdapter) FetchChanges(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/changes/fetch")
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("fetch changes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangesResponse{}, err
	}

	var page models.ChangesResponse
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.ChangesResponse{}, fmt.Errorf("decode changes response: %w", err)
	}

	return page, nil
}

// CreateZone implements [ServerAdapter]. POST /api/zones/.
func (h *httpServerAdapter) CreateZone(ctx context.Context, name string) (models.Zone, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.Zone{Name: name}).
		Post("/api/zones/")
	if err != nil {
		return models.Zone{}, fmt.Errorf("create zone request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Zone{}, err
	}

	var zone models.Zone
	if err = json.Unmarshal(resp.Body(), &zone); err != nil {
		return models.Zone{}, fmt.Errorf("decode create zone response: %w", err)
	}

	return zone, nil
}

// ListZones implements [ServerAdapter]. GET /api/zones/.
func (h *httpServerAdapter) ListZones(ctx context.Context) ([]models.Zone, error) {
	resp, err := h.authedRequest(ctx).Get("/api/zones/")
	if err != nil {
		return nil, fmt.Errorf("list zones request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var zones models.ZonesResponse
	if err = json.Unmarshal(resp.Body(), &zones); err != nil {
		return nil, fmt.Errorf("decode zones response: %w", err)
	}

	return zones.Zones, nil
}

// DeleteZone implements [ServerAdapter]. DELETE /api/zones/{zone}.
func (h *httpServerAdapter) DeleteZone(ctx context.Context, name string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/zones/" + url.PathEscape(name))
	if err != nil {
		return fmt.Errorf("delete zone request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter]. GET /api/version/.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) storeBearerToken(resp *resty.Response) (models.Token, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id from token: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func computeTransportHash(v any, key string) string {
	if key == "" {
		return ""
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(utils.Hash(payload))
}
