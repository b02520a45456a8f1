package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guesscode/guesscode-cli/internal/client/bus"
	"github.com/guesscode/guesscode-cli/internal/client/models"
	"github.com/guesscode/guesscode-cli/internal/client/tokenstore"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

const (
	pathLogin       = "/api/auth/login"
	pathRegister    = "/api/auth/register"
	pathProfileInfo = "/api/profile-info"
	pathKataSearch  = "/api/kata-search"
	pathLeaderboard = "/api/leaderboard"

	// Responses larger than this are not expected from any endpoint we call.
	maxBodySize = 4 << 20
)

// HTTPClient implements Client over net/http.
//
// A 401 from any endpoint except profile-info clears the stored
// credential and publishes exactly one forced-logout event. Profile-info
// is exempt so a transient failure during hydration cannot start a logout
// loop; the session controller decides what a profile-info 401 means.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	bus     *bus.Bus
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens tokenstore.Store, b *bus.Bus, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		bus:     b,
		log:     log.With("component", "api"),
	}
}

// do executes one request against path and decodes a 2xx body into out
// (when out is non-nil). Network failures come back wrapped; HTTP
// failures come back as *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if token, err := c.tokens.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if userID, err := c.tokens.UserID(ctx); err == nil && userID != 0 {
		req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(ctx, path, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}

func (c *HTTPClient) classify(ctx context.Context, path string, status int, body []byte) error {
	apiErr := &Error{Status: status, Endpoint: path}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
	}

	if status == http.StatusUnauthorized && !strings.HasPrefix(path, pathProfileInfo) {
		c.invalidate(ctx, path)
	}

	return apiErr
}

// invalidate clears the credential and broadcasts the forced logout. The
// session controller reacts to the broadcast; nothing here calls it
// directly.
func (c *HTTPClient) invalidate(ctx context.Context, path string) {
	c.log.Warn(ctx, "credential rejected, invalidating session", "endpoint", path)
	if err := c.tokens.RemoveTokenData(ctx); err != nil {
		c.log.Error(ctx, "failed to clear credential", "error", err)
	}
	c.bus.ForceLogout()
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, pathLogin, loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) error {
	return c.do(ctx, http.MethodPost, pathRegister, registerRequest{Email: email, Username: username, Password: password}, nil)
}

func (c *HTTPClient) ProfileInfo(ctx context.Context, userID int64) (*models.Profile, error) {
	var dto profileInfoDTO
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", pathProfileInfo, userID), nil, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}

func (c *HTTPClient) SearchKatas(ctx context.Context) ([]models.Kata, error) {
	var dtos []kataDTO
	if err := c.do(ctx, http.MethodGet, pathKataSearch, nil, &dtos); err != nil {
		return nil, err
	}
	katas := make([]models.Kata, 0, len(dtos))
	for i := range dtos {
		katas = append(katas, dtos[i].toModel())
	}
	return katas, nil
}

func (c *HTTPClient) GetKata(ctx context.Context, kataID int64) (*models.Kata, error) {
	var dto kataDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", pathKataSearch, kataID), nil, &dto); err != nil {
		return nil, err
	}
	kata := dto.toModel()
	return &kata, nil
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	var dtos []leaderboardPositionDTO
	if err := c.do(ctx, http.MethodGet, pathLeaderboard, nil, &dtos); err != nil {
		return nil, err
	}
	rows := make([]models.LeaderboardRow, 0, len(dtos))
	for i := range dtos {
		rows = append(rows, dtos[i].toModel())
	}
	return rows, nil
}
