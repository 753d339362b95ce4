package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/exam-api/internal/config"
)

// IdentityService интегрируется с admin API внешнего identity-провайдера:
// получает bearer-токен по password grant и регистрирует демо-пользователя.
// Токен не кешируется - свежий запрос на каждый вызов. Ретраев нет
type IdentityService struct {
	cfg        config.IdentityConfig
	httpClient *http.Client
}

// NewIdentityService создает новый сервис интеграции с identity-провайдером
func NewIdentityService(cfg config.IdentityConfig) *IdentityService {
	return &IdentityService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// tokenResponse - ответ token endpoint'а
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// credentialPayload - пароль демо-пользователя в формате admin API
type credentialPayload struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// userPayload - тело запроса на создание пользователя в admin API
type userPayload struct {
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Enabled     bool                `json:"enabled"`
	Credentials []credentialPayload `json:"credentials"`
}

// RegisterDemoUser получает токен и создает демо-пользователя,
// описанного в конфигурации. Ошибки внешних вызовов возвращаются как есть
func (s *IdentityService) RegisterDemoUser(ctx context.Context) error {
	token, err := s.fetchToken(ctx)
	if err != nil {
		return err
	}

	return s.createUser(ctx, token)
}

// fetchToken выполняет password grant против token endpoint'а
func (s *IdentityService) fetchToken(ctx context.Context) (string, error) {
	values := url.Values{}
	values.Set("grant_type", "password")
	values.Set("client_id", s.cfg.ClientID)
	values.Set("username", s.cfg.Username)
	values.Set("password", s.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("token endpoint status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("access_token not returned by token endpoint")
	}

	return payload.AccessToken, nil
}

// createUser регистрирует демо-пользователя через admin API
func (s *IdentityService) createUser(ctx context.Context, token string) error {
	user := userPayload{
		Username:  s.cfg.Demo.Username,
		Email:     s.cfg.Demo.Email,
		FirstName: s.cfg.Demo.FirstName,
		LastName:  s.cfg.Demo.LastName,
		Enabled:   true,
		Credentials: []credentialPayload{
			{Type: "password", Value: s.cfg.Demo.Password, Temporary: false},
		},
	}

	body, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.UsersURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("user registration request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("admin users endpoint status=%d body=%s", resp.StatusCode, string(respBody))
	}

	return nil
}
