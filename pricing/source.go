package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IPriceSource 外部价格服务
type IPriceSource interface {
	GetPrice(ctx context.Context, entityID string) (float64, error)
}

// HTTPPriceSourceConfig HTTP 价格服务配置
type HTTPPriceSourceConfig struct {
	// BaseURL 服务地址，请求路径为 {BaseURL}/events/{id}/price
	BaseURL string
	// Timeout 单次请求超时，默认 5s；Client 非空时忽略
	Timeout time.Duration
	Client  *http.Client
}

// HTTPPriceSource 通过 HTTP 获取价格，响应体为 {"price": <number>}
type HTTPPriceSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPPriceSource(cfg HTTPPriceSourceConfig) *HTTPPriceSource {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPPriceSource{baseURL: strings.TrimRight(cfg.BaseURL, "/"), client: client}
}

type priceResponse struct {
	Price *float64 `json:"price"`
}

func (s *HTTPPriceSource) GetPrice(ctx context.Context, entityID string) (float64, error) {
	endpoint := s.baseURL + "/events/" + url.PathEscape(entityID) + "/price"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("price service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode price response: %w", err)
	}
	if payload.Price == nil {
		return 0, fmt.Errorf("price service response has no price")
	}
	return *payload.Price, nil
}

var _ IPriceSource = (*HTTPPriceSource)(nil)
