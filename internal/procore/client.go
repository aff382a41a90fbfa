package procore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"preconstruction/models"
)

const (
	companyHeader   = "Procore-Company-Id"
	requestTimeout  = 30 * time.Second
	maxErrorBody    = 4096
	bidderFanout    = 4
	defaultPageSize = 10
)

var (
	ErrMissingToken   = errors.New("procore access token is missing")
	ErrMissingCompany = errors.New("procore company id is not configured")
)

// UpstreamError: ответ Procore с кодом вне 2xx
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("procore responded with status %d", e.StatusCode)
}

// Client: тонкий клиент к Procore REST API
type Client struct {
	baseURL   string
	companyID string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient. rps ограничивает исходящие запросы, burst равен одному запросу.
func NewClient(baseURL, companyID string, rps float64) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		companyID: companyID,
		http:      &http.Client{Timeout: requestTimeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// CompanyID возвращает настроенный PROCORE_COMPANY_ID
func (c *Client) CompanyID() string {
	return c.companyID
}

// Request выполняет авторизованный запрос и декодирует JSON-ответ в out (если out != nil)
func (c *Client) Request(ctx context.Context, token, method, path string, query url.Values, body, out any) (http.Header, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.companyID != "" {
		req.Header.Set(companyHeader, c.companyID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.Header, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.Header, nil
}

// ListPage запрашивает список и приводит массив + заголовки пагинации к конверту {items, meta}
func (c *Client) ListPage(ctx context.Context, token, path string, query url.Values) (models.Page[json.RawMessage], error) {
	var items []json.RawMessage
	header, err := c.Request(ctx, token, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return models.Page[json.RawMessage]{}, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	page := positiveInt(query.Get("page"), 1)
	perPage := positiveInt(header.Get("Per-Page"), positiveInt(query.Get("per_page"), defaultPageSize))
	total := (page-1)*perPage + len(items)
	if v, err := strconv.Atoi(header.Get("Total")); err == nil && v >= 0 {
		total = v
	}

	return models.Page[json.RawMessage]{
		Items: items,
		Meta: models.Meta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: int(math.Max(1, math.Ceil(float64(total)/float64(perPage)))),
		},
	}, nil
}

// AddBidders создаёт по одной заявке на каждого подрядчика.
// Первая ошибка отменяет оставшиеся запросы.
func (c *Client) AddBidders(ctx context.Context, token string, projectID, bidPackageID int, vendorIDs []int, notes string) error {
	path := fmt.Sprintf("/rest/v1.0/projects/%d/bid_packages/%d/bids", projectID, bidPackageID)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bidderFanout)
	for _, vendorID := range vendorIDs {
		vendorID := vendorID
		body := map[string]any{
			"bid": map[string]any{
				"vendor_id":       vendorID,
				"bidder_comments": notes,
			},
		}
		g.Go(func() error {
			_, err := c.Request(gctx, token, http.MethodPost, path, nil, body, nil)
			if err != nil {
				return fmt.Errorf("create bid for vendor %d: %w", vendorID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// CreateUpload запрашивает у Procore билет на прямую загрузку
func (c *Client) CreateUpload(ctx context.Context, token string, projectID *int, filename, contentType string) (models.Upload, error) {
	var path string
	switch {
	case projectID != nil:
		path = fmt.Sprintf("/rest/v1.0/projects/%d/uploads", *projectID)
	case c.companyID != "":
		path = fmt.Sprintf("/rest/v1.0/companies/%s/uploads", url.PathEscape(c.companyID))
	default:
		return models.Upload{}, ErrMissingCompany
	}
	body := map[string]string{
		"response_filename":     filename,
		"response_content_type": contentType,
	}
	var up models.Upload
	if _, err := c.Request(ctx, token, http.MethodPost, path, nil, body, &up); err != nil {
		return models.Upload{}, err
	}
	return up, nil
}

func positiveInt(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return fallback
}
