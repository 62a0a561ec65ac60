package tourcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога туров (GET /tours)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListTours получает все туры каталога
func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	url := fmt.Sprintf("%s/tours", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var tours []Tour
	if err := json.NewDecoder(resp.Body).Decode(&tours); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := make([]domain.Tour, 0, len(tours))
	for i := range tours {
		result = append(result, tours[i].ToDomain())
	}

	return result, nil
}

// GetTour получает тур по ID
// API каталога отдает только список, поэтому тур ищется в нем
func (c *Client) GetTour(ctx context.Context, tourID int64) (*domain.Tour, error) {
	tours, err := c.ListTours(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tours {
		if tours[i].ID == tourID {
			return &tours[i], nil
		}
	}

	c.log.Warn("Tour id=%d not found in catalog of %d tours", tourID, len(tours))
	return nil, ErrTourNotFound
}
