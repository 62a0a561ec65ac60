package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент API приема бронирований (POST /bookings)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateBooking отправляет заявку на бронирование
func (c *Client) CreateBooking(ctx context.Context, body *CreateBookingRequest) (*Booking, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/bookings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, extractMessage(raw))
	}

	var booking Booking
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &booking); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}

	c.log.Info("Booking accepted by ingestion API: id=%d, tour_id=%d", booking.ID, body.TourID)
	return &booking, nil
}

// extractMessage достает человекочитаемое сообщение из тела ошибки
func extractMessage(raw []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		if er.Error != "" {
			return er.Error
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "no message"
	}
	return msg
}
