package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	providerName = "paypal"

	intentCapture    = "CAPTURE"
	statusCompleted  = "COMPLETED"
	tokenExpiryDelta = 30 * time.Second
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к PayPal
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	SDKURL       string
	Currency     string
	Timeout      time.Duration
}

// Client клиент PayPal REST API
// Загрузка SDK = получение OAuth токена, отрисовка = создание заказа, подтверждение = capture
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
	now        func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
		now: time.Now,
	}
}

// Name имя провайдера
func (c *Client) Name() string {
	return providerName
}

// Signature идентифицирует SDK по URL с параметрами конфигурации
func (c *Client) Signature() string {
	return c.scriptURL()
}

// IsReady проверяет, что токен получен и еще не истек
func (c *Client) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token != "" && c.now().Before(c.expiresAt)
}

// Load получает OAuth токен (client credentials)
func (c *Client) Load(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	endpoint := fmt.Sprintf("%s/v1/oauth2/token", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, errorMessage(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: failed to decode token: %v", ErrInvalidResponse, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	c.mu.Lock()
	c.token = token.AccessToken
	c.expiresAt = c.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryDelta)
	c.mu.Unlock()

	c.log.Info("PayPal SDK loaded: token expires in %ds", token.ExpiresIn)
	return nil
}

// Teardown забывает токен
func (c *Client) Teardown() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

// RenderInto создает заказ PayPal и возвращает описание виджета
func (c *Client) RenderInto(ctx context.Context, mountID string, checkout domain.Checkout) (*domain.Widget, error) {
	body := createOrderRequest{
		Intent: intentCapture,
		PurchaseUnits: []purchaseUnit{
			{
				ReferenceID: checkout.AttemptID,
				Description: checkout.Description,
				CustomID:    checkout.SessionID,
				Amount: amount{
					CurrencyCode: checkout.Currency,
					Value:        formatAmount(checkout.Amount),
				},
			},
		},
	}

	var order orderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", body, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id is empty", ErrInvalidResponse)
	}

	return &domain.Widget{
		Provider:  providerName,
		Method:    checkout.Method,
		MountID:   mountID,
		ScriptURL: c.scriptURL(),
		Reference: order.ID,
		Amount:    checkout.Amount,
		Currency:  checkout.Currency,
		AttemptID: checkout.AttemptID,
	}, nil
}

// Capture списывает деньги по одобренному заказу
func (c *Client) Capture(ctx context.Context, widget *domain.Widget) (*domain.PaymentResult, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(widget.Reference))

	// одобренный заказ живет дольше токена: просроченный или сброшенный токен получаем заново
	if !c.IsReady() {
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
	}

	var captured captureResponse
	err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, &captured)
	if errors.Is(err, ErrUnauthorized) {
		c.log.Warn("PayPal token rejected on capture of order %s, requesting a new one", widget.Reference)
		if err = c.Load(ctx); err == nil {
			err = c.doJSON(ctx, http.MethodPost, path, struct{}{}, &captured)
		}
	}
	if err != nil {
		return nil, err
	}

	if captured.Status != statusCompleted {
		return nil, fmt.Errorf("%w: order %s status %s", ErrCaptureFailed, widget.Reference, captured.Status)
	}

	var first *capture
	for i := range captured.PurchaseUnits {
		if len(captured.PurchaseUnits[i].Payments.Captures) > 0 {
			first = &captured.PurchaseUnits[i].Payments.Captures[0]
			break
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%w: order %s has no captures", ErrInvalidResponse, widget.Reference)
	}

	value, err := strconv.ParseFloat(first.Amount.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid captured amount %q", ErrInvalidResponse, first.Amount.Value)
	}

	name := strings.TrimSpace(captured.Payer.Name.GivenName + " " + captured.Payer.Name.Surname)

	c.log.Info("PayPal order %s captured: capture_id=%s, amount=%s %s", widget.Reference, first.ID, first.Amount.Value, first.Amount.CurrencyCode)

	return &domain.PaymentResult{
		Provider:      providerName,
		Method:        widget.Method,
		TransactionID: first.ID,
		PayerEmail:    captured.Payer.EmailAddress,
		PayerName:     name,
		Amount:        value,
		Currency:      first.Amount.CurrencyCode,
	}, nil
}

// Discard для PayPal ничего не делает: неподтвержденный заказ истекает сам
func (c *Client) Discard(ctx context.Context, widget *domain.Widget) error {
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return ErrNotLoaded
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.Teardown()
		return fmt.Errorf("%w: token rejected", ErrUnauthorized)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s", ErrCaptureFailed, errorMessage(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) scriptURL() string {
	q := url.Values{}
	q.Set("client-id", c.cfg.ClientID)
	q.Set("currency", c.cfg.Currency)
	q.Set("components", "buttons")
	q.Set("enable-funding", "card")

	return c.cfg.SDKURL + "?" + q.Encode()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		switch {
		case er.Message != "":
			return er.Message
		case er.Desc != "":
			return er.Desc
		case er.Error != "":
			return er.Error
		}
	}
	return strings.TrimSpace(string(body))
}
