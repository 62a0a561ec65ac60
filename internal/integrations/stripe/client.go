package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	providerName = "stripe"

	statusSucceeded = "succeeded"
	statusCanceled  = "canceled"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к Stripe
type Config struct {
	PublishableKey string
	SecretKey      string
	BaseURL        string
	SDKURL         string
	Timeout        time.Duration
}

// Client клиент Stripe REST API (form-encoded запросы)
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger

	loaded atomic.Bool
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Name имя провайдера
func (c *Client) Name() string {
	return providerName
}

// Signature идентифицирует SDK по URL и публичному ключу
func (c *Client) Signature() string {
	return c.cfg.SDKURL + "#" + c.cfg.PublishableKey
}

// IsReady проверяет, что ключ уже проверен
func (c *Client) IsReady() bool {
	return c.loaded.Load()
}

// Load проверяет секретный ключ запросом баланса
func (c *Client) Load(ctx context.Context) error {
	var b balance
	if err := c.do(ctx, http.MethodGet, "/v1/balance", nil, &b); err != nil {
		return err
	}

	c.loaded.Store(true)
	c.log.Info("Stripe SDK loaded: livemode=%t", b.Livemode)
	return nil
}

// Teardown сбрасывает признак загрузки
func (c *Client) Teardown() {
	c.loaded.Store(false)
}

// RenderInto создает PaymentIntent и возвращает описание виджета с client secret
func (c *Client) RenderInto(ctx context.Context, mountID string, checkout domain.Checkout) (*domain.Widget, error) {
	if !c.IsReady() {
		return nil, ErrNotLoaded
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(checkout.AmountCents, 10))
	form.Set("currency", strings.ToLower(checkout.Currency))
	form.Set("description", checkout.Description)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[session_id]", checkout.SessionID)
	form.Set("metadata[attempt_id]", checkout.AttemptID)

	var intent paymentIntent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	if intent.ID == "" || intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: payment intent without id or client secret", ErrInvalidResponse)
	}

	return &domain.Widget{
		Provider:  providerName,
		Method:    checkout.Method,
		MountID:   mountID,
		ScriptURL: c.cfg.SDKURL,
		Reference: intent.ID,
		ClientKey: intent.ClientSecret,
		Amount:    checkout.Amount,
		Currency:  checkout.Currency,
		AttemptID: checkout.AttemptID,
	}, nil
}

// Capture проверяет, что страница подтвердила PaymentIntent и он успешен
func (c *Client) Capture(ctx context.Context, widget *domain.Widget) (*domain.PaymentResult, error) {
	var intent paymentIntent
	path := "/v1/payment_intents/" + url.PathEscape(widget.Reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &intent); err != nil {
		return nil, err
	}

	if intent.Status != statusSucceeded {
		return nil, fmt.Errorf("%w: intent %s status %s", ErrPaymentNotSucceeded, intent.ID, intent.Status)
	}

	c.log.Info("Stripe payment intent %s succeeded: amount=%d %s", intent.ID, intent.Amount, intent.Currency)

	return &domain.PaymentResult{
		Provider:      providerName,
		Method:        widget.Method,
		TransactionID: intent.ID,
		PayerEmail:    intent.ReceiptEmail,
		Amount:        float64(intent.Amount) / 100,
		Currency:      strings.ToUpper(intent.Currency),
	}, nil
}

// Discard отменяет неоплаченный PaymentIntent
func (c *Client) Discard(ctx context.Context, widget *domain.Widget) error {
	var intent paymentIntent
	path := fmt.Sprintf("/v1/payment_intents/%s/cancel", url.PathEscape(widget.Reference))
	if err := c.do(ctx, http.MethodPost, path, url.Values{}, &intent); err != nil {
		return err
	}

	if intent.Status != statusCanceled {
		c.log.Warn("Stripe payment intent %s not canceled: status=%s", widget.Reference, intent.Status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.SetBasicAuth(c.cfg.SecretKey, "")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var er errorResponse
		_ = json.Unmarshal(raw, &er)

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			c.Teardown()
			return fmt.Errorf("%w: %s", ErrUnauthorized, er.Error.Message)
		case resp.StatusCode == http.StatusPaymentRequired || er.Error.Type == "card_error":
			return fmt.Errorf("%w: %s", ErrCardDeclined, er.Error.Message)
		default:
			return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, er.Error.Message)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
