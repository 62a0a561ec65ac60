package handlers

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/session/models"
)

// TourResponse тур в ответах API
type TourResponse struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	Location          string   `json:"location"`
	Rating            float64  `json:"rating"`
	Image             string   `json:"image"`
	MaxGuests         int      `json:"maxGuests"`
	Highlights        []string `json:"highlights"`
	Duration          string   `json:"duration,omitempty"`
	DepartureTime     string   `json:"departureTime,omitempty"`
	RouteDescription  string   `json:"routeDescription,omitempty"`
	StartLocationLink string   `json:"startLocationLink,omitempty"`
}

// QuoteResponse сумма к оплате
type QuoteResponse struct {
	PricePerPerson float64 `json:"pricePerPerson"`
	Guests         int     `json:"guests"`
	Legs           int     `json:"legs"`
	Subtotal       float64 `json:"subtotal"`
	Taxes          float64 `json:"taxes"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency"`
}

// NoticeResponse уведомление о восстановлении сессии
type NoticeResponse struct {
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismissAfterMs"`
}

// SessionResponse состояние сессии бронирования
type SessionResponse struct {
	SessionID  string              `json:"sessionId"`
	AttemptID  string              `json:"attemptId"`
	Phase      string              `json:"phase"`
	Draft      domain.BookingDraft `json:"draft"`
	Tour       TourResponse        `json:"tour"`
	Quote      QuoteResponse       `json:"quote"`
	CanProceed bool                `json:"canProceed"`
	Blocker    string              `json:"blocker,omitempty"`
	Restored   bool                `json:"restored"`
	Notice     *NoticeResponse     `json:"notice,omitempty"`
	UpdatedAt  string              `json:"updatedAt"`
}

// WidgetResponse описание платежного виджета для страницы
type WidgetResponse struct {
	Provider  string  `json:"provider"`
	Method    string  `json:"method"`
	MountID   string  `json:"mountId"`
	ScriptURL string  `json:"scriptUrl"`
	Reference string  `json:"reference"`
	ClientKey string  `json:"clientKey,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	AttemptID string  `json:"attemptId"`
}

// FromTour конвертирует тур в ответ
func FromTour(t *domain.Tour) TourResponse {
	highlights := t.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return TourResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Price:             t.Price,
		Location:          t.Location,
		Rating:            t.Rating,
		Image:             t.Image,
		MaxGuests:         t.MaxGuests,
		Highlights:        highlights,
		Duration:          t.Duration,
		DepartureTime:     t.DepartureTime,
		RouteDescription:  t.RouteDescription,
		StartLocationLink: t.StartLocationLink,
	}
}

func FromQuote(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		PricePerPerson: q.PricePerPerson,
		Guests:         q.Guests,
		Legs:           q.Legs,
		Subtotal:       q.Subtotal,
		Taxes:          q.Taxes,
		Total:          q.Total,
		Currency:       q.Currency,
	}
}

func FromWidget(w *domain.Widget) WidgetResponse {
	return WidgetResponse{
		Provider:  w.Provider,
		Method:    string(w.Method),
		MountID:   w.MountID,
		ScriptURL: w.ScriptURL,
		Reference: w.Reference,
		ClientKey: w.ClientKey,
		Amount:    w.Amount,
		Currency:  w.Currency,
		AttemptID: w.AttemptID,
	}
}

// FromSessionView конвертирует представление сессии в ответ
func FromSessionView(v *models.View) *SessionResponse {
	resp := &SessionResponse{
		SessionID:  v.SessionID,
		AttemptID:  v.AttemptID,
		Phase:      string(v.Phase),
		Draft:      v.Draft,
		Tour:       FromTour(&v.Tour),
		Quote:      FromQuote(v.Quote),
		CanProceed: v.CanProceed,
		Blocker:    v.Blocker,
		Restored:   v.Restored,
		UpdatedAt:  v.UpdatedAt.Format(time.RFC3339),
	}

	if v.Notice != nil {
		resp.Notice = &NoticeResponse{
			Message:        v.Notice.Message,
			DismissAfterMs: v.Notice.DismissAfter.Milliseconds(),
		}
	}

	return resp
}
