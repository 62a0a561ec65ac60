package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ReconciliationResponse запись сверки для поддержки
type ReconciliationResponse struct {
	ID             int64           `json:"id"`
	SessionID      string          `json:"sessionId"`
	AttemptID      string          `json:"attemptId"`
	TourID         int64           `json:"tourId"`
	Method         string          `json:"paymentMethod"`
	TransactionID  string          `json:"transactionId"`
	PayerEmail     string          `json:"payerEmail"`
	PayerName      string          `json:"payerName"`
	Amount         float64         `json:"amount"`
	Currency       string          `json:"currency"`
	BookingPayload json.RawMessage `json:"bookingPayload"`
	FailureMessage string          `json:"failureMessage"`
	Status         string          `json:"status"`
	ResolutionNote *string         `json:"resolutionNote,omitempty"`
	ResolvedAt     *time.Time      `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ReconciliationListResponse список записей
type ReconciliationListResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	Total           int                      `json:"total"`
}

// ListRequest параметры выборки
type ListRequest struct {
	Status *string
	Limit  uint64
}

// ResolveRequest запрос на разбор записи
type ResolveRequest struct {
	ID   int64
	Note string
}

// FromDomain конвертирует запись в ответ
func FromDomain(rec *domain.Reconciliation) ReconciliationResponse {
	payload := json.RawMessage(rec.BookingPayload)
	if !json.Valid(payload) {
		payload = json.RawMessage("null")
	}

	return ReconciliationResponse{
		ID:             rec.ID,
		SessionID:      rec.SessionID,
		AttemptID:      rec.AttemptID,
		TourID:         rec.TourID,
		Method:         string(rec.Method),
		TransactionID:  rec.TransactionID,
		PayerEmail:     rec.PayerEmail,
		PayerName:      rec.PayerName,
		Amount:         rec.Amount,
		Currency:       rec.Currency,
		BookingPayload: payload,
		FailureMessage: rec.FailureMessage,
		Status:         string(rec.Status),
		ResolutionNote: rec.ResolutionNote,
		ResolvedAt:     rec.ResolvedAt,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

// FromDomainList конвертирует список записей
func FromDomainList(recs []*domain.Reconciliation) *ReconciliationListResponse {
	items := make([]ReconciliationResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, FromDomain(rec))
	}

	return &ReconciliationListResponse{
		Reconciliations: items,
		Total:           len(items),
	}
}
