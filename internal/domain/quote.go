package domain

import "math"

// Quote расчет суммы к оплате
type Quote struct {
	PricePerPerson float64
	Guests         int
	Legs           int // 1 для one-way, 2 для round-trip
	Subtotal       float64
	Taxes          float64
	Total          float64
	Currency       string
}

// CalculateQuote считает сумму к оплате
// subtotal = price * guests * legs, taxes = round(subtotal * taxRate)
func CalculateQuote(tour *Tour, draft *BookingDraft, taxRate float64, currency string) Quote {
	legs := 1
	if draft.TripType == TripTypeRoundTrip {
		legs = 2
	}

	subtotal := roundCents(tour.Price * float64(draft.Guests) * float64(legs))
	taxes := math.Round(subtotal * taxRate)

	return Quote{
		PricePerPerson: tour.Price,
		Guests:         draft.Guests,
		Legs:           legs,
		Subtotal:       subtotal,
		Taxes:          taxes,
		Total:          roundCents(subtotal + taxes),
		Currency:       currency,
	}
}

// AmountInCents сумма в минимальных единицах валюты
func (q Quote) AmountInCents() int64 {
	return int64(math.Round(q.Total * 100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
