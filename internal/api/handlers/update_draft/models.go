package update_draft

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// UpdateDraftRequest HTTP request model
type UpdateDraftRequest struct {
	TripType        string `json:"tripType"`
	DepartureDate   string `json:"departureDate"` // "2025-06-01"
	ReturnDate      string `json:"returnDate"`    // игнорируется для one-way
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
}

// ToDomain конвертирует HTTP запрос в черновик
func (r *UpdateDraftRequest) ToDomain() domain.BookingDraft {
	return domain.BookingDraft{
		TripType:        domain.TripType(r.TripType),
		DepartureDate:   r.DepartureDate,
		ReturnDate:      r.ReturnDate,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
	}
}
