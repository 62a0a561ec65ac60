package bookingapi

// ProviderPayment ссылка на платеж у провайдера
type ProviderPayment struct {
	TransactionID string `json:"transactionId"`
	Email         string `json:"email"`
}

// CreateBookingRequest тело POST /bookings
// Ровно одно из полей PayPal/Stripe заполнено, в зависимости от провайдера
type CreateBookingRequest struct {
	TourID        int64            `json:"tourId"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	DepartureDate string           `json:"departureDate"`
	ReturnDate    *string          `json:"returnDate"`
	Guests        int              `json:"guests"`
	PaymentMethod string           `json:"paymentMethod"`
	PayPal        *ProviderPayment `json:"paypal,omitempty"`
	Stripe        *ProviderPayment `json:"stripe,omitempty"`
}

// Booking созданное бронирование в ответе API
type Booking struct {
	ID            int64   `json:"id"`
	TourID        int64   `json:"tourId"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    *string `json:"returnDate"`
	Guests        int     `json:"guests"`
	Status        string  `json:"status,omitempty"`
}

// ErrorResponse модель ошибки API бронирований
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
