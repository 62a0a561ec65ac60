package domain

import "time"

// Формат дат поездки, совпадает с форматом <input type="date"> на странице
const DateFormat = "2006-01-02" // YYYY-MM-DD

// Значения черновика по умолчанию
const (
	DefaultTripType = TripTypeOneWay
	DefaultGuests   = 1
)

// Ограничения бизнес-валидации
const (
	MaxSpecialRequestsLength = 500
	MaxSessionIDLength       = 128
)

// Ключи хранилища сессии (совпадают с ключами sessionStorage на фронтенде)
const (
	KeyBookingStep  = "booking_step"
	KeyBookingData  = "booking_data"
	KeySelectedTour = "selected_tour"
)

// SessionKeys все ключи, которые очищаются при завершении или отмене сессии
var SessionKeys = []string{
	KeyBookingStep,
	KeyBookingData,
	KeySelectedTour,
}

// Значения по умолчанию для уведомлений и SDK
const (
	DefaultRecoveryNoticeTTL = 3 * time.Second
	DefaultSDKLoadTimeout    = 12 * time.Second
	DefaultCurrency          = "EUR"

	RecoveryNoticeMessage = "We recovered your previous booking session."
)
