package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TripType тип поездки
type TripType string

const (
	TripTypeOneWay    TripType = "one-way"
	TripTypeRoundTrip TripType = "round-trip"
)

// IsValid проверяет, что тип поездки известен
func (t TripType) IsValid() bool {
	return t == TripTypeOneWay || t == TripTypeRoundTrip
}

var (
	// ErrDepartureRequired дата отправления не указана
	ErrDepartureRequired = errors.New("departure date is required")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrDepartureInPast дата отправления раньше сегодняшнего дня
	ErrDepartureInPast = errors.New("departure date is in the past")

	// ErrReturnRequired для поездки туда-обратно не указана дата возвращения
	ErrReturnRequired = errors.New("return date is required for round-trip")

	// ErrReturnBeforeDeparture дата возвращения раньше даты отправления
	ErrReturnBeforeDeparture = errors.New("return date precedes departure date")

	// ErrGuestsOutOfRange количество гостей вне диапазона [1, maxGuests]
	ErrGuestsOutOfRange = errors.New("guest count is out of range")

	// ErrInvalidTripType неизвестный тип поездки
	ErrInvalidTripType = errors.New("unknown trip type")

	// ErrSpecialRequestsTooLong слишком длинные пожелания
	ErrSpecialRequestsTooLong = errors.New("special requests are too long")
)

// BookingDraft черновик бронирования, принадлежит контроллеру на время одной попытки
type BookingDraft struct {
	TripType        TripType `json:"tripType"`
	DepartureDate   string   `json:"departureDate"`
	ReturnDate      string   `json:"returnDate"`
	Guests          int      `json:"guests"`
	SpecialRequests string   `json:"specialRequests"`
}

// NewDraft возвращает пустой черновик со значениями по умолчанию
func NewDraft() BookingDraft {
	return BookingDraft{
		TripType: DefaultTripType,
		Guests:   DefaultGuests,
	}
}

// Normalize подставляет значения по умолчанию для пустых полей
func (d *BookingDraft) Normalize() {
	if d.TripType == "" {
		d.TripType = DefaultTripType
	}
	if d.Guests == 0 {
		d.Guests = DefaultGuests
	}
	d.DepartureDate = strings.TrimSpace(d.DepartureDate)
	d.ReturnDate = strings.TrimSpace(d.ReturnDate)
	d.SpecialRequests = strings.TrimSpace(d.SpecialRequests)
}

// CheckShape проверяет поля, которые должны быть корректны в любой момент редактирования
// Незаполненные даты допустимы, их проверяет Validate перед переходом к оплате
func (d *BookingDraft) CheckShape() error {
	if !d.TripType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTripType, d.TripType)
	}
	if d.Guests < 0 {
		return ErrGuestsOutOfRange
	}
	if len(d.SpecialRequests) > MaxSpecialRequestsLength {
		return ErrSpecialRequestsTooLong
	}
	if d.DepartureDate != "" {
		if _, err := ParseDate(d.DepartureDate); err != nil {
			return err
		}
	}
	// дата возвращения one-way черновика не проверяется
	if d.TripType == TripTypeRoundTrip && d.ReturnDate != "" {
		if _, err := ParseDate(d.ReturnDate); err != nil {
			return err
		}
	}
	return nil
}

// Validate условие перехода details -> payment
// Для one-way дата возвращения не проверяется и игнорируется
func (d *BookingDraft) Validate(tour *Tour, today time.Time) error {
	if err := d.CheckShape(); err != nil {
		return err
	}

	if d.DepartureDate == "" {
		return ErrDepartureRequired
	}

	departure, err := ParseDate(d.DepartureDate)
	if err != nil {
		return err
	}

	if departure.Before(truncateToDay(today)) {
		return ErrDepartureInPast
	}

	if d.Guests < 1 || (tour != nil && !tour.AcceptsGuests(d.Guests)) {
		return ErrGuestsOutOfRange
	}

	if d.TripType != TripTypeRoundTrip {
		return nil
	}

	if d.ReturnDate == "" {
		return ErrReturnRequired
	}

	ret, err := ParseDate(d.ReturnDate)
	if err != nil {
		return err
	}

	if ret.Before(departure) {
		return ErrReturnBeforeDeparture
	}

	return nil
}

// EffectiveReturnDate дата возвращения с учетом типа поездки (nil для one-way)
func (d *BookingDraft) EffectiveReturnDate() *string {
	if d.TripType != TripTypeRoundTrip || d.ReturnDate == "" {
		return nil
	}
	ret := d.ReturnDate
	return &ret
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// truncateToDay отбрасывает время, оставляя дату в UTC (даты черновика парсятся в UTC)
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
