package session

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// storedDraft формат ключа booking_data
// Поля черновика лежат на верхнем уровне, как и в sessionStorage фронтенда
type storedDraft struct {
	domain.BookingDraft
	AttemptID string    `json:"attemptId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// storedTour формат ключа selected_tour
type storedTour struct {
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

func toStoredTour(t domain.Tour) storedTour {
	return storedTour{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Price:             t.Price,
		Location:          t.Location,
		Rating:            t.Rating,
		Image:             t.Image,
		MaxGuests:         t.MaxGuests,
		Highlights:        t.Highlights,
		Duration:          t.Duration,
		DepartureTime:     t.DepartureTime,
		RouteDescription:  t.RouteDescription,
		StartLocationLink: t.StartLocationLink,
	}
}

func (t storedTour) toDomain() domain.Tour {
	return domain.Tour{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Price:             t.Price,
		Location:          t.Location,
		Rating:            t.Rating,
		Image:             t.Image,
		MaxGuests:         t.MaxGuests,
		Highlights:        t.Highlights,
		Duration:          t.Duration,
		DepartureTime:     t.DepartureTime,
		RouteDescription:  t.RouteDescription,
		StartLocationLink: t.StartLocationLink,
	}
}
