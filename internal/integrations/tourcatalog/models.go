package tourcatalog

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// Tour модель тура из каталога агентства
type Tour struct {
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

// ToDomain конвертирует модель каталога в доменную
func (t *Tour) ToDomain() domain.Tour {
	highlights := t.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return domain.Tour{
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
