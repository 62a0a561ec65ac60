package domain

// Tour снимок тура из внешнего каталога, контроллер его не изменяет
type Tour struct {
	ID                int64
	Title             string
	Description       string
	Price             float64 // цена за человека
	Location          string
	Rating            float64
	Image             string
	MaxGuests         int
	Highlights        []string
	Duration          string // старые туры
	DepartureTime     string // новые туры вместо Duration
	RouteDescription  string
	StartLocationLink string
}

// AcceptsGuests проверяет, что количество гостей укладывается в лимит тура
func (t *Tour) AcceptsGuests(guests int) bool {
	return guests >= 1 && guests <= t.MaxGuests
}
