package list_tours

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
)

const msgCatalogUnavailable = "каталог туров недоступен"

type Handler struct {
	catalog TourCatalog
	logger  Logger
}

func NewHandler(catalog TourCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tours, err := h.catalog.ListTours(r.Context())
	if err != nil {
		h.logger.Error("GET /tours - Failed to list tours: %v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgCatalogUnavailable)
		return
	}

	response := make([]handlers.TourResponse, 0, len(tours))
	for i := range tours {
		response = append(response, handlers.FromTour(&tours[i]))
	}

	h.logger.Info("GET /tours - Returned %d tours", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
