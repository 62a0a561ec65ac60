package resolve_reconciliation

import "github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"

// ResolveRequest HTTP request model
type ResolveRequest struct {
	Note string `json:"note"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ResolveRequest) ToServiceRequest(id int64) *models.ResolveRequest {
	return &models.ResolveRequest{
		ID:   id,
		Note: r.Note,
	}
}
