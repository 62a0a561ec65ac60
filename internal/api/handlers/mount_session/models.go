package mount_session

// MountRequest HTTP request model
type MountRequest struct {
	TourID int64 `json:"tourId"`
}
