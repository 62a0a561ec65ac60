package cancel_session

// CancelResponse HTTP response model
type CancelResponse struct {
	SessionID string `json:"sessionId"`
	Outcome   string `json:"outcome"`
}
