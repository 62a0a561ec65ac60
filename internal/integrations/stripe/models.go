package stripe

// paymentIntent PaymentIntent в ответах Stripe
type paymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ReceiptEmail string `json:"receipt_email"`
	LatestCharge string `json:"latest_charge"`
}

// balance ответ GET /v1/balance, нужен только факт успешного ответа
type balance struct {
	Object   string `json:"object"`
	Livemode bool   `json:"livemode"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
