package paypal

// tokenResponse ответ /v1/oauth2/token
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
	Amount      amount `json:"amount"`
}

// createOrderRequest тело POST /v2/checkout/orders
type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type payerName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type payer struct {
	Name         payerName `json:"name"`
	EmailAddress string    `json:"email_address"`
}

type capture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount amount `json:"amount"`
}

type capturedUnit struct {
	Payments struct {
		Captures []capture `json:"captures"`
	} `json:"payments"`
}

// captureResponse ответ POST /v2/checkout/orders/{id}/capture
type captureResponse struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Payer         payer          `json:"payer"`
	PurchaseUnits []capturedUnit `json:"purchase_units"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Desc    string `json:"error_description"`
}
