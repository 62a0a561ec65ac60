package domain

// PaymentMethod способ оплаты, передается в API бронирований
type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodCard   PaymentMethod = "card" // карта через PayPal card funding
)

// IsValid проверяет, что способ оплаты известен
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodPayPal || m == PaymentMethodStripe || m == PaymentMethodCard
}

// ProviderName провайдер, который обслуживает способ оплаты
func (m PaymentMethod) ProviderName() string {
	if m == PaymentMethodStripe {
		return string(PaymentMethodStripe)
	}
	return string(PaymentMethodPayPal)
}

// Checkout данные для создания заказа у провайдера
type Checkout struct {
	SessionID   string
	AttemptID   string
	Method      PaymentMethod
	Amount      float64
	AmountCents int64
	Currency    string
	Description string
}

// Widget описание платежного виджета, отрисованного в точку монтирования
type Widget struct {
	Provider  string
	Method    PaymentMethod
	MountID   string
	ScriptURL string // URL SDK с конфигурацией (client id / ключ, валюта, компоненты)
	Reference string // PayPal order id или Stripe payment intent id
	ClientKey string // Stripe client secret, для PayPal пусто
	Amount    float64
	Currency  string
	AttemptID string
}

// PaymentResult результат подтверждения оплаты у провайдера
// Используется один раз для формирования заявки на бронирование
type PaymentResult struct {
	Provider      string
	Method        PaymentMethod
	TransactionID string
	PayerEmail    string
	PayerName     string
	Amount        float64
	Currency      string
}

// Payer данные плательщика, которые страница передает при подтверждении
type Payer struct {
	Name  string
	Email string
}
