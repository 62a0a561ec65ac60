package payment

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Loaders загрузчики включенных провайдеров по имени
type Loaders struct {
	byName map[string]*Loader
}

// NewLoaders собирает загрузчики
func NewLoaders(loaders ...*Loader) *Loaders {
	byName := make(map[string]*Loader, len(loaders))
	for _, l := range loaders {
		byName[l.provider.Name()] = l
	}
	return &Loaders{byName: byName}
}

// ForMethod возвращает загрузчик провайдера, обслуживающего способ оплаты
func (ls *Loaders) ForMethod(method domain.PaymentMethod) (*Loader, error) {
	l, ok := ls.byName[method.ProviderName()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, method.ProviderName())
	}
	return l, nil
}

// EnsureReady дожидается готовности SDK провайдера, обслуживающего способ оплаты
func (ls *Loaders) EnsureReady(ctx context.Context, method domain.PaymentMethod) error {
	l, err := ls.ForMethod(method)
	if err != nil {
		return err
	}
	return l.EnsureReady(ctx)
}

// Methods способы оплаты, для которых есть провайдер
func (ls *Loaders) Methods() []domain.PaymentMethod {
	methods := make([]domain.PaymentMethod, 0, 3)
	for _, m := range []domain.PaymentMethod{domain.PaymentMethodPayPal, domain.PaymentMethodCard, domain.PaymentMethodStripe} {
		if _, ok := ls.byName[m.ProviderName()]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// TeardownAll выгружает все SDK, используется при остановке сервиса
func (ls *Loaders) TeardownAll() {
	for _, l := range ls.byName {
		l.Teardown()
	}
}
