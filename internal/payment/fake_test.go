package payment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type fakeProvider struct {
	name string

	// первые blocked загрузок ждут закрытия gate
	blocked int32
	gate    chan struct{}
	loadErr error

	loads     atomic.Int32
	teardowns atomic.Int32
	ready     atomic.Bool

	mu        sync.Mutex
	rendered  []string
	discarded []string
	renderErr error
}

func newFakeProvider(name string) *fakeProvider {
	return &fakeProvider{name: name, gate: make(chan struct{})}
}

func (f *fakeProvider) Name() string      { return f.name }
func (f *fakeProvider) Signature() string { return "https://sdk.example.com/" + f.name }
func (f *fakeProvider) IsReady() bool     { return f.ready.Load() }

func (f *fakeProvider) Load(ctx context.Context) error {
	n := f.loads.Add(1)
	if n <= f.blocked {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.loadErr != nil {
		return f.loadErr
	}
	f.ready.Store(true)
	return nil
}

func (f *fakeProvider) Teardown() {
	f.teardowns.Add(1)
	f.ready.Store(false)
}

// liveInjections загрузки, которые не были выгружены
func (f *fakeProvider) liveInjections() int32 {
	return f.loads.Load() - f.teardowns.Load()
}

func (f *fakeProvider) RenderInto(ctx context.Context, mountID string, checkout domain.Checkout) (*domain.Widget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.renderErr != nil {
		return nil, f.renderErr
	}

	ref := fmt.Sprintf("%s-%d", f.name, len(f.rendered)+1)
	f.rendered = append(f.rendered, ref)

	return &domain.Widget{
		Provider:  f.name,
		Method:    checkout.Method,
		MountID:   mountID,
		Reference: ref,
		Amount:    checkout.Amount,
		Currency:  checkout.Currency,
		AttemptID: checkout.AttemptID,
	}, nil
}

func (f *fakeProvider) Capture(ctx context.Context, widget *domain.Widget) (*domain.PaymentResult, error) {
	return &domain.PaymentResult{Provider: f.name, TransactionID: "tx-" + widget.Reference}, nil
}

func (f *fakeProvider) Discard(ctx context.Context, widget *domain.Widget) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.discarded = append(f.discarded, widget.Reference)
	return nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *recordingMetrics) ObserveSDKLoad(provider, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, result)
}

func (m *recordingMetrics) has(result string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.results {
		if r == result {
			return true
		}
	}
	return false
}
