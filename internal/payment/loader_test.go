package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

func TestLoader_AlreadyReady(t *testing.T) {
	p := newFakeProvider("paypal")
	p.ready.Store(true)
	m := &recordingMetrics{}

	l := NewLoader(p, time.Second, m, logger.NewNop())

	require.NoError(t, l.EnsureReady(context.Background()))
	assert.Equal(t, int32(0), p.loads.Load())
	assert.True(t, m.has(loadResultReady))
}

func TestLoader_ConcurrentWaitersShareOneLoad(t *testing.T) {
	p := newFakeProvider("paypal")
	p.blocked = 1
	l := NewLoader(p, 2*time.Second, nil, logger.NewNop())

	const waiters = 5
	errs := make(chan error, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- l.EnsureReady(context.Background())
		}()
	}

	assert.Eventually(t, func() bool { return p.loads.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(p.gate)

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), p.loads.Load())
	assert.True(t, p.IsReady())
}

func TestLoader_TimeoutKeepsLoadRunning(t *testing.T) {
	p := newFakeProvider("paypal")
	p.blocked = 1
	m := &recordingMetrics{}
	l := NewLoader(p, 20*time.Millisecond, m, logger.NewNop())

	err := l.EnsureReady(context.Background())
	assert.ErrorIs(t, err, ErrSDKLoadTimeout)
	assert.True(t, m.has(loadResultTimeout))

	// загрузка завершилась позже таймаута и не была выгружена
	close(p.gate)
	assert.Eventually(t, p.IsReady, time.Second, 5*time.Millisecond)

	require.NoError(t, l.EnsureReady(context.Background()))
	assert.Equal(t, int32(1), p.loads.Load())
}

func TestLoader_TimeoutThenRetryLeavesOneInjection(t *testing.T) {
	p := newFakeProvider("stripe")
	p.blocked = 1
	m := &recordingMetrics{}
	l := NewLoader(p, 30*time.Millisecond, m, logger.NewNop())

	err := l.EnsureReady(context.Background())
	require.ErrorIs(t, err, ErrSDKLoadTimeout)

	require.NoError(t, l.Retry(context.Background()))

	assert.Equal(t, int32(2), p.loads.Load())
	assert.Equal(t, int32(1), p.teardowns.Load())
	assert.Equal(t, int32(1), p.liveInjections())
	assert.True(t, p.IsReady())

	// поздний результат первой загрузки отброшен
	assert.Eventually(t, func() bool { return m.has(loadResultSuperseded) }, time.Second, 5*time.Millisecond)
	assert.True(t, p.IsReady())
}

func TestLoader_LoadFailure(t *testing.T) {
	p := newFakeProvider("paypal")
	p.loadErr = errors.New("script blocked")
	m := &recordingMetrics{}
	l := NewLoader(p, time.Second, m, logger.NewNop())

	err := l.EnsureReady(context.Background())
	assert.ErrorIs(t, err, ErrSDKLoadFailed)
	assert.Contains(t, err.Error(), "script blocked")
	assert.True(t, m.has(loadResultFailed))

	p.loadErr = nil
	require.NoError(t, l.EnsureReady(context.Background()))
	assert.Equal(t, int32(2), p.loads.Load())
}

func TestLoader_TeardownDuringLoad(t *testing.T) {
	p := newFakeProvider("paypal")
	p.blocked = 1
	l := NewLoader(p, time.Second, nil, logger.NewNop())

	errCh := make(chan error, 1)
	go func() {
		errCh <- l.EnsureReady(context.Background())
	}()

	assert.Eventually(t, func() bool { return p.loads.Load() == 1 }, time.Second, 5*time.Millisecond)
	l.Teardown()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrLoadSuperseded)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released after teardown")
	}
	assert.False(t, p.IsReady())
	assert.Equal(t, int32(0), p.liveInjections())
}

func TestLoader_ContextCancelled(t *testing.T) {
	p := newFakeProvider("paypal")
	p.blocked = 1
	l := NewLoader(p, time.Second, nil, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.EnsureReady(ctx), context.Canceled)
}

func TestLoaders_ForMethod(t *testing.T) {
	paypal := NewLoader(newFakeProvider("paypal"), time.Second, nil, logger.NewNop())
	loaders := NewLoaders(paypal)

	l, err := loaders.ForMethod(domain.PaymentMethodCard)
	require.NoError(t, err)
	assert.Same(t, paypal, l)

	_, err = loaders.ForMethod(domain.PaymentMethodStripe)
	assert.ErrorIs(t, err, ErrProviderNotConfigured)

	assert.Equal(t, []domain.PaymentMethod{domain.PaymentMethodPayPal, domain.PaymentMethodCard}, loaders.Methods())
}
