package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Результаты загрузки SDK для метрик
const (
	loadResultReady      = "ready"
	loadResultLoaded     = "loaded"
	loadResultFailed     = "failed"
	loadResultTimeout    = "timeout"
	loadResultSuperseded = "superseded"
)

// Loader управляет загрузкой SDK одного провайдера
//
// Одновременные запросы ждут одну и ту же загрузку. Ожидание ограничено
// таймаутом, сама загрузка при этом продолжается. Teardown и Retry
// увеличивают поколение: результат загрузки прошлого поколения игнорируется,
// а ее контекст отменяется.
type Loader struct {
	provider Provider
	timeout  time.Duration
	metrics  MetricsCollector
	log      Logger

	group singleflight.Group

	mu         sync.Mutex
	generation uint64
	cancelLoad context.CancelFunc
}

// NewLoader создает загрузчик для провайдера
func NewLoader(provider Provider, timeout time.Duration, metrics MetricsCollector, log Logger) *Loader {
	return &Loader{
		provider: provider,
		timeout:  timeout,
		metrics:  metrics,
		log:      log,
	}
}

// Provider возвращает провайдера загрузчика
func (l *Loader) Provider() Provider {
	return l.provider
}

// EnsureReady дожидается готовности SDK
func (l *Loader) EnsureReady(ctx context.Context) error {
	if l.provider.IsReady() {
		l.observe(loadResultReady)
		return nil
	}

	ch := l.start()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, ErrLoadSuperseded) {
				return res.Err
			}
			return fmt.Errorf("%w: %s: %v", ErrSDKLoadFailed, l.provider.Name(), res.Err)
		}
		return nil
	case <-timer.C:
		l.observe(loadResultTimeout)
		l.log.Warn("Payment SDK %s not ready after %s", l.provider.Name(), l.timeout)
		return fmt.Errorf("%w: %s after %s", ErrSDKLoadTimeout, l.provider.Name(), l.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry выгружает SDK и загружает заново
func (l *Loader) Retry(ctx context.Context) error {
	l.Teardown()
	return l.EnsureReady(ctx)
}

// Teardown выгружает SDK и отменяет незавершенную загрузку
func (l *Loader) Teardown() {
	l.mu.Lock()
	key := l.keyLocked()
	l.generation++
	if l.cancelLoad != nil {
		l.cancelLoad()
		l.cancelLoad = nil
	}
	l.provider.Teardown()
	l.mu.Unlock()

	l.group.Forget(key)
}

// start запускает загрузку текущего поколения или присоединяется к ней
func (l *Loader) start() <-chan singleflight.Result {
	l.mu.Lock()
	gen := l.generation
	key := l.keyLocked()
	l.mu.Unlock()

	return l.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		l.mu.Lock()
		if gen != l.generation {
			l.mu.Unlock()
			return nil, ErrLoadSuperseded
		}
		l.cancelLoad = cancel
		l.mu.Unlock()

		err := l.provider.Load(loadCtx)

		l.mu.Lock()
		defer l.mu.Unlock()

		if gen != l.generation {
			l.observe(loadResultSuperseded)
			l.log.Info("Payment SDK %s load of generation %d finished after teardown, ignored", l.provider.Name(), gen)
			return nil, ErrLoadSuperseded
		}
		l.cancelLoad = nil

		if err != nil {
			l.observe(loadResultFailed)
			l.log.Error("Payment SDK %s load failed: %v", l.provider.Name(), err)
			return nil, err
		}

		l.observe(loadResultLoaded)
		return nil, nil
	})
}

func (l *Loader) keyLocked() string {
	return fmt.Sprintf("%s#%d", l.provider.Signature(), l.generation)
}

func (l *Loader) observe(result string) {
	if l.metrics != nil {
		l.metrics.ObserveSDKLoad(l.provider.Name(), result)
	}
}
