package session

import (
	"fmt"
	"sync"
	"time"
)

// ScanProgressMessages - косметические шаги сканирования для UI.
// К реальному прогрессу отношения не имеют: scan завершается либо
// раньше, либо позже последнего шага.
func ScanProgressMessages(storeURL string) []string {
	return []string{
		fmt.Sprintf("Accessing meta tags for %s...", storeURL),
		"Querying live search for technical SEO audit...",
		"Evaluating mobile layout & touch target spacing...",
		"Calculating Performance (LCP/FCP) metrics...",
		"Generating final PDF Profit report...",
	}
}

// ProgressAnimator - повторяющийся таймер, двигающий индекс шага от 0
// до len(messages)-1 и дальше удерживающий максимум. Обязан быть
// остановлен на всех путях выхода из сканирования (успех, ошибка,
// teardown), иначе callback переживёт view.
type ProgressAnimator struct {
	mu       sync.Mutex
	step     int
	max      int
	messages []string
	period   time.Duration
	onStep   func(step int, message string)
	stop     chan struct{}
	stopOnce sync.Once
}

// NewProgressAnimator создаёт аниматор. onStep опционален и вызывается
// на каждом продвижении шага (не под мьютексом аниматора).
func NewProgressAnimator(messages []string, period time.Duration, onStep func(step int, message string)) *ProgressAnimator {
	if period <= 0 {
		period = 2500 * time.Millisecond
	}
	return &ProgressAnimator{
		max:      len(messages) - 1,
		messages: messages,
		period:   period,
		onStep:   onStep,
		stop:     make(chan struct{}),
	}
}

// Start запускает таймер в отдельной горутине
func (p *ProgressAnimator) Start() {
	go func() {
		ticker := time.NewTicker(p.period)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.advance()
			}
		}
	}()
}

func (p *ProgressAnimator) advance() {
	p.mu.Lock()
	if p.step >= p.max {
		p.mu.Unlock()
		return
	}
	p.step++
	step := p.step
	message := p.messages[step]
	onStep := p.onStep
	p.mu.Unlock()

	if onStep != nil {
		onStep(step, message)
	}
}

// Step возвращает текущий индекс шага
func (p *ProgressAnimator) Step() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step
}

// Stop останавливает таймер. Идемпотентен: вызывается и на успехе,
// и на ошибке, и на teardown сессии.
func (p *ProgressAnimator) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}
