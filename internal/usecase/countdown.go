package usecase

import (
	"sync"
	"time"

	"tableorder/internal/schedule"
)

// Countdown は到着予定（分）を interval ごとに1ずつ減らす。
// 0 になったら定期実行を自分で止める。
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	cancel    schedule.Cancel
	onTick    func(remaining int)
}

// StartCountdown は start から数え始める。onTick は nil でもよい。
func StartCountdown(sched schedule.Scheduler, start int, interval time.Duration, onTick func(remaining int)) *Countdown {
	if start <= 0 {
		return &Countdown{stopped: true}
	}
	c := &Countdown{remaining: start, onTick: onTick}
	cancel := sched.Every(interval, c.tick)

	c.mu.Lock()
	if c.stopped {
		// 登録が終わる前に 0 まで進んだ
		c.mu.Unlock()
		cancel()
		return c
	}
	c.cancel = cancel
	c.mu.Unlock()
	return c
}

func (c *Countdown) tick() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.remaining--
	r := c.remaining
	onTick := c.onTick

	var cancel schedule.Cancel
	if r == 0 {
		c.stopped = true
		cancel = c.cancel
		c.cancel = nil
		c.onTick = nil
	}
	c.mu.Unlock()

	if onTick != nil {
		onTick(r)
	}
	if cancel != nil {
		cancel()
	}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Stop は定期実行を止める。何度呼んでもよい。
func (c *Countdown) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.stopped = true
	c.cancel = nil
	c.onTick = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
