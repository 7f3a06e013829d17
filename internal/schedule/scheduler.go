// Package schedule は遅延実行と定期実行を抽象化する。
// テストでは Manual を使って時間を進める。
package schedule

import (
	"sync"
	"time"
)

// Cancel は予約を取り消す。何度呼んでもよい。
type Cancel func()

type Scheduler interface {
	// AfterFunc は d 経過後に fn を1回だけ実行する。
	AfterFunc(d time.Duration, fn func()) Cancel
	// Every は interval ごとに fn を実行する。
	Every(interval time.Duration, fn func()) Cancel
}

// Clock は現在時刻を返す。
type Clock interface {
	Now() time.Time
}

type realScheduler struct{}

// New は time パッケージのタイマーで動く Scheduler を返す。
func New() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

func (realScheduler) Every(interval time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

type realClock struct{}

func SystemClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
