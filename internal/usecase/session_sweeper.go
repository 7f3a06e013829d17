package usecase

import (
	"log/slog"
	"time"

	"tableorder/internal/schedule"
)

// IdleEvictor はセッションごとの状態をメモリに持つ部品。
type IdleEvictor interface {
	// cutoff より前から触られていないセッションを捨て、捨てた数を返す。
	EvictIdle(cutoff time.Time) int
}

// SessionSweeper は SESSION_TTL より長く使われていないセッションの状態を片付ける。
// cookie とストレージのキーが切れた後に、確認画面のカウントダウンや支払い状態が残らないようにする。
type SessionSweeper struct {
	clock    schedule.Clock
	ttl      time.Duration
	evictors []IdleEvictor
	log      *slog.Logger
}

func NewSessionSweeper(clock schedule.Clock, ttl time.Duration, log *slog.Logger, evictors ...IdleEvictor) *SessionSweeper {
	if log == nil {
		log = slog.Default()
	}
	return &SessionSweeper{clock: clock, ttl: ttl, evictors: evictors, log: log}
}

// Sweep は1回だけ片付ける。
func (s *SessionSweeper) Sweep() int {
	cutoff := s.clock.Now().Add(-s.ttl)

	n := 0
	for _, e := range s.evictors {
		n += e.EvictIdle(cutoff)
	}
	if n > 0 {
		s.log.Info("evicted idle sessions", "count", n, "cutoff", cutoff)
	}
	return n
}

// Start は ttl ごとに Sweep する。ttl が 0 以下なら何もしない。
func (s *SessionSweeper) Start(sched schedule.Scheduler) schedule.Cancel {
	if s.ttl <= 0 {
		return func() {}
	}
	return sched.Every(s.ttl, func() { s.Sweep() })
}
