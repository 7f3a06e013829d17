// Package notify はトースト通知の代わりにセッションごとの受信箱を持つ。
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tableorder/internal/domain/model"
	"tableorder/internal/schedule"
)

// 1セッションあたりの保持件数。超えたら古いものから捨てる。
const DefaultCapacity = 20

type box struct {
	items   []model.Notification
	touched time.Time
}

type Inbox struct {
	mu       sync.Mutex
	boxes    map[string]*box
	capacity int
	clock    schedule.Clock
	log      *slog.Logger
}

func NewInbox(capacity int, clock schedule.Clock, log *slog.Logger) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = slog.Default()
	}
	return &Inbox{
		boxes:    map[string]*box{},
		capacity: capacity,
		clock:    clock,
		log:      log,
	}
}

func (b *Inbox) Notify(ctx context.Context, sessionID string, n model.Notification) {
	if n.Variant == "" {
		n.Variant = model.NotificationDefault
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.clock.Now()
	}

	b.log.InfoContext(ctx, "notification",
		"session_id", sessionID,
		"title", n.Title,
		"variant", string(n.Variant),
	)

	b.mu.Lock()
	defer b.mu.Unlock()

	bx, ok := b.boxes[sessionID]
	if !ok {
		bx = &box{}
		b.boxes[sessionID] = bx
	}
	bx.items = append(bx.items, n)
	if len(bx.items) > b.capacity {
		bx.items = bx.items[len(bx.items)-b.capacity:]
	}
	bx.touched = b.clock.Now()
}

// Drain は溜まっている通知を古い順に返して空にする。
func (b *Inbox) Drain(ctx context.Context, sessionID string) []model.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	bx, ok := b.boxes[sessionID]
	if !ok {
		return []model.Notification{}
	}
	delete(b.boxes, sessionID)
	return bx.items
}

// EvictIdle は cutoff より前から読まれも追加されもしていない受信箱を捨てる。
func (b *Inbox) EvictIdle(cutoff time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for sid, bx := range b.boxes {
		if bx.touched.Before(cutoff) {
			delete(b.boxes, sid)
			n++
		}
	}
	return n
}
