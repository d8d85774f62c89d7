package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

// UpdateFunc: 업데이트 하나를 끝까지 처리한다.
type UpdateFunc func(ctx context.Context, update telegram.Update)

type mailbox struct {
	pending []telegram.Update
	running bool
}

// ChatQueue: 채팅별 순서를 보장하면서 서로 다른 채팅은 병렬로 처리한다.
// 한 채팅에는 동시에 하나의 drain만 돌고, drain 수는 maxWorkers로 제한된다.
type ChatQueue struct {
	mu         sync.Mutex
	mailboxes  map[int64]*mailbox
	ready      []int64
	signal     chan struct{}
	maxWorkers int
	handle     UpdateFunc
	logger     *slog.Logger
}

// NewChatQueue: maxWorkers가 1 미만이면 1로 맞춘다.
func NewChatQueue(maxWorkers int, handle UpdateFunc, logger *slog.Logger) *ChatQueue {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatQueue{
		mailboxes:  make(map[int64]*mailbox),
		signal:     make(chan struct{}, 1),
		maxWorkers: maxWorkers,
		handle:     handle,
		logger:     logger,
	}
}

// Submit: 업데이트를 해당 채팅 메일박스에 넣는다. 막지 않는다.
func (q *ChatQueue) Submit(update telegram.Update) {
	chatID, ok := ChatIDOf(update)
	if !ok {
		q.logger.Debug("update_unroutable", "update_id", update.UpdateID)
		return
	}

	q.mu.Lock()
	mb, exists := q.mailboxes[chatID]
	if !exists {
		mb = &mailbox{}
		q.mailboxes[chatID] = mb
	}
	mb.pending = append(mb.pending, update)
	schedule := !mb.running
	if schedule {
		mb.running = true
		q.ready = append(q.ready, chatID)
	}
	q.mu.Unlock()

	if schedule {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
}

// Run: ctx가 끝날 때까지 준비된 채팅의 drain을 pool에 올린다. 반환 전에 진행 중인 drain을 기다린다.
func (q *ChatQueue) Run(ctx context.Context) error {
	workers := pool.New().WithMaxGoroutines(q.maxWorkers)
	defer workers.Wait()

	q.logger.Info("chat_queue_start", "max_workers", q.maxWorkers)
	for {
		select {
		case <-ctx.Done():
			q.logger.Info("chat_queue_stop", "reason", "shutdown")
			return nil
		case <-q.signal:
		}

		for {
			chatID, ok := q.popReady()
			if !ok {
				break
			}
			workers.Go(func() { q.drain(ctx, chatID) })
		}
	}
}

func (q *ChatQueue) popReady() (int64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return 0, false
	}
	chatID := q.ready[0]
	q.ready = q.ready[1:]
	return chatID, true
}

// drain: 메일박스가 빌 때까지 순서대로 처리한다. 종료 중이면 남은 업데이트를 버린다.
func (q *ChatQueue) drain(ctx context.Context, chatID int64) {
	for {
		q.mu.Lock()
		mb := q.mailboxes[chatID]
		if mb == nil || len(mb.pending) == 0 || ctx.Err() != nil {
			if mb != nil && len(mb.pending) > 0 {
				q.logger.Warn("updates_dropped_on_shutdown", "chat_id", chatID, "count", len(mb.pending))
			}
			delete(q.mailboxes, chatID)
			q.mu.Unlock()
			return
		}
		update := mb.pending[0]
		mb.pending = mb.pending[1:]
		q.mu.Unlock()

		q.safeHandle(ctx, chatID, update)
	}
}

func (q *ChatQueue) safeHandle(ctx context.Context, chatID int64, update telegram.Update) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("update_handler_panic",
				"chat_id", chatID,
				"update_id", update.UpdateID,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	q.handle(ctx, update)
}

// Pending: 아직 처리되지 않은 업데이트 수 (모든 채팅 합계)
func (q *ChatQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := 0
	for _, mb := range q.mailboxes {
		total += len(mb.pending)
	}
	return total
}
