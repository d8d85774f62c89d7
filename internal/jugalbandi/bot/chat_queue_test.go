package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/common/testhelper"
	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/telegram"
)

func chatUpdate(chatID, updateID int64) telegram.Update {
	return telegram.Update{
		UpdateID: updateID,
		Message:  &telegram.Message{Chat: &telegram.Chat{ID: chatID}, Text: "q"},
	}
}

func startQueue(t *testing.T, workers int, handle UpdateFunc) *ChatQueue {
	t.Helper()
	queue := NewChatQueue(workers, handle, testhelper.DiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = queue.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return queue
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestChatQueue_PreservesPerChatOrder(t *testing.T) {
	var (
		mu      sync.Mutex
		handled = map[int64][]int64{}
		active  = map[int64]int{}
		overlap bool
	)
	queue := startQueue(t, 4, func(_ context.Context, u telegram.Update) {
		chatID := u.Message.Chat.ID
		mu.Lock()
		active[chatID]++
		if active[chatID] > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		active[chatID]--
		handled[chatID] = append(handled[chatID], u.UpdateID)
		mu.Unlock()
	})

	for i := int64(1); i <= 20; i++ {
		queue.Submit(chatUpdate(1, i))
		queue.Submit(chatUpdate(2, 100+i))
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled[1]) == 20 && len(handled[2]) == 20
	})

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("updates of the same chat ran concurrently")
	}
	for i, id := range handled[1] {
		if id != int64(i+1) {
			t.Fatalf("chat 1 out of order: %v", handled[1])
		}
	}
	for i, id := range handled[2] {
		if id != int64(101+i) {
			t.Fatalf("chat 2 out of order: %v", handled[2])
		}
	}
}

func TestChatQueue_SlowChatDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	fastDone := make(chan struct{})

	queue := startQueue(t, 2, func(_ context.Context, u telegram.Update) {
		switch u.Message.Chat.ID {
		case 1:
			<-release
		case 2:
			close(fastDone)
		}
	})
	defer close(release)

	queue.Submit(chatUpdate(1, 1))
	queue.Submit(chatUpdate(2, 2))

	select {
	case <-fastDone:
	case <-time.After(5 * time.Second):
		t.Fatal("chat 2 was blocked by chat 1")
	}
}

func TestChatQueue_RecoversPanics(t *testing.T) {
	var (
		mu      sync.Mutex
		handled []int64
	)
	queue := startQueue(t, 2, func(_ context.Context, u telegram.Update) {
		if u.UpdateID == 1 {
			panic("boom")
		}
		mu.Lock()
		handled = append(handled, u.UpdateID)
		mu.Unlock()
	})

	queue.Submit(chatUpdate(1, 1))
	queue.Submit(chatUpdate(1, 2))
	queue.Submit(chatUpdate(3, 3))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 2
	})
	waitFor(t, func() bool { return queue.Pending() == 0 })
}

func TestChatQueue_IgnoresUnroutableUpdates(t *testing.T) {
	queue := NewChatQueue(1, func(context.Context, telegram.Update) {
		t.Error("handler must not be called")
	}, testhelper.DiscardLogger())

	queue.Submit(telegram.Update{UpdateID: 1})
	if queue.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", queue.Pending())
	}
}
