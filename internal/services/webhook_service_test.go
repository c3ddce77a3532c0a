package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

type countingProcessor struct {
	inner OrderProcessor
	calls int
}

func (p *countingProcessor) ProcessOrder(ctx context.Context, shop string, raw []byte) (*domain.OrderIntake, error) {
	p.calls++
	return p.inner.ProcessOrder(ctx, shop, raw)
}

func newWebhookSvc(t *testing.T) (*WebhookService, *countingProcessor) {
	t.Helper()
	orders := newOrderSvc(t, nil)
	p := &countingProcessor{inner: orders}
	return &WebhookService{DB: orders.Intakes.DB, Orders: p, TTL: time.Hour}, p
}

func TestWebhook_Deliver_ReplaysStoredRecord(t *testing.T) {
	s, p := newWebhookSvc(t)
	ctx := context.Background()

	first, replayed, err := s.Deliver(ctx, "s", "wh-1", []byte(smithOrder))
	if err != nil || replayed || first == nil {
		t.Fatalf("first delivery: rec=%+v replayed=%v err=%v", first, replayed, err)
	}
	if seen, err := s.Seen(ctx, "s", TopicOrdersCreate, "wh-1"); err != nil || !seen {
		t.Fatalf("Seen = %v, %v", seen, err)
	}

	again, replayed, err := s.Deliver(ctx, "s", "wh-1", []byte(smithOrder))
	if err != nil || !replayed {
		t.Fatalf("redelivery: replayed=%v err=%v", replayed, err)
	}
	if again == nil || again.ID != first.ID {
		t.Fatalf("replay must return the stored record, got %+v", again)
	}
	if p.calls != 1 {
		t.Fatalf("pipeline ran %d times", p.calls)
	}
}

func TestWebhook_Deliver_IgnoredOrderReplaysNothing(t *testing.T) {
	s, p := newWebhookSvc(t)
	ctx := context.Background()
	raw := []byte(`{"id": 9, "name": "#9", "line_items": [{"id": 1}]}`)

	for i := 0; i < 2; i++ {
		rec, _, err := s.Deliver(ctx, "s", "wh-ignored", raw)
		if err != nil || rec != nil {
			t.Fatalf("delivery %d: rec=%+v err=%v", i, rec, err)
		}
	}
	if p.calls != 1 {
		t.Fatalf("pipeline ran %d times", p.calls)
	}
}

func TestWebhook_Deliver_WithoutIDAlwaysProcesses(t *testing.T) {
	s, p := newWebhookSvc(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, replayed, err := s.Deliver(ctx, "s", " ", []byte(smithOrder)); err != nil || replayed {
			t.Fatalf("delivery %d: replayed=%v err=%v", i, replayed, err)
		}
	}
	if p.calls != 2 {
		t.Fatalf("pipeline calls = %d", p.calls)
	}
}

func TestWebhook_Deliver_MalformedNotRemembered(t *testing.T) {
	s, p := newWebhookSvc(t)
	ctx := context.Background()

	_, _, err := s.Deliver(ctx, "s", "wh-bad", []byte(`{"name": "#1"}`))
	if !errors.Is(err, ErrMalformedOrder) {
		t.Fatalf("want ErrMalformedOrder, got %v", err)
	}
	if seen, _ := s.Seen(ctx, "s", TopicOrdersCreate, "wh-bad"); seen {
		t.Fatalf("failed delivery must not be remembered")
	}
	if _, _, err := s.Deliver(ctx, "s", "wh-bad", []byte(smithOrder)); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if p.calls != 2 {
		t.Fatalf("pipeline calls = %d", p.calls)
	}
}

func TestWebhook_Purge(t *testing.T) {
	s, _ := newWebhookSvc(t)
	ctx := context.Background()
	if _, _, err := s.Deliver(ctx, "s", "wh-old", []byte(smithOrder)); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	s.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err := s.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Purge = %d, %v", n, err)
	}
	if seen, _ := s.Seen(ctx, "s", TopicOrdersCreate, "wh-old"); seen {
		t.Fatalf("purged delivery still seen")
	}
}
