package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/makeajourney/asnisum/pkg/order"
	"github.com/makeajourney/asnisum/pkg/store"
)

func newTestManager() *Manager {
	return NewManager(store.NewMemory())
}

func TestStartAndLifecycle(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	active, err := m.IsActive(ctx, "C1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatal("channel should start with no session")
	}

	sess, err := m.Start(ctx, "C1", "1700000000.0001", "U_STARTER")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.MessageTS != "1700000000.0001" || sess.StartedBy != "U_STARTER" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if len(sess.Orders) != 0 {
		t.Errorf("new session should have empty ledger, got %d", len(sess.Orders))
	}

	active, _ = m.IsActive(ctx, "C1")
	if !active {
		t.Error("session should be active after start")
	}

	if err := m.Clear(ctx, "C1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	active, _ = m.IsActive(ctx, "C1")
	if active {
		t.Error("session should be gone after clear")
	}
	if err := m.Clear(ctx, "C1"); err != nil {
		t.Errorf("clear should be idempotent, got %v", err)
	}
}

func TestStartConflictLeavesExistingSessionUntouched(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Start(ctx, "C1", "ts-1", "U1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.AddOrder(ctx, "C1", order.Order{UserID: "U2", Menu: "americano", Temperature: order.Hot}); err != nil {
		t.Fatalf("add order: %v", err)
	}

	_, err := m.Start(ctx, "C1", "ts-2", "U3")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	sess, err := m.Get(ctx, "C1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.MessageTS != "ts-1" || sess.StartedBy != "U1" {
		t.Errorf("existing session mutated by failed start: %+v", sess)
	}
	if len(sess.Orders) != 1 {
		t.Errorf("ledger mutated by failed start: %d orders", len(sess.Orders))
	}
}

func TestSessionsAreIndependentAcrossChannels(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Start(ctx, "C1", "ts-1", "U1"); err != nil {
		t.Fatalf("start C1: %v", err)
	}
	if _, err := m.Start(ctx, "C2", "ts-2", "U2"); err != nil {
		t.Fatalf("start C2: %v", err)
	}

	if err := m.Clear(ctx, "C1"); err != nil {
		t.Fatalf("clear C1: %v", err)
	}
	active, _ := m.IsActive(ctx, "C2")
	if !active {
		t.Error("clearing C1 must not affect C2")
	}
}

func TestAddOrderPreservesSubmissionOrder(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	m.Start(ctx, "C1", "ts", "U0")
	for i := 0; i < 5; i++ {
		o := order.Order{UserID: fmt.Sprintf("U%d", i), Menu: "americano", Temperature: order.Hot, BeanOption: "dark"}
		if err := m.AddOrder(ctx, "C1", o); err != nil {
			t.Fatalf("add order %d: %v", i, err)
		}
	}

	sess, _ := m.Get(ctx, "C1")
	for i, o := range sess.Orders {
		if o.UserID != fmt.Sprintf("U%d", i) {
			t.Fatalf("order %d out of place: %+v", i, o)
		}
	}
}

func TestAddOrderConcurrentNoLostAppends(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	m.Start(ctx, "C1", "ts", "U0")

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := order.Order{UserID: fmt.Sprintf("U%d", i), Menu: "americano", Temperature: order.Ice, BeanOption: "dark"}
			errs <- m.AddOrder(ctx, "C1", o)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent add: %v", err)
		}
	}

	sess, err := m.Get(ctx, "C1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(sess.Orders) != n {
		t.Errorf("expected %d orders, got %d", n, len(sess.Orders))
	}

	seen := make(map[string]bool, n)
	for _, o := range sess.Orders {
		if seen[o.UserID] {
			t.Errorf("duplicated append for %s", o.UserID)
		}
		seen[o.UserID] = true
	}
}

func TestAddOrderAfterCloseFailsExpired(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	m.Start(ctx, "C1", "ts", "U0")
	m.Clear(ctx, "C1")

	// Two submissions race in after the session was closed between
	// form-open and form-submit. Both must fail; neither may recreate
	// the session.
	for i := 0; i < 2; i++ {
		err := m.AddOrder(ctx, "C1", order.Order{UserID: "U1", Menu: "americano", Temperature: order.Hot})
		if !errors.Is(err, ErrExpired) {
			t.Errorf("submission %d: expected ErrExpired, got %v", i, err)
		}
	}

	active, _ := m.IsActive(ctx, "C1")
	if active {
		t.Error("failed submissions must not recreate the session")
	}
}

func TestGetAbsentSession(t *testing.T) {
	m := newTestManager()
	_, err := m.Get(context.Background(), "C_NONE")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

// brokenStore fails every operation, for exercising StoreError paths.
type brokenStore struct{ err error }

func (b *brokenStore) Get(context.Context, string) (store.Record, error) {
	return store.Record{}, b.err
}
func (b *brokenStore) Put(context.Context, store.Record) error { return b.err }
func (b *brokenStore) Delete(context.Context, string) error    { return b.err }
func (b *brokenStore) Close() error                            { return nil }

func TestStoreFailuresSurfaceAsStoreError(t *testing.T) {
	cause := errors.New("disk on fire")
	m := NewManager(&brokenStore{err: cause})
	ctx := context.Background()

	var storeErr *StoreError

	if _, err := m.Start(ctx, "C1", "ts", "U1"); !errors.As(err, &storeErr) || !errors.Is(err, cause) {
		t.Errorf("start: expected StoreError wrapping cause, got %v", err)
	}
	if _, err := m.IsActive(ctx, "C1"); !errors.As(err, &storeErr) {
		t.Errorf("is active: expected StoreError, got %v", err)
	}
	if err := m.AddOrder(ctx, "C1", order.Order{}); !errors.As(err, &storeErr) {
		t.Errorf("add order: expected StoreError, got %v", err)
	}
	if err := m.Clear(ctx, "C1"); !errors.As(err, &storeErr) {
		t.Errorf("clear: expected StoreError, got %v", err)
	}
}

func TestOrderFieldsSurviveStoreRoundtrip(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	m.Start(ctx, "C1", "ts", "U0")

	withBean := order.Order{ID: "o-1", UserID: "U1", Menu: "americano",
		Temperature: order.Hot, BeanOption: "dark",
		ExtraOptions: []string{"extra_shot"}, Note: "빨리요"}
	withoutBean := order.Order{ID: "o-2", UserID: "U2", Menu: "ice-tea", Temperature: order.Ice}

	m.AddOrder(ctx, "C1", withBean)
	m.AddOrder(ctx, "C1", withoutBean)

	sess, _ := m.Get(ctx, "C1")
	if sess.Orders[0].BeanOption != "dark" || sess.Orders[0].Note != "빨리요" {
		t.Errorf("order fields lost: %+v", sess.Orders[0])
	}
	// Absent and default must remain distinguishable after persistence.
	if sess.Orders[1].BeanOption != "" {
		t.Errorf("absent bean option materialized: %+v", sess.Orders[1])
	}
	if sess.Orders[1].ExtraOptions != nil {
		t.Errorf("absent extras materialized: %+v", sess.Orders[1])
	}
}
