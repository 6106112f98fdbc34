package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/davecgh/go-spew/spew"
)

func TestOpenSession(t *testing.T) {
	src := &fakeSource{records: opportunityRecords()}
	setupRegistry(t, opportunityView(src))
	svc := NewService(ServiceConfig{})

	snap, err := svc.OpenSession(context.Background(), "opportunities")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	if snap.SessionID == "" {
		t.Error("SessionID is empty")
	}
	if !snap.Available || !snap.SortEnabled() {
		t.Error("snapshot should be available with sorting enabled")
	}
	if snap.Header != "Open Opportunities" {
		t.Errorf("Header = %q", snap.Header)
	}
	if got := len(snap.Columns); got != 3 {
		t.Errorf("len(Columns) = %d, want 3", got)
	}
	if got := cellValues(snap, 0); got[0] != "B" || got[1] != "A" || got[2] != "C" {
		t.Errorf("initial order = %v, want [B A C]\nrows:\n%s", got, spew.Sdump(snap.Rows))
	}
	if got := cellValues(snap, 2); got[1] != "" {
		t.Errorf("missing Account.Name = %q, want blank", got[1])
	}
	if svc.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d, want 1", svc.SessionCount())
	}
}

func TestOpenSession_Errors(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{err: errSourceDown}))
	svc := NewService(ServiceConfig{})

	_, err := svc.OpenSession(context.Background(), "missing")
	if !errors.Is(err, ErrViewNotFound) {
		t.Errorf("unknown view error = %v, want ErrViewNotFound", err)
	}

	_, err = svc.OpenSession(context.Background(), "opportunities")
	if err == nil {
		t.Fatal("OpenSession() expected source error")
	}
	if got := MapError(err).Code; got != "SRC004" {
		t.Errorf("MapError code = %q, want SRC004", got)
	}
	if svc.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0 after failures", svc.SessionCount())
	}
}

func TestOpenSession_EmptySourceIsUnavailable(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{}))
	svc := NewService(ServiceConfig{})

	snap, err := svc.OpenSession(context.Background(), "opportunities")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if snap.Available {
		t.Error("Available = true, want false")
	}
	if len(snap.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(snap.Rows))
	}
	if len(snap.Diagnostics) != 1 || snap.Diagnostics[0] != datatable.ErrNoRecords.Error() {
		t.Errorf("Diagnostics = %v", snap.Diagnostics)
	}

	// Sorting an unavailable table is a no-op, not an error.
	if _, err := svc.Toggle(context.Background(), snap.SessionID, "col1"); err != nil {
		t.Errorf("Toggle() error = %v", err)
	}
}

func TestSortAndToggle(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{})
	ctx := context.Background()

	snap, err := svc.OpenSession(ctx, "opportunities")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	id := snap.SessionID

	snap, err = svc.Toggle(ctx, id, "col2")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got := cellValues(snap, 1); got[0] != "50" || got[2] != "100" {
		t.Errorf("ascending Amount = %v, want [50 75 100]", got)
	}
	if snap.Columns[1].Direction != datatable.Descending || !snap.Columns[1].Active {
		t.Errorf("column state after toggle = %+v", snap.Columns[1])
	}

	snap, err = svc.Toggle(ctx, id, "col2")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got := cellValues(snap, 1); got[0] != "100" || got[2] != "50" {
		t.Errorf("descending Amount = %v, want [100 75 50]", got)
	}

	snap, err = svc.Sort(ctx, id, datatable.SortRequest{ColumnID: "bogus", Direction: datatable.Ascending})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if got := cellValues(snap, 0); got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("fallback sort on first column = %v, want [A B C]", got)
	}

	again, err := svc.Snapshot(ctx, id)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if cellValues(again, 0)[0] != "A" {
		t.Error("Snapshot() did not return the sorted rows")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{})
	ctx := context.Background()

	first, _ := svc.OpenSession(ctx, "opportunities")
	second, _ := svc.OpenSession(ctx, "opportunities")

	if _, err := svc.Toggle(ctx, first.SessionID, "col1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	snap, err := svc.Snapshot(ctx, second.SessionID)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if cellValues(snap, 0)[0] != "B" {
		t.Error("sorting one session changed another")
	}
}

func TestCloseSession(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{})
	ctx := context.Background()

	snap, _ := svc.OpenSession(ctx, "opportunities")
	if err := svc.CloseSession(snap.SessionID); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}

	if _, err := svc.Snapshot(ctx, snap.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot() after close error = %v, want ErrSessionNotFound", err)
	}
	if err := svc.CloseSession(snap.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second CloseSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestExpireIdle(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{SessionTTL: time.Minute})
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	idle, _ := svc.OpenSession(ctx, "opportunities")
	busy, _ := svc.OpenSession(ctx, "opportunities")

	now = now.Add(50 * time.Second)
	if _, err := svc.Snapshot(ctx, busy.SessionID); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	now = now.Add(30 * time.Second)
	if got := svc.ExpireIdle(); got != 1 {
		t.Errorf("ExpireIdle() = %d, want 1", got)
	}

	if _, err := svc.Snapshot(ctx, idle.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session error = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Snapshot(ctx, busy.SessionID); err != nil {
		t.Errorf("busy session error = %v", err)
	}
}

func TestMaxSessions(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{MaxSessions: 2, SessionTTL: time.Minute})
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if _, err := svc.OpenSession(ctx, "opportunities"); err != nil {
			t.Fatalf("OpenSession() #%d error = %v", i, err)
		}
	}

	if _, err := svc.OpenSession(ctx, "opportunities"); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("third OpenSession() error = %v, want ErrTooManySessions", err)
	}

	// Idle sessions are reclaimed to make room.
	now = now.Add(2 * time.Minute)
	if _, err := svc.OpenSession(ctx, "opportunities"); err != nil {
		t.Errorf("OpenSession() after idle expiry error = %v", err)
	}
	if got := svc.SessionCount(); got != 1 {
		t.Errorf("SessionCount() = %d, want 1", got)
	}
}

func TestConcurrentSorts(t *testing.T) {
	setupRegistry(t, opportunityView(&fakeSource{records: opportunityRecords()}))
	svc := NewService(ServiceConfig{})
	ctx := context.Background()

	snap, err := svc.OpenSession(ctx, "opportunities")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			col := datatable.ColumnID("col1")
			if i%2 == 0 {
				col = "col3"
			}
			if _, err := svc.Toggle(ctx, snap.SessionID, col); err != nil {
				t.Errorf("Toggle() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	final, err := svc.Snapshot(ctx, snap.SessionID)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(final.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3", len(final.Rows))
	}
}

func TestStartSessionSweeper_StopsOnCancel(t *testing.T) {
	svc := NewService(ServiceConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestListViewsByGroup(t *testing.T) {
	setupRegistry(t,
		opportunityView(nil),
		ViewDefinition{Info: ViewInfo{Key: "accounts", Group: "CRM"}},
	)
	svc := NewService(ServiceConfig{})

	grouped := svc.ListViewsByGroup()
	if len(grouped["Sales"]) != 1 || len(grouped["CRM"]) != 1 {
		t.Errorf("ListViewsByGroup() = %v", grouped)
	}
	if got := len(svc.ListViews()); got != 2 {
		t.Errorf("len(ListViews()) = %d, want 2", got)
	}
}

// blockingSource holds every load until release is closed.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) Records(ctx context.Context) ([]datatable.Record, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		return opportunityRecords(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingSource) Describe() string { return "blocking" }

func TestOpenSession_LoadLimit(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}, 2), release: make(chan struct{})}
	setupRegistry(t, opportunityView(src))
	svc := NewService(ServiceConfig{MaxConcurrentLoads: 1, LoadWait: 20 * time.Millisecond})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.OpenSession(ctx, "opportunities")
		done <- err
	}()
	<-src.started

	if got := svc.ActiveLoads(); got != 1 {
		t.Errorf("ActiveLoads() = %d, want 1", got)
	}

	_, err := svc.OpenSession(ctx, "opportunities")
	if !errors.Is(err, ErrTooManyLoads) {
		t.Errorf("second OpenSession() error = %v, want ErrTooManyLoads", err)
	}
	if got := MapError(err).Code; got != "SES003" {
		t.Errorf("MapError code = %q, want SES003", got)
	}

	close(src.release)
	if err := <-done; err != nil {
		t.Errorf("first OpenSession() error = %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := svc.WaitForLoads(waitCtx); err != nil {
		t.Errorf("WaitForLoads() error = %v", err)
	}
}
