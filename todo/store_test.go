package todo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yata-app/yata/kv"
)

var errWriteRefused = errors.New("write refused")

// countingMedium wraps a Medium and records physical writes.
type countingMedium struct {
	kv.Medium

	mu         sync.Mutex
	setCalls   int
	lastValue  string
	setFailure error
}

func newCountingMedium() *countingMedium {
	return &countingMedium{Medium: kv.NewMemory()}
}

func (m *countingMedium) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.setCalls++
	m.lastValue = value
	failure := m.setFailure
	m.mu.Unlock()

	if failure != nil {
		return failure
	}
	return m.Medium.Set(ctx, key, value)
}

func (m *countingMedium) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

func (m *countingMedium) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastValue
}

const testWindow = 20 * time.Millisecond

func newTestTodoStore(medium kv.Medium) *TodoStore {
	return NewTodoStore(Options{Medium: medium, DebounceWindow: testWindow})
}

// waitForWrites polls until the medium has seen at least n writes.
func waitForWrites(t *testing.T, medium *countingMedium, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for medium.writes() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d writes, saw %d", n, medium.writes())
		}
		time.Sleep(time.Millisecond)
	}
}

func newDayTodo(id, title string, day time.Time) Todo {
	return Todo{
		ID:           id,
		Title:        title,
		CreatedAt:    time.Now(),
		ScheduledFor: day,
	}
}

func TestTodoStore_Scenario(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	store.Upsert(ctx, newDayTodo("t1", "Buy milk", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))

	todos := store.GetTodos(ctx)
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	if todos[0].ID != "t1" {
		t.Errorf("expected id t1, got %q", todos[0].ID)
	}
	if todos[0].CompletedAt != nil {
		t.Error("expected completedAt to be absent")
	}

	store.SoftDelete(ctx, "t1")

	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected empty result after soft delete, got %d", len(got))
	}

	deleted, ok := store.GetTodo(ctx, "t1")
	if !ok {
		t.Fatal("expected GetTodo to still find the soft-deleted record")
	}
	if !deleted.Deleted {
		t.Error("expected Deleted to be true")
	}
}

func TestTodoStore_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	store.Upsert(ctx, newDayTodo("t1", "first", time.Now()))

	// The durable write has not fired yet; the cache must already serve it.
	if got := store.GetTodos(ctx); len(got) != 1 {
		t.Fatalf("expected own write to be visible immediately, got %d todos", len(got))
	}
}

func TestTodoStore_Restore(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())
	original := newDayTodo("t1", "restorable", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	original.Notes = "keep me"
	store.Upsert(ctx, original)

	store.SoftDelete(ctx, "t1")
	store.Restore(ctx, "t1")

	todos := store.GetTodos(ctx)
	if len(todos) != 1 {
		t.Fatalf("expected restored todo to be visible, got %d", len(todos))
	}
	if todos[0].Notes != "keep me" {
		t.Errorf("restore must not change other fields, got %+v", todos[0])
	}
	if todos[0].Deleted {
		t.Error("expected Deleted to be cleared")
	}
}

func TestTodoStore_RestoreNoOps(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	store := newTestTodoStore(medium)

	// Unknown id and non-deleted id both no-op without scheduling writes.
	store.Restore(ctx, "ghost")
	store.Upsert(ctx, newDayTodo("t1", "live", time.Now()))
	waitForWrites(t, medium, 1)
	before := medium.writes()
	store.Restore(ctx, "t1")
	time.Sleep(3 * testWindow)
	if medium.writes() != before {
		t.Errorf("restore of non-deleted id should not write, writes went %d -> %d", before, medium.writes())
	}
}

func TestTodoStore_HardDeleteFinality(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()

	store := newTestTodoStore(medium)
	store.Upsert(ctx, newDayTodo("t1", "doomed", time.Now()))
	store.HardDelete(ctx, "t1")

	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected no todos, got %d", len(got))
	}
	if _, ok := store.GetTodo(ctx, "t1"); ok {
		t.Error("expected GetTodo to miss after hard delete")
	}

	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// A forced reload from the same medium must not resurrect it.
	reloaded := newTestTodoStore(medium)
	if got := reloaded.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected hard delete to survive reload, got %d todos", len(got))
	}
	if _, ok := reloaded.GetTodo(ctx, "t1"); ok {
		t.Error("expected reloaded store to miss the hard-deleted id")
	}
}

func TestTodoStore_SoftDeleteSurvivesReload(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()

	store := newTestTodoStore(medium)
	completed := time.Date(2024, 4, 2, 11, 0, 0, 0, time.UTC)
	item := newDayTodo("t1", "done then deleted", time.Now())
	item.CompletedAt = &completed
	store.Upsert(ctx, item)
	store.SoftDelete(ctx, "t1")
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	reloaded := newTestTodoStore(medium)
	got, ok := reloaded.GetTodo(ctx, "t1")
	if !ok {
		t.Fatal("expected soft-deleted record to survive reload")
	}
	if !got.Deleted {
		t.Error("expected Deleted flag to persist")
	}
	// Completion state is preserved for potential restore.
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completed) {
		t.Errorf("expected completedAt to persist, got %v", got.CompletedAt)
	}
}

func TestTodoStore_DebounceCollapse(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	store := newTestTodoStore(medium)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		store.Upsert(ctx, newDayTodo([]string{"a", "b", "c", "d", "e"}[i], "burst", day))
	}

	waitForWrites(t, medium, 1)
	time.Sleep(3 * testWindow)

	if got := medium.writes(); got != 1 {
		t.Errorf("expected the burst to collapse into one physical write, got %d", got)
	}

	var env envelope
	if err := json.Unmarshal([]byte(medium.last()), &env); err != nil {
		t.Fatalf("parse written snapshot: %v", err)
	}
	if len(env.Records) != 5 {
		t.Errorf("expected the single write to contain all 5 todos, got %d records", len(env.Records))
	}
	if env.Version != snapshotVersion {
		t.Errorf("expected version %d, got %d", snapshotVersion, env.Version)
	}
}

func TestTodoStore_DebounceWindowLosesUnflushedWrites(t *testing.T) {
	// Process termination inside the debounce window loses mutations made
	// since the last successful write. That is the accepted trade-off:
	// abandoning the store without Flush/Close models a killed process.
	ctx := context.Background()
	medium := newCountingMedium()
	store := newTestTodoStore(medium)

	store.Upsert(ctx, newDayTodo("t1", "never persisted", time.Now()))
	// No flush, no wait: simulate exit before the timer fires.

	reloaded := newTestTodoStore(medium)
	if got := reloaded.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected unflushed write to be absent after 'restart', got %d", len(got))
	}
	_ = store // keep the first store alive until here
}

func TestTodoStore_SortOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	store.Upsert(ctx, newDayTodo("t1", "day 1", day(1)))
	store.Upsert(ctx, newDayTodo("t3", "day 3", day(3)))
	store.Upsert(ctx, newDayTodo("t2", "day 2", day(2)))

	todos := store.GetTodos(ctx)
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i, want := range []string{"t1", "t2", "t3"} {
		if todos[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, todos[i].ID)
		}
	}
}

func TestTodoStore_SortStableOnEqualKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"z", "m", "a"} {
		store.Upsert(ctx, newDayTodo(id, "same day", day))
	}

	todos := store.GetTodos(ctx)
	for i, want := range []string{"z", "m", "a"} {
		if todos[i].ID != want {
			t.Errorf("position %d: expected insertion order %s, got %s", i, want, todos[i].ID)
		}
	}
}

func TestTodoStore_LoadDegradation(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	if err := medium.Medium.Set(ctx, TodosKey, "{not json"); err != nil {
		t.Fatalf("seed medium: %v", err)
	}

	store := newTestTodoStore(medium)
	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected empty result from malformed snapshot, got %d", len(got))
	}

	// The loaded flag is sticky: fixing the medium afterwards changes
	// nothing for this instance.
	seedSnapshot(t, medium.Medium, TodosKey, []Todo{newDayTodo("t1", "late", time.Now())})
	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected no re-read after a failed load, got %d todos", len(got))
	}
}

func TestTodoStore_SkipsBadRecordsKeepsRest(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()

	good, err := json.Marshal(encodeTodo(newDayTodo("t-good", "fine", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))))
	if err != nil {
		t.Fatal(err)
	}
	value := `{"version":1,"records":[` +
		`{"id":"t-bad","title":"no timestamps","deleted":false},` +
		`{"id":42,"title":"wrong type","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-01T00:00:00.000Z","deleted":false},` +
		string(good) + `]}`
	if err := medium.Set(ctx, TodosKey, value); err != nil {
		t.Fatal(err)
	}

	store := newTestTodoStore(medium)
	todos := store.GetTodos(ctx)
	if len(todos) != 1 {
		t.Fatalf("expected only the good record to load, got %d", len(todos))
	}
	if todos[0].ID != "t-good" {
		t.Errorf("expected t-good, got %q", todos[0].ID)
	}
}

func TestTodoStore_LegacyArrayMigration(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()

	// Version-0 snapshots are a bare JSON array of records.
	legacy := `[{"id":"t1","title":"old","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z","deleted":false}]`
	if err := medium.Medium.Set(ctx, TodosKey, legacy); err != nil {
		t.Fatal(err)
	}

	store := newTestTodoStore(medium)
	todos := store.GetTodos(ctx)
	if len(todos) != 1 || todos[0].ID != "t1" {
		t.Fatalf("expected legacy record to load, got %+v", todos)
	}

	// The next persisted snapshot is the current envelope version.
	store.Upsert(ctx, todos[0])
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !strings.Contains(medium.last(), `"version":1`) {
		t.Errorf("expected migrated snapshot to carry version 1: %s", medium.last())
	}
}

func TestTodoStore_FutureVersionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()
	if err := medium.Set(ctx, TodosKey, `{"version":99,"records":[{"id":"t1"}]}`); err != nil {
		t.Fatal(err)
	}

	store := newTestTodoStore(medium)
	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected future-version snapshot to degrade to empty, got %d", len(got))
	}
}

func TestTodoStore_Clear(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	store := newTestTodoStore(medium)

	store.Upsert(ctx, newDayTodo("t1", "cleared", time.Now()))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if got := store.GetTodos(ctx); len(got) != 0 {
		t.Errorf("expected empty store after clear, got %d", len(got))
	}

	// The key is gone immediately and the pending debounce write was
	// canceled, so nothing resurrects the cleared state.
	time.Sleep(3 * testWindow)
	if _, ok, _ := medium.Get(ctx, TodosKey); ok {
		t.Error("expected durable key to stay deleted after the debounce window")
	}
}

func TestTodoStore_FlushForcesPendingWrite(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	store := newTestTodoStore(medium)

	store.Upsert(ctx, newDayTodo("t1", "flush me", time.Now()))
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if medium.writes() != 1 {
		t.Errorf("expected exactly one write after flush, got %d", medium.writes())
	}

	// Nothing pending: flush and Close are no-ops.
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if medium.writes() != 1 {
		t.Errorf("expected no extra writes, got %d", medium.writes())
	}
}

func TestTodoStore_PersistFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	medium := newCountingMedium()
	medium.setFailure = errWriteRefused
	store := newTestTodoStore(medium)

	store.Upsert(ctx, newDayTodo("t1", "still cached", time.Now()))
	waitForWrites(t, medium, 1)

	// The write failed but the cache remains the source of truth.
	if got := store.GetTodos(ctx); len(got) != 1 {
		t.Errorf("expected cache to survive persist failure, got %d todos", len(got))
	}

	// The next mutation re-triggers a write attempt with current state.
	medium.mu.Lock()
	medium.setFailure = nil
	medium.mu.Unlock()
	store.Upsert(ctx, newDayTodo("t2", "second", time.Now()))
	waitForWrites(t, medium, 2)

	var env envelope
	if err := json.Unmarshal([]byte(medium.last()), &env); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	if len(env.Records) != 2 {
		t.Errorf("expected retried write to carry both todos, got %d", len(env.Records))
	}
}

func TestTodoStore_UpsertReplacesWholeEntity(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	first := newDayTodo("t1", "original", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	first.Notes = "some notes"
	store.Upsert(ctx, first)

	// Upsert with the same id fully replaces the record; there is no
	// partial-field merge.
	second := newDayTodo("t1", "replaced", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	store.Upsert(ctx, second)

	todos := store.GetTodos(ctx)
	if len(todos) != 1 {
		t.Fatalf("expected id uniqueness to hold, got %d todos", len(todos))
	}
	if todos[0].Title != "replaced" || todos[0].Notes != "" {
		t.Errorf("expected full replacement, got %+v", todos[0])
	}
}

func TestTodoStore_DeleteUnknownIDsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newTestTodoStore(kv.NewMemory())

	// None of these panic or error.
	store.SoftDelete(ctx, "ghost")
	store.HardDelete(ctx, "ghost")
	store.Restore(ctx, "ghost")
	if _, ok := store.GetTodo(ctx, "ghost"); ok {
		t.Error("expected lookup miss")
	}
}

// seedSnapshot writes a well-formed version-1 snapshot directly to the medium.
func seedSnapshot(t *testing.T, medium kv.Medium, key string, todos []Todo) {
	t.Helper()

	env := envelope{Version: snapshotVersion}
	for _, item := range todos {
		raw, err := json.Marshal(encodeTodo(item))
		if err != nil {
			t.Fatalf("encode seed todo: %v", err)
		}
		env.Records = append(env.Records, raw)
	}
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal seed snapshot: %v", err)
	}
	if err := medium.Set(context.Background(), key, string(data)); err != nil {
		t.Fatalf("seed medium: %v", err)
	}
}

// stallingMedium blocks its first Set until released, simulating a slow
// durable write still in flight when a later one fires.
type stallingMedium struct {
	kv.Medium

	mu        sync.Mutex
	setCalls  int
	lastValue string
	entered   chan struct{}
	release   chan struct{}
}

func newStallingMedium() *stallingMedium {
	return &stallingMedium{
		Medium:  kv.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *stallingMedium) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.setCalls++
	first := m.setCalls == 1
	m.mu.Unlock()

	if first {
		close(m.entered)
		<-m.release
	}

	m.mu.Lock()
	m.lastValue = value
	m.mu.Unlock()
	return m.Medium.Set(ctx, key, value)
}

func (m *stallingMedium) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

func (m *stallingMedium) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastValue
}

func TestTodoStore_SlowWriteCannotClobberNewerState(t *testing.T) {
	medium := newStallingMedium()
	store := newTestTodoStore(medium)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	store.Upsert(ctx, newDayTodo("t1", "first", day))

	select {
	case <-medium.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first write to start")
	}

	// A second mutation schedules another persist while the first write
	// is still in flight.
	store.Upsert(ctx, newDayTodo("t2", "second", day))
	close(medium.release)

	deadline := time.Now().Add(2 * time.Second)
	for medium.writes() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for 2 writes, saw %d", medium.writes())
		}
		time.Sleep(time.Millisecond)
	}

	// The write that lands last must carry the newer state.
	if final := medium.last(); !strings.Contains(final, `"t2"`) {
		t.Fatalf("final durable state is stale: %s", final)
	}
}
