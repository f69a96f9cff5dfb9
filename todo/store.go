package todo

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/yata-app/yata/kv"
)

const (
	// TodosKey is the durable medium key holding the todo snapshot.
	TodosKey = "yata.todos"

	// ListsKey is the durable medium key holding the list snapshot.
	ListsKey = "yata.lists"

	// snapshotVersion is the envelope version this build writes.
	snapshotVersion = 1

	// DefaultDebounceWindow is the quiet period before a scheduled
	// persist fires. Mutations within the window collapse into one write.
	DefaultDebounceWindow = 300 * time.Millisecond
)

// Options configures a store.
type Options struct {
	// Medium is the durable key-value store backing the cache. Required.
	Medium kv.Medium

	// Logger receives load/persist failures and skipped-record warnings.
	// If nil, logging is discarded.
	Logger *log.Logger

	// DebounceWindow overrides DefaultDebounceWindow when positive.
	DebounceWindow time.Duration
}

func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = DefaultDebounceWindow
	}
	return o
}

// envelope is the top-level JSON value stored under a medium key.
// Version 0 snapshots (written before the envelope existed) are a bare
// JSON array of records and are migrated on load.
type envelope struct {
	Version int               `json:"version"`
	Records []json.RawMessage `json:"records"`
}

// hooks adapts the generic cache to one entity kind.
type hooks[E any] struct {
	id         func(E) string
	deleted    func(E) bool
	setDeleted func(E, bool) E
	sortKey    func(E) time.Time
	encode     func(E) (json.RawMessage, error)
	decode     func(json.RawMessage) (E, error)
}

// cache is the shared core of TodoStore and ListStore: a lazily-loaded
// map of entities keyed by id, with debounced full-snapshot persistence.
//
// The mutex makes every operation atomic with respect to the cache; a
// caller that finishes a mutating call and then reads is guaranteed to see
// its own write even though the durable write is still pending.
type cache[E any] struct {
	key    string
	medium kv.Medium
	logger *log.Logger
	window time.Duration
	hooks  hooks[E]

	// writeMu serializes writes to the medium. It is taken before the
	// snapshot, so a slow write from an earlier debounce fire can never
	// land after a later one and leave stale durable state.
	writeMu sync.Mutex

	mu       sync.Mutex
	loaded   bool
	entities map[string]E
	// arrival records insertion order into the cache so that equal sort
	// keys keep a stable relative order within one process lifetime.
	arrival map[string]int
	nextSeq int
	timer   *time.Timer
	dirty   bool
}

func newCache[E any](key string, opts Options, h hooks[E]) *cache[E] {
	opts = opts.normalize()
	return &cache[E]{
		key:      key,
		medium:   opts.Medium,
		logger:   opts.Logger,
		window:   opts.DebounceWindow,
		hooks:    h,
		entities: make(map[string]E),
		arrival:  make(map[string]int),
	}
}

// ensureLoaded populates the cache from the durable medium on first use.
// The loaded flag is sticky: it is set even when the read fails or the
// payload is malformed, so one bad load degrades to an empty cache instead
// of a retry storm. Callers must hold c.mu.
func (c *cache[E]) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	// Load is attempted at most once per process lifetime.
	c.loaded = true

	value, ok, err := c.medium.Get(ctx, c.key)
	if err != nil {
		c.logger.Error("load failed, starting empty", "key", c.key, "err", err)
		return
	}
	if !ok || strings.TrimSpace(value) == "" {
		return
	}

	records, err := decodeEnvelope(value)
	if err != nil {
		c.logger.Error("snapshot unreadable, starting empty", "key", c.key, "err", err)
		return
	}

	for i, raw := range records {
		entity, err := c.hooks.decode(raw)
		if err != nil {
			c.logger.Warn("skipping unreadable record", "key", c.key, "record", i, "err", err)
			continue
		}
		id := c.hooks.id(entity)
		if _, exists := c.entities[id]; !exists {
			c.arrival[id] = c.nextSeq
			c.nextSeq++
		}
		c.entities[id] = entity
	}
}

// decodeEnvelope parses the stored value into raw records. A bare array is
// accepted as a version-0 snapshot.
func decodeEnvelope(value string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "[") {
		var records []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, err
	}
	if env.Version > snapshotVersion {
		return nil, ErrUnsupportedVersion
	}
	return env.Records, nil
}

// getAll returns all non-deleted entities sorted ascending by the natural
// key, insertion order breaking ties.
func (c *cache[E]) getAll(ctx context.Context) []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	visible := make([]E, 0, len(c.entities))
	for _, entity := range c.entities {
		if !c.hooks.deleted(entity) {
			visible = append(visible, entity)
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		return c.arrival[c.hooks.id(visible[i])] < c.arrival[c.hooks.id(visible[j])]
	})
	sort.SliceStable(visible, func(i, j int) bool {
		return c.hooks.sortKey(visible[i]).Before(c.hooks.sortKey(visible[j]))
	})
	return visible
}

// getOne returns the entity by id regardless of its deleted flag. Mutation
// flows (toggle-complete, edit, restore) must find soft-deleted records, so
// this deliberately does not mirror getAll's visibility filter.
func (c *cache[E]) getOne(ctx context.Context, id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	entity, ok := c.entities[id]
	return entity, ok
}

// upsert inserts or fully replaces the entity by id and schedules a
// persist. The cache mutation is complete when upsert returns; only the
// durable write is deferred.
func (c *cache[E]) upsert(ctx context.Context, entity E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	id := c.hooks.id(entity)
	if _, exists := c.entities[id]; !exists {
		c.arrival[id] = c.nextSeq
		c.nextSeq++
	}
	c.entities[id] = entity
	c.schedulePersist()
}

// softDelete marks the entity deleted. Unknown ids are a silent no-op.
func (c *cache[E]) softDelete(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	entity, ok := c.entities[id]
	if !ok {
		return
	}
	c.entities[id] = c.hooks.setDeleted(entity, true)
	c.schedulePersist()
}

// hardDelete removes the entity from the cache entirely.
func (c *cache[E]) hardDelete(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	delete(c.entities, id)
	delete(c.arrival, id)
	c.schedulePersist()
}

// restore clears the deleted flag on a soft-deleted entity. Unknown or
// non-deleted ids are a no-op.
func (c *cache[E]) restore(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	entity, ok := c.entities[id]
	if !ok || !c.hooks.deleted(entity) {
		return
	}
	c.entities[id] = c.hooks.setDeleted(entity, false)
	c.schedulePersist()
}

// clear empties the cache and deletes the durable key immediately, without
// waiting for the debounce window. A pending persist is canceled so it
// cannot resurrect the cleared state.
func (c *cache[E]) clear(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.dirty = false
	c.entities = make(map[string]E)
	c.arrival = make(map[string]int)
	c.nextSeq = 0
	c.mu.Unlock()

	return c.medium.Delete(ctx, c.key)
}

// schedulePersist (re)starts the debounce timer. Callers must hold c.mu.
func (c *cache[E]) schedulePersist() {
	c.dirty = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() {
		c.persist(context.Background())
	})
}

// persist writes the full current cache contents to the medium. The
// snapshot is taken at fire time, so it always reflects the latest state.
// Write failures are logged only; the cache stays authoritative and the
// next mutation schedules another attempt.
func (c *cache[E]) persist(ctx context.Context) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = false
	value, err := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("encode snapshot failed", "key", c.key, "err", err)
		return
	}
	if err := c.medium.Set(ctx, c.key, value); err != nil {
		c.logger.Error("persist failed, cache remains authoritative", "key", c.key, "err", err)
	}
}

// snapshotLocked encodes the cache as a versioned envelope in insertion
// order. Callers must hold c.mu.
func (c *cache[E]) snapshotLocked() (string, error) {
	ids := make([]string, 0, len(c.entities))
	for id := range c.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return c.arrival[ids[i]] < c.arrival[ids[j]] })

	env := envelope{Version: snapshotVersion, Records: make([]json.RawMessage, 0, len(ids))}
	for _, id := range ids {
		raw, err := c.hooks.encode(c.entities[id])
		if err != nil {
			return "", err
		}
		env.Records = append(env.Records, raw)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// flush persists pending mutations immediately, canceling the debounce
// timer. It is a no-op when nothing is pending.
func (c *cache[E]) flush(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	c.dirty = false
	value, err := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	return c.medium.Set(ctx, c.key, value)
}

func decodeStorable[S any](schema *jsonschema.Schema, raw json.RawMessage) (S, error) {
	var storable S
	if err := validateRecord(schema, raw); err != nil {
		return storable, err
	}
	if err := json.Unmarshal(raw, &storable); err != nil {
		return storable, err
	}
	return storable, nil
}
