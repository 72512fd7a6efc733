package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-greentransit/internal/logging"
	"backend-greentransit/internal/metrics"
	"backend-greentransit/internal/profile"
	"backend-greentransit/internal/store"
	"backend-greentransit/internal/task"
	"backend-greentransit/internal/trip"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrNotRecorded means the operation's writes were discarded as a whole.
var ErrNotRecorded = errors.New("not recorded")

var ErrInvalidCadence = errors.New("invalid task cadence")

// Change feed topics and event types.
const (
	TopicProfile = "profile"
	TopicTasks   = "tasks"

	EventTripRecorded   = "trip.recorded"
	EventProfileCreated = "profile.created"
	EventTasksReset     = "tasks.reset"
)

// Notifier receives change events after a successful commit.
type Notifier interface {
	Notify(ctx context.Context, topic, eventType string, data any) error
}

type Options struct {
	Store        store.Store
	Notifier     Notifier
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Location     *time.Location
	HistoryLimit int
	Now          func() time.Time
}

// Ledger owns the profile, travel history and task list. It is the only
// writer of those keys; writes are serialized.
type Ledger struct {
	store    store.Store
	source   store.Store
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	loc      *time.Location
	limit    int
	now      func() time.Time
	guard    *semaphore.Weighted
}

func New(opts Options) *Ledger {
	l := &Ledger{
		store:    opts.Store,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		log:      logging.OrNop(opts.Logger),
		loc:      opts.Location,
		limit:    opts.HistoryLimit,
		now:      opts.Now,
		guard:    semaphore.NewWeighted(1),
	}
	if l.store == nil {
		l.store = store.NewMemory()
	}
	// Writes read their snapshot behind any cache.
	l.source = store.Authoritative(l.store)
	if l.loc == nil {
		l.loc = time.UTC
	}
	if l.limit <= 0 {
		l.limit = trip.DefaultHistoryLimit
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

func (l *Ledger) lock(ctx context.Context) error {
	if err := l.guard.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	return nil
}

func (l *Ledger) unlock() { l.guard.Release(1) }

type snapshot struct {
	profile profile.UserProfile
	history []trip.TravelRecord
	tasks   []task.Task
	// stored is false when the profile had to be materialized.
	stored bool
}

// load reads the write snapshot from the authoritative store.
func (l *Ledger) load(ctx context.Context) (snapshot, error) {
	var s snapshot
	var err error
	if s.profile, s.stored, err = l.loadProfile(ctx, l.source); err != nil {
		return s, err
	}
	if s.history, err = l.loadHistory(ctx, l.source); err != nil {
		return s, err
	}
	if s.tasks, err = l.loadTasks(ctx, l.source); err != nil {
		return s, err
	}
	return s, nil
}

func (l *Ledger) loadProfile(ctx context.Context, src store.Store) (profile.UserProfile, bool, error) {
	raw, ok, err := src.Load(ctx, store.KeyProfile)
	if err != nil {
		return profile.UserProfile{}, false, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return profile.Default(), false, nil
	}
	var p profile.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		l.log.Warn("stored profile unreadable, using default", zap.Error(err))
		return profile.Default(), false, nil
	}
	if err := p.Validate(); err != nil {
		l.log.Warn("stored profile invalid, using default", zap.Error(err))
		return profile.Default(), false, nil
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p, true, nil
}

func (l *Ledger) loadHistory(ctx context.Context, src store.Store) ([]trip.TravelRecord, error) {
	raw, ok, err := src.Load(ctx, store.KeyTravelRecords)
	if err != nil {
		return nil, fmt.Errorf("load travel records: %w", err)
	}
	if !ok {
		return []trip.TravelRecord{}, nil
	}
	var history []trip.TravelRecord
	if err := json.Unmarshal(raw, &history); err != nil {
		l.log.Warn("stored travel records unreadable, starting empty", zap.Error(err))
		return []trip.TravelRecord{}, nil
	}
	if history == nil {
		history = []trip.TravelRecord{}
	}
	return history, nil
}

func (l *Ledger) loadTasks(ctx context.Context, src store.Store) ([]task.Task, error) {
	raw, ok, err := src.Load(ctx, store.KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return task.Catalog(), nil
	}
	var stored []task.Task
	if err := json.Unmarshal(raw, &stored); err != nil {
		l.log.Warn("stored tasks unreadable, using catalog", zap.Error(err))
		return task.Catalog(), nil
	}
	return task.Normalize(stored), nil
}

// commit encodes and writes every given document in one store commit.
func (l *Ledger) commit(ctx context.Context, docs map[string]any) error {
	entries := make(map[string][]byte, len(docs))
	for key, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			l.metrics.CommitFailed()
			l.log.Error("ledger encode failed", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("%w: encode %s: %w", ErrNotRecorded, key, err)
		}
		entries[key] = raw
	}
	if err := l.store.Commit(ctx, entries); err != nil {
		l.metrics.CommitFailed()
		l.log.Error("ledger commit failed", zap.Int("keys", len(entries)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	return nil
}

func (l *Ledger) notify(ctx context.Context, topic, eventType string, data any) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Notify(ctx, topic, eventType, data); err != nil {
		l.log.Warn("change notification failed", zap.String("topic", topic), zap.String("event", eventType), zap.Error(err))
	}
}
