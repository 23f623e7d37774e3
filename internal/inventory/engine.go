// Package inventory is the engine facade: it owns one store handle, runs
// every use case in a single transaction and reports committed changes to a
// notifier.
package inventory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/metrics"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/notify"
)

// State is the lifecycle state of the engine's store handle.
type State int

const (
	Closed State = iota
	Creating
	Opening
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Creating:
		return "creating"
	case Opening:
		return "opening"
	case Open:
		return "open"
	}
	return "unknown"
}

// DefaultAdminUser is the account bootstrapped by Create.
const DefaultAdminUser = "admin"

type Option func(*Engine)

func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock sets the time source for creation and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithAdminUser sets the username of the account created with a new store.
func WithAdminUser(username string) Option {
	return func(e *Engine) { e.adminUser = username }
}

// Engine is safe for concurrent use. Reads share the handle; writes are
// serialized by the single database connection.
type Engine struct {
	mu       sync.RWMutex
	state    State
	db       *sql.DB
	location string
	storeID  string

	notifier  notify.Notifier
	metrics   *metrics.EngineMetrics
	now       func() time.Time
	log       zerolog.Logger
	adminUser string
}

func New(opts ...Option) *Engine {
	e := &Engine{
		notifier:  notify.Discard,
		now:       time.Now,
		log:       zerolog.Nop(),
		adminUser: DefaultAdminUser,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// StoreID returns the identity of the open store, or "" when closed.
func (e *Engine) StoreID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.storeID
}

// Location returns the path of the open store, or "" when closed.
func (e *Engine) Location() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.location
}

// Credentials is the admin account created together with a store.
type Credentials struct {
	Username string
	Password string
}

// Create makes a new store at location and opens it. The returned
// credentials are the only copy of the admin password.
func (e *Engine) Create(ctx context.Context, location string) (creds *Credentials, err error) {
	start := time.Now()
	defer func() { e.metrics.Observe("create_store", err, time.Since(start)) }()

	if err := e.begin(Creating); err != nil {
		return nil, err
	}

	database, err := db.Create(ctx, location, e.now())
	if err != nil {
		e.abort()
		return nil, err
	}

	creds, err = bootstrapAdmin(ctx, database, e.adminUser)
	if err == nil {
		err = e.finishOpen(ctx, database, location)
	}
	if err != nil {
		database.Close()
		db.Remove(location)
		e.abort()
		return nil, storageFailure(err, "initializing store")
	}

	e.log.Debug().Str("location", location).Msg("store created")
	e.emit(ctx, model.Event{Kind: model.EventStoreCreated, Location: location})
	return creds, nil
}

// Open opens an existing store at location.
func (e *Engine) Open(ctx context.Context, location string) (err error) {
	start := time.Now()
	defer func() { e.metrics.Observe("open_store", err, time.Since(start)) }()

	if err := e.begin(Opening); err != nil {
		return err
	}

	database, err := db.OpenExisting(ctx, location)
	if err != nil {
		e.abort()
		return err
	}

	if err := e.finishOpen(ctx, database, location); err != nil {
		database.Close()
		e.abort()
		return pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "reading store identity")
	}

	e.emit(ctx, model.Event{Kind: model.EventStoreOpened, Location: location})
	return nil
}

// Close releases the store handle. It fails unless the store is open.
func (e *Engine) Close(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { e.metrics.Observe("close_store", err, time.Since(start)) }()

	e.mu.Lock()
	if e.state != Open {
		e.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeStoreNotOpen, "store is not open")
	}
	database, storeID := e.db, e.storeID
	e.db, e.location, e.storeID = nil, "", ""
	e.state = Closed
	e.mu.Unlock()

	if err := database.Close(); err != nil {
		e.log.Error().Err(err).Str("store_id", storeID).Msg("closing store")
	}

	e.emit(ctx, model.Event{Kind: model.EventStoreClosed, StoreID: storeID})
	return nil
}

// begin moves a closed engine into a transitional state.
func (e *Engine) begin(next State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Closed {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "store already %s", e.state)
	}
	e.state = next
	return nil
}

func (e *Engine) abort() {
	e.mu.Lock()
	e.state = Closed
	e.mu.Unlock()
}

func (e *Engine) finishOpen(ctx context.Context, database *sql.DB, location string) error {
	storeID, err := db.StoreID(ctx, database)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.db, e.location, e.storeID = database, location, storeID
	e.state = Open
	e.mu.Unlock()
	return nil
}

// handle returns the open database or STORE_NOT_OPEN. The read lock is
// held until release is called so Close waits for in-flight operations.
func (e *Engine) handle() (database *sql.DB, release func(), err error) {
	e.mu.RLock()
	if e.state != Open {
		e.mu.RUnlock()
		return nil, nil, pkgerrors.New(pkgerrors.CodeStoreNotOpen, "store is not open")
	}
	return e.db, e.mu.RUnlock, nil
}

// write runs fn in one transaction against the open store.
func (e *Engine) write(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	start := time.Now()
	defer func() { e.metrics.Observe(op, err, time.Since(start)) }()

	database, release, err := e.handle()
	if err != nil {
		return err
	}
	defer release()

	return classify(db.WithTx(ctx, database, fn), op)
}

// read runs fn against the open store without a transaction.
func (e *Engine) read(ctx context.Context, op string, fn func(q db.Querier) error) (err error) {
	start := time.Now()
	defer func() { e.metrics.Observe(op, err, time.Since(start)) }()

	database, release, err := e.handle()
	if err != nil {
		return err
	}
	defer release()

	return classify(fn(database), op)
}

// emit stamps and delivers an event. It must only be called after commit.
func (e *Engine) emit(ctx context.Context, ev model.Event) {
	if ev.StoreID == "" {
		ev.StoreID = e.StoreID()
	}
	if ev.At.IsZero() {
		ev.At = e.now()
	}
	e.notifier.Notify(ctx, ev)
}

func (e *Engine) recordHistory(entries ...*model.HistoryEntry) {
	for _, entry := range entries {
		if entry != nil {
			e.metrics.IncHistory(string(entry.Field))
		}
	}
}

// classify passes coded errors through and turns anything else into a
// storage failure.
func classify(err error, op string) error {
	if err == nil || pkgerrors.As(err) != nil {
		return err
	}
	return storageFailure(err, op)
}

func storageFailure(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, msg)
}
