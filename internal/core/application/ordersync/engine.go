package ordersync

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// ErrMutationIsRequired is returned by Mutate when called without a mutation.
var ErrMutationIsRequired = errs.NewValueIsRequiredError("mutation")

// Options carries the optional collaborators of the engine.
type Options struct {
	Logger  *logger.Logger
	Metrics *metrics.SyncMetrics
}

// Engine is the single owner of the local order snapshot.
//
// The snapshot is replaced wholesale on every refresh and never patched in place.
// Callers receive copies; changing them has no effect on the engine.
//
// Each operator has at most one open order. The reference is kept by identifier, so
// after a refresh it points at the refreshed copy, and it disappears when the order
// does.
type Engine struct {
	uowFactory ports.UnitOfWorkFactory
	log        *logger.Logger
	metrics    *metrics.SyncMetrics

	mu       sync.RWMutex
	snapshot []*order.Order
	selected map[string]kernel.UUID
	issued   uint64
	applied  uint64
}

var _ ports.OrderSync = (*Engine)(nil)

// NewEngine creates an engine with an empty snapshot. Call Refresh to load it.
//
// Parameters:
//   - uowFactory: opens the transaction of every write and reads the store
//   - opts: logger and metrics; both optional
//
// Returns:
//   - *Engine: ready to serve, with nothing selected
//   - error: a validation error when uowFactory is nil
//
// Example:
//
// 	engine, err := ordersync.NewEngine(postgres.NewGormUnitOfWorkFactory(db, postgres.UnitOfWorkOptions{}),
// 	    ordersync.Options{Logger: log})
// 	if err != nil {
// 	    return err
// 	}
// 	if _, err = engine.Refresh(ctx); err != nil {
// 	    return err
// 	}
func NewEngine(uowFactory ports.UnitOfWorkFactory, opts Options) (*Engine, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Engine{
		uowFactory: uowFactory,
		log:        log.Named("ordersync"),
		metrics:    opts.Metrics,
		selected:   make(map[string]kernel.UUID),
	}, nil
}

// Refresh fetches the full order set and replaces the snapshot with it.
//
// If a newer refresh was applied while this one was in flight, its result is dropped
// and the current snapshot is returned instead. On error the snapshot is unchanged.
func (e *Engine) Refresh(ctx context.Context) ([]*order.Order, error) {
	ticket := e.nextTicket()
	started := time.Now()

	orders, err := e.uowFactory.Create().OrderRepository().FindAll(ctx)
	if err != nil {
		e.metrics.ObserveRefresh(metrics.OutcomeFailure, time.Since(started), 0)
		e.log.Error(ctx, "refresh failed", err)
		return nil, err
	}

	if e.apply(ticket, orders) {
		e.metrics.ObserveRefresh(metrics.OutcomeSuccess, time.Since(started), len(orders))
	} else {
		e.metrics.ObserveRefresh(metrics.OutcomeStale, time.Since(started), len(orders))
		e.log.Debug(ctx, "dropped stale refresh", "ticket", ticket)
	}

	return e.Snapshot(), nil
}

// Snapshot returns copies of every known order, newest first.
func (e *Engine) Snapshot() []*order.Order {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*order.Order, len(e.snapshot))
	for i, o := range e.snapshot {
		out[i] = o.Clone()
	}
	return out
}

// Lookup returns a copy of one order from the snapshot. The store is not consulted.
func (e *Engine) Lookup(id kernel.UUID) (*order.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.lookupLocked(id)
}

// Selected returns a copy of the order operator has open, if it is still in the
// snapshot. The name is normalized like every operator name.
func (e *Engine) Selected(operator string) (*order.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	id, ok := e.selected[kernel.NormalizeName(operator)]
	if !ok {
		return nil, false
	}
	return e.lookupLocked(id)
}

// Open selects an order for operator. When nobody has been credited with the order yet,
// the operator becomes its reviewer; this happens on the first open only.
func (e *Engine) Open(ctx context.Context, id kernel.UUID, operator string) (*order.Order, error) {
	current, ok := e.Lookup(id)
	if !ok {
		if _, err := e.Refresh(ctx); err != nil {
			return nil, err
		}
		if current, ok = e.Lookup(id); !ok {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
	}

	operator = kernel.NormalizeName(operator)
	e.mu.Lock()
	e.selected[operator] = id
	e.mu.Unlock()

	if operator == "" || !current.CanMutate() || !current.Reviewers().IsEmpty() {
		return current, nil
	}

	return e.Mutate(ctx, id, func(o *order.Order) error {
		_, err := o.EnsureReviewerAssigned(operator)
		return err
	})
}

// Create stores a new order and refreshes.
func (e *Engine) Create(ctx context.Context, draft order.Draft) (*order.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created *order.Order
	err := e.inTransaction(ctx, func(repo ports.OrderRepository) error {
		var addErr error
		created, addErr = repo.Add(ctx, draft)
		return addErr
	})
	e.metrics.ObserveMutation(opCreate, err)
	if err != nil {
		e.log.Error(ctx, "create failed", err)
		return nil, err
	}

	return e.afterWrite(ctx, created), nil
}

// Mutate applies mutation to a copy of the order and writes the fields it changed.
//
// The mutation runs before any remote call, so validation errors never reach the store.
// Archived orders fail with order.ErrOrderIsReadOnly. A mutation that changes nothing
// is not written. When the write fails the snapshot is left as it was.
func (e *Engine) Mutate(ctx context.Context, id kernel.UUID, mutation ports.Mutation) (*order.Order, error) {
	if mutation == nil {
		return nil, ErrMutationIsRequired
	}

	working, err := e.working(ctx, id)
	if err != nil {
		return nil, err
	}
	if !working.CanMutate() {
		return nil, order.ErrOrderIsReadOnly
	}
	if err = mutation(working); err != nil {
		return nil, err
	}
	if !working.HasChanges() {
		return working, nil
	}

	ctx = e.log.WithOrderID(ctx, id.String())
	err = e.inTransaction(ctx, func(repo ports.OrderRepository) error {
		return repo.Update(ctx, working)
	})
	e.metrics.ObserveMutation(opUpdate, err)
	if err != nil {
		e.log.Error(ctx, "update failed", err, "fields", working.Changes())
		return nil, err
	}

	return e.afterWrite(ctx, working), nil
}

// Delete removes an order permanently. The operator's open reference is cleared first,
// whatever the outcome. A failed delete leaves the snapshot as it was.
func (e *Engine) Delete(ctx context.Context, id kernel.UUID, operator string) error {
	e.mu.Lock()
	delete(e.selected, kernel.NormalizeName(operator))
	e.mu.Unlock()

	ctx = e.log.WithOrderID(ctx, id.String())
	err := e.inTransaction(ctx, func(repo ports.OrderRepository) error {
		return repo.Delete(ctx, id)
	})
	e.metrics.ObserveMutation(opDelete, err)
	if err != nil {
		e.log.Error(ctx, "delete failed", err)
		return err
	}

	if _, err = e.Refresh(ctx); err != nil {
		e.log.Warn(ctx, "refresh after delete failed", "error", err.Error())
	}
	return nil
}

// Listen refreshes on every event of feed until ctx is cancelled or the feed stops.
func (e *Engine) Listen(ctx context.Context, feed ports.ChangeFeed) error {
	return feed.Listen(ctx, func(ctx context.Context, event ports.ChangeEvent) {
		e.metrics.ObserveChangeEvent(string(event.Op))
		e.log.Debug(ctx, "change received", "op", event.Op, "order_id", event.OrderID)

		if _, err := e.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.log.Warn(ctx, "refresh after change failed", "error", err.Error())
		}
	})
}

// working returns a private copy of the order to mutate: the snapshot copy when the
// order is known, otherwise the store's.
func (e *Engine) working(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := e.Lookup(id); ok {
		return o, nil
	}
	return e.uowFactory.Create().OrderRepository().Get(ctx, id)
}

// afterWrite refreshes after an acknowledged write and returns the refreshed copy of
// written. A failed refresh is logged only; the write already happened.
func (e *Engine) afterWrite(ctx context.Context, written *order.Order) *order.Order {
	if _, err := e.Refresh(ctx); err != nil {
		e.log.Warn(ctx, "refresh after write failed", "error", err.Error())
		return written
	}
	if fresh, ok := e.Lookup(written.ID()); ok {
		return fresh
	}
	return written
}

func (e *Engine) inTransaction(ctx context.Context, fn func(repo ports.OrderRepository) error) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow.OrderRepository()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (e *Engine) nextTicket() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.issued++
	return e.issued
}

// apply installs orders as the snapshot unless a newer refresh got there first.
func (e *Engine) apply(ticket uint64, orders []*order.Order) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ticket < e.applied {
		return false
	}

	e.applied = ticket
	e.snapshot = slices.Clone(orders)

	for operator, id := range e.selected {
		if _, ok := e.lookupLocked(id); !ok {
			delete(e.selected, operator)
		}
	}
	return true
}

func (e *Engine) lookupLocked(id kernel.UUID) (*order.Order, bool) {
	idx := slices.IndexFunc(e.snapshot, func(o *order.Order) bool { return o.ID().IsEqual(id) })
	if idx < 0 {
		return nil, false
	}
	return e.snapshot[idx].Clone(), true
}
