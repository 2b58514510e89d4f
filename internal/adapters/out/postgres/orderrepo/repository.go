package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConflictPolicy decides what happens when two writers update the same order.
type ConflictPolicy int

const (
	// LastWriteWins applies every write; the later one overwrites the columns it sets.
	LastWriteWins ConflictPolicy = iota
	// RejectStale only applies a write made against the version currently stored.
	RejectStale
)

// ParseConflictPolicy accepts "last-write-wins" and "reject". Blank means LastWriteWins.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-write-wins", "lww":
		return LastWriteWins, nil
	case "reject":
		return RejectStale, nil
	default:
		return LastWriteWins, errs.NewValueIsInvalidErrorWithCause(
			"conflictPolicy", fmt.Errorf("%q is not a conflict policy", s),
		)
	}
}

// String returns the name ParseConflictPolicy accepts.
func (p ConflictPolicy) String() string {
	if p == RejectStale {
		return "reject"
	}
	return "last-write-wins"
}

// changeTracker collects the writes of a unit of work.
type changeTracker interface {
	TrackAggregate(id kernel.UUID, op ports.ChangeOp)
}

// Options configure a GormOrderRepository. The zero value is usable.
type Options struct {
	Policy ConflictPolicy
	// Now stamps created orders; defaults to time.Now.
	Now func() time.Time
	// Logger reports rows FindAll cannot read. Defaults to a no-op logger.
	Logger *logger.Logger
	// Metrics counts rows FindAll cannot read. Optional.
	Metrics *metrics.SyncMetrics
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
	policy  ConflictPolicy
	now     func() time.Time
	log     *logger.Logger
	metrics *metrics.SyncMetrics
}

// NewGormOrderRepository creates a repository on db.
//
// Parameters:
//   - db: connection or transaction the repository reads and writes through
//   - tracker: receives every write; usually the unit of work that owns db
//   - opts: conflict policy, clock and reporting of unreadable rows
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker, opts Options) *GormOrderRepository {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		policy:  opts.Policy,
		now:     opts.Now,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
}

// FindAll returns every order, newest first.
// A row that cannot be read back as an order, such as one holding an unknown status
// or a packaging entry without quantity, is left out and reported; the other orders
// are still returned.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, remoteError("find orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			r.log.Warn(ctx, "skipping unreadable order row", "order_id", dto.ID.String(), "error", err.Error())
			r.metrics.ObserveUnreadableRecord()
			continue
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Get loads one order. A missing row yields an errs.ObjectNotFoundError.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, remoteError("get order", err)
	}

	return toDomain(dto)
}

// Add inserts the draft as a PENDING order at version 1. The identifier and creation
// time are assigned here.
func (r *GormOrderRepository) Add(ctx context.Context, draft order.Draft) (*order.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	created, err := draft.Materialize(kernel.NewUUID(), r.now().UTC())
	if err != nil {
		return nil, err
	}

	dto := fromDomain(created)
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, remoteError("create order", err)
	}

	r.tracker.TrackAggregate(created.ID(), ports.ChangeInsert)
	return created, nil
}

// Update writes only the columns of the changed fields and increments the version.
// Archived rows are never written. Under RejectStale the write also requires the
// stored version to match the aggregate's.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.HasChanges() {
		return nil
	}

	columns := changedColumns(aggregate)
	columns["version"] = gorm.Expr("version + 1")

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Where("status <> ?", order.Archived.String())
	if r.policy == RejectStale {
		query = query.Where("version = ?", aggregate.Version())
	}

	result := query.Updates(columns)
	if result.Error != nil {
		return remoteError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), ports.ChangeUpdate)
	return nil
}

// explainMiss reports why an update matched no row.
func (r *GormOrderRepository) explainMiss(ctx context.Context, aggregate *order.Order) error {
	var current OrderDTO
	err := r.db.WithContext(ctx).Select("status", "version").First(&current, "id = ?", aggregate.ID().Bytes()).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	case err != nil:
		return remoteError("update order", err)
	case current.Status == order.Archived.String():
		return order.ErrOrderIsReadOnly
	default:
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("order %s is at version %d, write was based on %d",
				aggregate.ID(), current.Version, aggregate.Version()))
	}
}

// Delete removes the row. Deleting an order that is already gone reports not found.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return remoteError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	r.tracker.TrackAggregate(id, ports.ChangeDelete)
	return nil
}

// remoteError wraps a store failure, keeping the SQLSTATE when Postgres reported one.
func remoteError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.NewRemoteOperationErrorWithCode(operation, pgErr.Code, err)
	}
	return errs.NewRemoteOperationError(operation, err)
}
