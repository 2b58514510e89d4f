// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// packagingNamespace seeds the identifiers of stored packaging entries that were
// written without one.
var packagingNamespace = uuid.MustParse("6f1c43a2-58c5-4d8e-9b5e-2f0a7c3e91d4")

// OrderDTO is the row layout of the orders table. Column names are the ones other
// clients of the same table already use.
type OrderDTO struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderNumber       string       `gorm:"not null"`
	CustomerNumber    string       `gorm:"not null;default:''"`
	CustomerName      string       `gorm:"not null"`
	Locality          string       `gorm:"not null;default:'GENERAL'"`
	Status            string       `gorm:"type:varchar(16);not null;index"`
	DetailedPackaging PackagingDTO `gorm:"type:text"`
	Carrier           string       `gorm:"not null;default:''"`
	Reviewer          string       `gorm:"not null;default:''"`
	Notes             string       `gorm:"not null;default:''"`
	Source            string       `gorm:"type:varchar(16);not null;default:'Manual'"`
	CreatedAt         time.Time    `gorm:"not null;index"`
	Version           int          `gorm:"not null;default:1"`
}

// TableName keeps the table name stable across struct renames.
func (OrderDTO) TableName() string {
	return "orders"
}

// PackagingEntryDTO is one element of the detailed_packaging JSON column.
type PackagingEntryDTO struct {
	ID       string `json:"id,omitempty"`
	Deposit  string `json:"deposit"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// PackagingDTO is stored as a JSON array. NULL and empty strings read as no entries.
type PackagingDTO []PackagingEntryDTO

// Value implements driver.Valuer. A nil slice is stored as an empty array.
func (p PackagingDTO) Value() (driver.Value, error) {
	if p == nil {
		p = PackagingDTO{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner for string and byte columns.
func (p *PackagingDTO) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("detailed_packaging: unsupported type %T", src)
	}

	if len(raw) == 0 {
		*p = nil
		return nil
	}
	return json.Unmarshal(raw, p)
}

// column maps an order field to the column that stores it.
var column = map[order.Field]string{
	order.FieldOrderNumber:    "order_number",
	order.FieldCustomerNumber: "customer_number",
	order.FieldCustomerName:   "customer_name",
	order.FieldLocality:       "locality",
	order.FieldStatus:         "status",
	order.FieldNotes:          "notes",
	order.FieldReviewer:       "reviewer",
	order.FieldDispatch:       "carrier",
	order.FieldPackaging:      "detailed_packaging",
}

func fromDomain(o *order.Order) OrderDTO {
	state := o.State()

	packaging := make(PackagingDTO, 0, state.Packaging.Len())
	for _, entry := range state.Packaging.Entries() {
		packaging = append(packaging, PackagingEntryDTO{
			ID:       entry.ID().String(),
			Deposit:  entry.Deposit(),
			Type:     entry.ParcelType(),
			Quantity: entry.Quantity(),
		})
	}

	return OrderDTO{
		ID:                state.ID.Bytes(),
		OrderNumber:       state.OrderNumber,
		CustomerNumber:    state.CustomerNumber,
		CustomerName:      state.CustomerName,
		Locality:          state.Locality,
		Status:            state.Status.String(),
		DetailedPackaging: packaging,
		Carrier:           state.Dispatch.Encode(),
		Reviewer:          state.Reviewer,
		Notes:             state.Notes,
		Source:            state.Source.String(),
		CreatedAt:         state.CreatedAt,
		Version:           state.Version,
	}
}

// changedColumns returns the column values of the fields o reports as changed.
func changedColumns(o *order.Order) map[string]any {
	dto := fromDomain(o)
	values := map[order.Field]any{
		order.FieldOrderNumber:    dto.OrderNumber,
		order.FieldCustomerNumber: dto.CustomerNumber,
		order.FieldCustomerName:   dto.CustomerName,
		order.FieldLocality:       dto.Locality,
		order.FieldStatus:         dto.Status,
		order.FieldNotes:          dto.Notes,
		order.FieldReviewer:       dto.Reviewer,
		order.FieldDispatch:       dto.Carrier,
		order.FieldPackaging:      dto.DetailedPackaging,
	}

	columns := make(map[string]any, len(o.Changes())+1)
	for _, field := range o.Changes() {
		columns[column[field]] = values[field]
	}
	return columns
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	source, err := order.ParseSource(dto.Source)
	if err != nil {
		return nil, err
	}

	entries := make([]order.PackagingEntry, 0, len(dto.DetailedPackaging))
	for i, e := range dto.DetailedPackaging {
		entry, entryErr := order.RestorePackagingEntry(entryID(dto.ID, i, e.ID), e.Deposit, e.Type, e.Quantity)
		if entryErr != nil {
			return nil, fmt.Errorf("order %s packaging entry %d: %w", id, i, entryErr)
		}
		entries = append(entries, entry)
	}
	packaging, err := order.NewPackagingLedger(entries...)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:             id,
		OrderNumber:    dto.OrderNumber,
		CustomerNumber: dto.CustomerNumber,
		CustomerName:   dto.CustomerName,
		Locality:       dto.Locality,
		Status:         status,
		Packaging:      packaging,
		Dispatch:       order.DecodeDispatch(dto.Carrier),
		Reviewer:       dto.Reviewer,
		Notes:          dto.Notes,
		Source:         source,
		CreatedAt:      dto.CreatedAt,
		Version:        dto.Version,
	})
}

// entryID returns the stored identifier of a packaging entry, or one derived from
// the order and the entry's position so that it stays the same across reads.
func entryID(orderID uuid.UUID, position int, stored string) kernel.UUID {
	if id, err := kernel.UUIDFromString(stored); err == nil {
		return id
	}
	derived := uuid.NewSHA1(packagingNamespace, []byte(orderID.String()+"/"+strconv.Itoa(position)))
	id, _ := kernel.UUIDFromBytes(derived[:])
	return id
}
