package order

import "errors"

// Patch is a generic partial update. Nil fields are left untouched.
type Patch struct {
	CustomerNumber *string
	CustomerName   *string
	Locality       *string
	Notes          *string
	Status         *Status
}

// IsEmpty reports whether the patch sets no field at all.
func (p Patch) IsEmpty() bool {
	return p.CustomerNumber == nil && p.CustomerName == nil && p.Locality == nil &&
		p.Notes == nil && p.Status == nil
}

// ApplyPatch applies every set field. All field errors are reported together;
// on error the order may be partially updated, so callers apply patches to a copy.
func (o *Order) ApplyPatch(p Patch) error {
	if err := o.mutable(); err != nil {
		return err
	}

	var joined error
	if p.CustomerNumber != nil {
		joined = errors.Join(joined, o.SetCustomerNumber(*p.CustomerNumber))
	}
	if p.CustomerName != nil {
		joined = errors.Join(joined, o.SetCustomerName(*p.CustomerName))
	}
	if p.Locality != nil {
		joined = errors.Join(joined, o.SetLocality(*p.Locality))
	}
	if p.Notes != nil {
		joined = errors.Join(joined, o.SetNotes(*p.Notes))
	}
	// Status goes last: archiving in the same patch must not block the other fields.
	if p.Status != nil {
		joined = errors.Join(joined, o.SetStatus(*p.Status))
	}
	return joined
}
