package domain

import (
	"strings"
	"sync"
)

// CustomerDirectory keeps customers in registration order and owns their
// national ID key: no two registered customers share one.
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers []*Customer
}

// NewCustomerDirectory creates an empty directory
func NewCustomerDirectory() *CustomerDirectory {
	return &CustomerDirectory{}
}

// Register builds and stores a customer. The duplicate check runs before validation.
func (d *CustomerDirectory) Register(name, surname, nationalID string) (*Customer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := strings.TrimSpace(nationalID)
	if d.findLocked(key) != nil {
		return nil, &DuplicateKeyError{Entity: "customer", Key: key}
	}

	customer, err := NewCustomer(name, surname, nationalID)
	if err != nil {
		return nil, err
	}

	d.customers = append(d.customers, customer)
	return customer, nil
}

// Find looks a customer up by its trimmed national ID
func (d *CustomerDirectory) Find(nationalID string) (*Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	customer := d.findLocked(nationalID)
	if customer == nil {
		return nil, &NotFoundError{Entity: "customer", Key: nationalID}
	}
	return customer, nil
}

// List returns a copy of the registered customers
func (d *CustomerDirectory) List() []*Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Customer, len(d.customers))
	copy(out, d.customers)
	return out
}

// ChangeNationalID re-keys the customer registered as current. Setting the
// customer's own ID again is a no-op.
func (d *CustomerDirectory) ChangeNationalID(current, next string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	customer := d.findLocked(current)
	if customer == nil {
		return &NotFoundError{Entity: "customer", Key: current}
	}

	key, err := ValidateNationalID(next)
	if err != nil {
		return err
	}
	if key == customer.NationalID() {
		return nil
	}
	if d.findLocked(key) != nil {
		return &DuplicateKeyError{Entity: "customer", Key: key}
	}

	return customer.setNationalID(key)
}

// findLocked must be called with d.mu held
func (d *CustomerDirectory) findLocked(nationalID string) *Customer {
	nationalID = strings.TrimSpace(nationalID)
	for _, c := range d.customers {
		if c.NationalID() == nationalID {
			return c
		}
	}
	return nil
}
