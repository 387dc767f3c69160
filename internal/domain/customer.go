package domain

import (
	"strings"
	"sync"
)

// Customer is the identity record that owns accounts. NationalID is the natural key.
type Customer struct {
	mu         sync.RWMutex
	name       string
	surname    string
	nationalID string
}

// CustomerView is the read-only shape handed to presentation and report layers
type CustomerView struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"national_id"`
}

// NewCustomer validates and trims all three fields before building the customer
func NewCustomer(name, surname, nationalID string) (*Customer, error) {
	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	surname, err = validateName("surname", surname)
	if err != nil {
		return nil, err
	}
	nationalID, err = ValidateNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	return &Customer{
		name:       name,
		surname:    surname,
		nationalID: nationalID,
	}, nil
}

func (c *Customer) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Customer) Surname() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surname
}

func (c *Customer) NationalID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nationalID
}

// SetName replaces the name; the customer is left untouched on error
func (c *Customer) SetName(name string) error {
	name, err := validateName("name", name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
	return nil
}

// SetSurname replaces the surname; the customer is left untouched on error
func (c *Customer) SetSurname(surname string) error {
	surname, err := validateName("surname", surname)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.surname = surname
	c.mu.Unlock()
	return nil
}

// setNationalID replaces the national ID after the constructor's format check.
// Only CustomerDirectory calls it, under its lock, once uniqueness is checked.
func (c *Customer) setNationalID(nationalID string) error {
	nationalID, err := ValidateNationalID(nationalID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.nationalID = nationalID
	c.mu.Unlock()
	return nil
}

// Display returns a snapshot of the customer's fields
func (c *Customer) Display() CustomerView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CustomerView{
		Name:       c.name,
		Surname:    c.surname,
		NationalID: c.nationalID,
	}
}

func (c *Customer) String() string {
	v := c.Display()
	return v.Name + " " + v.Surname + " (" + v.NationalID + ")"
}

// ValidateNationalID trims the value and checks it is a non-empty string of ASCII digits
func ValidateNationalID(nationalID string) (string, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return "", &ValidationError{Field: "national_id", Reason: "must not be empty"}
	}
	for _, r := range nationalID {
		if r < '0' || r > '9' {
			return "", &ValidationError{Field: "national_id", Reason: "must contain digits only"}
		}
	}
	return nationalID, nil
}

func validateName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return value, nil
}
