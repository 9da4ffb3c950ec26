// Package customer holds the storefront customer aggregate.
package customer

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Membership is the loyalty tier of a customer
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

// IsValid checks if the membership is a known tier
func (m Membership) IsValid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Label returns the tier name
func (m Membership) Label() string {
	switch m {
	case MembershipBronze:
		return "Bronze"
	case MembershipSilver:
		return "Silver"
	case MembershipGold:
		return "Gold"
	}
	return string(m)
}

// Customer is a person who places orders
type Customer struct {
	shared.BaseAggregateRoot
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	BirthDate  *time.Time
	Membership Membership
}

// CustomerView is a customer annotated with the number of orders placed
type CustomerView struct {
	Customer
	OrdersCount int64
}

// Input holds the writable customer fields
type Input struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	BirthDate  *time.Time
	Membership Membership
}

// NewCustomer creates a customer. Membership defaults to Bronze.
func NewCustomer(in Input) (*Customer, error) {
	c := &Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if in.Membership == "" {
		in.Membership = MembershipBronze
	}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the writable fields
func (c *Customer) Update(in Input) error {
	if in.Membership == "" {
		in.Membership = c.Membership
	}
	if err := c.apply(in); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

// SetMembership changes only the tier
func (c *Customer) SetMembership(m Membership) error {
	if !m.IsValid() {
		return shared.NewDomainError("INVALID_MEMBERSHIP", "Membership must be one of B, S, G")
	}
	c.Membership = m
	c.Touch()
	c.IncrementVersion()
	return nil
}

// FullName returns first and last name joined by a space
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Customer) apply(in Input) error {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || len(first) > 255 {
		return shared.NewDomainError("INVALID_NAME", "First name must be between 1 and 255 characters")
	}
	if last == "" || len(last) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Last name must be between 1 and 255 characters")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil || len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if len(in.Phone) > 255 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 255 characters")
	}
	if in.BirthDate != nil && in.BirthDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}
	if !in.Membership.IsValid() {
		return shared.NewDomainError("INVALID_MEMBERSHIP", "Membership must be one of B, S, G")
	}

	c.FirstName = first
	c.LastName = last
	c.Email = email
	c.Phone = strings.TrimSpace(in.Phone)
	c.BirthDate = in.BirthDate
	c.Membership = in.Membership
	c.Touch()
	return nil
}

// Query selects customers. Search matches the start of the first or last name.
type Query struct {
	shared.PageRequest
	Search     string
	Membership Membership
}

// Repository persists customers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindViews(ctx context.Context, q Query) ([]CustomerView, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, customer *Customer) error
}
