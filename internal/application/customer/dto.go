package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
)

// CustomerRequest creates or fully replaces a customer
type CustomerRequest struct {
	FirstName  string     `json:"first_name" binding:"required,min=1,max=255"`
	LastName   string     `json:"last_name" binding:"required,min=1,max=255"`
	Email      string     `json:"email" binding:"required,email,max=254"`
	Phone      string     `json:"phone" binding:"max=255"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership string     `json:"membership" binding:"omitempty,oneof=B S G"`
}

func (r CustomerRequest) toInput() customer.Input {
	return customer.Input{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		BirthDate:  r.BirthDate,
		Membership: customer.Membership(r.Membership),
	}
}

// UpdateMembershipRequest is the list-editable partial update of a customer
type UpdateMembershipRequest struct {
	Membership string `json:"membership" binding:"required,oneof=B S G"`
}

// ListFilter is the query string of the customer list
type ListFilter struct {
	Search     string `form:"search"`
	Membership string `form:"membership" binding:"omitempty,oneof=B S G"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=first_name last_name membership orders_count"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse is a customer annotated with the orders placed
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	BirthDate       *string   `json:"birth_date"`
	Membership      string    `json:"membership"`
	MembershipLabel string    `json:"membership_label"`
	OrdersCount     *int64    `json:"orders_count,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		Membership:      string(c.Membership),
		MembershipLabel: c.Membership.Label(),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.BirthDate != nil {
		d := c.BirthDate.Format(time.DateOnly)
		resp.BirthDate = &d
	}
	return resp
}

// ToCustomerViewResponse converts a customer view, including orders_count
func ToCustomerViewResponse(v customer.CustomerView) CustomerResponse {
	resp := ToCustomerResponse(&v.Customer)
	count := v.OrdersCount
	resp.OrdersCount = &count
	return resp
}
