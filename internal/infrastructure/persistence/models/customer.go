package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	FirstName  string              `gorm:"type:varchar(255);not null"`
	LastName   string              `gorm:"type:varchar(255);not null"`
	Email      string              `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone      string              `gorm:"type:varchar(255)"`
	BirthDate  *time.Time          `gorm:"type:date"`
	Membership customer.Membership `gorm:"type:varchar(1);not null;default:'B'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.Root(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		BirthDate:         m.BirthDate,
		Membership:        m.Membership,
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		BirthDate:  c.BirthDate,
		Membership: c.Membership,
	}
	m.SetRoot(c.BaseAggregateRoot)
	return m
}

// CustomerViewRow is the scan target for customer list queries
type CustomerViewRow struct {
	CustomerModel
	OrdersCount int64
}

// ToDomain converts the row to a domain CustomerView
func (r *CustomerViewRow) ToDomain() customer.CustomerView {
	return customer.CustomerView{
		Customer:    *r.CustomerModel.ToDomain(),
		OrdersCount: r.OrdersCount,
	}
}
