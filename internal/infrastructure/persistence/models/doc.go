// Package models contains GORM persistence models that map to database tables.
// Domain entities carry no ORM tags; each model provides ToDomain/FromDomain
// mappers and repositories work only with models.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel)
//   - catalog.go: collections, products, reviews, product images
//   - ordering.go: orders, order items, carts, cart items
//   - customer.go: customers
//   - identity.go: users
//   - tagging.go: tags and tagged items
//   - outbox.go: transactional outbox entries
package models
