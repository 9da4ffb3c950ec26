package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer's free-text review of a product
type Review struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	Name        string
	Description string
	Date        time.Time
}

// NewReview creates a review dated today
func NewReview(productID uuid.UUID, name, description string) (*Review, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Reviewer name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Reviewer name cannot exceed 255 characters")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review description cannot be empty")
	}

	base := shared.NewBaseEntity()
	y, m, d := base.CreatedAt.Date()
	return &Review{
		BaseEntity:  base,
		ProductID:   productID,
		Name:        name,
		Description: description,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}, nil
}
