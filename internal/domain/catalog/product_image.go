package catalog

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// AllowedImageContentTypes lists the image formats accepted for upload
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ProductImage is an image stored in object storage and attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	StorageKey  string
	FileName    string
	ContentType string
}

// NewProductImage registers an image for upload. The storage key is derived from
// the product and image ids so that keys never collide.
func NewProductImage(productID uuid.UUID, fileName, contentType string) (*ProductImage, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || len(fileName) > 255 {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name must be between 1 and 255 characters")
	}
	if !AllowedImageContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Unsupported image content type")
	}

	base := shared.NewBaseEntity()
	return &ProductImage{
		BaseEntity:  base,
		ProductID:   productID,
		StorageKey:  fmt.Sprintf("products/%s/%s%s", productID, base.ID, strings.ToLower(path.Ext(fileName))),
		FileName:    fileName,
		ContentType: contentType,
	}, nil
}
