package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// ImageService manages product image metadata and hands out presigned URLs
type ImageService struct {
	images   catalog.ProductImageRepository
	products catalog.ProductRepository
	storage  ImageStorage
	logger   *zap.Logger
}

// NewImageService creates an ImageService
func NewImageService(
	images catalog.ProductImageRepository,
	products catalog.ProductRepository,
	storage ImageStorage,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{images: images, products: products, storage: storage, logger: logger}
}

// RequestUpload records a new image and returns the URL the client PUTs the bytes to
func (s *ImageService) RequestUpload(ctx context.Context, productID uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	img, err := catalog.NewProductImage(productID, req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}
	upload, err := s.storage.PresignUpload(ctx, img.StorageKey, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("presign upload for %s: %w", img.StorageKey, err)
	}
	if err := s.images.Save(ctx, img); err != nil {
		return nil, err
	}
	return &ImageUploadResponse{Image: toImageResponse(*img), Upload: upload}, nil
}

// List returns a product's images with download URLs
func (s *ImageService) List(ctx context.Context, productID uuid.UUID) ([]ImageResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	images, err := s.images.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		resp := toImageResponse(img)
		download, err := s.storage.PresignDownload(ctx, img.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("presign download for %s: %w", img.StorageKey, err)
		}
		resp.Download = &download
		out = append(out, resp)
	}
	return out, nil
}

// Delete removes the image record and then its object. A failed object delete
// leaves an orphaned object, which is logged but not returned.
func (s *ImageService) Delete(ctx context.Context, productID, id uuid.UUID) error {
	img, err := s.images.FindByID(ctx, productID, id)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, productID, id); err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, img.StorageKey); err != nil {
		s.logger.Warn("Failed to delete image object",
			zap.String("storage_key", img.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}
