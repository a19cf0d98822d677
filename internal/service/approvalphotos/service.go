package approvalphotos

import (
	"context"
	"fmt"
	"strings"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos/models"
)

// Service выдача и аудит фото-подтверждений
type Service struct {
	store       ObjectStore
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(store ObjectStore, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		store:       store,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Get возвращает публичный и подписанный адрес фото по имени файла
func (s *Service) Get(ctx context.Context, filename string) (*models.PhotoResponse, error) {
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		s.logger.Warn("Get: rejected filename=%q", filename)
		return nil, ErrInvalidFilename
	}

	key := domain.ApprovalPhotoPrefix + filename

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Get: failed to check key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: Get - exists: %v", ErrInternal, err)
	}
	if !exists {
		return nil, ErrPhotoNotFound
	}

	presigned, err := s.store.PresignGet(ctx, key)
	if err != nil {
		s.logger.Error("Get: failed to presign key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: Get - presign: %v", ErrInternal, err)
	}

	return &models.PhotoResponse{
		Filename:     filename,
		Key:          key,
		URL:          s.store.URL(key),
		PresignedURL: presigned,
	}, nil
}

// List возвращает фото под префиксом и отмечает те, на которые не ссылается ни одно бронирование
func (s *Service) List(ctx context.Context, limit int) (*models.ListResponse, error) {
	if limit <= 0 || limit > domain.DefaultPhotoListLimit {
		limit = domain.DefaultPhotoListLimit
	}

	objects, err := s.store.List(ctx, domain.ApprovalPhotoPrefix, limit)
	if err != nil {
		s.logger.Error("List: failed to list photos: %v", err)
		return nil, fmt.Errorf("%w: List - list objects: %v", ErrInternal, err)
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}

	referenced, err := s.bookingRepo.GetReferencedAttachmentKeys(ctx, keys)
	if err != nil {
		s.logger.Error("List: failed to check references: %v", err)
		return nil, fmt.Errorf("%w: List - referenced keys: %v", ErrInternal, err)
	}

	resp := &models.ListResponse{
		Photos: make([]models.PhotoItem, 0, len(objects)),
		Total:  len(objects),
	}
	for _, obj := range objects {
		_, ok := referenced[obj.Key]
		if !ok {
			resp.OrphanCount++
		}
		resp.Photos = append(resp.Photos, models.PhotoItem{
			Key:          obj.Key,
			URL:          s.store.URL(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			Referenced:   ok,
		})
	}

	if resp.OrphanCount > 0 {
		s.logger.Warn("List: %d of %d approval photos are not referenced by any booking", resp.OrphanCount, resp.Total)
	}
	return resp, nil
}
