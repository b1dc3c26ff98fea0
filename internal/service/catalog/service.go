package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BikeService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает активные услуги, опционально отфильтрованные по категории
func (s *Service) List(ctx context.Context, category *string) (*models.ServiceListResponse, error) {
	items, err := s.serviceRepo.ListActive(ctx, category)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(items), nil
}

// GetByID получает услугу по ID; неактивная услуга для клиента не существует
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !svc.IsActive {
		s.logger.Warn("GetByID: service id=%d is inactive", id)
		return nil, ErrServiceNotFound
	}

	return models.FromDomainService(svc), nil
}

// Create создает новую услугу (админ)
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	svc := &domain.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		IsActive:        true,
	}

	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d (%s, %d min)", created.ID, created.Name, created.DurationMinutes)

	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу (админ)
// Смена длительности влияет только на новые бронирования:
// у существующих длительность зафиксирована при создании
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyUpdate(svc, req)

	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d", id)

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(updated), nil
}

func applyUpdate(svc *domain.Service, req *models.UpdateServiceRequest) {
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
}

func validateService(svc *domain.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if svc.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if svc.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	return nil
}
