package bikes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	bikeRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/bike"
	"github.com/m04kA/SMC-BikeService/internal/service/bikes/models"
)

// Service сервис управления велосипедами клиента
type Service struct {
	bikeRepo BikeRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса велосипедов
func NewService(bikeRepo BikeRepository, logger Logger) *Service {
	return &Service{
		bikeRepo: bikeRepo,
		logger:   logger,
	}
}

// Create регистрирует велосипед за пользователем
func (s *Service) Create(ctx context.Context, req *models.CreateBikeRequest) (*models.BikeResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	bike := &domain.Bike{
		UserID:      req.UserID,
		Brand:       req.Brand,
		Model:       req.Model,
		NumberPlate: req.NumberPlate,
	}

	created, err := s.bikeRepo.Create(ctx, bike)
	if err != nil {
		if errors.Is(err, bikeRepo.ErrDuplicatePlate) {
			s.logger.Warn("Create: number plate %q already registered", req.NumberPlate)
			return nil, ErrDuplicatePlate
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: registered bike id=%d for user=%d", created.ID, created.UserID)

	return models.FromDomainBike(created), nil
}

// GetUserBikes получает велосипеды пользователя, новые первыми
func (s *Service) GetUserBikes(ctx context.Context, userID int64) (*models.BikeListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	items, err := s.bikeRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBikes: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBikes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBikeList(items), nil
}

func validateCreateRequest(req *models.CreateBikeRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Brand == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	}

	if req.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}

	if req.NumberPlate == "" {
		return fmt.Errorf("%w: numberPlate is required", ErrInvalidInput)
	}

	return nil
}
