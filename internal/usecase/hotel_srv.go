package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HotelService is the operator-facing catalogue used by the CLI.
type HotelService interface {
	CreateHotel(ctx context.Context, req *request.CreateHotelRequest) (*response.HotelResponse, error)
	ListHotels(ctx context.Context) ([]response.HotelResponse, error)
}

type hotelService struct {
	repo repository.HotelRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewHotelService(repo *repository.Repository, log *zap.Logger, now func() time.Time) HotelService {
	return &hotelService{
		repo: repo.Hotel,
		now:  now,
		log:  log.With(zap.String("service", "hotel")),
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, req *request.CreateHotelRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	price, err := decimal.NewFromString(req.PricePerNight)
	if err != nil || price.IsNegative() {
		return nil, newValidationError(map[string]string{"price_per_night": "Must be a non-negative number"})
	}

	now := s.now().UTC()
	hotel := &entity.Hotel{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:            req.Name,
		Address:         req.Address,
		Location:        req.Location,
		Description:     req.Description,
		TotalRooms:      req.TotalRooms,
		CapacityPerRoom: req.CapacityPerRoom,
		PricePerNight:   utils.RoundMoney(price),
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("name", hotel.Name),
		zap.Int("total_rooms", hotel.TotalRooms),
	)

	res := response.HotelToResponse(hotel)
	return &res, nil
}

func (s *hotelService) ListHotels(ctx context.Context) ([]response.HotelResponse, error) {
	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	result := make([]response.HotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		result = append(result, response.HotelToResponse(hotel))
	}
	return result, nil
}
