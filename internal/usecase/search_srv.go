package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type SearchService interface {
	Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error)
}

type searchService struct {
	repo         *repository.Repository
	availability AvailabilityCalculator
	now          func() time.Time
	log          *zap.Logger
}

func NewSearchService(repo *repository.Repository, log *zap.Logger, now func() time.Time) SearchService {
	return &searchService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "search")),
	}
}

// Search lists hotels whose location contains the query and that can host
// the stay. It reads without locks; results are advisory.
func (s *searchService) Search(ctx context.Context, req *request.SearchRequest) (*response.SearchResponse, error) {
	fields := utils.ValidateStruct(req)
	stay, err := parseStay(req.CheckIn, req.CheckOut, req.Adults, req.Children, req.Rooms, s.now(), fields)
	if err != nil {
		s.log.Warn("Search validation failed", zap.Error(err))
		return nil, err
	}

	hotels, err := s.repo.Hotel.SearchByLocation(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("search hotels: %w", err)
	}

	results := make([]response.SearchResult, 0, len(hotels))
	for _, hotel := range hotels {
		avail, err := s.availability.Check(ctx, s.repo, hotel, stay)
		if errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrOccupancyExceeded) {
			continue
		}
		if err != nil {
			return nil, err
		}

		results = append(results, response.SearchResult{
			Hotel:           response.HotelToSummary(hotel),
			AvailableRooms:  avail.AvailableRooms,
			CapacityPerRoom: avail.CapacityPerRoom,
			PricePerNight:   utils.FormatMoney(avail.PricePerNight),
			TotalPrice:      utils.FormatMoney(StayPrice(avail.PricePerNight, stay)),
		})
	}

	s.log.Debug("Search completed",
		zap.String("location", req.Location),
		zap.Int("candidates", len(hotels)),
		zap.Int("results", len(results)),
	)

	return &response.SearchResponse{Results: results}, nil
}
