package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	// FindByIDForUpdate locks the hotel row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	SearchByLocation(ctx context.Context, location string) ([]*entity.Hotel, error)
	List(ctx context.Context) ([]*entity.Hotel, error)
}

type hotelRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHotelRepository(db database.Querier, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

const hotelColumns = `id, name, address, location, description, total_rooms, capacity_per_room, price_per_night, created_at, updated_at`

func scanHotel(row pgx.Row) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := row.Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.Address,
		&hotel.Location,
		&hotel.Description,
		&hotel.TotalRooms,
		&hotel.CapacityPerRoom,
		&hotel.PricePerNight,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (` + hotelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.Address,
		hotel.Location,
		hotel.Description,
		hotel.TotalRooms,
		hotel.CapacityPerRoom,
		hotel.PricePerNight,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("name", hotel.Name),
		)
		return translateError(fmt.Errorf("create hotel %s: %w", hotel.Name, err))
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.findByID(ctx, id, "")
}

func (r *hotelRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

func (r *hotelRepository) findByID(ctx context.Context, id uuid.UUID, lock string) (*entity.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1` + lock

	hotel, err := scanHotel(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return nil, translateError(fmt.Errorf("find hotel by ID %s: %w", id, err))
	}

	return hotel, nil
}

func (r *hotelRepository) SearchByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	query := `
		SELECT ` + hotelColumns + `
		FROM hotels
		WHERE LOWER(location) LIKE $1 ESCAPE '\'
		ORDER BY name, id
	`

	hotels, err := r.query(ctx, query, likePattern(location))
	if err != nil {
		r.log.Error("Failed to search hotels",
			zap.Error(err),
			zap.String("location", location),
		)
		return nil, fmt.Errorf("search hotels in %q: %w", location, err)
	}
	return hotels, nil
}

func (r *hotelRepository) List(ctx context.Context) ([]*entity.Hotel, error) {
	hotels, err := r.query(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY name, id`)
	if err != nil {
		r.log.Error("Failed to list hotels", zap.Error(err))
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (r *hotelRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Hotel, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	hotels := make([]*entity.Hotel, 0)
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}
