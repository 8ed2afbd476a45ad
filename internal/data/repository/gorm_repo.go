package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGormRepository builds the stores on top of gorm. It backs the SQLite
// deployment and the test suites; row locks are requested with
// clause.Locking and dropped by dialects that serialize writers instead.
func NewGormRepository(db *gorm.DB, log *zap.Logger) *Repository {
	repo := newGormRepository(db, log)
	repo.tx = &gormTransactor{db: db, log: log}
	return repo
}

func newGormRepository(db *gorm.DB, log *zap.Logger) *Repository {
	return &Repository{
		Hotel:       &gormHotelRepository{db: db, log: log.With(zap.String("repository", "hotel"))},
		Booking:     &gormBookingRepository{db: db, log: log.With(zap.String("repository", "booking"))},
		Wallet:      &gormWalletRepository{db: db, log: log.With(zap.String("repository", "wallet"))},
		Transaction: &gormTransactionRepository{db: db, log: log.With(zap.String("repository", "transaction"))},
	}
}

type gormTransactor struct {
	db  *gorm.DB
	log *zap.Logger
}

func (t *gormTransactor) inTx(ctx context.Context, fn TxFunc) error {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newGormRepository(tx, t.log))
	})
	return translateError(err)
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

// ---------------------------------------------------------------- hotels

type gormHotelRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *gormHotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	if err := r.db.WithContext(ctx).Create(newHotelModel(hotel)).Error; err != nil {
		r.log.Error("Failed to create hotel", zap.Error(err), zap.String("name", hotel.Name))
		return translateError(fmt.Errorf("create hotel %s: %w", hotel.Name, err))
	}
	return nil
}

func (r *gormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *gormHotelRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.find(r.db.WithContext(ctx).Clauses(forUpdate), id)
}

func (r *gormHotelRepository) find(db *gorm.DB, id uuid.UUID) (*entity.Hotel, error) {
	var model hotelModel
	err := db.Take(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID", zap.Error(err), zap.String("hotel_id", id.String()))
		return nil, translateError(fmt.Errorf("find hotel by ID %s: %w", id, err))
	}
	return model.toEntity(), nil
}

func (r *gormHotelRepository) SearchByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	var models []hotelModel
	err := r.db.WithContext(ctx).
		Where(`LOWER(location) LIKE ? ESCAPE '\'`, likePattern(location)).
		Order("name, id").
		Find(&models).Error
	if err != nil {
		r.log.Error("Failed to search hotels", zap.Error(err), zap.String("location", location))
		return nil, translateError(fmt.Errorf("search hotels in %q: %w", location, err))
	}
	return hotelEntities(models), nil
}

func (r *gormHotelRepository) List(ctx context.Context) ([]*entity.Hotel, error) {
	var models []hotelModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&models).Error; err != nil {
		r.log.Error("Failed to list hotels", zap.Error(err))
		return nil, translateError(fmt.Errorf("list hotels: %w", err))
	}
	return hotelEntities(models), nil
}

func hotelEntities(models []hotelModel) []*entity.Hotel {
	hotels := make([]*entity.Hotel, 0, len(models))
	for i := range models {
		hotels = append(hotels, models[i].toEntity())
	}
	return hotels
}

// -------------------------------------------------------------- bookings

type gormBookingRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if err := r.db.WithContext(ctx).Create(newBookingModel(booking)).Error; err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("hotel_id", booking.HotelID.String()),
		)
		return translateError(fmt.Errorf("create booking %s: %w", booking.ID, err))
	}
	return nil
}

func (r *gormBookingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	return r.findForUser(r.db.WithContext(ctx), id, userID)
}

func (r *gormBookingRepository) FindByIDForUserForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	return r.findForUser(r.db.WithContext(ctx).Clauses(forUpdate), id, userID)
}

func (r *gormBookingRepository) findForUser(db *gorm.DB, id, userID uuid.UUID) (*entity.Booking, error) {
	var model bookingModel
	err := db.Take(&model, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, translateError(fmt.Errorf("find booking %s: %w", id, err))
	}
	return model.toEntity(), nil
}

func (r *gormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&models).Error
	if err != nil {
		r.log.Error("Failed to find bookings by user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, translateError(fmt.Errorf("find bookings for user %s: %w", userID, err))
	}

	bookings := make([]*entity.Booking, 0, len(models))
	for i := range models {
		bookings = append(bookings, models[i].toEntity())
	}
	return bookings, nil
}

func (r *gormBookingRepository) SumBookedRooms(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	var booked int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("COALESCE(SUM(rooms), 0)").
		Where("hotel_id = ? AND status = ? AND check_in < ? AND check_out > ?",
			hotelID, entity.BookingStatusBooked, checkOut, checkIn).
		Scan(&booked).Error
	if err != nil {
		r.log.Error("Failed to sum booked rooms", zap.Error(err), zap.String("hotel_id", hotelID.String()))
		return 0, translateError(fmt.Errorf("sum booked rooms for hotel %s: %w", hotelID, err))
	}
	return int(booked), nil
}

func (r *gormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(res.Error),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return translateError(fmt.Errorf("update booking %s status: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %s is not %s", ErrConflict, id, from)
	}
	return nil
}

// --------------------------------------------------------------- wallets

type gormWalletRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *gormWalletRepository) GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	now := time.Now().UTC()
	fresh := profileModel{UserID: userID, WalletBalance: decimal.Zero, CreatedAt: now, UpdatedAt: now}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		r.log.Error("Failed to create profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, translateError(fmt.Errorf("create profile for user %s: %w", userID, err))
	}

	var model profileModel
	if err := db.Clauses(forUpdate).Take(&model, "user_id = ?", userID).Error; err != nil {
		r.log.Error("Failed to lock profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, translateError(fmt.Errorf("lock profile for user %s: %w", userID, err))
	}
	return model.toEntity(), nil
}

func (r *gormWalletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return r.find(r.db.WithContext(ctx), userID)
}

func (r *gormWalletRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return r.find(r.db.WithContext(ctx).Clauses(forUpdate), userID)
}

func (r *gormWalletRepository) find(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var model profileModel
	err := db.Take(&model, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, translateError(fmt.Errorf("find profile for user %s: %w", userID, err))
	}
	return model.toEntity(), nil
}

func (r *gormWalletRepository) UpdateBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"wallet_balance": balance, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		r.log.Error("Failed to update wallet balance", zap.Error(res.Error), zap.String("user_id", userID.String()))
		return translateError(fmt.Errorf("update balance for user %s: %w", userID, res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update balance: profile for user %s not found", userID)
	}
	return nil
}

func (r *gormWalletRepository) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	var models []profileModel
	if err := r.db.WithContext(ctx).Order("user_id").Find(&models).Error; err != nil {
		r.log.Error("Failed to list profiles", zap.Error(err))
		return nil, translateError(fmt.Errorf("list profiles: %w", err))
	}

	profiles := make([]*entity.Profile, 0, len(models))
	for i := range models {
		profiles = append(profiles, models[i].toEntity())
	}
	return profiles, nil
}

// ---------------------------------------------------------- transactions

type gormTransactionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *gormTransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	if err := r.db.WithContext(ctx).Create(newTransactionModel(txn)).Error; err != nil {
		r.log.Error("Failed to record transaction",
			zap.Error(err),
			zap.String("user_id", txn.UserID.String()),
			zap.String("type", string(txn.Type)),
		)
		return translateError(fmt.Errorf("record %s transaction: %w", txn.Type, err))
	}
	return nil
}

func (r *gormTransactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.find(ctx, "created_at DESC, id", "user_id = ?", userID)
}

func (r *gormTransactionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error) {
	return r.find(ctx, "created_at, id", "booking_id = ?", bookingID)
}

func (r *gormTransactionRepository) find(ctx context.Context, order string, cond string, arg any) ([]*entity.Transaction, error) {
	var models []transactionModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Order(order).Find(&models).Error; err != nil {
		r.log.Error("Failed to find transactions", zap.Error(err), zap.Any("filter", arg))
		return nil, translateError(fmt.Errorf("find transactions: %w", err))
	}

	txns := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		txns = append(txns, models[i].toEntity())
	}
	return txns, nil
}

// SumSignedByUserID folds the ledger in Go; SQLite stores NUMERIC as
// floating point and summing there would lose cents.
func (r *gormTransactionRepository) SumSignedByUserID(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	txns, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount())
	}
	return sum, nil
}
