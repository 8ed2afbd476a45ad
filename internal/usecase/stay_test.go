package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseStayPartyBounds(t *testing.T) {
	today := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name                    string
		adults, children, rooms int
		want                    map[string]string
	}{
		{"at limits", MaxAdults, MaxChildren, MaxRooms, nil},
		{"adults overflow", math.MaxInt, 1, 1, map[string]string{"adults": "Must be at most 100"}},
		{"children overflow", 1, math.MaxInt, 1, map[string]string{"children": "Must be at most 100"}},
		{"rooms overflow", 1, 0, math.MaxInt, map[string]string{"rooms": "Must be at most 500"}},
		{"negative children", 1, -1, 1, map[string]string{"children": "Must be at least 0"}},
		{"no adults", 0, 0, 0, map[string]string{"adults": "Must be at least 1", "rooms": "Must be at least 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := parseStay("2025-06-01", "2025-06-02", tt.adults, tt.children, tt.rooms, today, nil)
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, MaxAdults+MaxChildren, stay.Guests())
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestParseStayKeepsValidatorMessage(t *testing.T) {
	today := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	fields := map[string]string{"adults": "Must be a whole number"}

	_, err := parseStay("2025-06-01", "2025-06-02", math.MaxInt, 0, 1, today, fields)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be a whole number", verr.Fields["adults"])
}

func TestCreditRefusesPaymentType(t *testing.T) {
	w := NewWallet(zap.NewNop(), time.Now)
	tx := &repository.Repository{}

	for _, kind := range []entity.TransactionType{entity.TransactionTypeBookingPayment, "Bonus"} {
		_, err := w.Credit(context.Background(), tx, uuid.New(), decimal.NewFromInt(10), nil, kind)
		assert.ErrorContains(t, err, "unsupported transaction type")
	}
}
