package usecase_test

import (
	"context"
	"testing"

	"hotel-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFiltersByLocationAndFit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hotel(t, "Porto", 4, 2, "90")
	f.hotel(t, "Porto Covo", 1, 4, "150.50")
	f.hotel(t, "Faro", 10, 2, "60")

	res, err := f.svc.Search.Search(ctx, searchReq("PORTO", "2025-07-10", "2025-07-12", 3, 1, 1))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Porto Covo", res.Results[0].Hotel.Location)
	assert.Equal(t, "150.50", res.Results[0].PricePerNight)
	assert.Equal(t, "301.00", res.Results[0].TotalPrice)

	res, err = f.svc.Search.Search(ctx, searchReq("porto", "2025-07-10", "2025-07-12", 2, 0, 1))
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
}

func TestSearchValidatesDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Search.Search(context.Background(), searchReq("Porto", "2025-04-30", "2025-04-29", 1, 0, 1))
	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "check_in")
	assert.Contains(t, verr.Fields, "check_out")
}
