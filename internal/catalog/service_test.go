package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
)

func newSeededService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	require.NoError(t, Seed(context.Background(), conn))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestGetMedicine(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	medicine, err := svc.GetMedicine(ctx, "paracetamol")
	require.NoError(t, err)
	require.Equal(t, "Paracetamol (Crocin)", medicine.Name)
	require.True(t, medicine.UnitPrice.Equal(decimal.NewFromInt(25)), "unit price %s", medicine.UnitPrice)

	_, err = svc.GetMedicine(ctx, "unobtainium")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListAvailableDoctorsExcludesUnavailable(t *testing.T) {
	svc := newSeededService(t)

	doctors, err := svc.ListAvailableDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 3)
	for _, doctor := range doctors {
		require.NotEqual(t, 3, doctor.ID, "unavailable doctor must be excluded")
	}
}

func TestGetPlanFigures(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	premium, err := svc.GetPlan(ctx, enums.PlanPremium)
	require.NoError(t, err)
	require.True(t, premium.DiscountRate.Equal(decimal.NewFromFloat(0.15)), "discount rate %s", premium.DiscountRate)
	require.True(t, premium.DiscountCap.Equal(decimal.NewFromInt(200)), "discount cap %s", premium.DiscountCap)
	require.True(t, premium.GrantsAppointmentDiscount())

	basic, err := svc.GetPlan(ctx, enums.PlanBasic)
	require.NoError(t, err)
	require.False(t, basic.GrantsAppointmentDiscount())

	_, err = svc.GetPlan(ctx, enums.PlanID("platinum"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSeedIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	ctx := context.Background()
	require.NoError(t, Seed(ctx, conn))
	require.NoError(t, Seed(ctx, conn))

	var count int64
	require.NoError(t, conn.Table("medicines").Count(&count).Error)
	require.EqualValues(t, 8, count)
}

func TestDosageOptionsFixedSet(t *testing.T) {
	t.Parallel()

	opts := DosageOptions()
	require.Len(t, opts, 2)
	require.Equal(t, "1 tablet", opts[0].Label)
	require.Equal(t, 1, opts[0].Quantity)
	require.Equal(t, "2 tablets", opts[1].Label)
	require.Equal(t, 2, opts[1].Quantity)

	_, ok := FindDosageOption("2 tablets")
	require.True(t, ok)
	_, ok = FindDosageOption("3 tablets")
	require.False(t, ok)
}
