package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gangamma-trust/registration-portal/internal/repos"
	"github.com/gangamma-trust/registration-portal/internal/repos/testutil"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

func newDonationService(t *testing.T) (RegistrationService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t, types.VariantDonation)
	log := testutil.Logger(t)
	svc := NewRegistrationService(db, log, repos.NewDonorRepo(db, log), repos.NewMemberRepo(db, log), types.VariantDonation)
	return svc, db
}

func newMembershipService(t *testing.T) (RegistrationService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t, types.VariantMembership)
	log := testutil.Logger(t)
	svc := NewRegistrationService(db, log, repos.NewDonorRepo(db, log), repos.NewMemberRepo(db, log), types.VariantMembership)
	return svc, db
}

func donationSubmission() Submission {
	return Submission{
		Name:   "Asha",
		Mobile: "9000000001",
		Email:  "a@x.com",
		Amount: "500",
		Date:   "2024-01-01",
	}
}

func TestSubmitDonation(t *testing.T) {
	svc, db := newDonationService(t)
	ctx := context.Background()

	id, err := svc.Submit(ctx, donationSubmission())
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	var got types.Donor
	require.NoError(t, db.Where("mobile = ?", "9000000001").First(&got).Error)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, 500, got.Amount)
	assert.Equal(t, "2024-01-01", got.Date.Format("2006-01-02"))
}

func TestSubmitDuplicateMobile(t *testing.T) {
	svc, db := newDonationService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, donationSubmission())
	require.NoError(t, err)

	second := donationSubmission()
	second.Name = "Bala"
	second.Email = "b@x.com"
	_, err = svc.Submit(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateMobile)

	var count int64
	require.NoError(t, db.Model(&types.Donor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitDuplicateEmail(t *testing.T) {
	// Email is never pre-checked; the unique constraint catches it on
	// insert and the violation must come back as the email sentinel.
	svc, db := newDonationService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, donationSubmission())
	require.NoError(t, err)

	second := donationSubmission()
	second.Mobile = "9000000002"
	_, err = svc.Submit(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, db.Model(&types.Donor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// racingDonorRepo reports the mobile as absent even when it exists, the way
// the pre-check sees the world when a concurrent submission wins the race
// between check and insert.
type racingDonorRepo struct {
	repos.DonorRepo
}

func (racingDonorRepo) MobileExists(ctx context.Context, tx *gorm.DB, mobile string) (bool, error) {
	return false, nil
}

func TestSubmitDuplicateMobileRace(t *testing.T) {
	db := testutil.DB(t, types.VariantDonation)
	log := testutil.Logger(t)

	seeded := NewRegistrationService(db, log, repos.NewDonorRepo(db, log), repos.NewMemberRepo(db, log), types.VariantDonation)
	_, err := seeded.Submit(context.Background(), donationSubmission())
	require.NoError(t, err)

	// The racing loser passes the advisory pre-check but hits the unique
	// constraint; it must still read as a duplicate, not a generic error.
	racer := NewRegistrationService(db, log, racingDonorRepo{repos.NewDonorRepo(db, log)}, repos.NewMemberRepo(db, log), types.VariantDonation)
	loser := donationSubmission()
	loser.Email = "other@x.com"
	_, err = racer.Submit(context.Background(), loser)
	assert.ErrorIs(t, err, ErrDuplicateMobile)

	var count int64
	require.NoError(t, db.Model(&types.Donor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitValidation(t *testing.T) {
	svc, db := newDonationService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Submission)
	}{
		{"missing name", func(s *Submission) { s.Name = "  " }},
		{"missing mobile", func(s *Submission) { s.Mobile = "" }},
		{"missing email", func(s *Submission) { s.Email = "" }},
		{"missing amount", func(s *Submission) { s.Amount = "" }},
		{"non-numeric amount", func(s *Submission) { s.Amount = "five hundred" }},
		{"missing date", func(s *Submission) { s.Date = "" }},
		{"malformed date", func(s *Submission) { s.Date = "01/01/2024" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := donationSubmission()
			tc.mutate(&sub)
			_, err := svc.Submit(ctx, sub)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	var count int64
	require.NoError(t, db.Model(&types.Donor{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no partial state may be persisted")
}

func TestSubmitStoreUnavailable(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewRegistrationService(nil, log, repos.NewDonorRepo(nil, log), repos.NewMemberRepo(nil, log), types.VariantDonation)

	_, err := svc.Submit(context.Background(), donationSubmission())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSubmitMembership(t *testing.T) {
	svc, db := newMembershipService(t)
	ctx := context.Background()

	sub := Submission{
		Name:     "Ravi",
		Mobile:   "8000000001",
		Email:    "r@x.com",
		Address:  "12 Temple Street",
		DOB:      "1990-05-20",
		Feedback: "Happy to join",
	}
	id, err := svc.Submit(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	var got types.Member
	require.NoError(t, db.Where("mobile = ?", "8000000001").First(&got).Error)
	assert.Equal(t, "12 Temple Street", got.Address)
	assert.Equal(t, "Happy to join", got.Feedback)
	assert.Equal(t, "1990-05-20", got.DOB.Format("2006-01-02"))

	// membership-only required fields
	missing := sub
	missing.Mobile = "8000000002"
	missing.Email = "r2@x.com"
	missing.Address = ""
	_, err = svc.Submit(ctx, missing)
	assert.ErrorIs(t, err, ErrInvalidInput)

	dup := sub
	dup.Email = "other@x.com"
	_, err = svc.Submit(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateMobile)
}
