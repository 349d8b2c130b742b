package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/repos"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

const dateLayout = "2006-01-02"

// Submission carries the raw form values of one POST. Which of the
// variant-specific fields matter depends on the deployed variant; the rest
// arrive empty.
type Submission struct {
	Name   string
	Mobile string
	Email  string

	// donation variant
	Amount string
	Date   string

	// membership variant
	Address  string
	DOB      string
	Feedback string
}

type RegistrationService interface {
	// Submit validates the submission and persists it. The mobile
	// existence pre-check is advisory; the unique constraint is the real
	// guarantee, and a constraint violation on mobile is reported as
	// ErrDuplicateMobile even when the pre-check raced and passed.
	Submit(ctx context.Context, sub Submission) (uint, error)
	Variant() types.Variant
}

type registrationService struct {
	db         *gorm.DB
	log        *logger.Logger
	donorRepo  repos.DonorRepo
	memberRepo repos.MemberRepo
	variant    types.Variant
}

func NewRegistrationService(
	db *gorm.DB,
	log *logger.Logger,
	donorRepo repos.DonorRepo,
	memberRepo repos.MemberRepo,
	variant types.Variant,
) RegistrationService {
	serviceLog := log.With("service", "RegistrationService", "variant", string(variant))
	return &registrationService{
		db:         db,
		log:        serviceLog,
		donorRepo:  donorRepo,
		memberRepo: memberRepo,
		variant:    variant,
	}
}

func (rs *registrationService) Variant() types.Variant { return rs.variant }

func (rs *registrationService) Submit(ctx context.Context, sub Submission) (uint, error) {
	if rs.db == nil {
		rs.log.Warn("Submission rejected: no database connection")
		return 0, ErrStoreUnavailable
	}

	logCtx := rs.log.With("mobile", strings.TrimSpace(sub.Mobile))

	if rs.variant == types.VariantMembership {
		return rs.submitMember(ctx, logCtx, sub)
	}
	return rs.submitDonor(ctx, logCtx, sub)
}

func (rs *registrationService) submitDonor(ctx context.Context, logCtx *logger.Logger, sub Submission) (uint, error) {
	name, mobile, email, err := commonFields(sub)
	if err != nil {
		return 0, err
	}
	amountStr := strings.TrimSpace(sub.Amount)
	if amountStr == "" {
		return 0, requiredField("amount")
	}
	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return 0, fmt.Errorf("%w: amount must be a whole number", ErrInvalidInput)
	}
	date, err := parseDate("date", sub.Date)
	if err != nil {
		return 0, err
	}

	donor := &types.Donor{
		Name:   name,
		Mobile: mobile,
		Email:  email,
		Amount: amount,
		Date:   date,
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.donorRepo.MobileExists(ctx, tx, mobile)
		if err != nil {
			return fmt.Errorf("mobile existence check: %w", err)
		}
		if exists {
			return ErrDuplicateMobile
		}
		return rs.donorRepo.Create(ctx, tx, donor)
	})
	if err != nil {
		return 0, rs.mapStoreError(logCtx, err)
	}

	logCtx.Info("Donation registered", "id", donor.ID)
	return donor.ID, nil
}

func (rs *registrationService) submitMember(ctx context.Context, logCtx *logger.Logger, sub Submission) (uint, error) {
	name, mobile, email, err := commonFields(sub)
	if err != nil {
		return 0, err
	}
	address := strings.TrimSpace(sub.Address)
	if address == "" {
		return 0, requiredField("address")
	}
	dob, err := parseDate("dob", sub.DOB)
	if err != nil {
		return 0, err
	}
	feedback := strings.TrimSpace(sub.Feedback)
	if feedback == "" {
		return 0, requiredField("feedback")
	}

	member := &types.Member{
		Name:     name,
		Mobile:   mobile,
		Email:    email,
		Address:  address,
		DOB:      dob,
		Feedback: feedback,
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.memberRepo.MobileExists(ctx, tx, mobile)
		if err != nil {
			return fmt.Errorf("mobile existence check: %w", err)
		}
		if exists {
			return ErrDuplicateMobile
		}
		return rs.memberRepo.Create(ctx, tx, member)
	})
	if err != nil {
		return 0, rs.mapStoreError(logCtx, err)
	}

	logCtx.Info("Member registered", "id", member.ID)
	return member.ID, nil
}

// mapStoreError folds constraint violations into the duplicate sentinels so
// a lost pre-check race reads the same as an ordinary duplicate. Anything
// else is logged in full and returned wrapped; callers show a generic
// notice, never the driver text.
func (rs *registrationService) mapStoreError(logCtx *logger.Logger, err error) error {
	switch {
	case errors.Is(err, ErrDuplicateMobile):
		logCtx.Info("Submission rejected: mobile already registered")
		return err
	case repos.IsUniqueViolation(err):
		if repos.UniqueViolationColumn(err) == "email" {
			logCtx.Info("Submission rejected: email already registered")
			return ErrDuplicateEmail
		}
		logCtx.Info("Submission rejected: mobile constraint violated after pre-check")
		return ErrDuplicateMobile
	default:
		logCtx.Error("Store error during submission", "error", err)
		return fmt.Errorf("store submission: %w", err)
	}
}

func commonFields(sub Submission) (name, mobile, email string, err error) {
	name = strings.TrimSpace(sub.Name)
	if name == "" {
		return "", "", "", requiredField("name")
	}
	mobile = strings.TrimSpace(sub.Mobile)
	if mobile == "" {
		return "", "", "", requiredField("mobile")
	}
	email = strings.TrimSpace(sub.Email)
	if email == "" {
		return "", "", "", requiredField("email")
	}
	return name, mobile, email, nil
}

func requiredField(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
}

func parseDate(field, raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, requiredField(field)
	}
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a valid date (YYYY-MM-DD)", ErrInvalidInput, field)
	}
	return t, nil
}
