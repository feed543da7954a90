package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/validation"
)

// VerificationServiceImpl implements domain.VerificationUseCase on top of
// the OTP service.
type VerificationServiceImpl struct {
	userRepo  domain.UserRepository
	otpSvc    domain.OTPService
	publisher domain.EventPublisher
	logger    *zap.Logger
}

func NewVerificationService(
	userRepo domain.UserRepository,
	otpSvc domain.OTPService,
	publisher domain.EventPublisher,
	logger *zap.Logger,
) domain.VerificationUseCase {
	return &VerificationServiceImpl{
		userRepo:  userRepo,
		otpSvc:    otpSvc,
		publisher: publisher,
		logger:    logger.Named("verification"),
	}
}

// SendCode issues a code for the user's email or phone
func (s *VerificationServiceImpl) SendCode(ctx context.Context, userID uint, channel domain.VerificationChannel) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	target, err := verificationTarget(user, channel)
	if err != nil {
		return err
	}

	if _, err := s.otpSvc.Generate(ctx, channel, target, user.ID); err != nil {
		return err
	}
	s.logger.Debug("verification code sent", zap.Uint("user_id", user.ID), zap.String("channel", string(channel)))
	return nil
}

// VerifyCode checks the code and marks the channel as verified
func (s *VerificationServiceImpl) VerifyCode(ctx context.Context, userID uint, channel domain.VerificationChannel, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := verificationTarget(user, channel); err != nil {
		return err
	}

	ok, err := s.otpSvc.Verify(ctx, channel, code, user.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOTPInvalid
	}

	switch channel {
	case domain.ChannelEmail:
		err = s.userRepo.MarkEmailVerified(ctx, user.ID)
	case domain.ChannelSMS:
		err = s.userRepo.MarkPhoneVerified(ctx, user.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to mark %s verified: %w", channel, err)
	}

	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.UserVerifiedEvent, user.ID).
		WithMetadata("user_id", user.ID).
		WithMetadata("channel", string(channel)))
	return nil
}

func verificationTarget(user *domain.User, channel domain.VerificationChannel) (string, error) {
	switch channel {
	case domain.ChannelEmail:
		if user.IsEmailVerified {
			return "", domain.ErrAlreadyVerified
		}
		return user.Email, nil
	case domain.ChannelSMS:
		if user.Phone == "" {
			return "", domain.ErrPhoneRequired
		}
		if user.IsPhoneVerified {
			return "", domain.ErrAlreadyVerified
		}
		return validation.NormalizePhone(user.Phone), nil
	}
	return "", domain.ErrInvalidChannel
}
