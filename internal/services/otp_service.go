package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/quezi/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

func otpKey(channel domain.VerificationChannel, userID uint) string {
	return fmt.Sprintf("otp:%s:%d", channel, userID)
}

func attemptsKey(channel domain.VerificationChannel, userID uint) string {
	return fmt.Sprintf("otp:att:%s:%d", channel, userID)
}

func resendKey(channel domain.VerificationChannel, userID uint) string {
	return fmt.Sprintf("otp:res:%s:%d", channel, userID)
}

// Generate implements domain.OTPService. The code is delivered to target over
// channel; a throttled request returns *domain.ResendWaitError.
func (s *OTPServiceImpl) Generate(ctx context.Context, channel domain.VerificationChannel, target string, userID uint) (*domain.VerificationCode, error) {
	if channel != domain.ChannelEmail && channel != domain.ChannelSMS {
		return nil, domain.ErrInvalidChannel
	}

	canResend, waitTime, err := s.CanResend(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	if !canResend {
		return nil, &domain.ResendWaitError{Seconds: waitTime}
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	codeKey, attKey, resKey := otpKey(channel, userID), attemptsKey(channel, userID), resendKey(channel, userID)

	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, codeKey, code, s.config.TTL)
		pipe.Set(ctx, attKey, 0, s.config.TTL)
		pipe.Set(ctx, resKey, 1, s.config.ResendWindow)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	if err := s.deliver(channel, target, code); err != nil {
		s.redisClient.Del(ctx, codeKey, attKey, resKey)
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return &domain.VerificationCode{
		Channel:   channel,
		Target:    target,
		Code:      code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}, nil
}

func (s *OTPServiceImpl) deliver(channel domain.VerificationChannel, target, code string) error {
	minutes := int(s.config.TTL.Minutes())
	if channel == domain.ChannelSMS {
		message := fmt.Sprintf("Your Quezi verification code is: %s. Valid for %d minutes.", code, minutes)
		return s.notificationSvc.SendSMS(target, message)
	}
	body := fmt.Sprintf("Your verification code is %s.\nIt expires in %d minutes.", code, minutes)
	return s.notificationSvc.SendEmail(target, "Your Quezi verification code", body)
}

// Verify implements domain.OTPService with Redis persistence
func (s *OTPServiceImpl) Verify(ctx context.Context, channel domain.VerificationChannel, code string, userID uint) (bool, error) {
	codeKey, attKey := otpKey(channel, userID), attemptsKey(channel, userID)

	storedCode, err := s.redisClient.Get(ctx, codeKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, domain.ErrOTPNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	attempts, err := s.redisClient.Incr(ctx, attKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, codeKey, attKey)
		return false, domain.ErrOTPMaxAttempts
	}

	if storedCode != code {
		return false, domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, codeKey, attKey)
	return true, nil
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, channel domain.VerificationChannel, userID uint) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(channel, userID)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	wait := int64(ttl.Seconds())
	if wait < 1 {
		wait = 1
	}
	return false, wait, nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	length := s.config.Length
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)

	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
