package services

import (
	"errors"
	"log"
	"time"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"
	"github.com/andrientheodore/Nutrichat/utils"
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	sms      *SMSService // nil when AWS is not configured; codes are logged
	insights *InsightService
}

func NewAuthService(sms *SMSService, insights *InsightService) *AuthService {
	return &AuthService{sms: sms, insights: insights}
}

// RequestCode issues a 4-digit login code for the phone number. SMS delivery
// is best-effort; on failure the code still works and is logged for dev use.
func (a *AuthService) RequestCode(phone string) error {
	if len(phone) < 3 {
		return errors.New("please enter a valid phone number")
	}

	code := utils.GenerateOTP(4)
	entry := models.AuthCode{
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   time.Now().Add(otpTTL),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return err
	}

	if a.sms != nil {
		if err := a.sms.SendOTP(phone, code); err != nil {
			log.Printf("SMS delivery failed for %s: %v", phone, err)
		}
	} else {
		log.Printf("SMS disabled; login code for %s is %s", phone, code)
	}
	return nil
}

// VerifyCode checks the latest unexpired code, then finds or creates the
// profile and returns a session token.
func (a *AuthService) VerifyCode(phone, code string) (string, *models.User, error) {
	var entry models.AuthCode
	err := config.DB.
		Where("phone_number = ? AND code = ?", phone, code).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil || time.Now().After(entry.ExpiresAt) {
		return "", nil, errors.New("invalid or expired code")
	}

	// Codes are single-use
	config.DB.Delete(&entry)

	user, err := FindOrCreateProfile(phone)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.PhoneNumber)
	if err != nil {
		return "", nil, err
	}

	if a.insights != nil {
		a.insights.ScheduleBiometricInsight(user)
	}

	return token, user, nil
}
