package services

import (
	"errors"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"

	"gorm.io/gorm"
)

const (
	DefaultCalorieTarget = 2200
	DefaultProteinTarget = 150
)

// ProfileInput carries partial profile updates; nil fields are left alone.
type ProfileInput struct {
	Name          *string  `json:"name"`
	CalorieTarget *float64 `json:"calorie_target"`
	ProteinTarget *float64 `json:"protein_target"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	SheetsURL     *string  `json:"sheets_webhook_url"`
}

func GetProfileByPhone(phone string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("phone_number = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetProfileByID(userID uint) (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateProfile returns the profile for a phone number, creating one
// with default targets on first login.
func FindOrCreateProfile(phone string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("phone_number = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		PhoneNumber:   phone,
		Name:          "User",
		CalorieTarget: DefaultCalorieTarget,
		ProteinTarget: DefaultProteinTarget,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the supplied fields into the stored profile.
func UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.CalorieTarget != nil && *input.CalorieTarget > 0 {
		user.CalorieTarget = *input.CalorieTarget
	}
	if input.ProteinTarget != nil && *input.ProteinTarget > 0 {
		user.ProteinTarget = *input.ProteinTarget
	}
	if input.Weight != nil && *input.Weight > 0 {
		user.Weight = *input.Weight
	}
	if input.Height != nil && *input.Height > 0 {
		user.Height = *input.Height
	}
	if input.Age != nil && *input.Age > 0 {
		user.Age = *input.Age
	}
	if input.Gender != nil && *input.Gender != "" {
		user.Gender = *input.Gender
	}
	if input.SheetsURL != nil {
		user.SheetsWebhookURL = *input.SheetsURL
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateWearables(userID uint, hasOura, hasAppleHealth, hasCGM bool) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"has_oura":         hasOura,
			"has_apple_health": hasAppleHealth,
			"has_cgm":          hasCGM,
		}).Error
}

func UpdateTheme(userID uint, darkMode bool) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("dark_mode", darkMode).Error
}

// ProfileView is the shape returned to the client and to the getUserData tool.
func ProfileView(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                 u.ID,
		"phone_number":       u.PhoneNumber,
		"name":               u.Name,
		"calorie_target":     u.CalorieTarget,
		"protein_target":     u.ProteinTarget,
		"weight":             u.Weight,
		"height":             u.Height,
		"age":                u.Age,
		"gender":             u.Gender,
		"sheets_webhook_url": u.SheetsWebhookURL,
		"dark_mode":          u.DarkMode,
		"wearables": map[string]bool{
			"has_oura":         u.HasOura,
			"has_apple_health": u.HasAppleHealth,
			"has_cgm":          u.HasCGM,
		},
	}
}
