package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"stepwars-server/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewAuthService(db *gorm.DB, catalog *CatalogService) *AuthService {
	return &AuthService{DB: db, Catalog: catalog}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Tribe    string
	Avatar   string
}

// Register creates the account and its complete starting state in one
// transaction: stats, resources, step row, and one warrior/building instance
// per catalog type. Any failure rolls the whole set back.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Tribe == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Tribe:    in.Tribe,
		Avatar:   in.Avatar,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", in.Username, in.Email).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: username or email already taken", ErrInvalidArgument)
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		stats := models.UserStats{
			UserID: user.ID,
			Level:  1, Experience: 0, MaxExperience: 100,
			Health: 100, MaxHealth: 100,
			Strength: 10, Defense: 10, Credits: 0,
		}
		if err := tx.Create(&stats).Error; err != nil {
			return err
		}

		resources := models.UserResources{
			UserID: user.ID,
			Wood:   4000, Clay: 4000, Iron: 4000, Crops: 1000,
		}
		if err := tx.Create(&resources).Error; err != nil {
			return err
		}

		steps := models.UserSteps{UserID: user.ID}
		if err := tx.Create(&steps).Error; err != nil {
			return err
		}

		for _, wt := range s.Catalog.WarriorTypes() {
			warrior := models.UserWarrior{
				UserID:        user.ID,
				WarriorTypeID: wt.ID,
				Name:          wt.Name,
				Count:         0,
				Level:         1,
				TrainingCost:  wt.TrainingCost,
				ResourceCost:  wt.ResourceCost,
				TrainingTime:  wt.TrainingTime,
				UpgradingTime: wt.UpgradingTime,
				Attack:        wt.Attack,
				Defense:       wt.Defense,
				Speed:         wt.Speed,
			}
			if err := tx.Create(&warrior).Error; err != nil {
				return err
			}
		}

		for _, bt := range s.Catalog.BuildingTypes() {
			building := models.UserBuilding{
				UserID:         user.ID,
				BuildingTypeID: bt.ID,
				Level:          0,
				Built:          false,
			}
			if err := tx.Create(&building).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: id=%d username=%s tribe=%s", user.ID, user.Username, user.Tribe)
	return &user, nil
}

// Login verifies the password and issues a fresh opaque session token.
func (s *AuthService) Login(email, password string) (*models.User, *models.Session, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, nil, err
	}

	log.Printf("🔑 User authenticated: id=%d username=%s", user.ID, user.Username)
	return &user, &session, nil
}

// Logout discards the session. Unknown tokens are fine; logout is idempotent.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.DB.Delete(&models.Session{}, "token = ?", token).Error
}

// Profile returns the public account shape.
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar stores the uploaded avatar URL on the account.
func (s *AuthService) UpdateAvatar(userID uint, url string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("avatar", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return nil
}
