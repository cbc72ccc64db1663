package auth

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/internal/profile"
)

// AuthRepository defines the interface for profile identity operations.
type AuthRepository interface {
	CreateProfile(p *profile.Profile) error
	GetProfileByID(id uint) (*profile.Profile, error)
	GetProfileByIdentifier(identifier string) (*profile.Profile, error)
	UpdateProfile(p *profile.Profile) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateProfile(p *profile.Profile) error {
	return r.db.Create(p).Error
}

func (r *authRepository) GetProfileByID(id uint) (*profile.Profile, error) {
	var p profile.Profile
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetProfileByIdentifier looks a profile up by email or phone. Identifiers
// containing '@' are treated as emails, everything else as a phone number.
func (r *authRepository) GetProfileByIdentifier(identifier string) (*profile.Profile, error) {
	var p profile.Profile
	query := r.db
	if strings.Contains(identifier, "@") {
		query = query.Where("email = ?", identifier)
	} else {
		query = query.Where("phone = ?", identifier)
	}
	if err := query.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) UpdateProfile(p *profile.Profile) error {
	return r.db.Save(p).Error
}
