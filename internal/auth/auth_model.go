package auth

import (
	"time"

	"github.com/hackmatehq/hackmate/internal/models"
	"github.com/hackmatehq/hackmate/internal/profile"
)

type RegisterRequest struct {
	DisplayName   string   `json:"display_name" binding:"required,min=2,max=60" example:"Ada"`
	Email         string   `json:"email" binding:"omitempty,email" example:"ada@example.com"`
	Phone         string   `json:"phone" binding:"omitempty,e164" example:"+14155550123"`
	SecretCode    string   `json:"secret_code" binding:"required" example:"482913"`
	Proficiencies []string `json:"proficiencies" example:"backend,devops"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"ada@example.com"` // email or phone
	SecretCode string `json:"secret_code" binding:"required" example:"482913"`
}

type UpdateProfileRequest struct {
	DisplayName   *string  `json:"display_name,omitempty" binding:"omitempty,min=2,max=60"`
	Email         *string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string  `json:"phone,omitempty" binding:"omitempty,e164"`
	Proficiencies []string `json:"proficiencies,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available busy break offline" example:"busy"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	Profile     ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID            uint               `json:"id"`
	DisplayName   string             `json:"display_name"`
	Email         string             `json:"email,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Proficiencies models.StringSlice `json:"proficiencies"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func FilterProfileRecord(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		Email:         p.Email,
		Phone:         p.Phone,
		Proficiencies: p.Proficiencies,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
