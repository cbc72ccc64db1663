package auth

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/middleware"
	"github.com/hackmatehq/hackmate/internal/models"
	"github.com/hackmatehq/hackmate/internal/profile"
	"github.com/hackmatehq/hackmate/pkg/responses"
	"github.com/hackmatehq/hackmate/pkg/token"
	"github.com/hackmatehq/hackmate/pkg/validator"
	"github.com/hackmatehq/hackmate/utils"
)

// Secret codes are numeric, 6 to 12 digits.
var secretCodeRe = regexp.MustCompile(`^[0-9]{6,12}$`)

// AuthController handles signup, login and profile self-service.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

// Register godoc
// @Summary Create a participant profile
// @Description Creates a profile with a numeric secret code (6-12 digits) as credential. At least one of email or phone is required.
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body RegisterRequest true "Signup data"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse} "Profile created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 409 {object} responses.ErrorResponse "Email or phone already registered"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if req.Email == "" && req.Phone == "" {
		responses.SendError(c, http.StatusBadRequest, "At least one of email or phone is required")
		return
	}
	if !secretCodeRe.MatchString(req.SecretCode) {
		responses.SendError(c, http.StatusBadRequest, "Secret code must be 6 to 12 digits")
		return
	}

	if req.Email != "" {
		existing, err := ac.repo.GetProfileByIdentifier(req.Email)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to look up profile: "+err.Error())
			return
		}
		if existing != nil {
			responses.SendError(c, http.StatusConflict, "Email already registered")
			return
		}
	}
	if req.Phone != "" {
		existing, err := ac.repo.GetProfileByIdentifier(req.Phone)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to look up profile: "+err.Error())
			return
		}
		if existing != nil {
			responses.SendError(c, http.StatusConflict, "Phone already registered")
			return
		}
	}

	hash, err := utils.HashSecretCode(req.SecretCode)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to hash secret code")
		return
	}

	p := profile.Profile{
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Phone:          req.Phone,
		SecretCodeHash: hash,
		Proficiencies:  models.StringSlice(req.Proficiencies),
		Status:         profile.StatusAvailable,
	}

	if err := ac.repo.CreateProfile(&p); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create profile: "+err.Error())
		return
	}

	accessToken, err := token.GenerateJWT(p.ID, ac.appConfig.JWT.Secret, ac.appConfig.JWT.TokenExpiryHours)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Profile created successfully", AuthResponse{
		AccessToken: accessToken,
		Profile:     FilterProfileRecord(&p),
	})
}

// Login godoc
// @Summary Log in with email or phone and secret code
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login data"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse} "Logged in"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	p, err := ac.repo.GetProfileByIdentifier(req.Identifier)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up profile: "+err.Error())
		return
	}
	if p == nil || !utils.CheckSecretCode(p.SecretCodeHash, req.SecretCode) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, err := token.GenerateJWT(p.ID, ac.appConfig.JWT.Secret, ac.appConfig.JWT.TokenExpiryHours)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken: accessToken,
		Profile:     FilterProfileRecord(p),
	})
}

// GetProfile godoc
// @Summary Get the authenticated profile
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	p, err := ac.repo.GetProfileByID(profileID)
	if err != nil || p == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", FilterProfileRecord(p))
}

// UpdateProfile godoc
// @Summary Update the authenticated profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	p, err := ac.repo.GetProfileByID(profileID)
	if err != nil || p == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Proficiencies != nil {
		p.Proficiencies = models.StringSlice(req.Proficiencies)
	}

	if p.Email == "" && p.Phone == "" {
		responses.SendError(c, http.StatusBadRequest, "Profile must keep at least one of email or phone")
		return
	}

	if err := ac.repo.UpdateProfile(p); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", FilterProfileRecord(p))
}

// UpdateStatus godoc
// @Summary Set availability status
// @Tags Auth
// @Accept json
// @Produce json
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/me/status [put]
func (ac *AuthController) UpdateStatus(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	p, err := ac.repo.GetProfileByID(profileID)
	if err != nil || p == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}

	p.Status = req.Status
	if err := ac.repo.UpdateProfile(p); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update status: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Status updated successfully", FilterProfileRecord(p))
}
