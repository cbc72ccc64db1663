package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/middleware"
	"github.com/hackmatehq/hackmate/pkg/responses"
)

// RegisterActivityRoutes exposes the persisted activity feed.
func RegisterActivityRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		protected.GET("/activity", listActivity(db))
		protected.GET("/teams/:team_id/activity", listTeamActivity(db))
	}
}

// listActivity godoc
// @Summary Recent activity across all teams
// @Tags Activity
// @Produce json
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} responses.SuccessResponse{data=[]Activity}
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /activity [get]
func listActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		rows, err := Recent(db, 0, limit)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve activity: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Activity retrieved successfully", rows)
	}
}

// listTeamActivity godoc
// @Summary Recent activity for one team
// @Tags Activity
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} responses.SuccessResponse{data=[]Activity}
// @Failure 400 {object} responses.ErrorResponse "Invalid team ID"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/activity [get]
func listTeamActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
		if err != nil {
			responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		rows, err := Recent(db, uint(teamID), limit)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve activity: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Team activity retrieved successfully", rows)
	}
}
