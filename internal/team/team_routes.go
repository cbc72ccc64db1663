package team

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/event"
	"github.com/hackmatehq/hackmate/internal/middleware"
)

// RegisterTeamRoutes sets up team, join-request and voting routes.
func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, events event.Emitter) {
	repo := NewTeamRepository(db)
	window := time.Duration(appConfig.Voting.WindowMinutes) * time.Minute
	service := NewTeamService(repo, events, window)
	controller := NewTeamController(repo, service, appConfig)

	auth := middleware.AuthMiddleware(appConfig.JWT.Secret, db)

	teams := router.Group("/teams")
	{
		teams.GET("", controller.GetAllTeams)
		teams.GET("/:team_id", controller.GetTeamByID)

		teams.Use(auth)
		{
			teams.POST("", controller.CreateTeam)
			teams.GET("/mine", controller.GetMyTeam)
			teams.PUT("/:team_id", controller.UpdateTeam)
			teams.POST("/:team_id/close", controller.CloseRecruiting)
			teams.POST("/:team_id/reopen", controller.ReopenRecruiting)
			teams.POST("/:team_id/join-requests", controller.SubmitJoinRequest)
			teams.GET("/:team_id/join-requests", controller.GetTeamJoinRequests)
			teams.DELETE("/:team_id/members/:profile_id", controller.RemoveMember)
			teams.POST("/:team_id/leave", controller.LeaveTeam)
			teams.POST("/:team_id/vote", controller.CastVote)
			teams.GET("/:team_id/voting", controller.GetVotingState)
			teams.POST("/:team_id/voting/finalize", controller.FinalizeElection)
		}
	}

	requests := router.Group("/join-requests")
	requests.Use(auth)
	{
		requests.GET("", controller.GetMyJoinRequests)
		requests.POST("/:request_id/respond", controller.RespondToJoinRequest)
		requests.POST("/:request_id/withdraw", controller.WithdrawJoinRequest)
	}
}
