package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/middleware"
	"github.com/hackmatehq/hackmate/pkg/responses"
	"github.com/hackmatehq/hackmate/pkg/validator"
)

// TeamController handles team-related HTTP requests. Reads go straight to
// the repository; anything that mutates goes through TeamService.
type TeamController struct {
	repo      TeamRepository
	service   *TeamService
	appConfig *config.Config
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, service *TeamService, appConfig *config.Config) *TeamController {
	return &TeamController{
		repo:      repo,
		service:   service,
		appConfig: appConfig,
	}
}

// TeamDetail is a team with its current roster.
type TeamDetail struct {
	Team
	Members []TeamMember `json:"members"`
}

func (tc *TeamController) currentProfileID(c *gin.Context) (uint, bool) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Profile not authenticated")
		return 0, false
	}
	return profileID, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// sendServiceError maps domain errors onto HTTP statuses; anything that is
// not a known domain error becomes a 500 with the fallback message.
func sendServiceError(c *gin.Context, err error, fallback string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		responses.SendError(c, status, fallback+": "+err.Error())
		return
	}
	responses.SendError(c, status, err.Error())
}

// CreateTeam godoc
// @Summary Create a team
// @Description Creates a team with the caller as leader and first member.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 409 {object} responses.ErrorResponse "Name taken or caller already on a team"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	created, err := tc.service.CreateTeam(profileID, req)
	if err != nil {
		sendServiceError(c, err, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", created)
}

// GetTeamByID godoc
// @Summary Get a team by its ID
// @Description Retrieves a team together with its current members.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamDetail} "Team details"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}

	members, err := tc.repo.GetMembers(teamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve members: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", TeamDetail{Team: *t, Members: members})
}

// GetAllTeams godoc
// @Summary Browse teams
// @Description Retrieves teams with optional filters and pagination. Disbanded teams are excluded.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status (recruiting, full, closed, voting)"
// @Param name query string false "Search by team name (case-insensitive, partial match)"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team} "List of teams"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if name := c.Query("name"); name != "" {
		filters["name"] = name
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit, filters)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// GetMyTeam godoc
// @Summary Get the caller's team
// @Description Retrieves the team the authenticated profile belongs to, with the roster.
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=TeamDetail} "Team details"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Not on a team"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/mine [get]
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByMemberProfileID(profileID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "You are not on a team")
		return
	}

	members, err := tc.repo.GetMembers(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve members: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", TeamDetail{Team: *t, Members: members})
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Leader-only edit of description, wanted roles, tech stack and member bounds.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team updated successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	updated, err := tc.service.UpdateTeam(teamID, profileID, req)
	if err != nil {
		sendServiceError(c, err, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", updated)
}

// CloseRecruiting godoc
// @Summary Close recruiting
// @Description Leader-only: stop accepting join requests without disbanding.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Recruiting closed"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Team is not recruiting"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/close [post]
func (tc *TeamController) CloseRecruiting(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	t, err := tc.service.CloseRecruiting(teamID, profileID)
	if err != nil {
		sendServiceError(c, err, "Failed to close recruiting")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Recruiting closed", t)
}

// ReopenRecruiting godoc
// @Summary Reopen recruiting
// @Description Leader-only: resume accepting join requests on a closed team.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Recruiting reopened"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Team is not closed"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/reopen [post]
func (tc *TeamController) ReopenRecruiting(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	t, err := tc.service.ReopenRecruiting(teamID, profileID)
	if err != nil {
		sendServiceError(c, err, "Failed to reopen recruiting")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Recruiting reopened", t)
}

// SubmitJoinRequest godoc
// @Summary Request to join a team
// @Description Files a pending join request for a role on a recruiting team.
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param request body SubmitJoinRequest true "Role and optional message"
// @Success 201 {object} responses.SuccessResponse{data=JoinRequest} "Request submitted"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member, already requested, or team not recruiting"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [post]
func (tc *TeamController) SubmitJoinRequest(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req SubmitJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	created, err := tc.service.SubmitJoinRequest(profileID, teamID, req.Role, req.Message)
	if err != nil {
		sendServiceError(c, err, "Failed to submit join request")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request submitted", created)
}

// GetTeamJoinRequests godoc
// @Summary List a team's join requests
// @Description Leader-only view of the team's join requests, newest first.
// @Tags JoinRequests
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status (pending, accepted, rejected, withdrawn)"
// @Success 200 {object} responses.PaginatedResponse{data=[]JoinRequest} "Join requests"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [get]
func (tc *TeamController) GetTeamJoinRequests(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}
	if t.LeaderID == nil || *t.LeaderID != profileID {
		responses.SendError(c, http.StatusForbidden, ErrNotTeamLeader.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	requests, total, err := tc.repo.GetJoinRequestsByTeamID(teamID, c.Query("status"), page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve join requests: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Join requests retrieved successfully", requests, total, page, limit)
}

// GetMyJoinRequests godoc
// @Summary List the caller's join requests
// @Tags JoinRequests
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status (pending, accepted, rejected, withdrawn)"
// @Success 200 {object} responses.PaginatedResponse{data=[]JoinRequest} "Join requests"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /join-requests [get]
func (tc *TeamController) GetMyJoinRequests(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	requests, total, err := tc.repo.GetJoinRequestsByProfileID(profileID, c.Query("status"), page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve join requests: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Join requests retrieved successfully", requests, total, page, limit)
}

// RespondToJoinRequest godoc
// @Summary Accept or reject a join request
// @Description Leader-only. Acceptance re-checks the role opening; a request whose role has since been filled stays pending and the call returns 409.
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Param request_id path uint true "Join Request ID"
// @Param decision body RespondJoinRequest true "Accept flag and optional response message"
// @Success 200 {object} responses.SuccessResponse{data=JoinRequest} "Request resolved"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Request not found"
// @Failure 409 {object} responses.ErrorResponse "Already resolved or role no longer open"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /join-requests/{request_id}/respond [post]
func (tc *TeamController) RespondToJoinRequest(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	var req RespondJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	resolved, err := tc.service.RespondToRequest(requestID, profileID, req.Accept, req.ResponseMessage)
	if err != nil {
		sendServiceError(c, err, "Failed to respond to join request")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request resolved", resolved)
}

// WithdrawJoinRequest godoc
// @Summary Withdraw a pending join request
// @Tags JoinRequests
// @Produce json
// @Param request_id path uint true "Join Request ID"
// @Success 200 {object} responses.SuccessResponse{data=JoinRequest} "Request withdrawn"
// @Failure 403 {object} responses.ErrorResponse "Not the request owner"
// @Failure 404 {object} responses.ErrorResponse "Request not found"
// @Failure 409 {object} responses.ErrorResponse "Request already resolved"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /join-requests/{request_id}/withdraw [post]
func (tc *TeamController) WithdrawJoinRequest(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	withdrawn, err := tc.service.WithdrawRequest(profileID, requestID)
	if err != nil {
		sendServiceError(c, err, "Failed to withdraw join request")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request withdrawn", withdrawn)
}

// RemoveMember godoc
// @Summary Remove a member
// @Description Leader-only removal of another member. The freed slot reopens recruiting on a full team.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param profile_id path uint true "Profile ID of the member to remove"
// @Success 200 {object} responses.SuccessResponse "Member removed"
// @Failure 400 {object} responses.ErrorResponse "Leader cannot remove themselves"
// @Failure 403 {object} responses.ErrorResponse "Not the team leader"
// @Failure 404 {object} responses.ErrorResponse "Team or member not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{profile_id} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "profile_id")
	if !ok {
		return
	}

	if err := tc.service.RemoveMember(teamID, profileID, memberID); err != nil {
		sendServiceError(c, err, "Failed to remove member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Description Removes the caller from the team. A departing leader triggers succession: auto-promotion with one member left, a timed election with two or more, disbandment with none.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=LeaveResult} "Departure outcome"
// @Failure 404 {object} responses.ErrorResponse "Team not found or not a member"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [post]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	result, err := tc.service.LeaveTeam(profileID, teamID)
	if err != nil {
		sendServiceError(c, err, "Failed to leave team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Left team", result)
}

// CastVote godoc
// @Summary Vote for a new leader
// @Description Records or replaces the caller's vote in the team's active election.
// @Tags Voting
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param vote body CastVoteRequest true "Candidate to vote for"
// @Success 200 {object} responses.SuccessResponse "Vote recorded"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or self-vote"
// @Failure 403 {object} responses.ErrorResponse "Voter or candidate not on the team"
// @Failure 404 {object} responses.ErrorResponse "No active election"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/vote [post]
func (tc *TeamController) CastVote(c *gin.Context) {
	profileID, ok := tc.currentProfileID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if err := tc.service.CastVote(profileID, teamID, req.CandidateID); err != nil {
		sendServiceError(c, err, "Failed to cast vote")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Vote recorded", nil)
}

// GetVotingState godoc
// @Summary Get the active election
// @Description Returns the active round with a live tally and eligible voter count.
// @Tags Voting
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=VotingState} "Election state"
// @Failure 404 {object} responses.ErrorResponse "No active election"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/voting [get]
func (tc *TeamController) GetVotingState(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	state, err := tc.service.GetVotingState(teamID)
	if err != nil {
		if errors.Is(err, ErrNoActiveElection) {
			responses.SendError(c, http.StatusNotFound, err.Error())
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve election state: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Election state retrieved successfully", state)
}

// FinalizeElection godoc
// @Summary Finalize the team's election
// @Description Resolves the latest voting round. Before the deadline this only succeeds on full consensus; afterwards the plurality candidate wins, or the team disbands if nobody voted. Safe to call repeatedly.
// @Tags Voting
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=CloseResult} "Election outcome"
// @Failure 404 {object} responses.ErrorResponse "Team or election not found"
// @Failure 409 {object} responses.ErrorResponse "Election window still open"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/voting/finalize [post]
func (tc *TeamController) FinalizeElection(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	result, err := tc.service.CloseElection(teamID)
	if err != nil {
		sendServiceError(c, err, "Failed to finalize election")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Election finalized", result)
}
