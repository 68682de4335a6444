package handler

import (
	"net/http"
	"time"

	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type InvitationInput struct {
	GameID    uint      `json:"game_id" binding:"required" example:"1"`
	NoPlayers int       `json:"no_players" binding:"required,min=1" example:"3"`
	GameTime  time.Time `json:"game_time" binding:"required" example:"2026-11-20T19:00:00Z"`
	GamePlace string    `json:"game_place" binding:"required,max=64" example:"Main St. 5"`
	ExtraText string    `json:"extra_text" binding:"max=510"`
}

func (in InvitationInput) toService() service.InvitationInput {
	return service.InvitationInput{
		GameID:    in.GameID,
		NoPlayers: in.NoPlayers,
		GameTime:  in.GameTime,
		GamePlace: in.GamePlace,
		ExtraText: in.ExtraText,
	}
}

// GameSummary is the short form of a game embedded in invitations.
type GameSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
}

type InvitationResponse struct {
	ID              uint                   `json:"id"`
	Owner           PlayerResponse         `json:"owner"`
	Game            GameSummary            `json:"game"`
	NoPlayers       int                    `json:"no_players"`
	GameTime        time.Time              `json:"game_time"`
	GamePlace       string                 `json:"game_place"`
	ExtraText       string                 `json:"extra_text"`
	Players         []PlayerResponse       `json:"players"`
	AvailablePlaces int                    `json:"available_places"`
	State           models.InvitationState `json:"state" example:"open"`
}

func newInvitationResponse(inv models.GameInvitation) InvitationResponse {
	players := make([]PlayerResponse, 0, len(inv.Players))
	for _, p := range inv.Players {
		players = append(players, newPlayerResponse(p))
	}

	return InvitationResponse{
		ID:    inv.ID,
		Owner: newPlayerResponse(inv.Owner),
		Game: GameSummary{
			ID:         inv.Game.ID,
			Title:      inv.Game.Title,
			MinPlayers: inv.Game.MinPlayers,
			MaxPlayers: inv.Game.MaxPlayers,
		},
		NoPlayers:       inv.NoPlayers,
		GameTime:        inv.GameTime,
		GamePlace:       inv.GamePlace,
		ExtraText:       inv.ExtraText,
		Players:         players,
		AvailablePlaces: inv.AvailablePlaces(),
		State:           inv.State(),
	}
}

func newInvitationResponses(invs []models.GameInvitation) []InvitationResponse {
	response := make([]InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		response = append(response, newInvitationResponse(inv))
	}
	return response
}

// OverviewResponse lists the invitations relevant to the caller.
type OverviewResponse struct {
	Hosted []InvitationResponse `json:"hosted"`
	Open   []InvitationResponse `json:"open"`
	Joined []InvitationResponse `json:"joined"`
}

// endregion

// GetInvitationOverview godoc
// @Summary      My invitations
// @Description  Invitations I host, invitations open to me and invitations I joined, each ordered by game time.
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  OverviewResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /invitations [get]
func GetInvitationOverview(c *gin.Context) {
	overview, err := rosterService().Overview(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, OverviewResponse{
		Hosted: newInvitationResponses(overview.Hosted),
		Open:   newInvitationResponses(overview.Open),
		Joined: newInvitationResponses(overview.Joined),
	})
}

// CreateInvitation godoc
// @Summary      Host a game night
// @Description  Creates an invitation for a game from my collection. The host does not take a seat.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body InvitationInput true "Invitation Info"
// @Success      201  {object}  InvitationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /invitations [post]
func CreateInvitation(c *gin.Context) {
	var input InvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := rosterService().Create(c.Request.Context(), currentUserID(c), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newInvitationResponse(*inv))
}

// GetInvitationByID godoc
// @Summary      Get an invitation by ID
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} InvitationResponse
// @Failure      404 {object} ErrorResponse "Invitation not found"
// @Router       /invitations/{id} [get]
func GetInvitationByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	inv, err := rosterService().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInvitationResponse(*inv))
}

// UpdateInvitation godoc
// @Summary      Edit an invitation
// @Description  Only the host may edit. Capacity cannot drop below the players already joined.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Invitation ID"
// @Param        input body      InvitationInput  true  "Invitation Info"
// @Success      200   {object}  InvitationResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Only the host can edit"
// @Failure      404   {object}  ErrorResponse
// @Router       /invitations/{id} [put]
func UpdateInvitation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input InvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := rosterService().Edit(c.Request.Context(), id, currentUserID(c), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInvitationResponse(*inv))
}

// DeleteInvitation godoc
// @Summary      Delete an invitation
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} map[string]string "{"message": "Invitation deleted"}"
// @Failure      403 {object} ErrorResponse "Only the host can delete"
// @Failure      404 {object} ErrorResponse
// @Router       /invitations/{id} [delete]
func DeleteInvitation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rosterService().Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted"})
}

// JoinInvitation godoc
// @Summary      Join an invitation
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} InvitationResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Invitation is full or already joined"
// @Router       /invitations/{id}/join [post]
func JoinInvitation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	inv, err := rosterService().Join(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInvitationResponse(*inv))
}

// LeaveInvitation godoc
// @Summary      Leave an invitation
// @Description  Idempotent.
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} InvitationResponse
// @Failure      404 {object} ErrorResponse
// @Router       /invitations/{id}/leave [post]
func LeaveInvitation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	inv, err := rosterService().Leave(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInvitationResponse(*inv))
}

// RemoveInvitationPlayer godoc
// @Summary      Remove a player
// @Description  The host removes a player from the roster. Idempotent.
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "Invitation ID"
// @Param        userID path int true "Player ID"
// @Success      200 {object} InvitationResponse
// @Failure      403 {object} ErrorResponse "Only the host can remove players"
// @Failure      404 {object} ErrorResponse
// @Router       /invitations/{id}/players/{userID} [delete]
func RemoveInvitationPlayer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := idParam(c, "userID")
	if !ok {
		return
	}
	inv, err := rosterService().RemovePlayer(c.Request.Context(), id, currentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInvitationResponse(*inv))
}
