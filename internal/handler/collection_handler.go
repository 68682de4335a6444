package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LuckyShotInput struct {
	Players int `json:"players" example:"3"`
}

// LuckyShotResponse holds the drawn game, or null when nothing fits.
type LuckyShotResponse struct {
	Game *GameResponse `json:"game"`
}

// GetCollection godoc
// @Summary      List my games
// @Tags         collection
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   GameResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /collection [get]
func GetCollection(c *gin.Context) {
	games, err := collectionService().List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// AddToCollection godoc
// @Summary      Add a game to my collection
// @Description  Idempotent.
// @Tags         collection
// @Produce      json
// @Security     BearerAuth
// @Param        gameID path int true "Game ID"
// @Success      200 {object} map[string]bool "{"in_collection": true}"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /collection/{gameID} [post]
func AddToCollection(c *gin.Context) {
	gameID, ok := idParam(c, "gameID")
	if !ok {
		return
	}
	if err := collectionService().Add(c.Request.Context(), currentUserID(c), gameID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_collection": true})
}

// RemoveFromCollection godoc
// @Summary      Remove a game from my collection
// @Description  Idempotent.
// @Tags         collection
// @Produce      json
// @Security     BearerAuth
// @Param        gameID path int true "Game ID"
// @Success      200 {object} map[string]bool "{"in_collection": false}"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /collection/{gameID} [delete]
func RemoveFromCollection(c *gin.Context) {
	gameID, ok := idParam(c, "gameID")
	if !ok {
		return
	}
	if err := collectionService().Remove(c.Request.Context(), currentUserID(c), gameID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_collection": false})
}

// LuckyShot godoc
// @Summary      Pick a random game for a group
// @Description  Draws uniformly among my games that support the given number of players.
// @Tags         collection
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body LuckyShotInput true "Group size"
// @Success      200  {object}  LuckyShotResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /collection/lucky-shot [post]
func LuckyShot(c *gin.Context) {
	var input LuckyShotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := collectionService().LuckyShot(c.Request.Context(), currentUserID(c), input.Players)
	if err != nil {
		respondError(c, err)
		return
	}

	var response LuckyShotResponse
	if game != nil {
		g := newGameResponse(*game)
		response.Game = &g
	}
	c.JSON(http.StatusOK, response)
}

