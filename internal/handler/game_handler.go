package handler

import (
	"net/http"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Title       string `json:"title" binding:"required,max=255" example:"Agricola"`
	Author      string `json:"author" binding:"required,max=255" example:"Uwe Rosenberg"`
	Description string `json:"description"`
	MinPlayers  int    `json:"min_players" binding:"required,min=1" example:"1"`
	MaxPlayers  int    `json:"max_players" binding:"required,min=1" example:"4"`
	GameTime    string `json:"game_time" binding:"max=64" example:"90 min"`
	BGGLink     string `json:"bgg_link" binding:"required,url" example:"https://boardgamegeek.com/boardgame/31260/agricola"`
	CategoryIDs []uint `json:"category_ids"` // IDs of the categories to associate with the game
	MechanicIDs []uint `json:"mechanic_ids"` // IDs of the mechanics to associate with the game
}

func (in GameInput) toService() service.GameInput {
	return service.GameInput{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		MinPlayers:  in.MinPlayers,
		MaxPlayers:  in.MaxPlayers,
		GameTime:    in.GameTime,
		BGGLink:     in.BGGLink,
		CategoryIDs: in.CategoryIDs,
		MechanicIDs: in.MechanicIDs,
	}
}

type GameResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Description  string          `json:"description"`
	MinPlayers   int             `json:"min_players"`
	MaxPlayers   int             `json:"max_players"`
	GameTime     string          `json:"game_time"`
	BGGLink      string          `json:"bgg_link"`
	ImageURL     string          `json:"image_url,omitempty"`
	InCollection *bool           `json:"in_collection,omitempty"`
	Categories   []EntryResponse `json:"categories"`
	Mechanics    []EntryResponse `json:"mechanics"`
}

func newGameResponse(game models.Game) GameResponse {
	categories := make([]EntryResponse, 0, len(game.Categories))
	for _, cat := range game.Categories {
		if cat != nil {
			categories = append(categories, newEntryResponse(service.Entry{ID: cat.ID, Name: cat.Name, Description: cat.Description, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt}))
		}
	}
	mechanics := make([]EntryResponse, 0, len(game.Mechanics))
	for _, mech := range game.Mechanics {
		if mech != nil {
			mechanics = append(mechanics, newEntryResponse(service.Entry{ID: mech.ID, Name: mech.Name, Description: mech.Description, CreatedAt: mech.CreatedAt, UpdatedAt: mech.UpdatedAt}))
		}
	}

	return GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Author:      game.Author,
		Description: game.Description,
		MinPlayers:  game.MinPlayers,
		MaxPlayers:  game.MaxPlayers,
		GameTime:    game.GameTime,
		BGGLink:     game.BGGLink,
		Categories:  categories,
		Mechanics:   mechanics,
	}
}

func newGameResponses(games []models.Game) []GameResponse {
	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	return response
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Catalog Writes ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a new game and associates it with the given categories and mechanics.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Title already taken"
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	created, err := catalogService().CreateGame(ctx, input.toService())
	if err != nil {
		respondError(c, err)
		return
	}

	game, err := catalogService().GetGame(ctx, created.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGameResponse(*game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Updates a game's details and replaces its categories and mechanics.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      409   {object}  ErrorResponse "Title already taken"
// @Router       /games/{id} [put]
func UpdateGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := catalogService().UpdateGame(c.Request.Context(), id, input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game, removes it from every collection and deletes the invitations hosting it.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := catalogService().DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion

// region --- Catalog Reads ---

// GetGames godoc
// @Summary      List games
// @Description  Lists every game ordered by title.
// @Tags         games
// @Produce      json
// @Success      200 {array} GameResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	order := service.Order{Column: c.DefaultQuery("sort", "title"), Desc: c.Query("desc") == "true"}
	games, err := catalogService().ListGames(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// SearchGames godoc
// @Summary      Search games by title
// @Description  Case-insensitive title substring search, paginated.
// @Tags         games
// @Produce      json
// @Param        title query string false "Part of the title"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedGameResponse
// @Router       /games/search [get]
func SearchGames(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := catalogService().SearchGames(c.Request.Context(), c.Query("title"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(newGameResponses(result.Items), result.Total, result.Page, result.Limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its categories, mechanics and preview image. Signed-in callers also see whether they own it.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	game, err := catalogService().GetGame(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := newGameResponse(*game)
	if Previews != nil {
		response.ImageURL = Previews.ImageURL(ctx, game.BGGLink)
	}
	if userID, ok := auth.CurrentUserID(c); ok {
		owned, err := collectionService().Has(ctx, userID, game.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		response.InCollection = &owned
	}

	c.JSON(http.StatusOK, response)
}

// endregion
