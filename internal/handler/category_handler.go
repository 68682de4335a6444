package handler

import (
	"net/http"
	"time"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Categories and mechanics share these handlers; the route picks the kind.

type EntryInput struct {
	Name        string `json:"name" binding:"required,max=64" example:"Drafting"`
	Description string `json:"description" example:"Pick one of many"`
}

type EntryResponse struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func newEntryResponse(e service.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Name:        e.Name,
		Description: e.Description,
	}
}

// GetEntries godoc
// @Summary      List categories or mechanics
// @Description  Lists every approved entry ordered by name.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   EntryResponse
// @Router       /categories [get]
// @Router       /mechanics [get]
func GetEntries(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := service.Order{Column: c.DefaultQuery("sort", "name"), Desc: c.Query("desc") == "true"}
		entries, err := catalogService().ListEntries(c.Request.Context(), kind, order)
		if err != nil {
			respondError(c, err)
			return
		}

		response := make([]EntryResponse, 0, len(entries))
		for _, e := range entries {
			response = append(response, newEntryResponse(e))
		}
		c.JSON(http.StatusOK, response)
	}
}

// GetEntryByID godoc
// @Summary      Get a category or mechanic
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  EntryResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id} [get]
// @Router       /mechanics/{id} [get]
func GetEntryByID(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		entry, err := catalogService().GetEntry(c.Request.Context(), kind, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newEntryResponse(*entry))
	}
}

// CreateEntry godoc
// @Summary      Add a category or mechanic
// @Description  Adds an entry directly, bypassing the proposal queue.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body EntryInput true "Entry Info"
// @Success      201  {object}  EntryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Router       /categories [post]
// @Router       /mechanics [post]
func CreateEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input EntryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := catalogService().CreateEntry(c.Request.Context(), actor(c), kind, service.EntryInput{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newEntryResponse(*entry))
	}
}

// UpdateEntry godoc
// @Summary      Update a category or mechanic
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int        true  "Entry ID"
// @Param        input body      EntryInput true  "Entry Info"
// @Success      200   {object}  EntryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Moderator access required"
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse "Name already taken"
// @Router       /categories/{id} [put]
// @Router       /mechanics/{id} [put]
func UpdateEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var input EntryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := catalogService().UpdateEntry(c.Request.Context(), actor(c), kind, id, service.EntryInput{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newEntryResponse(*entry))
	}
}

// DeleteEntry godoc
// @Summary      Delete a category or mechanic
// @Description  Deletes the entry and detaches it from every game.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Entry ID"
// @Success      200 {object} map[string]string "{"message": "Deleted"}"
// @Failure      403 {object} ErrorResponse "Moderator access required"
// @Failure      404 {object} ErrorResponse
// @Router       /categories/{id} [delete]
// @Router       /mechanics/{id} [delete]
func DeleteEntry(kind models.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := catalogService().DeleteEntry(c.Request.Context(), actor(c), kind, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}

// actor returns the user loaded by RequireRole, or nil.
func actor(c *gin.Context) service.Actor {
	if user, ok := auth.CurrentUser(c); ok {
		return user
	}
	return nil
}
