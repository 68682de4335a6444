package handler

import (
	"errors"
	"net/http"

	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ProposalInput struct {
	Name        string `json:"name" binding:"required" example:"Drafting"`
	Description string `json:"description" example:"Pick one of many"`
}

// ReviewInput maps proposal ids to the new status: 1 accepts, 2 rejects,
// anything else is ignored.
type ReviewInput struct {
	Decisions map[uint]models.ProposalStatus `json:"decisions" binding:"required"`
}

type ProposalResponse struct {
	ID          uint                  `json:"id"`
	Kind        models.CatalogKind    `json:"kind" example:"category"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Status      models.ProposalStatus `json:"status" example:"0"`
	StatusName  string                `json:"status_name" example:"pending"`
}

func newProposalResponse(p models.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:          p.ID,
		Kind:        p.Kind,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StatusName:  p.Status.String(),
	}
}

// endregion

// SubmitProposal godoc
// @Summary      Propose a category or mechanic
// @Description  Queues a proposal for moderator review. No login required.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        kind  path      string         true  "category or mechanic"
// @Param        input body      ProposalInput  true  "Proposal"
// @Success      201   {object}  ProposalResponse
// @Failure      400   {object}  ErrorResponse "Invalid or duplicate name"
// @Router       /proposals/{kind} [post]
func SubmitProposal(c *gin.Context) {
	var input ProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := moderationService().Submit(c.Request.Context(), service.ProposalInput{
		Kind:        models.CatalogKind(c.Param("kind")),
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProposalResponse(*proposal))
}

// GetPendingProposals godoc
// @Summary      List pending proposals
// @Description  Pending proposals of a kind ordered by name, for batch review.
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "category or mechanic"
// @Success      200  {array}   ProposalResponse
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Router       /proposals/{kind}/pending [get]
func GetPendingProposals(c *gin.Context) {
	order := service.Order{Column: c.DefaultQuery("sort", "name"), Desc: c.Query("desc") == "true"}
	proposals, err := moderationService().ListPending(c.Request.Context(), models.CatalogKind(c.Param("kind")), order)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		response = append(response, newProposalResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// ReviewProposals godoc
// @Summary      Review a batch of proposals
// @Description  Accepted proposals are promoted into the catalog, rejected ones are kept with status 2. Decisions that cannot be applied are listed under conflicts and answered with 409.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string       true  "category or mechanic"
// @Param        input body      ReviewInput  true  "Decisions"
// @Success      200   {object}  service.BatchResult
// @Failure      403   {object}  ErrorResponse "Moderator access required"
// @Failure      409   {object}  service.BatchResult
// @Router       /proposals/{kind}/review [post]
func ReviewProposals(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := moderationService().ReviewBatch(c.Request.Context(), actor(c), models.CatalogKind(c.Param("kind")), input.Decisions)
	if errors.Is(err, service.ErrConflict) && result != nil {
		c.JSON(http.StatusConflict, result)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
