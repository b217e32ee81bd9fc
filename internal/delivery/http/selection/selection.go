package http_selection

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_selection "github.com/mkrogh/reelmatch/internal/usecase/selection"
)

type ParticipantValidator interface {
	IsParticipant(ctx context.Context, sessionID, userID uuid.UUID) (bool, error)
}

type Controller struct {
	usecase *usecase_selection.Usecase
	pv      ParticipantValidator
	logger  *slog.Logger
}

func New(usecase *usecase_selection.Usecase, pv ParticipantValidator) *Controller {
	return &Controller{
		usecase: usecase,
		pv:      pv,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions/:session_id")
	{
		sessions.GET("/selections", c.get)
		sessions.PUT("/selections", c.toggle)
	}
}

type SelectionDTO struct {
	Key        int64  `json:"key"`
	SelectedBy string `json:"selected_by"`
	Username   string `json:"username"`
}

type SelectionsResponseDTO struct {
	Platforms []SelectionDTO `json:"platforms"`
	Genres    []SelectionDTO `json:"genres"`
	// Flattened projections, same shape the store persists.
	PlatformIDs []int64 `json:"platform_ids"`
	GenreIDs    []int64 `json:"genre_ids"`
}

func toDTOs(set model.SelectionSet) []SelectionDTO {
	dtos := make([]SelectionDTO, 0, len(set))
	for _, sel := range set {
		dtos = append(dtos, SelectionDTO{
			Key:        sel.Key,
			SelectedBy: sel.SelectedBy.String(),
			Username:   sel.Username,
		})
	}
	return dtos
}

func toResponse(platform, genre model.SelectionSet) SelectionsResponseDTO {
	return SelectionsResponseDTO{
		Platforms:   toDTOs(platform),
		Genres:      toDTOs(genre),
		PlatformIDs: platform.Keys(),
		GenreIDs:    genre.Keys(),
	}
}

func (c *Controller) validateParticipant(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid session id",
		})
		return uuid.Nil, uuid.Nil, false
	}

	token := ctx.GetHeader("X-user-token")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token header required",
		})
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "invalid user token",
		})
		return uuid.Nil, uuid.Nil, false
	}

	isParticipant, err := c.pv.IsParticipant(ctx, sessionID, userID)
	if err != nil {
		c.logger.Error("failed to validate participant",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return uuid.Nil, uuid.Nil, false
	}
	if !isParticipant {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "user is not a participant of this session",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return sessionID, userID, true
}

func (c *Controller) get(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid session id",
		})
		return
	}

	platform, genre, err := c.usecase.Selections(ctx, sessionID)
	if err != nil {
		if errors.Is(err, usecase_selection.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get selections", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toResponse(platform, genre))
}

type ToggleRequestDTO struct {
	Kind     string `json:"kind" binding:"required"`
	ItemID   int64  `json:"item_id" binding:"required"`
	Username string `json:"username"`
}

// Toggle flips one provider or genre in the shared selection sets
// @Summary Toggle selection
// @Description Any participant may add or remove an item; removal ignores who added it
// @Tags Selections
// @Accept json
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} SelectionsResponseDTO "Both sets after the toggle"
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Security UserToken
// @Router /sessions/{session_id}/selections [put]
func (c *Controller) toggle(ctx *gin.Context) {
	sessionID, userID, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	var req ToggleRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "kind and item_id required",
		})
		return
	}

	platform, genre, err := c.usecase.Toggle(ctx, sessionID, req.Kind, req.ItemID, userID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, usecase_selection.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_selection.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "kind must be provider or genre",
			})
		default:
			c.logger.Error("failed to toggle selection", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, toResponse(platform, genre))
}
