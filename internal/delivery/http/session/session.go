package http_session

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_session "github.com/mkrogh/reelmatch/internal/usecase/session"
)

type Controller struct {
	usecase *usecase_session.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_session.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", c.create)
		sessions.GET("", c.listByOwner)
		sessions.GET("/join/:code", c.byJoinCode)
		sessions.GET("/:session_id", c.byID)
		sessions.DELETE("/:session_id", c.remove)
		sessions.PATCH("/:session_id/status", c.transition)
		sessions.POST("/:session_id/participants", c.join)
		sessions.DELETE("/:session_id/participants", c.leave)
		sessions.GET("/:session_id/participants", c.participants)
	}
}

type SelectionDTO struct {
	Key        int64     `json:"key"`
	SelectedBy string    `json:"selected_by"`
	Username   string    `json:"username"`
	SelectedAt time.Time `json:"selected_at"`
}

type SessionResponseDTO struct {
	ID                 string         `json:"id"`
	OwnerID            string         `json:"owner_id"`
	Status             string         `json:"status"`
	JoinCode           string         `json:"join_code"`
	PlatformSelections []SelectionDTO `json:"platform_selections"`
	GenreSelections    []SelectionDTO `json:"genre_selections"`
	PlatformIDs        []int64        `json:"platform_ids"`
	GenreIDs           []int64        `json:"genre_ids"`
	MoviesFetched      bool           `json:"movies_fetched"`
	Matches            []int64        `json:"matches"`
	CreatedAt          time.Time      `json:"created_at"`
}

func toSelectionDTOs(set model.SelectionSet) []SelectionDTO {
	dtos := make([]SelectionDTO, 0, len(set))
	for _, sel := range set {
		dtos = append(dtos, SelectionDTO{
			Key:        sel.Key,
			SelectedBy: sel.SelectedBy.String(),
			Username:   sel.Username,
			SelectedAt: sel.SelectedAt,
		})
	}
	return dtos
}

func toSessionDTO(session model.Session) SessionResponseDTO {
	matches := session.Matches
	if matches == nil {
		matches = []int64{}
	}
	return SessionResponseDTO{
		ID:                 session.ID.String(),
		OwnerID:            session.OwnerID.String(),
		Status:             session.Status,
		JoinCode:           session.JoinCode,
		PlatformSelections: toSelectionDTOs(session.PlatformSelections),
		GenreSelections:    toSelectionDTOs(session.GenreSelections),
		PlatformIDs:        session.PlatformSelections.Keys(),
		GenreIDs:           session.GenreSelections.Keys(),
		MoviesFetched:      session.MoviesFetched,
		Matches:            matches,
		CreatedAt:          session.CreatedAt,
	}
}

func userToken(ctx *gin.Context) (uuid.UUID, bool) {
	token := ctx.GetHeader("X-user-token")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token header required",
		})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "invalid user token",
		})
		return uuid.Nil, false
	}
	return userID, true
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid session id",
		})
		return uuid.Nil, false
	}
	return id, true
}

// Create books a new session
// @Summary Create session
// @Description Creates a waiting session owned by the caller, with a fresh join code
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionResponseDTO "Created session"
// @Failure 503 {object} http_common.ErrorResponse "Join codes exhausted"
// @Security UserToken
// @Router /sessions [post]
func (c *Controller) create(ctx *gin.Context) {
	ownerID, ok := userToken(ctx)
	if !ok {
		return
	}

	session, err := c.usecase.Create(ctx, ownerID)
	if err != nil {
		c.logger.Error("failed to create session", slog.String("error", err.Error()))
		if errors.Is(err, usecase_session.ErrCodesUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, toSessionDTO(session))
}

func (c *Controller) listByOwner(ctx *gin.Context) {
	ownerID, ok := userToken(ctx)
	if !ok {
		return
	}

	sessions, err := c.usecase.ByOwner(ctx, ownerID)
	if err != nil {
		c.logger.Error("failed to list sessions", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dtos := make([]SessionResponseDTO, 0, len(sessions))
	for _, session := range sessions {
		dtos = append(dtos, toSessionDTO(session))
	}
	ctx.JSON(http.StatusOK, dtos)
}

// ByJoinCode resolves a human-entered code
// @Summary Resolve join code
// @Tags Sessions
// @Param code path string true "6-character join code"
// @Success 200 {object} SessionResponseDTO "Session"
// @Failure 404 {object} http_common.ErrorResponse "Unknown code"
// @Failure 400 {object} http_common.ErrorResponse "Session already ended"
// @Router /sessions/join/{code} [get]
func (c *Controller) byJoinCode(ctx *gin.Context) {
	session, err := c.usecase.ByJoinCode(ctx, ctx.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, usecase_session.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_session.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "session already ended",
			})
		default:
			c.logger.Error("failed to resolve join code", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, toSessionDTO(session))
}

func (c *Controller) byID(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	session, err := c.usecase.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toSessionDTO(session))
}

// Remove ends the session for everyone
// @Summary Delete session
// @Description Owner-only; cascades to participants, movie list and votes
// @Tags Sessions
// @Param session_id path string true "Session id"
// @Success 204 "Deleted"
// @Failure 401 {object} http_common.ErrorResponse "Not the owner"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Security UserToken
// @Router /sessions/{session_id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	actorID, ok := userToken(ctx)
	if !ok {
		return
	}

	if err := c.usecase.Delete(ctx, id, actorID); err != nil {
		switch {
		case errors.Is(err, usecase_session.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_session.ErrNotOwner):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "only the owner can end the session",
			})
		default:
			c.logger.Error("failed to delete session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

type TransitionRequestDTO struct {
	Status string `json:"status" binding:"required"`
}

// Transition moves the session along its lifecycle
// @Summary Change session status
// @Description Owner-only; waiting->configuring and configuring->matching are the only legal edges
// @Tags Sessions
// @Accept json
// @Param session_id path string true "Session id"
// @Success 204 "Status changed"
// @Failure 400 {object} http_common.ErrorResponse "Illegal transition or missing selections"
// @Failure 401 {object} http_common.ErrorResponse "Not the owner"
// @Security UserToken
// @Router /sessions/{session_id}/status [patch]
func (c *Controller) transition(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	actorID, ok := userToken(ctx)
	if !ok {
		return
	}

	var req TransitionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "status required",
		})
		return
	}

	if err := c.usecase.Transition(ctx, id, actorID, req.Status); err != nil {
		switch {
		case errors.Is(err, usecase_session.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_session.ErrNotOwner):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "only the owner can change the status",
			})
		case errors.Is(err, usecase_session.ErrInvalidTransition):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "illegal status transition",
			})
		case errors.Is(err, usecase_session.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "select at least one provider and one genre",
			})
		default:
			c.logger.Error("failed to transition session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Join adds the caller to the roster; joining twice is a no-op
// @Summary Join session
// @Tags Sessions
// @Param session_id path string true "Session id"
// @Success 204 "Joined"
// @Failure 400 {object} http_common.ErrorResponse "Session already ended"
// @Failure 404 {object} http_common.ErrorResponse "Session not found"
// @Security UserToken
// @Router /sessions/{session_id}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	userID, ok := userToken(ctx)
	if !ok {
		return
	}

	if err := c.usecase.Join(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, usecase_session.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_session.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "session already ended",
			})
		default:
			c.logger.Error("failed to join session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) leave(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	userID, ok := userToken(ctx)
	if !ok {
		return
	}

	if err := c.usecase.Leave(ctx, id, userID); err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to leave session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

type ParticipantResponseDTO struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (c *Controller) participants(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	participants, err := c.usecase.Participants(ctx, id)
	if err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to list participants", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dtos := make([]ParticipantResponseDTO, 0, len(participants))
	for _, p := range participants {
		dtos = append(dtos, ParticipantResponseDTO{
			ID:       p.ID.String(),
			UserID:   p.UserID.String(),
			JoinedAt: p.JoinedAt,
		})
	}
	ctx.JSON(http.StatusOK, dtos)
}
