package http_matching

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_matchlist "github.com/mkrogh/reelmatch/internal/usecase/matchlist"
	usecase_vote "github.com/mkrogh/reelmatch/internal/usecase/vote"
)

type ParticipantValidator interface {
	IsParticipant(ctx context.Context, sessionID, userID uuid.UUID) (bool, error)
}

type Controller struct {
	matchlist *usecase_matchlist.Usecase
	votes     *usecase_vote.Usecase
	pv        ParticipantValidator
	logger    *slog.Logger
}

func New(
	matchlist *usecase_matchlist.Usecase,
	votes *usecase_vote.Usecase,
	pv ParticipantValidator,
) *Controller {
	return &Controller{
		matchlist: matchlist,
		votes:     votes,
		pv:        pv,
		logger:    slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions/:session_id")
	{
		sessions.POST("/movies", c.materialize)
		sessions.GET("/movies", c.movies)
		sessions.GET("/feed", c.feed)
		sessions.POST("/votes", c.vote)
		sessions.GET("/matches", c.matches)
	}
}

type MovieResponseDTO struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Genres      []int64 `json:"genres"`
	Rating      float64 `json:"rating"`
	Position    int     `json:"position"`
}

func toMovieDTOs(movies []model.SessionMovie) []MovieResponseDTO {
	dtos := make([]MovieResponseDTO, 0, len(movies))
	for _, m := range movies {
		dtos = append(dtos, MovieResponseDTO{
			MovieID:     m.MovieID,
			Title:       m.Title,
			PosterPath:  m.PosterPath,
			Overview:    m.Overview,
			ReleaseDate: m.ReleaseDate,
			Genres:      m.Genres,
			Rating:      m.Rating,
			Position:    m.Position,
		})
	}
	return dtos
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

// Materialize builds the session's candidate list
// @Summary Materialize movie list
// @Description Owner-only; fetches the catalog once and persists the list. Safe to retry.
// @Tags Matching
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {array} MovieResponseDTO "Materialized list"
// @Failure 401 {object} http_common.ErrorResponse "Not the owner"
// @Failure 400 {object} http_common.ErrorResponse "Session not in matching status"
// @Failure 502 {object} http_common.ErrorResponse "Catalog gateway failed"
// @Security UserToken
// @Router /sessions/{session_id}/movies [post]
func (c *Controller) materialize(ctx *gin.Context) {
	sessionID, userID, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	movies, err := c.matchlist.Materialize(ctx, sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_matchlist.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_matchlist.ErrNotOwner):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "only the host fetches the movie list",
			})
		case errors.Is(err, usecase_matchlist.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "session is not in matching status",
			})
		case errors.Is(err, usecase_matchlist.ErrUpstream):
			c.logger.Error("catalog fetch failed",
				slog.String("session_id", sessionID.String()),
				slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "catalog unavailable, try again",
			})
		default:
			c.logger.Error("failed to materialize", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, toMovieDTOs(movies))
}

// Movies returns the materialized list. With wait=true the call blocks until
// the host's materialization lands, which is how non-hosts synchronize.
func (c *Controller) movies(ctx *gin.Context) {
	sessionID, _, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	if wait, _ := strconv.ParseBool(ctx.Query("wait")); wait {
		if err := c.matchlist.WaitForMovies(ctx, sessionID); err != nil {
			if errors.Is(err, usecase_matchlist.ErrResourceNotFound) {
				ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
					Message: "not found",
				})
				return
			}
			c.logger.Error("wait for movies failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
	}

	movies, err := c.matchlist.Movies(ctx, sessionID)
	if err != nil {
		c.logger.Error("failed to load movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toMovieDTOs(movies))
}

func (c *Controller) feed(ctx *gin.Context) {
	sessionID, userID, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	movies, err := c.matchlist.Feed(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, usecase_matchlist.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load feed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toMovieDTOs(movies))
}

type VoteRequestDTO struct {
	MovieID int64 `json:"movie_id" binding:"required"`
	Liked   *bool `json:"liked" binding:"required"`
}

type VoteResponseDTO struct {
	Advanced bool `json:"advanced"`
	Matched  bool `json:"matched"`
}

// Vote records one like/dislike and reports whether it completed a match
// @Summary Vote on a movie
// @Description Idempotent per (user, movie); a repeat advances the cursor without rewriting
// @Tags Matching
// @Accept json
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} VoteResponseDTO "Vote outcome"
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Security UserToken
// @Router /sessions/{session_id}/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	sessionID, userID, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "movie_id and liked required",
		})
		return
	}

	outcome, err := c.votes.Vote(ctx, sessionID, userID, req.MovieID, *req.Liked)
	if err != nil {
		if errors.Is(err, usecase_vote.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to record vote", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		Advanced: outcome.Advanced,
		Matched:  outcome.Matched,
	})
}

type MatchesResponseDTO struct {
	Matches []int64 `json:"matches"`
}

func (c *Controller) matches(ctx *gin.Context) {
	sessionID, _, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	matches, err := c.votes.Matches(ctx, sessionID)
	if err != nil {
		if errors.Is(err, usecase_vote.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load matches", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	if matches == nil {
		matches = []int64{}
	}
	ctx.JSON(http.StatusOK, MatchesResponseDTO{Matches: matches})
}
