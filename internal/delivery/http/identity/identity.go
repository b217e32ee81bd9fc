package http_identity

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
	usecase_identity "github.com/mkrogh/reelmatch/internal/usecase/identity"
)

type Controller struct {
	usecase *usecase_identity.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_identity.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.register)
		users.GET("/:user_id", c.get)
		users.PATCH("/:user_id", c.rename)
	}
}

type UserResponseDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Register issues a new device identity
// @Summary Create user
// @Description Issues an opaque user id with a generated display name
// @Tags Users
// @Produce json
// @Success 201 {object} UserResponseDTO "Created user"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /users [post]
func (c *Controller) register(ctx *gin.Context) {
	user, err := c.usecase.Register(ctx)
	if err != nil {
		c.logger.Error("failed to register user", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, UserResponseDTO{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

func (c *Controller) get(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user id",
		})
		return
	}

	user, err := c.usecase.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usecase_identity.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get user", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, UserResponseDTO{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

type RenameRequestDTO struct {
	Username string `json:"username" binding:"required"`
}

// Rename updates the display name
// @Summary Rename user
// @Tags Users
// @Accept json
// @Param user_id path string true "User id"
// @Success 204 "Renamed"
// @Failure 400 {object} http_common.ErrorResponse "Invalid input"
// @Failure 404 {object} http_common.ErrorResponse "User not found"
// @Router /users/{user_id} [patch]
func (c *Controller) rename(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user id",
		})
		return
	}

	var req RenameRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "username required",
		})
		return
	}

	if err := c.usecase.Rename(ctx, userID, req.Username); err != nil {
		switch {
		case errors.Is(err, usecase_identity.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_identity.ErrValidation):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "username cannot be empty",
			})
		default:
			c.logger.Error("failed to rename user", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
