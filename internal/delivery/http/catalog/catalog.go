package http_catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
	"github.com/mkrogh/reelmatch/internal/model"
)

// Gateway is the slice of the catalog client the configuring screen needs.
type Gateway interface {
	Providers(ctx context.Context) ([]model.Provider, error)
	Genres(ctx context.Context) ([]model.Genre, error)
	MovieDetails(ctx context.Context, movieID int64) (model.CatalogMovie, error)
	MovieProviders(ctx context.Context, movieID int64) (model.MovieProviders, error)
}

type Controller struct {
	gateway Gateway
	logger  *slog.Logger
}

func New(gateway Gateway) *Controller {
	return &Controller{
		gateway: gateway,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("/providers", c.providers)
		catalog.GET("/genres", c.genres)
		catalog.GET("/movies/:movie_id", c.movie)
	}
}

// Providers lists streaming providers for the configured region
// @Summary List providers
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.Provider "Providers"
// @Failure 502 {object} http_common.ErrorResponse "Catalog unavailable"
// @Router /catalog/providers [get]
func (c *Controller) providers(ctx *gin.Context) {
	providers, err := c.gateway.Providers(ctx)
	if err != nil {
		c.logger.Error("failed to list providers", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "catalog unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, providers)
}

func (c *Controller) genres(ctx *gin.Context) {
	genres, err := c.gateway.Genres(ctx)
	if err != nil {
		c.logger.Error("failed to list genres", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "catalog unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, genres)
}

type MovieDetailsResponseDTO struct {
	Movie     model.CatalogMovie   `json:"movie"`
	Providers model.MovieProviders `json:"providers"`
}

// Movie returns details plus regional availability for one title
// @Summary Movie details
// @Tags Catalog
// @Produce json
// @Param movie_id path int true "Catalog movie id"
// @Success 200 {object} MovieDetailsResponseDTO "Details and availability"
// @Failure 400 {object} http_common.ErrorResponse "Invalid movie id"
// @Failure 502 {object} http_common.ErrorResponse "Catalog unavailable"
// @Router /catalog/movies/{movie_id} [get]
func (c *Controller) movie(ctx *gin.Context) {
	movieID, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	movie, err := c.gateway.MovieDetails(ctx, movieID)
	if err != nil {
		c.logger.Error("failed to load movie details",
			slog.Int64("movie_id", movieID),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "catalog unavailable",
		})
		return
	}

	providers, err := c.gateway.MovieProviders(ctx, movieID)
	if err != nil {
		c.logger.Error("failed to load movie providers",
			slog.Int64("movie_id", movieID),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "catalog unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, MovieDetailsResponseDTO{
		Movie:     movie,
		Providers: providers,
	})
}
