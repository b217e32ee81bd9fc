package infra_tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkrogh/reelmatch/internal/config"
	"github.com/mkrogh/reelmatch/internal/model"
)

// Client is the catalog gateway. It speaks the TMDB v3 API with bearer auth;
// language, region and monetization defaults come from config. Rate limiting
// is the caller's problem: the materializer bounds its page count.
type Client struct {
	baseURL  string
	token    string
	language string
	region   string
	http     *http.Client
}

func New(cfg config.Catalog) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		language: cfg.Language,
		region:   cfg.Region,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog api: %s returned status %d", endpoint, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// Discover returns one page of candidates matching the session's filters,
// provider-supplied (popularity) ordering.
func (c *Client) Discover(ctx context.Context, filters model.DiscoverFilters) ([]model.CatalogMovie, error) {
	params := url.Values{}
	params.Set("with_watch_providers", joinIDs(filters.ProviderIDs))
	params.Set("with_genres", joinIDs(filters.GenreIDs))
	params.Set("with_watch_monetization_types", "flatrate,free,ads")
	params.Set("watch_region", c.region)
	params.Set("language", c.language)
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("page", strconv.Itoa(filters.Page))

	var payload struct {
		Results []model.CatalogMovie `json:"results"`
	}
	if err := c.get(ctx, "/discover/movie", params, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) MovieDetails(ctx context.Context, movieID int64) (model.CatalogMovie, error) {
	params := url.Values{}
	params.Set("language", c.language)

	// The details endpoint nests genres as objects, unlike discover's id list.
	var payload struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		PosterPath  string  `json:"poster_path"`
		Overview    string  `json:"overview"`
		ReleaseDate string  `json:"release_date"`
		Rating      float64 `json:"vote_average"`
		Genres      []struct {
			ID int64 `json:"id"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10), params, &payload); err != nil {
		return model.CatalogMovie{}, err
	}

	genreIDs := make([]int64, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		genreIDs = append(genreIDs, g.ID)
	}

	return model.CatalogMovie{
		ID:          payload.ID,
		Title:       payload.Title,
		PosterPath:  payload.PosterPath,
		Overview:    payload.Overview,
		ReleaseDate: payload.ReleaseDate,
		GenreIDs:    genreIDs,
		Rating:      payload.Rating,
	}, nil
}

// MovieProviders returns availability for the configured region.
func (c *Client) MovieProviders(ctx context.Context, movieID int64) (model.MovieProviders, error) {
	var payload struct {
		Results map[string]model.MovieProviders `json:"results"`
	}
	endpoint := "/movie/" + strconv.FormatInt(movieID, 10) + "/watch/providers"
	if err := c.get(ctx, endpoint, nil, &payload); err != nil {
		return model.MovieProviders{}, err
	}
	return payload.Results[c.region], nil
}

func (c *Client) Providers(ctx context.Context) ([]model.Provider, error) {
	params := url.Values{}
	params.Set("language", c.language)
	params.Set("watch_region", c.region)

	var payload struct {
		Results []model.Provider `json:"results"`
	}
	if err := c.get(ctx, "/watch/providers/movie", params, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	params := url.Values{}
	params.Set("language", c.language)

	var payload struct {
		Genres []model.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", params, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}
