package model

// Catalog types mirror what the external movie catalog returns. They are not
// persisted as-is; the materializer converts discover results to SessionMovie.

type CatalogMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int64 `json:"genre_ids"`
	Rating      float64 `json:"vote_average"`
}

type Provider struct {
	ID       int64  `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path"`
	Priority int    `json:"display_priority"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DiscoverFilters bounds one catalog query. Page is 1-based.
type DiscoverFilters struct {
	ProviderIDs []int64
	GenreIDs    []int64
	Page        int
}

// MovieProviders groups availability for one region by monetization type.
type MovieProviders struct {
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
}
