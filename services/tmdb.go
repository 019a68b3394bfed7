package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"jjreviews/config"
	"jjreviews/metrics"
)

const searchResultLimit = 5

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBCountry struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type TMDBCrewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

type TMDBCastMember struct {
	Name string `json:"name"`
}

type TMDBProvider struct {
	ID       int    `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path"`
}

type TMDBRegionProviders struct {
	Flatrate []TMDBProvider `json:"flatrate"`
}

type TMDBMovieDetails struct {
	ID                  int           `json:"id"`
	Title               string        `json:"title"`
	ReleaseDate         string        `json:"release_date"`
	Overview            string        `json:"overview"`
	PosterPath          string        `json:"poster_path"`
	Genres              []TMDBGenre   `json:"genres"`
	ProductionCountries []TMDBCountry `json:"production_countries"`
	Credits             struct {
		Crew []TMDBCrewMember `json:"crew"`
		Cast []TMDBCastMember `json:"cast"`
	} `json:"credits"`
	WatchProviders struct {
		Results map[string]TMDBRegionProviders `json:"results"`
	} `json:"watch/providers"`
}

type TMDBSearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type tmdbSearchResponse struct {
	Results []TMDBSearchResult `json:"results"`
}

type TMDBClient struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

func NewTMDBClient(cfg *config.Config) *TMDBClient {
	return &TMDBClient{
		apiKey:   cfg.TMDBAPIKey,
		baseURL:  cfg.TMDBBaseURL,
		language: cfg.TMDBLanguage,
		client:   http.DefaultClient,
	}
}

// MovieDetails fetches one movie with credits and watch providers embedded,
// one round trip per title.
func (c *TMDBClient) MovieDetails(ctx context.Context, tmdbID int) (*TMDBMovieDetails, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is not set")
	}

	detailsURL := fmt.Sprintf("%s/movie/%d?api_key=%s&language=%s&append_to_response=credits,watch/providers",
		c.baseURL, tmdbID, c.apiKey, c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, err
	}

	metrics.TMDBRequests.Inc()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb returned status %d for movie %d", resp.StatusCode, tmdbID)
	}

	var details TMDBMovieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb movie %d: %w", tmdbID, err)
	}

	return &details, nil
}

// SearchMovies looks a title up on TMDB and returns the first five results,
// which is all the add-review flow offers.
func (c *TMDBClient) SearchMovies(ctx context.Context, query string) ([]TMDBSearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is not set")
	}

	searchURL := fmt.Sprintf("%s/search/movie?api_key=%s&language=%s&query=%s",
		c.baseURL, c.apiKey, c.language, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	metrics.TMDBRequests.Inc()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb search returned status %d", resp.StatusCode)
	}

	var search tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb search: %w", err)
	}

	if len(search.Results) > searchResultLimit {
		search.Results = search.Results[:searchResultLimit]
	}
	return search.Results, nil
}
