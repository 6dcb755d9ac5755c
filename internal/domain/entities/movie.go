package entities

// MovieSummary is an immutable snapshot of a movie as returned by the catalog
// search and discover endpoints. It is never persisted beyond the denormalized
// copies on SavedMovie and SearchMetric.
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
}

// Genre is a catalog genre entry
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a catalog production company entry
type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// MovieDetails extends MovieSummary with the fields only present on the
// per-movie detail endpoint. Fetched per detail view, never cached.
type MovieDetails struct {
	MovieSummary
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Overview            string              `json:"overview"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	VoteCount           int                 `json:"vote_count"`
}

const posterImageBase = "https://image.tmdb.org/t/p/w500"

// PosterURL returns the full poster URL at w500 size, or "" when the catalog
// reported no poster.
func (m *MovieSummary) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return posterImageBase + m.PosterPath
}

// GenreNames returns the genre names in catalog order
func (m *MovieDetails) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}
