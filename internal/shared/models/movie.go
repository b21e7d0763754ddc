package models

// MovieDetails holds the optional descriptive fields every movie shape carries.
type MovieDetails struct {
	Rated      *string `json:"rated,omitempty"`
	Released   *string `json:"released,omitempty"`
	Runtime    *string `json:"runtime,omitempty"`
	Genre      *string `json:"genre,omitempty"`
	Director   *string `json:"director,omitempty"`
	Writer     *string `json:"writer,omitempty"`
	Actors     *string `json:"actors,omitempty"`
	Plot       *string `json:"plot,omitempty"`
	Language   *string `json:"language,omitempty"`
	Country    *string `json:"country,omitempty"`
	Awards     *string `json:"awards,omitempty"`
	Poster     *string `json:"poster,omitempty"`
	IMDbRating *string `json:"imdb_rating,omitempty"`
	IMDbVotes  *string `json:"imdb_votes,omitempty"`
	Metascore  *string `json:"metascore,omitempty"`
	BoxOffice  *string `json:"box_office,omitempty"`
	Production *string `json:"production,omitempty"`
	Website    *string `json:"website,omitempty"`
}

type MovieCreate struct {
	Title  string `json:"title" validate:"required"`
	Year   string `json:"year" validate:"required"`
	IMDbID string `json:"imdb_id" validate:"required"`
	MovieDetails
}

// MovieUpdate overwrites the fields that are set. Year and IMDbID are always sent.
type MovieUpdate struct {
	Title  *string `json:"title,omitempty"`
	Year   string  `json:"year" validate:"required"`
	IMDbID string  `json:"imdb_id" validate:"required"`
	MovieDetails
}

type MoviePublic struct {
	MovieCreate
	ID      int `json:"id"`
	OwnerID int `json:"owner_id"`
}

type MoviesPublic struct {
	Data  []MoviePublic `json:"data"`
	Count int           `json:"count"`
}

// UserMovieIn is the body for creating or replacing a like list.
type UserMovieIn struct {
	Movies []int `json:"movies"`
}

// UserMoviePublic is a user's like list.
type UserMoviePublic struct {
	Movies  []int `json:"movies"`
	OwnerID int   `json:"owner_id"`
}

func (u UserMoviePublic) Contains(movieID int) bool {
	for _, id := range u.Movies {
		if id == movieID {
			return true
		}
	}
	return false
}
