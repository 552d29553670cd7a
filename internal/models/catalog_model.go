package models

import "time"

const (
	MediaTypeLivestream = "livestream"
	MediaTypeMovie      = "movie"
	MediaTypeSeries     = "series"
)

type CatalogItem struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Poster      string    `db:"poster" json:"poster"`
	MediaType   string    `db:"media_type" json:"media_type"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
