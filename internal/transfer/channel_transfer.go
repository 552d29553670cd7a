package transfer

type ChannelRequest struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Logo     string  `json:"logo"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
}

type CatalogItemRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	MediaType   string `json:"media_type"`
	Category    string `json:"category"`
}
