package transfer

// UploadRequest carries a base64-encoded file destined for the image CDN.
// Data may include a data-URI prefix ("data:image/png;base64,...").
type UploadRequest struct {
	FileName string `json:"fileName"`
	Data     string `json:"data"`
}

type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
