package dto

// UploadResponse resultado de POST /api/upload.
type UploadResponse struct {
	Message  string `json:"message"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// MultiUploadResponse resultado de POST /api/upload/multiple.
type MultiUploadResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
}
