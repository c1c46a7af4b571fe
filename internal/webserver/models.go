package webserver

// HttpResp represents the standard HTTP response structure.
type HttpResp struct {
	Status  string      `json:"status" example:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty" example:"Operation completed successfully"`
}

// ProviderResp describes the login method served by this instance.
type ProviderResp struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Login   string `json:"login"`
}
