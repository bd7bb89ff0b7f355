package rest

import "net/http"

// RootHandler serves the service info document at /.
type RootHandler struct {
	version string
}

// NewRootHandler creates a RootHandler.
func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

// Info handles GET /.
func (h *RootHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "daily-messages-api",
		"version": h.version,
		"endpoints": map[string]string{
			"messages":   "/api/messages",
			"random":     "/api/messages/random",
			"categories": "/api/categories",
			"stats":      "/api/stats",
			"health":     "/health",
		},
	})
}
