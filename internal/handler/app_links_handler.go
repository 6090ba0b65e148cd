package handler

import "net/http"

// AppLinksConfig holds the store listing URLs for the mobile app.
type AppLinksConfig struct {
	AppStoreURL  string
	PlayStoreURL string
}

// AppLinksHandler redirects download badges to the store listings.
type AppLinksHandler struct {
	links map[string]string
}

// NewAppLinksHandler creates an AppLinksHandler. Empty URLs are treated as unavailable.
func NewAppLinksHandler(cfg AppLinksConfig) *AppLinksHandler {
	links := make(map[string]string, 2)
	if cfg.AppStoreURL != "" {
		links["ios"] = cfg.AppStoreURL
	}
	if cfg.PlayStoreURL != "" {
		links["android"] = cfg.PlayStoreURL
	}
	return &AppLinksHandler{links: links}
}

// Download handles GET /download/{platform} for platform ios or android.
func (h *AppLinksHandler) Download(w http.ResponseWriter, r *http.Request) {
	target, ok := h.links[r.PathValue("platform")]
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
