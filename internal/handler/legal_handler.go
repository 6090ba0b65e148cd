package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// legalDocs maps the public document type to its file under DocsDir.
var legalDocs = map[string]string{
	"terms":          "terms.md",
	"privacy":        "privacy.md",
	"delete-account": "delete-account.md",
	"delete-data":    "delete-data.md",
}

// LegalConfig holds configuration for the LegalHandler.
type LegalConfig struct {
	// DocsDir is the directory holding the Markdown documents (LEGAL_DOCS_DIR).
	DocsDir string
}

// LegalHandler serves the app's legal and account-deletion documents.
type LegalHandler struct {
	cfg LegalConfig
}

// NewLegalHandler creates a LegalHandler with the given configuration.
func NewLegalHandler(cfg LegalConfig) *LegalHandler {
	return &LegalHandler{cfg: cfg}
}

// Legal handles GET /api/legal/{type}.
// Unknown types and missing files are 404; traversal attempts are 400.
func (h *LegalHandler) Legal(w http.ResponseWriter, r *http.Request) {
	docType := r.PathValue("type")

	if strings.ContainsAny(docType, `/\`) || strings.Contains(docType, "..") {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	name, ok := legalDocs[docType]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	absDir, err := filepath.Abs(h.cfg.DocsDir)
	if err != nil {
		slog.ErrorContext(r.Context(), "resolve legal docs dir", "dir", h.cfg.DocsDir, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	filePath := filepath.Join(absDir, name)
	if !strings.HasPrefix(filePath, absDir+string(filepath.Separator)) {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "read legal document", "type", docType, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
