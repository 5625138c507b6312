package handler

import (
	"errors"
	"log"
	"net/http"

	"wfcatalog/internal/catalog"
)

const (
	msgNotFound      = "Workflow not found"
	msgInvalidFormat = "Invalid format; use raw|api"
)

type WorkflowHandler struct {
	catalog *catalog.Catalog
}

func NewWorkflowHandler(c *catalog.Catalog) *WorkflowHandler {
	return &WorkflowHandler{catalog: c}
}

// HandleList serves the listing of every workflow file.
func (h *WorkflowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.List(r.Context())
	if err != nil {
		log.Printf("handler: list workflows: %v", err)
		http.Error(w, "Failed to list workflows: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGet serves one workflow file; the format query value defaults to raw.
func (h *WorkflowHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	format := catalog.FormatRaw
	if values, ok := r.URL.Query()["format"]; ok {
		format = catalog.ParseFormat(values[0])
	}
	h.serve(w, r, r.PathValue("file"), format, false)
}

// HandleTemplate serves a workflow in API form, accepting names with or
// without the .json suffix.
func (h *WorkflowHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, r.PathValue("file"), catalog.FormatAPI, true)
}

func (h *WorkflowHandler) serve(w http.ResponseWriter, r *http.Request, name string, format catalog.Format, template bool) {
	var (
		doc *catalog.Document
		err error
	)
	if template {
		doc, err = h.catalog.Template(r.Context(), name)
	} else {
		doc, err = h.catalog.Get(r.Context(), name, format)
	}
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	var readErr *catalog.ReadError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, msgNotFound, http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalidFormat):
		http.Error(w, msgInvalidFormat, http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotAPIGraph):
		http.Error(w, catalog.APIExportHint, http.StatusUnprocessableEntity)
	case errors.As(err, &readErr):
		http.Error(w, "Failed to read workflow: "+readErr.Err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "Failed to read workflow: "+err.Error(), http.StatusInternalServerError)
	}
}
