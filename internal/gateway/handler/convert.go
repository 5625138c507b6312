package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"wfcatalog/internal/export"
)

type ConvertHandler struct {
	exporter *export.Exporter
	defaults export.Request
}

// NewConvertHandler serves batch exports; fields missing from a request
// body are taken from defaults.
func NewConvertHandler(exporter *export.Exporter, defaults export.Request) *ConvertHandler {
	return &ConvertHandler{exporter: exporter, defaults: defaults}
}

type convertBody struct {
	SourceDir *string `json:"source_dir"`
	DestDir   *string `json:"dest_dir"`
	Overwrite *bool   `json:"overwrite"`
	Glob      *string `json:"glob"`
}

type convertResponse struct {
	*export.Result
	Summary string `json:"summary"`
}

func (h *ConvertHandler) HandleConvertAll(w http.ResponseWriter, r *http.Request) {
	req := h.request(r)
	res, err := h.exporter.ConvertAll(r.Context(), req)
	if err != nil {
		log.Printf("handler: convert_all %s -> %s: %v", req.SourceDir, req.DestDir, err)
		http.Error(w, "Failed to convert workflows: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("handler: convert_all %s", res.Summary())
	writeJSON(w, http.StatusOK, convertResponse{Result: res, Summary: res.Summary()})
}

// request merges the decoded body over the defaults. An undecodable body is
// treated as empty.
func (h *ConvertHandler) request(r *http.Request) export.Request {
	req := h.defaults
	if req.Glob == "" {
		req.Glob = export.DefaultGlob
	}
	var body convertBody
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&body) != nil {
		return req
	}
	if body.SourceDir != nil && *body.SourceDir != "" {
		req.SourceDir = *body.SourceDir
	}
	if body.DestDir != nil && *body.DestDir != "" {
		req.DestDir = *body.DestDir
	}
	if body.Overwrite != nil {
		req.Overwrite = *body.Overwrite
	}
	if body.Glob != nil && *body.Glob != "" {
		req.Glob = *body.Glob
	}
	return req
}
