package server

import (
	"net/http"

	"wfcatalog/internal/gateway/handler"
	"wfcatalog/internal/gateway/middleware"
)

// NewMux mounts the workflow routes under prefix, which is either empty or
// starts with a slash and has no trailing slash.
func NewMux(
	prefix string,
	workflowHandler *handler.WorkflowHandler,
	convertHandler *handler.ConvertHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+prefix+"/workflows", workflowHandler.HandleList)
	mux.HandleFunc("GET "+prefix+"/workflows/{file}", workflowHandler.HandleGet)
	mux.HandleFunc("GET "+prefix+"/templates/{file}", workflowHandler.HandleTemplate)
	mux.HandleFunc("POST "+prefix+"/convert_all", convertHandler.HandleConvertAll)

	mux.HandleFunc("GET /healthz", handler.HandleHealth)

	// Middleware
	return middleware.CORS(middleware.Logging(mux))
}
