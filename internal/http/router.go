package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notebook-ai/internal/handlers"
	"notebook-ai/internal/service"
	"notebook-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService     service.ChatService
	NotebookService service.NotebookService
	ToolsService    service.ToolsService
	VectorStore     vectorstore.VectorStore
	CollectionName  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.ChatService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	notebooksHandler := handlers.NewNotebooksHandler(deps.NotebookService)
	documentsHandler := handlers.NewDocumentsHandler(deps.NotebookService)
	toolsHandler := handlers.NewToolsHandler(deps.ToolsService)
	indexHandler := handlers.NewIndexHandler(deps.NotebookService)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Get("/index/stats", indexHandler.Stats)

		r.Route("/v1", func(r chi.Router) {
			r.Route("/notebooks", func(r chi.Router) {
				r.Get("/", notebooksHandler.List)
				r.Post("/", notebooksHandler.Create)

				r.Route("/{name}", func(r chi.Router) {
					r.Delete("/", notebooksHandler.Delete)
					r.Get("/sources", notebooksHandler.Sources)
					r.Method(http.MethodPost, "/documents", documentsHandler)
					r.Method(http.MethodPost, "/ask", askHandler)
					r.Post("/summary", toolsHandler.Summary)
					r.Post("/summary/speech", toolsHandler.SummarySpeech)
					r.Post("/study-guide", toolsHandler.StudyGuide)
				})
			})

			r.Get("/sessions/{id}/messages", chatHandler.History)
			r.Delete("/sessions/{id}", chatHandler.Reset)
			r.Post("/speech", toolsHandler.Speech)
		})
	})

	return r
}
