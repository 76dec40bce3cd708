package router

import (
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
)

// SourceRouter routes extract files to appropriate handlers based on file name
type SourceRouter struct {
	handlers []usecase.ExtractHandler
	logger   logger.Logger
}

// NewSourceRouter creates a new source router
func NewSourceRouter(logger logger.Logger) *SourceRouter {
	return &SourceRouter{
		handlers: make([]usecase.ExtractHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific file name patterns
func (r *SourceRouter) Register(handler usecase.ExtractHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "source", handler.Source())
}

// GetHandler returns the first registered handler accepting the file name
func (r *SourceRouter) GetHandler(filename string) usecase.ExtractHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(filename) {
			return handler
		}
	}
	return nil
}
