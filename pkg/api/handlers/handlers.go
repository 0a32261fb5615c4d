// Package handlers implements the request handlers of the iisim API
package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/hibiken/asynq"
	"github.com/idesignres/iisim/pkg/industry"
	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/sirupsen/logrus"
)

// Loader builds the industry of a directory
type Loader interface {
	Load(ctx context.Context, dir string) (*industry.Industry, error)
}

// Enqueuer queues compile tasks
type Enqueuer interface {
	EnqueueCompile(payload tasks.CompilePayload, opts ...asynq.Option) error
}

// Server serves the industries found below the sources directory
type Server struct {
	loader      Loader
	enqueuer    Enqueuer
	sourcesPath string
	log         logrus.FieldLogger
}

// NewServer creates a new API server instance. A nil enqueuer disables compile requests.
func NewServer(loader Loader, enqueuer Enqueuer, sourcesPath string, log logrus.FieldLogger) *Server {
	return &Server{
		loader:      loader,
		enqueuer:    enqueuer,
		sourcesPath: sourcesPath,
		log:         log.WithField("component", "api.handlers"),
	}
}

// Register adds every route to router
func (s *Server) Register(router fiber.Router) {
	router.Get("/industries", s.ListIndustries)
	router.Get("/industries/:name", s.GetIndustry)
	router.Get("/industries/:name/dag", s.GetIndustryDAG)
	router.Get("/industries/:name/evaluate", s.EvaluateIndustry)
	router.Post("/industries/:name/compile", s.CompileIndustry)
}
