package handlers

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/industry"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/oapi-codegen/runtime"
)

// IndustrySummary is an entry of the industry list
type IndustrySummary struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

// Constant is a named constant of a process or of the meta-process
type Constant struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Input is a value a process receives
type Input struct {
	Name  string `json:"name"`
	Units string `json:"units"`
	From  string `json:"from,omitempty"`
}

// Output is a value a process computes, with its canonical operation
type Output struct {
	Name      string `json:"name"`
	Units     string `json:"units"`
	Operation string `json:"operation"`
}

// ProcessSummary describes one process of an industry
type ProcessSummary struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ShortName    string     `json:"short_name"`
	Level        int        `json:"level"`
	Dependencies []string   `json:"dependencies"`
	Constants    []Constant `json:"constants"`
	Inputs       []Input    `json:"inputs"`
	Outputs      []Output   `json:"outputs"`
}

// IndustryDetail describes a loaded industry
type IndustryDetail struct {
	Name        string           `json:"name"`
	ShortName   string           `json:"short_name"`
	Description string           `json:"description"`
	Outcome     string           `json:"outcome"`
	Units       string           `json:"units"`
	MinUnits    float64          `json:"min_units"`
	MaxUnits    float64          `json:"max_units"`
	Queue       []string         `json:"queue"`
	Constants   []Constant       `json:"constants"`
	Processes   []ProcessSummary `json:"processes"`
}

// ListIndustries handles GET /api/v1/industries
func (s *Server) ListIndustries(c fiber.Ctx) error {
	dirs, err := models.NewDiscovery(s.sourcesPath).Industries()
	if err != nil {
		s.log.WithError(err).Error("Failed to list industries")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list industries")
	}

	summaries := make([]IndustrySummary, 0, len(dirs))
	for _, dir := range dirs {
		summaries = append(summaries, IndustrySummary{Name: filepath.Base(dir), Dir: dir})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"industries": summaries,
		"total":      len(summaries),
	})
}

// GetIndustry handles GET /api/v1/industries/{name}
func (s *Server) GetIndustry(c fiber.Ctx) error {
	ind, err := s.load(c)
	if err != nil {
		return err
	}

	queue, err := ind.ExecutionQueue()
	if err != nil {
		return documentError(err)
	}

	levels, err := ind.Levels()
	if err != nil {
		return documentError(err)
	}

	meta := ind.Meta()
	outcome := meta.Outcome()
	minUnits, maxUnits := ind.UnitBounds()

	processes := make([]ProcessSummary, 0, len(queue))
	for _, id := range queue {
		p, _ := ind.Process(id)
		deps := p.Dependencies()
		if deps == nil {
			deps = []string{}
		}
		processes = append(processes, ProcessSummary{
			ID:           id,
			Name:         p.Name(),
			ShortName:    p.ShortName(),
			Level:        levels[id],
			Dependencies: deps,
			Constants:    constants(p),
			Inputs:       inputs(p),
			Outputs:      outputs(p),
		})
	}

	return c.Status(fiber.StatusOK).JSON(IndustryDetail{
		Name:        meta.Name(),
		ShortName:   meta.ShortName(),
		Description: meta.Description(),
		Outcome:     outcome.Name,
		Units:       outcome.Units,
		MinUnits:    minUnits,
		MaxUnits:    maxUnits,
		Queue:       queue,
		Constants:   constants(meta),
		Processes:   processes,
	})
}

func constants(u industry.Unit) []Constant {
	out := make([]Constant, 0)
	for _, c := range u.Constants() {
		out = append(out, Constant{Name: c.Name, Value: c.Value})
	}
	return out
}

func inputs(p *industry.Process) []Input {
	out := make([]Input, 0)
	for _, in := range p.Inputs() {
		out = append(out, Input{Name: in.Name, Units: in.Units, From: in.From})
	}
	return out
}

func outputs(p *industry.Process) []Output {
	out := make([]Output, 0)
	for _, o := range p.Outputs() {
		output := Output{Name: o.Name, Units: o.Units}
		if f, ok := p.Formula(o.Name); ok {
			output.Operation = expression.Print(f.Expr)
		}
		out = append(out, output)
	}
	return out
}

// GetIndustryDAG handles GET /api/v1/industries/{name}/dag
func (s *Server) GetIndustryDAG(c fiber.Ctx) error {
	ind, err := s.load(c)
	if err != nil {
		return err
	}

	dot, err := ind.DOT()
	if err != nil {
		return documentError(err)
	}

	c.Set(fiber.HeaderContentType, "text/vnd.graphviz; charset=utf-8")
	return c.Status(fiber.StatusOK).SendString(dot)
}

// EvaluateIndustry handles GET /api/v1/industries/{name}/evaluate?outcome=N
func (s *Server) EvaluateIndustry(c fiber.Ctx) error {
	query := make(url.Values)
	for key, value := range c.Queries() {
		query.Set(key, value)
	}

	var outcome float64
	if err := runtime.BindQueryParameter("form", true, true, "outcome", query, &outcome); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid format for parameter outcome: "+err.Error())
	}

	ind, err := s.load(c)
	if err != nil {
		return err
	}

	values, err := ind.Evaluate(outcome)
	if err != nil {
		if errors.Is(err, industry.ErrOutcomeOutOfRange) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return documentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"outcome": outcome,
		"values":  values,
	})
}

// CompileIndustry handles POST /api/v1/industries/{name}/compile
func (s *Server) CompileIndustry(c fiber.Ctx) error {
	if s.enqueuer == nil {
		return ErrQueueDisabled
	}

	dir, err := s.industryDir(c.Params("name"))
	if err != nil {
		return err
	}

	err = s.enqueuer.EnqueueCompile(tasks.CompilePayload{
		IndustryDir: dir,
		Trigger:     tasks.TriggerManual,
	})

	switch {
	case err == nil:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"queued": true, "dir": dir})
	case errors.Is(err, tasks.ErrTaskAlreadyQueued):
		return fiber.NewError(fiber.StatusConflict, "compile task already queued")
	default:
		s.log.WithError(err).WithField("industry", dir).Error("Failed to enqueue compile task")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to enqueue compile task")
	}
}

func (s *Server) load(c fiber.Ctx) (*industry.Industry, error) {
	dir, err := s.industryDir(c.Params("name"))
	if err != nil {
		return nil, err
	}

	ind, err := s.loader.Load(c.Context(), dir)
	if err != nil {
		return nil, documentError(err)
	}

	return ind, nil
}

// industryDir resolves name to a directory directly below the sources directory
func (s *Server) industryDir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidIndustryName
	}

	dir := filepath.Join(s.sourcesPath, name)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", ErrIndustryNotFound
	}

	return dir, nil
}

// documentError reports a failure to build an industry from its documents
func documentError(err error) error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
}
