package web

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/config"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/metrics"
	"github.com/goserg/jassrating/internal/rebuild"
	"github.com/goserg/jassrating/internal/service"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/goserg/jassrating/internal/web/webpath"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Service is what the HTTP API needs from the service layer.
type Service interface {
	Scopes(ctx context.Context) ([]string, error)
	Standings(ctx context.Context, scope string) ([]domain.Standing, error)
	History(ctx context.Context, scope string, playerID string) ([]domain.RatingHistoryEntry, error)
	Series(ctx context.Context, scope string, metric domain.Metric) (domain.SeriesDocument, error)
	ResolvePlayer(ctx context.Context, idOrName string) (string, error)
	Audit(ctx context.Context, scope string, playerID string) ([]audit.Report, error)
	Rebuild(ctx context.Context, scope string, opts rebuild.Options) ([]rebuild.Report, error)
	RebuildState(scope string) rebuild.State
}

type Server struct {
	service Service
	app     *fiber.App
	cfg     config.Server
	log     *logrus.Entry
}

func New(s Service, cfg config.Server, l *logrus.Logger, m *metrics.Manager) *Server {
	server := Server{
		service: s,
		cfg:     cfg,
		log:     l.WithField("from", "web"),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: !cfg.Debug,
		ErrorHandler:          server.handleError,
	})
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.JSON(webpath.Path())
	})
	if m != nil {
		app.Get(webpath.Metrics, adaptor.HTTPHandler(promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{})))
	}
	app.Get(webpath.ApiScopes, server.handleScopes)
	app.Get(webpath.ApiRatings, server.handleRatings)
	app.Get(webpath.ApiHistory, server.handleHistory)
	app.Get(webpath.ApiSeries, server.handleSeries)
	app.Get(webpath.ApiAudit, server.handleAudit)
	app.Get(webpath.ApiRebuildRuns, server.handleState)
	app.Post(webpath.ApiRebuild, server.handleRebuild)
	server.app = app
	return &server
}

func (s *Server) Serve() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	s.log.WithField("addr", addr).Info("serving")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleScopes(ctx *fiber.Ctx) error {
	scopes, err := s.service.Scopes(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(scopes)
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	standings, err := s.service.Standings(ctx.UserContext(), ctx.Params("scope"))
	if err != nil {
		return err
	}
	return ctx.JSON(convertStandings(standings))
}

func (s *Server) handleHistory(ctx *fiber.Ctx) error {
	playerID, err := s.service.ResolvePlayer(ctx.UserContext(), ctx.Params("player"))
	if err != nil {
		return err
	}
	history, err := s.service.History(ctx.UserContext(), ctx.Params("scope"), playerID)
	if err != nil {
		return err
	}
	return ctx.JSON(convertHistory(history))
}

func (s *Server) handleSeries(ctx *fiber.Ctx) error {
	metric, err := domain.ParseMetric(ctx.Params("metric"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	doc, err := s.service.Series(ctx.UserContext(), ctx.Params("scope"), metric)
	if err != nil {
		return err
	}
	return ctx.JSON(doc)
}

func (s *Server) handleAudit(ctx *fiber.Ctx) error {
	var playerID string
	if player := ctx.Query("player"); player != "" {
		var err error
		playerID, err = s.service.ResolvePlayer(ctx.UserContext(), player)
		if err != nil {
			return err
		}
	}
	reports, err := s.service.Audit(ctx.UserContext(), ctx.Params("scope"), playerID)
	if err != nil {
		return err
	}
	return ctx.JSON(convertAuditReports(reports))
}

func (s *Server) handleState(ctx *fiber.Ctx) error {
	scope := ctx.Params("scope")
	return ctx.JSON(fiber.Map{
		"scope": scope,
		"state": s.service.RebuildState(scope),
	})
}

func (s *Server) handleRebuild(ctx *fiber.Ctx) error {
	req, err := parseRebuildRequest(ctx)
	if err != nil {
		return newErrorResponse(fiber.StatusBadRequest, err).send(ctx)
	}
	reports, err := s.service.Rebuild(ctx.UserContext(), ctx.Params("scope"), req.options())
	if err != nil {
		return err
	}
	return ctx.JSON(convertRebuildReports(reports))
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrUnknownPlayer):
		code = fiber.StatusNotFound
	case errors.Is(err, rebuild.ErrInProgress):
		code = fiber.StatusConflict
	case errors.Is(err, rebuild.ErrNoEvents):
		code = fiber.StatusUnprocessableEntity
	}
	if code == fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	return newErrorResponse(code, err).send(ctx)
}
