// Package admin drives the admin console: the tabbed screen, its resource
// tables and analytics panels, and the dialogs opened from table rows.
package admin

import (
	"context"

	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/session"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/metrics"
	"github.com/clinicplace/console/internal/shared/constants"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/services/markdown"
)

// API is the part of the marketplace API the admin console calls.
type API interface {
	resources.API

	AssignPlan(ctx context.Context, req domain.AssignSubscription) error
	ListUserSubscriptions(ctx context.Context, userID int64) ([]domain.UserSubscription, error)
	SubscriptionStats(ctx context.Context) (*domain.SubscriptionStats, error)
	PaymentStats(ctx context.Context) (*domain.PaymentStats, error)
}

type Config struct {
	PageSize int
	// ReviewClinicCap bounds how many clinics the reviews tab collects from.
	ReviewClinicCap int
}

// Service holds what every admin request shares.
type Service struct {
	cfg      Config
	renderer markdown.Renderer
	metrics  *metrics.Metrics
	logger   logger.Interface
}

func NewService(cfg Config, renderer markdown.Renderer, m *metrics.Metrics, log logger.Interface) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = constants.DefaultPageSize
	}
	if cfg.ReviewClinicCap <= 0 {
		cfg.ReviewClinicCap = constants.DefaultReviewClinicCap
	}
	return &Service{
		cfg:      cfg,
		renderer: renderer,
		metrics:  m,
		logger:   log,
	}
}

// Screen is the admin console of one viewer for one request: api calls go
// out with the viewer's credentials and view state lives in their session.
type Screen struct {
	svc  *Service
	api  API
	sess *session.Session
	set  *resources.Set
	log  logger.Interface
}

func (s *Service) Screen(api API, sess *session.Session) *Screen {
	return &Screen{
		svc:  s,
		api:  api,
		sess: sess,
		set:  resources.NewSet(api, s.renderer, s.cfg.PageSize),
		log:  s.logger.With("session_id", sess.ID()),
	}
}
