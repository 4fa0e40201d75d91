// Package dashboard builds the signed-in member's summary page: headline
// counters, recent activity, their subscriptions and the upgrade dialog.
package dashboard

import (
	"context"
	"html/template"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/clinicplace/console/internal/application/console/resources"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/shared/constants"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/services/markdown"
)

const (
	// SubscriptionsErrorMessage stays on the subscriptions panel until a
	// retry succeeds.
	SubscriptionsErrorMessage = "Failed to load subscriptions. Please try again later."
	ActivityErrorMessage      = "Failed to fetch data"
	PlansErrorMessage         = "Failed to load plans"
)

// API is the part of the marketplace API the dashboard calls.
type API interface {
	ListRecentOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error)
	ListApplications(ctx context.Context) ([]domain.Application, error)
	ListOwnSubscriptions(ctx context.Context) ([]domain.UserSubscription, error)
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	ListPublicPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
}

type Config struct {
	RecentLimit  int
	SupportEmail string
}

type Service struct {
	cfg      Config
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewService(cfg Config, renderer markdown.Renderer, log logger.Interface) *Service {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = constants.DefaultRecentLimit
	}
	return &Service{
		cfg:      cfg,
		renderer: renderer,
		logger:   log,
	}
}

type Counters struct {
	Opportunities int
	Applications  int
	Interviews    int
}

type OpportunityItem struct {
	ID         int64
	Title      string
	ClinicID   int64
	ClinicName string
	Location   string
	Paid       string
}

type ApplicationItem struct {
	ID       int64
	Heading  string
	Subtitle string
	Status   string
	Badge    string
	Applied  string
}

type Subscriptions struct {
	Rows []resources.SubscriptionRow
	// ShowApps and ShowOpps select the limit column the viewer's role uses.
	ShowApps bool
	ShowOpps bool
	Err      string
}

func (s Subscriptions) Empty() bool {
	return len(s.Rows) == 0 && s.Err == ""
}

// Page is the dashboard of one viewer.
type Page struct {
	Viewer        domain.Viewer
	Subject       string
	Counters      Counters
	Opportunities []OpportunityItem
	Applications  []ApplicationItem
	Subscriptions Subscriptions
	Err           string
}

// Load fetches the dashboard. Recent activity and subscriptions fail
// independently: either panel shows its own error while the other renders.
func (s *Service) Load(ctx context.Context, api API, viewer domain.Viewer) *Page {
	page := &Page{
		Viewer:  viewer,
		Subject: "clinic",
	}
	if viewer.IsTrainee() {
		page.Subject = "applications"
	}

	var g errgroup.Group
	g.Go(func() error {
		s.loadActivity(ctx, api, viewer, page)
		return nil
	})
	g.Go(func() error {
		page.Subscriptions = s.Subscriptions(ctx, api, viewer)
		return nil
	})
	_ = g.Wait()

	return page
}

func (s *Service) loadActivity(ctx context.Context, api API, viewer domain.Viewer, page *Page) {
	var (
		opps []domain.Opportunity
		apps []domain.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opps, err = api.ListRecentOpportunities(gctx, s.cfg.RecentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = api.ListApplications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warnw("failed to load dashboard activity", "viewer_id", viewer.ID, "error", err)
		page.Err = ActivityErrorMessage
		return
	}

	page.Counters = Count(viewer, opps, apps)
	page.Opportunities = recentOpportunities(opps, s.cfg.RecentLimit)
	page.Applications = recentApplications(viewer, apps, s.cfg.RecentLimit)
}

// Count derives the headline counters from the fetched lists. A clinic
// only counts the opportunities it posted.
func Count(viewer domain.Viewer, opps []domain.Opportunity, apps []domain.Application) Counters {
	c := Counters{Applications: len(apps)}
	for _, o := range opps {
		if !viewer.IsClinic() || o.ClinicID == viewer.ID {
			c.Opportunities++
		}
	}
	for _, a := range apps {
		if a.Status.IsInterview() {
			c.Interviews++
		}
	}
	return c
}

func recentOpportunities(opps []domain.Opportunity, limit int) []OpportunityItem {
	if len(opps) > limit {
		opps = opps[:limit]
	}
	items := make([]OpportunityItem, 0, len(opps))
	for _, o := range opps {
		paid := "Unpaid"
		if o.IsPaid {
			paid = "Paid"
		}
		items = append(items, OpportunityItem{
			ID:         o.ID,
			Title:      o.Title,
			ClinicID:   o.ClinicID,
			ClinicName: o.ClinicName,
			Location:   o.Location,
			Paid:       paid,
		})
	}
	return items
}

// recentApplications lists the first applications. Trainees see what they
// applied to; everyone else sees who applied.
func recentApplications(viewer domain.Viewer, apps []domain.Application, limit int) []ApplicationItem {
	if len(apps) > limit {
		apps = apps[:limit]
	}
	items := make([]ApplicationItem, 0, len(apps))
	for _, a := range apps {
		item := ApplicationItem{
			ID:      a.ID,
			Status:  a.Status.Label(),
			Badge:   a.Status.Badge().Classes(),
			Applied: domain.DatePart(a.AppliedAt),
		}
		if viewer.IsTrainee() {
			item.Heading, item.Subtitle = a.Title, a.ClinicName
		} else {
			item.Heading, item.Subtitle = a.TraineeName, a.Title
		}
		items = append(items, item)
	}
	return items
}

// Subscriptions fetches the viewer's own subscriptions.
func (s *Service) Subscriptions(ctx context.Context, api API, viewer domain.Viewer) Subscriptions {
	subs := Subscriptions{
		ShowApps: viewer.IsTrainee(),
		ShowOpps: viewer.IsClinic(),
	}
	list, err := api.ListOwnSubscriptions(ctx)
	if err != nil {
		s.logger.Warnw("failed to load own subscriptions", "viewer_id", viewer.ID, "error", err)
		subs.Err = SubscriptionsErrorMessage
		return subs
	}
	subs.Rows = resources.SubscriptionRows(list)
	return subs
}

// PlanCard is one plan shown in the upgrade dialog.
type PlanCard struct {
	ID          int64
	Name        string
	Price       string
	Duration    string
	AppsLimit   string
	OppsLimit   string
	Description template.HTML
}

// Upgrade is the upgrade dialog. It only informs: plans are changed by an
// administrator, reached through SupportEmail.
type Upgrade struct {
	SupportEmail string
	Plans        []PlanCard
	Err          string
}

// Upgrade lists the plan catalog. Admins read the admin catalog, everyone
// else the public one.
func (s *Service) Upgrade(ctx context.Context, api API, viewer domain.Viewer) *Upgrade {
	up := &Upgrade{SupportEmail: s.cfg.SupportEmail}

	list := api.ListPublicPlans
	if viewer.IsAdmin() {
		list = api.ListPlans
	}
	plans, err := list(ctx)
	if err != nil {
		s.logger.Warnw("failed to load plan catalog", "viewer_id", viewer.ID, "error", err)
		up.Err = PlansErrorMessage
		return up
	}

	up.Plans = make([]PlanCard, 0, len(plans))
	for _, p := range plans {
		description, err := s.renderer.Render(p.Description)
		if err != nil {
			description = template.HTML(template.HTMLEscapeString(p.Description))
		}
		up.Plans = append(up.Plans, PlanCard{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price.String(),
			Duration:    strconv.Itoa(p.DurationDays) + " days",
			AppsLimit:   resources.LimitText(p.ApplicationsLimit),
			OppsLimit:   resources.LimitText(p.OpportunitiesLimit),
			Description: description,
		})
	}
	return up
}
