package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/clinicplace/console/internal/application/console/charts"
	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/session"
	"github.com/clinicplace/console/internal/application/console/table"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/cache"
)

// FetchFailedMessage is the notification for a list that could not be loaded.
const FetchFailedMessage = "Failed to fetch data"

// Card is a headline counter.
type Card struct {
	Label string
	Value string
}

// Page is the admin screen as rendered for one request.
type Page struct {
	Tab  Tab
	Tabs []TabLink
	// Table is the table.View of the tab's resource; nil on the dashboard.
	Table     any
	TableURL  string
	CreateURL string
	Cards     []Card
	Charts    []charts.Chart
	Stats     Stats
	RetryURL  string
	Flashes   []cache.Flash
	// Stale is set when a newer load began before this one finished; the
	// page is shown but its state was not stored.
	Stale bool
}

// lists are the records the panels of a tab are drawn from.
type lists struct {
	users         []domain.User
	opportunities []domain.Opportunity
	applications  []domain.Application
	reviews       []domain.Review
	plans         []domain.SubscriptionPlan
}

// Load renders tab after applying ev. The tab's list and the statistics are
// fetched when the viewer arrives from another tab, asks for a refresh or
// never loaded them; otherwise the stored copies are reused. State is stored
// only if no newer load began in the meantime.
func (sc *Screen) Load(ctx context.Context, tab Tab, ev Event) (*Page, error) {
	seq, err := sc.sess.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin admin load: %w", err)
	}
	prev, err := sc.sess.Tab(ctx)
	if err != nil {
		sc.log.Warnw("failed to read active tab", "error", err)
	}
	fetch := ev.Refresh || prev != string(tab)

	page := &Page{
		Tab:      tab,
		Tabs:     tabLinks(tab),
		RetryURL: tab.URL() + "&refresh=1",
	}
	w := session.NewWrites().Tab(string(tab))

	stats, haveStats := sc.storedStats(ctx)
	fetchStats := fetch || !haveStats

	var (
		data    lists
		loadErr error
	)
	var g errgroup.Group
	if fetchStats {
		g.Go(func() error {
			stats = sc.fetchStats(ctx)
			return nil
		})
	}
	g.Go(func() error {
		loadErr = sc.loadTab(ctx, tab, ev, fetch, page, w, &data)
		return nil
	})
	_ = g.Wait()

	page.Stats = stats
	if fetchStats {
		session.PutSnapshot(w, statsSnapshot, stats)
	}
	page.Cards, page.Charts = panels(tab, data, page.Stats)

	stored, err := sc.sess.Commit(ctx, seq, w)
	if err != nil {
		sc.log.Warnw("failed to store admin view state", "tab", tab, "error", err)
	} else if !stored {
		sc.svc.metrics.StaleDiscarded("admin")
		sc.log.Debugw("discarded stale admin load", "tab", tab, "seq", seq)
		page.Stale = true
	}

	if errors.Is(loadErr, domain.ErrAccessDenied) || errors.Is(stats.cause, domain.ErrAccessDenied) {
		return nil, fmt.Errorf("load %s tab: %w", tab, domain.ErrAccessDenied)
	}

	page.Flashes = sc.popFlashes(ctx)
	if loadErr != nil {
		page.Flashes = append(page.Flashes, cache.Flash{Kind: cache.FlashError, Message: FetchFailedMessage})
	}
	return page, nil
}

func (sc *Screen) loadTab(ctx context.Context, tab Tab, ev Event, fetch bool, page *Page, w *session.Writes, data *lists) error {
	switch tab {
	case TabUsers:
		t, err := showTable(ctx, sc, sc.set.Users(), ev, fetch, page, w)
		data.users = t.Items()
		return err
	case TabOpportunities:
		t, err := showTable(ctx, sc, sc.set.Opportunities(), ev, fetch, page, w)
		data.opportunities = t.Items()
		return err
	case TabApplications:
		t, err := showTable(ctx, sc, sc.set.Applications(), ev, fetch, page, w)
		data.applications = t.Items()
		return err
	case TabReviews:
		t, err := showTable(ctx, sc, sc.reviewsConfig(), ev, fetch, page, w)
		data.reviews = t.Filtered()
		return err
	case TabSubscriptions:
		t, err := showTable(ctx, sc, sc.set.Plans(), ev, fetch, page, w)
		data.plans = t.Items()
		page.CreateURL = Path(resources.KindPlans, "new")
		return err
	default:
		data.users = storedList[domain.User](ctx, sc, resources.KindUsers)
		data.opportunities = storedList[domain.Opportunity](ctx, sc, resources.KindOpportunities)
		data.applications = storedList[domain.Application](ctx, sc, resources.KindApplications)
		data.reviews = storedList[domain.Review](ctx, sc, resources.KindReviews)
		return nil
	}
}

func showTable[T any](ctx context.Context, sc *Screen, cfg table.Config[T], ev Event, fetch bool, page *Page, w *session.Writes) (*table.Table[T], error) {
	t, err := openTable(ctx, sc, cfg, fetch)
	ev.apply(t)
	persist(w, t)
	page.Table = t.View()
	page.TableURL = TabFor(cfg.Kind).URL()
	return t, err
}

func panels(tab Tab, data lists, stats Stats) ([]Card, []charts.Chart) {
	switch tab {
	case TabDashboard:
		cards := []Card{
			{Label: "Total Users", Value: strconv.Itoa(len(data.users))},
			{Label: "Clinics", Value: strconv.Itoa(countType(data.users, domain.UserTypeClinic))},
			{Label: "Trainees", Value: strconv.Itoa(countType(data.users, domain.UserTypeTrainee))},
			{Label: "Opportunities", Value: strconv.Itoa(len(data.opportunities))},
			{Label: "Applications", Value: strconv.Itoa(len(data.applications))},
			{Label: "Reviews", Value: strconv.Itoa(len(data.reviews))},
			{Label: "Total Revenue", Value: "$" + stats.TotalRevenue().String()},
		}
		return cards, []charts.Chart{
			charts.UserTypes("user-types", "User Types", data.users),
			charts.OpportunitiesOverTime(data.opportunities),
			charts.ApplicationsOverTime(data.applications),
			charts.Revenue(stats.Payments),
		}
	case TabUsers:
		return nil, []charts.Chart{
			charts.UserTypes("user-type-distribution", "User Type Distribution", data.users),
			charts.Registrations(data.users),
		}
	case TabOpportunities:
		return nil, []charts.Chart{
			charts.OpportunitiesByClinic(data.opportunities),
			charts.OpportunitiesByDate(data.opportunities),
		}
	case TabReviews:
		return nil, []charts.Chart{
			charts.RatingDistribution(data.reviews),
			charts.ReviewsByDate(data.reviews),
		}
	case TabSubscriptions:
		return nil, []charts.Chart{
			charts.PlanPopularity(stats.Subscriptions),
			charts.PlanPrices(data.plans),
			charts.PlanDurations(data.plans),
		}
	}
	return nil, nil
}

func countType(users []domain.User, t domain.UserType) int {
	n := 0
	for _, u := range users {
		if u.UserType == t {
			n++
		}
	}
	return n
}

func (sc *Screen) popFlashes(ctx context.Context) []cache.Flash {
	flashes, err := sc.sess.Flashes(ctx)
	if err != nil {
		sc.log.Warnw("failed to read notifications", "error", err)
		return nil
	}
	return flashes
}

func (sc *Screen) flash(ctx context.Context, kind cache.FlashKind, message string) {
	if err := sc.sess.Flash(ctx, kind, message); err != nil {
		sc.log.Warnw("failed to queue notification", "message", message, "error", err)
	}
}
