package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/session"
	"github.com/clinicplace/console/internal/application/console/table"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
)

// BasePath is where the admin console is mounted.
const BasePath = "/admin"

// Event is what a viewer did on a table, decoded from the request. Every
// field is absolute, so replaying the same URL leaves the table unchanged.
type Event struct {
	// Query is set when the search box was submitted.
	Query *string
	Page  int
	// Menu is the row whose action menu is open. Empty is a click outside
	// any menu, which closes it.
	Menu string
	// Refresh forces a re-fetch of the tab's list.
	Refresh bool
}

// EventFromQuery decodes the table event carried by an admin URL.
func EventFromQuery(q url.Values) Event {
	var ev Event
	if q.Has("q") {
		query := q.Get("q")
		ev.Query = &query
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		ev.Page = page
	}
	ev.Menu = q.Get("menu")
	ev.Refresh = q.Get("refresh") != ""
	return ev
}

func (ev Event) apply(t interface {
	Search(string)
	GoTo(int)
	ShowMenu(string)
	Click(table.Menu)
}) {
	if ev.Query != nil {
		t.Search(*ev.Query)
	}
	if ev.Page > 0 {
		t.GoTo(ev.Page)
	}
	if ev.Menu != "" {
		t.ShowMenu(ev.Menu)
	} else {
		t.Click(table.NoMenu())
	}
}

// openTable rebuilds kind's table from the session. The stored list is
// installed first so a failed fetch still leaves it visible; the list is
// fetched when forced or when this session never loaded it.
func openTable[T any](ctx context.Context, sc *Screen, cfg table.Config[T], fetch bool) (*table.Table[T], error) {
	state, err := sc.sess.TableState(ctx, cfg.Kind)
	if err != nil {
		sc.log.Warnw("failed to read table state", "kind", cfg.Kind, "error", err)
	}
	t := table.New(cfg, state)

	items, ok, err := session.List[T](ctx, sc.sess, cfg.Kind)
	if err != nil {
		sc.log.Warnw("failed to read stored list", "kind", cfg.Kind, "error", err)
	}
	if ok {
		t.Restore(items)
	}
	if !fetch && ok {
		return t, nil
	}

	if err := t.Load(ctx); err != nil {
		sc.log.Warnw("failed to fetch list", "kind", cfg.Kind, "error", err)
		return t, err
	}
	return t, nil
}

// persist records t's state, and its list unless the last load failed.
func persist[T any](w *session.Writes, t *table.Table[T]) {
	w.TableState(t.Kind(), t.State())
	if t.View().Err == nil {
		session.PutList(w, t.Kind(), t.Items())
	}
}

func storedList[T any](ctx context.Context, sc *Screen, kind table.Kind) []T {
	items, _, err := session.List[T](ctx, sc.sess, kind)
	if err != nil {
		sc.log.Warnw("failed to read stored list", "kind", kind, "error", err)
	}
	return items
}

func (sc *Screen) reviewsConfig() table.Config[domain.Review] {
	return sc.set.Reviews(sc.fetchReviews)
}

var nouns = map[table.Kind]string{
	resources.KindUsers:         "User",
	resources.KindOpportunities: "Opportunity",
	resources.KindApplications:  "Application",
	resources.KindReviews:       "Review",
	resources.KindPlans:         "Plan",
}

// Path builds an admin URL under a resource, e.g. /admin/users/3/edit.
func Path(kind table.Kind, parts ...string) string {
	p := BasePath + "/" + string(kind)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}
