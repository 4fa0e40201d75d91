package admin

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/session"
	"github.com/clinicplace/console/internal/application/console/table"
	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/cache"
	"github.com/clinicplace/console/internal/shared/utils"
)

// ErrInvalidForm is returned with a Dialog whose form carries per-field
// messages.
var ErrInvalidForm = errors.New("invalid form")

type DialogKind string

const (
	DialogForm          DialogKind = "form"
	DialogConfirm       DialogKind = "confirm"
	DialogAssign        DialogKind = "assign"
	DialogSubscriptions DialogKind = "subscriptions"
)

// Dialog is a modal opened over the admin screen.
type Dialog struct {
	Kind     DialogKind
	Resource table.Kind
	// ReturnTo is the tab the dialog closes back to.
	ReturnTo string

	Form          table.Form
	Confirm       Confirm
	Assign        AssignView
	Subscriptions SubscriptionsView
}

// Confirm asks before a destructive action.
type Confirm struct {
	Message string
	Action  string
	Label   string
}

type AssignView struct {
	User   domain.User
	Plans  []resources.PlanOption
	Action string
}

type SubscriptionsView struct {
	User domain.User
	Rows []resources.SubscriptionRow
}

// Result is the outcome of a row action or a saved form.
type Result struct {
	Message  string
	ReturnTo string
}

func newDialog(kind DialogKind, resource table.Kind) *Dialog {
	return &Dialog{Kind: kind, Resource: resource, ReturnTo: TabFor(resource).URL()}
}

// Open runs the menu action on row id of kind without performing anything
// destructive: it returns the dialog the action opens, or the confirmation
// a destructive action needs.
func (sc *Screen) Open(ctx context.Context, kind table.Kind, id, action string) (*Dialog, error) {
	switch kind {
	case resources.KindUsers:
		return open(ctx, sc, sc.set.Users(), id, action, func(ctx context.Context, out table.Outcome[domain.User], mode table.Mode) (*Dialog, error) {
			switch out.Action.Name {
			case resources.ActionAssign:
				return sc.assignDialog(ctx, out.Item)
			case resources.ActionSubscriptions:
				return sc.subscriptionsDialog(ctx, out.Item)
			}
			return formDialog(kind, mode, id, userTitle(mode), resources.UserFields(out.Item)), nil
		})
	case resources.KindOpportunities:
		return open(ctx, sc, sc.set.Opportunities(), id, action, func(_ context.Context, out table.Outcome[domain.Opportunity], mode table.Mode) (*Dialog, error) {
			return formDialog(kind, mode, id, opportunityTitle(mode), sc.set.OpportunityFields(out.Item)), nil
		})
	case resources.KindApplications:
		return open(ctx, sc, sc.set.Applications(), id, action, func(_ context.Context, out table.Outcome[domain.Application], mode table.Mode) (*Dialog, error) {
			return formDialog(kind, mode, id, "Application Details", sc.set.ApplicationFields(out.Item)), nil
		})
	case resources.KindReviews:
		return open(ctx, sc, sc.reviewsConfig(), id, action, func(_ context.Context, out table.Outcome[domain.Review], mode table.Mode) (*Dialog, error) {
			return formDialog(kind, mode, id, "Review Details", sc.set.ReviewFields(out.Item)), nil
		})
	case resources.KindPlans:
		return open(ctx, sc, sc.set.Plans(), id, action, func(_ context.Context, out table.Outcome[domain.SubscriptionPlan], mode table.Mode) (*Dialog, error) {
			return formDialog(kind, mode, id, planTitle(mode), sc.set.PlanFields(out.Item)), nil
		})
	}
	return nil, table.ErrNoHandler
}

// NewPlan opens the create-plan modal.
func (sc *Screen) NewPlan() *Dialog {
	var plan domain.SubscriptionPlan
	return formDialog(resources.KindPlans, table.ModeCreate, "", planTitle(table.ModeCreate), sc.set.PlanFields(plan))
}

type opener[T any] func(ctx context.Context, out table.Outcome[T], mode table.Mode) (*Dialog, error)

func open[T any](ctx context.Context, sc *Screen, cfg table.Config[T], id, action string, next opener[T]) (*Dialog, error) {
	t, _ := openTable(ctx, sc, cfg, false)
	for _, a := range t.Actions() {
		// A link never performs an action; those are posted.
		if a.Name == action && a.Run != nil && !a.Destructive {
			return nil, table.ErrUnknownAction
		}
	}
	out, err := t.Invoke(ctx, action, id, false)
	storeTable(ctx, sc, t)

	switch {
	case errors.Is(err, table.ErrConfirmationRequired):
		d := newDialog(DialogConfirm, cfg.Kind)
		noun := strings.ToLower(nouns[cfg.Kind])
		d.Confirm = Confirm{
			Message: "Delete this " + noun + "?",
			Action:  Path(cfg.Kind, id, action),
			Label:   out.Action.Label,
		}
		return d, nil
	case err != nil:
		return nil, err
	case !out.Open:
		return nil, table.ErrUnknownAction
	}

	mode, ok := table.ParseMode(action)
	if !ok {
		mode = table.ModeView
	}
	if mode != table.ModeView {
		if _, err := t.OpenModal(id, mode); err != nil {
			return nil, err
		}
	}
	return next(ctx, out, mode)
}

func formDialog(kind table.Kind, mode table.Mode, id, title string, fields []table.Field) *Dialog {
	d := newDialog(DialogForm, kind)
	action := ""
	switch mode {
	case table.ModeEdit:
		action = Path(kind, id)
	case table.ModeCreate:
		action = Path(kind)
	}
	d.Form = table.NewForm(title, mode, action, fields)
	return d
}

func userTitle(mode table.Mode) string {
	if mode == table.ModeEdit {
		return "Edit User"
	}
	return "User Details"
}

func opportunityTitle(mode table.Mode) string {
	if mode == table.ModeEdit {
		return "Edit Opportunity"
	}
	return "Opportunity Details"
}

func planTitle(mode table.Mode) string {
	switch mode {
	case table.ModeCreate:
		return "Create Plan"
	case table.ModeEdit:
		return "Edit Plan"
	}
	return "View Plan"
}

// Invoke performs a confirmed row action such as delete. The outcome is
// queued as a notification for the next page.
func (sc *Screen) Invoke(ctx context.Context, kind table.Kind, id, action string, confirmed bool) (Result, error) {
	switch kind {
	case resources.KindUsers:
		return invoke(ctx, sc, sc.set.Users(), id, action, confirmed)
	case resources.KindOpportunities:
		return invoke(ctx, sc, sc.set.Opportunities(), id, action, confirmed)
	case resources.KindApplications:
		return invoke(ctx, sc, sc.set.Applications(), id, action, confirmed)
	case resources.KindReviews:
		return invoke(ctx, sc, sc.reviewsConfig(), id, action, confirmed)
	case resources.KindPlans:
		return invoke(ctx, sc, sc.set.Plans(), id, action, confirmed)
	}
	return Result{}, table.ErrNoHandler
}

func invoke[T any](ctx context.Context, sc *Screen, cfg table.Config[T], id, action string, confirmed bool) (Result, error) {
	res := Result{ReturnTo: TabFor(cfg.Kind).URL()}

	t, _ := openTable(ctx, sc, cfg, false)
	out, err := t.Invoke(ctx, action, id, confirmed)
	if out.Open || errors.Is(err, table.ErrConfirmationRequired) || errors.Is(err, table.ErrUnknownAction) {
		storeTable(ctx, sc, t)
		return res, err
	}

	sc.svc.metrics.Mutation(string(cfg.Kind), action, err)
	res.Message = out.Message
	if err != nil {
		sc.log.Warnw("row action failed", "kind", cfg.Kind, "action", action, "id", id, "error", err)
		sc.flash(ctx, cache.FlashError, out.Message)
		storeTable(ctx, sc, t)
		return res, err
	}

	sc.log.Infow("row action completed", "kind", cfg.Kind, "action", action, "id", id)
	sc.flash(ctx, cache.FlashSuccess, out.Message)
	storeTable(ctx, sc, t)
	return res, nil
}

// storeTable saves t's state and list whatever loads began meanwhile.
func storeTable[T any](ctx context.Context, sc *Screen, t *table.Table[T]) {
	w := session.NewWrites()
	persist(w, t)
	if err := sc.sess.Save(ctx, w); err != nil {
		sc.log.Warnw("failed to store table state", "kind", t.Kind(), "error", err)
	}
}

// Save submits a user, opportunity or plan form. Create is only offered
// for plans. On invalid input the returned dialog carries the messages and
// the error is ErrInvalidForm.
func (sc *Screen) Save(ctx context.Context, kind table.Kind, id string, mode table.Mode, form url.Values) (*Dialog, Result, error) {
	switch kind {
	case resources.KindUsers:
		return save(ctx, sc, sc.set.Users(), id, mode, form, resources.ParseUser, resources.UserFields, userTitle)
	case resources.KindOpportunities:
		return save(ctx, sc, sc.set.Opportunities(), id, mode, form, resources.ParseOpportunity, sc.set.OpportunityFields, opportunityTitle)
	case resources.KindPlans:
		return save(ctx, sc, sc.set.Plans(), id, mode, form, resources.ParsePlan, sc.set.PlanFields, planTitle)
	}
	return nil, Result{}, table.ErrNoHandler
}

func save[T any](
	ctx context.Context,
	sc *Screen,
	cfg table.Config[T],
	id string,
	mode table.Mode,
	form url.Values,
	parse func(T, url.Values) (T, resources.FormErrors),
	fields func(T) []table.Field,
	title func(table.Mode) string,
) (*Dialog, Result, error) {
	res := Result{ReturnTo: TabFor(cfg.Kind).URL()}

	t, _ := openTable(ctx, sc, cfg, false)
	modal, err := t.OpenModal(id, mode)
	if err != nil {
		return nil, res, err
	}
	if mode == table.ModeView {
		return nil, res, table.ErrReadOnly
	}

	item, errs := parse(modal.Item, form)
	d := formDialog(cfg.Kind, mode, id, title(mode), fields(item))
	if !errs.Empty() {
		d.Form = d.Form.WithErrors(errs)
		return d, res, ErrInvalidForm
	}

	noun := nouns[cfg.Kind]
	success, failure := noun+" updated", "Failed to update "+strings.ToLower(noun)
	if mode == table.ModeCreate {
		success, failure = noun+" created", "Failed to create "+strings.ToLower(noun)
	}

	err = t.Save(ctx, mode, item)
	var verr *table.ValidationError
	if errors.As(err, &verr) {
		d.Form = d.Form.WithErrors(errs.Merge(verr.Fields))
		return d, res, ErrInvalidForm
	}

	action := string(mode)
	sc.svc.metrics.Mutation(string(cfg.Kind), action, err)
	if err != nil {
		res.Message = failure
		sc.log.Warnw("save failed", "kind", cfg.Kind, "mode", mode, "id", id, "error", err)
		sc.flash(ctx, cache.FlashError, res.Message)
		return d, res, err
	}

	res.Message = success
	sc.log.Infow("record saved", "kind", cfg.Kind, "mode", mode, "id", id)
	sc.flash(ctx, cache.FlashSuccess, res.Message)
	storeTable(ctx, sc, t)
	return nil, res, nil
}

func (sc *Screen) assignDialog(ctx context.Context, user domain.User) (*Dialog, error) {
	plans, err := sc.planCatalog(ctx)
	if err != nil {
		sc.flash(ctx, cache.FlashError, FetchFailedMessage)
		return nil, err
	}
	d := newDialog(DialogAssign, resources.KindUsers)
	d.Assign = AssignView{
		User:   user,
		Plans:  resources.PlanOptions(plans),
		Action: Path(resources.KindUsers, strconv.FormatInt(user.ID, 10), "assign"),
	}
	return d, nil
}

// planCatalog reuses the plans loaded by the subscriptions tab and fetches
// them only when none are stored.
func (sc *Screen) planCatalog(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	plans := storedList[domain.SubscriptionPlan](ctx, sc, resources.KindPlans)
	if len(plans) > 0 {
		return plans, nil
	}

	plans, err := sc.api.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := sc.sess.Save(ctx, session.PutList(session.NewWrites(), resources.KindPlans, plans)); err != nil {
		sc.log.Warnw("failed to store plan list", "error", err)
	}
	return plans, nil
}

// Assign grants plan planID to user userID.
func (sc *Screen) Assign(ctx context.Context, userID, planID int64) (Result, error) {
	res := Result{ReturnTo: TabUsers.URL()}

	req := domain.AssignSubscription{UserID: userID, PlanID: planID}
	if err := utils.ValidateStruct(req); err != nil {
		res.Message = "Select a plan to assign"
		sc.flash(ctx, cache.FlashError, res.Message)
		return res, err
	}

	err := sc.api.AssignPlan(ctx, req)
	sc.svc.metrics.Mutation(string(resources.KindUsers), resources.ActionAssign, err)
	if err != nil {
		res.Message = "Failed to assign plan"
		sc.log.Warnw("assign plan failed", "user_id", userID, "plan_id", planID, "error", err)
		sc.flash(ctx, cache.FlashError, res.Message)
		return res, err
	}

	res.Message = "Plan assigned"
	sc.log.Infow("plan assigned", "user_id", userID, "plan_id", planID)
	sc.flash(ctx, cache.FlashSuccess, res.Message)
	return res, nil
}

func (sc *Screen) subscriptionsDialog(ctx context.Context, user domain.User) (*Dialog, error) {
	subs, err := sc.api.ListUserSubscriptions(ctx, user.ID)
	if err != nil {
		sc.flash(ctx, cache.FlashError, FetchFailedMessage)
		return nil, err
	}
	d := newDialog(DialogSubscriptions, resources.KindUsers)
	d.Subscriptions = SubscriptionsView{User: user, Rows: resources.SubscriptionRows(subs)}
	return d, nil
}
