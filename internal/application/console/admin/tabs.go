package admin

import (
	"github.com/clinicplace/console/internal/application/console/resources"
	"github.com/clinicplace/console/internal/application/console/table"
)

// Tab is one section of the admin screen.
type Tab string

const (
	TabDashboard     Tab = "dashboard"
	TabUsers         Tab = "users"
	TabOpportunities Tab = "opportunities"
	TabApplications  Tab = "applications"
	TabReviews       Tab = "reviews"
	TabSubscriptions Tab = "subscriptions"
)

var tabOrder = []struct {
	tab   Tab
	label string
}{
	{TabDashboard, "Dashboard"},
	{TabUsers, "Users"},
	{TabOpportunities, "Opportunities"},
	{TabApplications, "Applications"},
	{TabReviews, "Reviews"},
	{TabSubscriptions, "Subscriptions"},
}

var tabAliases = map[string]Tab{
	"opps": TabOpportunities,
	"apps": TabApplications,
	"subs": TabSubscriptions,
}

// ParseTab maps the tab query parameter to a tab. Short legacy names are
// accepted; anything else, including "", selects the dashboard.
func ParseTab(s string) Tab {
	if t, ok := tabAliases[s]; ok {
		return t
	}
	for _, entry := range tabOrder {
		if string(entry.tab) == s {
			return entry.tab
		}
	}
	return TabDashboard
}

// Kind returns the resource table shown on the tab.
func (t Tab) Kind() (table.Kind, bool) {
	switch t {
	case TabUsers:
		return resources.KindUsers, true
	case TabOpportunities:
		return resources.KindOpportunities, true
	case TabApplications:
		return resources.KindApplications, true
	case TabReviews:
		return resources.KindReviews, true
	case TabSubscriptions:
		return resources.KindPlans, true
	}
	return "", false
}

// TabFor returns the tab that shows kind.
func TabFor(kind table.Kind) Tab {
	for _, entry := range tabOrder {
		if k, ok := entry.tab.Kind(); ok && k == kind {
			return entry.tab
		}
	}
	return TabDashboard
}

func (t Tab) URL() string {
	return BasePath + "?tab=" + string(t)
}

type TabLink struct {
	Tab    Tab
	Label  string
	URL    string
	Active bool
}

func tabLinks(active Tab) []TabLink {
	links := make([]TabLink, 0, len(tabOrder))
	for _, entry := range tabOrder {
		links = append(links, TabLink{
			Tab:    entry.tab,
			Label:  entry.label,
			URL:    entry.tab.URL(),
			Active: entry.tab == active,
		})
	}
	return links
}

// ParseKind maps a resource path segment to a table kind.
func ParseKind(s string) (table.Kind, bool) {
	for _, k := range resources.Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
