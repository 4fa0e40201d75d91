// Package charts shapes already-loaded marketplace lists into the
// {labels, datasets} structures the console's chart widgets draw.
package charts

import (
	"sort"
	"strconv"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

// Type is the widget a chart is drawn with.
type Type string

const (
	Pie  Type = "pie"
	Line Type = "line"
	Bar  Type = "bar"
)

// Palette is the fill cycle used for pie slices.
var Palette = []string{"#3b82f6", "#f59e42", "#10b981", "#6366f1", "#f43f5e", "#fbbf24"}

const barColor = "#3b82f6"

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Chart is one chart panel. Spec is what the widget is constructed with.
type Chart struct {
	ID    string
	Title string
	Spec  Spec
}

type Spec struct {
	Type Type `json:"type"`
	Data Data `json:"data"`
}

// Empty reports whether the chart has nothing to draw.
func (c Chart) Empty() bool {
	for _, ds := range c.Spec.Data.Datasets {
		for _, v := range ds.Data {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

func newChart(id, title string, typ Type, labels []string, ds Dataset) Chart {
	if labels == nil {
		labels = []string{}
	}
	if ds.Data == nil {
		ds.Data = []float64{}
	}
	switch typ {
	case Pie:
		ds.BackgroundColor = paletteFor(len(ds.Data))
	case Bar:
		ds.BackgroundColor = []string{barColor}
	case Line:
		ds.BorderColor = barColor
	}
	return Chart{
		ID:    id,
		Title: title,
		Spec:  Spec{Type: typ, Data: Data{Labels: labels, Datasets: []Dataset{ds}}},
	}
}

func paletteFor(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = Palette[i%len(Palette)]
	}
	return out
}

// countByDate counts dates per calendar day, ascending.
func countByDate(dates []string) ([]string, []float64) {
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		counts[marketplace.DatePart(d)]++
	}
	labels := make([]string, 0, len(counts))
	for d := range counts {
		labels = append(labels, d)
	}
	sort.Strings(labels)

	data := make([]float64, len(labels))
	for i, d := range labels {
		data[i] = float64(counts[d])
	}
	return labels, data
}

// cumulative labels each item by its day and plots the running count.
func cumulative(dates []string) ([]string, []float64) {
	labels := make([]string, len(dates))
	data := make([]float64, len(dates))
	for i, d := range dates {
		labels[i] = marketplace.DatePart(d)
		data[i] = float64(i + 1)
	}
	return labels, data
}

// UserTypes counts users by type in the fixed order clinics, trainees, admins.
func UserTypes(id, title string, users []marketplace.User) Chart {
	counts := make(map[marketplace.UserType]int, len(marketplace.UserTypes))
	for _, u := range users {
		counts[u.UserType]++
	}
	labels := make([]string, 0, len(marketplace.UserTypes))
	data := make([]float64, 0, len(marketplace.UserTypes))
	for _, t := range marketplace.UserTypes {
		labels = append(labels, t.PluralLabel())
		data = append(data, float64(counts[t]))
	}
	return newChart(id, title, Pie, labels, Dataset{Data: data})
}

func Registrations(users []marketplace.User) Chart {
	dates := make([]string, len(users))
	for i, u := range users {
		dates[i] = u.CreatedAt
	}
	labels, data := countByDate(dates)
	return newChart("user-registrations", "User Registrations by Date", Bar, labels, Dataset{Label: "Registrations", Data: data})
}

// OpportunitiesByClinic counts opportunities per clinic in order of first
// appearance.
func OpportunitiesByClinic(opps []marketplace.Opportunity) Chart {
	var order []int64
	counts := make(map[int64]int)
	for _, o := range opps {
		if _, seen := counts[o.ClinicID]; !seen {
			order = append(order, o.ClinicID)
		}
		counts[o.ClinicID]++
	}
	labels := make([]string, len(order))
	data := make([]float64, len(order))
	for i, id := range order {
		labels[i] = "Clinic " + strconv.FormatInt(id, 10)
		data[i] = float64(counts[id])
	}
	return newChart("opportunities-by-clinic", "Opportunities by Clinic", Bar, labels, Dataset{Label: "Opportunities", Data: data})
}

func OpportunitiesByDate(opps []marketplace.Opportunity) Chart {
	dates := make([]string, len(opps))
	for i, o := range opps {
		dates[i] = o.CreatedAt
	}
	labels, data := countByDate(dates)
	return newChart("opportunities-by-date", "Opportunities Over Time", Line, labels, Dataset{Label: "Opportunities", Data: data})
}

func OpportunitiesOverTime(opps []marketplace.Opportunity) Chart {
	dates := make([]string, len(opps))
	for i, o := range opps {
		dates[i] = o.CreatedAt
	}
	labels, data := cumulative(dates)
	return newChart("opportunities-over-time", "Opportunities Over Time", Line, labels, Dataset{Label: "Opportunities", Data: data, Fill: true})
}

func ApplicationsOverTime(apps []marketplace.Application) Chart {
	dates := make([]string, len(apps))
	for i, a := range apps {
		dates[i] = a.AppliedAt
	}
	labels, data := cumulative(dates)
	return newChart("applications-over-time", "Applications Over Time", Line, labels, Dataset{Label: "Applications", Data: data, Fill: true})
}

// RatingDistribution buckets reviews from five stars down to one. Ratings
// outside 1..5 are not counted.
func RatingDistribution(reviews []marketplace.Review) Chart {
	labels := []string{"5 Stars", "4 Stars", "3 Stars", "2 Stars", "1 Star"}
	data := make([]float64, 5)
	for _, r := range reviews {
		if r.ValidRating() {
			data[5-r.Rating]++
		}
	}
	return newChart("rating-distribution", "Rating Distribution", Bar, labels, Dataset{Label: "Reviews", Data: data})
}

func ReviewsByDate(reviews []marketplace.Review) Chart {
	dates := make([]string, len(reviews))
	for i, r := range reviews {
		dates[i] = r.CreatedAt
	}
	labels, data := countByDate(dates)
	return newChart("reviews-by-date", "Reviews by Date", Line, labels, Dataset{Label: "Reviews", Data: data})
}

// PlanPopularity draws the API's users-per-plan aggregate as-is. A nil
// stats value draws an empty chart.
func PlanPopularity(stats *marketplace.SubscriptionStats) Chart {
	var labels []string
	var data []float64
	if stats != nil {
		for _, p := range stats.ByPlanUsers {
			labels = append(labels, p.PlanType)
			data = append(data, float64(p.UserCount))
		}
	}
	return newChart("plan-popularity", "Plan Popularity (Users per Plan)", Pie, labels, Dataset{Data: data})
}

func PlanPrices(plans []marketplace.SubscriptionPlan) Chart {
	labels := make([]string, len(plans))
	data := make([]float64, len(plans))
	for i, p := range plans {
		labels[i] = p.Name
		data[i] = p.Price.Float64()
	}
	return newChart("plan-prices", "Plan Prices", Bar, labels, Dataset{Label: "Price", Data: data})
}

func PlanDurations(plans []marketplace.SubscriptionPlan) Chart {
	labels := make([]string, len(plans))
	data := make([]float64, len(plans))
	for i, p := range plans {
		labels[i] = p.Name
		data[i] = float64(p.DurationDays)
	}
	return newChart("plan-durations", "Plan Durations", Bar, labels, Dataset{Label: "Duration (days)", Data: data})
}

// Revenue plots the API's revenue-by-month aggregate as-is.
func Revenue(stats *marketplace.PaymentStats) Chart {
	var labels []string
	var data []float64
	if stats != nil {
		for _, m := range stats.ByMonth {
			labels = append(labels, m.Month)
			data = append(data, m.Total.Float64())
		}
	}
	return newChart("revenue", "Revenue", Bar, labels, Dataset{Label: "Revenue", Data: data})
}
