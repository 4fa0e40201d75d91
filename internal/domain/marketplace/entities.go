// Package marketplace holds the records the console mirrors from the
// marketplace API. The API owns them; the console never persists them.
package marketplace

// User is a marketplace account.
type User struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name" validate:"required,max=100"`
	Email     string   `json:"email"`
	UserType  UserType `json:"user_type" validate:"required,oneof=trainee clinic admin"`
	CreatedAt string   `json:"created_at"`
}

// UserUpdate is the only part of a user the console may change.
type UserUpdate struct {
	Name     string   `json:"name" validate:"required,max=100"`
	UserType UserType `json:"user_type" validate:"required,oneof=trainee clinic admin"`
}

// Opportunity is a placement posted by a clinic.
type Opportunity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	ClinicID    int64  `json:"clinic_id" validate:"required,gt=0"`
	ClinicName  string `json:"clinic_name,omitempty"`
	Location    string `json:"location,omitempty"`
	IsPaid      bool   `json:"is_paid"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// Application is a trainee's application to an opportunity.
type Application struct {
	ID            int64             `json:"id"`
	OpportunityID int64             `json:"opportunity_id,omitempty"`
	Title         string            `json:"title"`
	ClinicName    string            `json:"clinic_name,omitempty"`
	TraineeID     int64             `json:"trainee_id"`
	TraineeName   string            `json:"trainee_name"`
	CoverLetter   string            `json:"cover_letter"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     string            `json:"applied_at"`
}

// Review is a trainee's rating of a clinic. ClinicID and ClinicName are
// filled in by the console from the clinic the review was listed under.
type Review struct {
	ID          int64  `json:"id"`
	ClinicID    int64  `json:"clinic_id"`
	ClinicName  string `json:"clinic_name"`
	TraineeID   int64  `json:"trainee_id"`
	TraineeName string `json:"trainee_name"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback"`
	CreatedAt   string `json:"created_at"`
}

// ValidRating reports whether the rating falls in one of the five star buckets.
func (r Review) ValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// SubscriptionPlan is a tier of usage limits sold for a number of days.
// A nil limit means the plan does not cap that usage.
type SubscriptionPlan struct {
	ID                 int64  `json:"id,omitempty"`
	Name               string `json:"name" validate:"required,max=100"`
	Price              Amount `json:"price" validate:"gte=0"`
	ApplicationsLimit  *int   `json:"applications_limit"`
	OpportunitiesLimit *int   `json:"opportunities_limit"`
	DurationDays       int    `json:"duration_days" validate:"gt=0"`
	Description        string `json:"description"`
}

// UserSubscription is a time-bounded grant of a plan to one user.
type UserSubscription struct {
	ID                 int64  `json:"id"`
	PlanType           string `json:"plan_type"`
	ApplicationsLimit  *int   `json:"applications_limit"`
	OpportunitiesLimit *int   `json:"opportunities_limit"`
	ExpiresAt          string `json:"expires_at"`
}

// AssignSubscription is the body of an admin plan assignment.
type AssignSubscription struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	PlanID int64 `json:"plan_id" validate:"required,gt=0"`
}

// PlanUsers counts the users subscribed to one plan.
type PlanUsers struct {
	PlanType  string `json:"plan_type"`
	UserCount int    `json:"user_count"`
}

// SubscriptionStats is pre-aggregated by the API.
type SubscriptionStats struct {
	ByPlanUsers []PlanUsers `json:"byPlanUsers"`
}

// MonthTotal is the revenue booked in one month.
type MonthTotal struct {
	Month string `json:"month"`
	Total Amount `json:"total"`
}

// PaymentStats is pre-aggregated by the API.
type PaymentStats struct {
	TotalRevenue Amount       `json:"totalRevenue"`
	ByMonth      []MonthTotal `json:"byMonth"`
}

// Viewer is the signed-in person looking at the console.
type Viewer struct {
	ID       int64
	Name     string
	UserType UserType
}

func (v Viewer) IsAdmin() bool   { return v.UserType == UserTypeAdmin }
func (v Viewer) IsClinic() bool  { return v.UserType == UserTypeClinic }
func (v Viewer) IsTrainee() bool { return v.UserType == UserTypeTrainee }

// DatePart returns the calendar-day prefix (YYYY-MM-DD) of an API timestamp.
func DatePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}
