package dispatcher

// Envelope is the response shape shared by every backend operation.
// Response types embed it so the low-level request loop can check success
// uniformly.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e *Envelope) envelope() *Envelope { return e }

// envelopeCarrier is satisfied by any response struct embedding Envelope.
type envelopeCarrier interface {
	envelope() *Envelope
}

// Pagination describes a paged list response.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

// Admin is the authenticated console operator.
type Admin struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// User is a driver or rider account.
type User struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	DOB                string `json:"dob,omitempty"`
	Gender             string `json:"gender,omitempty"`
	PlaceOfLiving      string `json:"place_of_living,omitempty"`
	FacePhoto          string `json:"face_photo,omitempty"`
	PassportPhoto      string `json:"passport_photo,omitempty"`
	DriverLicensePhoto string `json:"driver_license_photo,omitempty"`
	Role               string `json:"role"`
	IsVerified         int    `json:"is_verified"`
	IsBanned           int    `json:"is_banned"`
	AccountStatus      string `json:"account_status"`
	CountryName        string `json:"country_name,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// Plan is a driver subscription plan.
type Plan struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Price               string `json:"price"`
	MaxPosts            int    `json:"max_posts"`
	DurationDays        int    `json:"duration_days"`
	ActiveSubscriptions int    `json:"active_subscriptions,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// Subscription binds a driver to a plan for a date range.
type Subscription struct {
	ID          int    `json:"id"`
	DriverID    int    `json:"driver_id"`
	PlanID      int    `json:"plan_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsActive    int    `json:"is_active"`
	IsExpired   int    `json:"is_expired"`
	DriverName  string `json:"driver_name"`
	DriverEmail string `json:"driver_email"`
	PlanName    string `json:"plan_name"`
	Price       string `json:"price"`
}

// Payment is a driver's plan payment record.
type Payment struct {
	ID                int    `json:"id"`
	DriverID          int    `json:"driver_id"`
	PlanID            int    `json:"plan_id"`
	PaymentMethodID   int    `json:"payment_method_id,omitempty"`
	TransactionID     string `json:"transaction_id"`
	Status            string `json:"status"`
	AdminNote         string `json:"admin_note,omitempty"`
	DriverName        string `json:"driver_name"`
	DriverEmail       string `json:"driver_email"`
	PlanName          string `json:"plan_name"`
	PaymentMethodName string `json:"payment_method_name,omitempty"`
	Price             string `json:"price"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// PaymentMethod is an accepted way of paying for a plan.
type PaymentMethod struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	IsActive         int    `json:"is_active"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	DeletedAt        string `json:"deleted_at,omitempty"`
	TotalPayments    int    `json:"total_payments,omitempty"`
	ApprovedPayments int    `json:"approved_payments,omitempty"`
}

// Post is a driver's trip announcement.
type Post struct {
	ID                int    `json:"id"`
	DriverID          int    `json:"driver_id"`
	FromCountry       int    `json:"from_country"`
	ToCountry         int    `json:"to_country"`
	FromToDeparture   string `json:"from_to_departure"`
	ToFromReturn      string `json:"to_from_return,omitempty"`
	FromToDescription string `json:"from_to_description,omitempty"`
	ToFromDescription string `json:"to_from_description,omitempty"`
	PhoneVisible      int    `json:"phone_visible"`
	IsActive          int    `json:"is_active"`
	DriverName        string `json:"driver_name"`
	DriverEmail       string `json:"driver_email"`
	FromCountryName   string `json:"from_country_name"`
	ToCountryName     string `json:"to_country_name"`
	CreatedAt         string `json:"created_at"`
}

// Country is a supported origin/destination country.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Notification is an admin inbox entry.
type Notification struct {
	ID        int            `json:"id"`
	UserID    int            `json:"user_id"`
	Role      string         `json:"role"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	IsRead    int            `json:"is_read"`
	CreatedAt string         `json:"created_at"`
}

// Vehicle is a driver's registered vehicle awaiting approval.
type Vehicle struct {
	ID                int    `json:"id"`
	DriverID          int    `json:"driver_id"`
	DriverName        string `json:"driver_name,omitempty"`
	DriverEmail       string `json:"driver_email,omitempty"`
	VehicleType       string `json:"vehicle_type"`
	LicensePlate      string `json:"license_plate"`
	Brand             string `json:"brand,omitempty"`
	Model             string `json:"model,omitempty"`
	Year              int    `json:"year,omitempty"`
	Color             string `json:"color,omitempty"`
	Seats             int    `json:"seats,omitempty"`
	Description       string `json:"description,omitempty"`
	Photo1            string `json:"photo1"`
	Photo2            string `json:"photo2"`
	RegistrationPhoto string `json:"registration_photo"`
	Status            string `json:"status"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Rating is a rider's review of a driver.
type Rating struct {
	ID                int    `json:"id"`
	Rating            int    `json:"rating"`
	Comment           string `json:"comment"`
	RaterName         string `json:"rater_name"`
	RaterEmail        string `json:"rater_email"`
	FromCountry       string `json:"from_country"`
	ToCountry         string `json:"to_country"`
	FromToDescription string `json:"from_to_description"`
	CreatedAt         string `json:"created_at"`
}

// RatingStats aggregates a driver's ratings.
type RatingStats struct {
	AverageRating   float64        `json:"average_rating"`
	TotalRatings    int            `json:"total_ratings"`
	RatingBreakdown map[string]int `json:"rating_breakdown"`
}
