package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleOwner     = "owner"
	RoleTechAdmin = "technical_admin"
	RoleNone      = "none"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingPaid      = "paid"
	BookingCancelled = "cancelled"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string          `gorm:"not null"                     json:"name"`
	Slug        string          `gorm:"uniqueIndex;not null"         json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(8,2);not null"   json:"price"`
	InStock     bool            `gorm:"not null"                     json:"in_stock"`
}

type Service struct {
	ID          uint                `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string              `gorm:"not null"                   json:"name"`
	Slug        string              `gorm:"uniqueIndex;not null"       json:"slug"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `gorm:"type:numeric(8,2)"          json:"price"`
	IsActive    bool                `gorm:"not null"                   json:"is_active"`
}

type Event struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title        string          `gorm:"not null"                   json:"title"`
	Slug         string          `gorm:"uniqueIndex;not null"       json:"slug"`
	ShortTagline string          `json:"short_tagline"`
	StartDate    time.Time       `gorm:"not null"                   json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Price        decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
	Capacity     uint            `gorm:"default:0"                  json:"capacity"`
	Description  string          `json:"description"`
	IsActive     bool            `gorm:"not null"                   json:"is_active"`
}

type Booking struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name      string    `gorm:"not null"                     json:"name"`
	Email     string    `gorm:"not null"                     json:"email"`
	Date      time.Time `gorm:"not null"                     json:"date"`
	Tickets   uint      `gorm:"default:1;check:tickets>0"    json:"tickets"`
	EventID   *uint     `gorm:"index"                        json:"event_id,omitempty"`
	Notes     string    `json:"notes"`
	Status    string    `gorm:"not null;default:pending"     json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	ProductID uint      `gorm:"index;not null"               json:"product_id"`
	Name      string    `gorm:"not null"                     json:"name"`
	Email     string    `gorm:"not null"                     json:"email"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"   json:"quantity"`
	Notes     string    `json:"notes"`
	Status    string    `gorm:"not null;default:pending"     json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name      string    `gorm:"not null"                   json:"name"`
	Email     string    `gorm:"not null"                   json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `gorm:"not null"                   json:"message"`
	Handled   bool      `gorm:"default:false"              json:"handled"`
	CreatedAt time.Time `json:"created_at"`
}

type PreQualificationApplication struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CriminalRecord    string `json:"criminal_record"`
	ProbationWarrants string `json:"probation_warrants"`
	SmokingDrugs      string `json:"smoking_drugs"`
	AlcoholUse        string `json:"alcohol_use"`
	ThreatsHistory    string `json:"threats_history"`

	LeaseTerm            string `json:"lease_term"`
	HousingSize          string `json:"housing_size"`
	HousingFoundation    string `json:"housing_foundation"`
	AdditionalStructures string `json:"additional_structures"`

	NumVehicles       uint   `gorm:"default:0" json:"num_vehicles"`
	VehiclesCondition string `json:"vehicles_condition"`

	Adults       uint   `gorm:"default:1" json:"adults"`
	Children     uint   `gorm:"default:0" json:"children"`
	ChildrenAges string `json:"children_ages"`

	PersonalGarden string `json:"personal_garden"`
	Livestock      string `json:"livestock"`
	Pets           string `json:"pets"`
	Fencing        string `json:"fencing"`

	MembershipPlans string `json:"membership_plans"`

	RequireWater  bool   `gorm:"default:false" json:"require_water"`
	RequirePower  bool   `gorm:"default:false" json:"require_power"`
	RequireSeptic bool   `gorm:"default:false" json:"require_septic"`
	BoondockPlan  string `json:"boondock_plan"`

	MonthlySupport     string `json:"monthly_support"`
	WorkExchangeMonths string `json:"work_exchange_months"`
	WorkDaysHours      string `json:"work_days_hours"`
	WorkStart          string `json:"work_start"`
	Deposit            string `json:"deposit"`
	ContributionArea   string `json:"contribution_area"`
	SkillsTalents      string `json:"skills_talents"`

	Status    string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Email     string    `gorm:"uniqueIndex;not null"       json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title     string    `gorm:"not null"                   json:"title"`
	Content   string    `gorm:"not null"                   json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}
