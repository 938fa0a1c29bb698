package database

import (
	"sustainwire/constants"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

// Analytics is stored as a nested JSON document on every content row.
type Analytics struct {
	Views      int    `json:"views"`
	Unique     int    `json:"unique"`
	TopCountry string `json:"topCountry"`
}

func DefaultAnalytics() Analytics {
	return Analytics{Views: 0, Unique: 0, TopCountry: constants.DEFAULT_TOP_COUNTRY}
}

// Document holds the fields shared by every content type. IDs are ObjectID
// hex strings, so ordering by id follows creation order.
type Document struct {
	ID        string                       `gorm:"primaryKey;size:24"`
	UpdatedBy string                       `gorm:"not null;default:Admin"`
	Analytics datatypes.JSONType[Analytics] `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Document) document() *Document { return d }

// prepareInsert assigns the server-side id and the initial analytics record.
func (d *Document) prepareInsert() {
	d.ID = primitive.NewObjectID().Hex()
	d.Analytics = datatypes.NewJSONType(DefaultAnalytics())
	if d.UpdatedBy == "" {
		d.UpdatedBy = constants.DEFAULT_UPDATED_BY
	}
}

func (d Document) Stats() Analytics {
	return d.Analytics.Data()
}

type News struct {
	Document
	Title    string `gorm:"not null"`
	Content  string `gorm:"type:text;not null"`
	Category string `gorm:"not null"`
	ImageURL string `gorm:"not null"`
}

type Job struct {
	Document
	Title       string `gorm:"not null"`
	Company     string `gorm:"not null"`
	Location    string `gorm:"not null"`
	Type        string `gorm:"not null"`
	TypeColor   string `gorm:"not null;default:green"`
	Description string `gorm:"type:text;not null"`
	ApplyLink   string `gorm:"not null"`
}

type Event struct {
	Document
	Title       string `gorm:"not null"`
	Date        string `gorm:"not null"`
	Location    string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	ApplyLink   string `gorm:"not null"`
}

type Course struct {
	Document
	Title       string `gorm:"not null"`
	Provider    string `gorm:"not null"`
	Format      string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	ApplyLink   string `gorm:"not null"`
}

// SpecialReport is a singleton; only SpecialReportStore reads or writes it.
type SpecialReport struct {
	Document
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	ImageURL  string `gorm:"not null"`
	ApplyLink string `gorm:"not null;default:#"`
}

type AdminUser struct {
	Username     string `gorm:"primaryKey"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AdminSession struct {
	Token     string    `gorm:"primaryKey"`
	Username  string    `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
