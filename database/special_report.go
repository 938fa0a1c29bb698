package database

import (
	"context"
	"errors"
	"sustainwire/constants"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpecialReportID is the fixed key of the only special report row, so the
// table can never hold a second report.
const SpecialReportID = "special-report"

// SpecialReportStore holds the single special report. It has no id-based
// operations: callers get the current report or upsert it.
type SpecialReportStore struct {
	db *gorm.DB
}

func NewSpecialReportStore(db *gorm.DB) *SpecialReportStore {
	return &SpecialReportStore{db: db}
}

func PlaceholderReport() SpecialReport {
	return SpecialReport{
		Title:     constants.PLACEHOLDER_REPORT_TITLE,
		Content:   constants.PLACEHOLDER_REPORT_CONTENT,
		ImageURL:  constants.PLACEHOLDER_REPORT_IMAGE,
		ApplyLink: constants.PLACEHOLDER_REPORT_APPLYLINK,
	}
}

// Get returns ErrNotFound when no report exists.
func (s *SpecialReportStore) Get(ctx context.Context) (SpecialReport, error) {
	return getReport(s.db.WithContext(ctx))
}

func getReport(tx *gorm.DB) (SpecialReport, error) {
	var report SpecialReport
	result := tx.Where("id = ?", SpecialReportID).First(&report)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return report, ErrNotFound
		}
		return report, result.Error
	}
	return report, nil
}

// insertPlaceholder is a no-op when the report already exists.
func insertPlaceholder(tx *gorm.DB) error {
	report := PlaceholderReport()
	report.prepareInsert()
	report.ID = SpecialReportID
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&report).Error
}

// Upsert applies edit to the existing report, creating it from the
// placeholder first when none exists.
func (s *SpecialReportStore) Upsert(ctx context.Context, edit func(*SpecialReport)) (SpecialReport, error) {
	var out SpecialReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertPlaceholder(tx); err != nil {
			return err
		}
		report, err := getReport(tx)
		if err != nil {
			return err
		}

		doc := report.Document
		edit(&report)
		report.ID = doc.ID
		report.Analytics = doc.Analytics
		report.CreatedAt = doc.CreatedAt

		if err := tx.Model(&report).Select("*").Omit("created_at").Updates(&report).Error; err != nil {
			return err
		}
		out = report
		return nil
	})
	return out, err
}

// Ensure returns the current report, creating the placeholder if none exists.
func (s *SpecialReportStore) Ensure(ctx context.Context) (SpecialReport, error) {
	report, err := s.Get(ctx)
	if !errors.Is(err, ErrNotFound) {
		return report, err
	}
	if err := insertPlaceholder(s.db.WithContext(ctx)); err != nil {
		return report, err
	}
	return s.Get(ctx)
}

func (s *SpecialReportStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&SpecialReport{}).Count(&n).Error
	return n, err
}
