// internal/domain/screening/record.go
package screening

import (
	"database/sql"
	"time"
)

// Subject holds the optional identifiers supplied with a screening. None of
// them are required for scoring.
type Subject struct {
	CitizenID    string
	FullName     string
	FacilityCode string
}

// Record is a persisted screening result.
// Corresponds to the 'screenings' table. ID and CreatedAt are assigned by the
// store at insert time; a record is immutable once stored.
type Record struct {
	ID             int64
	CitizenID      sql.NullString
	FullName       sql.NullString
	FacilityCode   sql.NullString
	StressScore    sql.NullInt64
	Q1             int
	Q2             int
	Q3             int
	Q8Total        int
	RiskLevel      RiskLevel
	Emergency      bool
	Recommendation string
	CreatedAt      time.Time
}

// BuildRecord assembles a classifier result plus subject metadata into a
// persistable record. Empty subject fields become NULLs.
func BuildRecord(subject Subject, assessment *RiskAssessment) *Record {
	rec := &Record{
		CitizenID:      nullString(subject.CitizenID),
		FullName:       nullString(subject.FullName),
		FacilityCode:   nullString(subject.FacilityCode),
		Q1:             assessment.Inputs.TwoQ.Q1,
		Q2:             assessment.Inputs.TwoQ.Q2,
		Q3:             assessment.Inputs.TwoQ.Q3,
		Q8Total:        assessment.Inputs.EightQTotal,
		RiskLevel:      assessment.Level,
		Emergency:      assessment.Emergency,
		Recommendation: assessment.Recommendation,
	}
	if assessment.Inputs.StressScore != nil {
		rec.StressScore = sql.NullInt64{Int64: int64(*assessment.Inputs.StressScore), Valid: true}
	}
	return rec
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
