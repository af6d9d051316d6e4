package domain

import (
	"time"

	"github.com/google/uuid"
)

// MetricType is the kind of body or performance measurement recorded.
type MetricType string

const (
	MetricWeight      MetricType = "weight"
	MetricBodyFat     MetricType = "body_fat"
	MetricMeasurement MetricType = "measurement"
	MetricStrength    MetricType = "strength"
	MetricEndurance   MetricType = "endurance"
)

func (t MetricType) IsValid() bool {
	switch t {
	case MetricWeight, MetricBodyFat, MetricMeasurement, MetricStrength, MetricEndurance:
		return true
	}
	return false
}

// DefaultUnit is used when a measurement is recorded without one.
func (t MetricType) DefaultUnit() string {
	switch t {
	case MetricWeight, MetricStrength:
		return "kg"
	case MetricBodyFat:
		return "%"
	case MetricMeasurement:
		return "cm"
	case MetricEndurance:
		return "min"
	}
	return ""
}

// Progress is a single dated measurement for a user.
type Progress struct {
	ID         string     `bson:"_id" json:"id"`
	UserID     string     `bson:"user_id" json:"userId"`
	Date       time.Time  `bson:"date" json:"date"`
	MetricType MetricType `bson:"metric_type" json:"metricType"`
	Value      float64    `bson:"value" json:"value"`
	Unit       string     `bson:"unit" json:"unit"`
	Notes      string     `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoKey   string     `bson:"photo_key,omitempty" json:"-"` // Object storage key of the progress photo
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
}

// NewProgress validates the measurement and fills in the unit when missing.
func NewProgress(userID string, date time.Time, metric MetricType, value float64, unit, notes string) (*Progress, error) {
	p := &Progress{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: nowFunc(),
	}
	if err := p.Revise(date, metric, value, unit, notes); err != nil {
		return nil, err
	}
	return p, nil
}

// Revise replaces the measurement fields after validating them.
func (p *Progress) Revise(date time.Time, metric MetricType, value float64, unit, notes string) error {
	if !metric.IsValid() {
		return newValidationError("metric_type", "unknown metric type %q", metric)
	}
	if value < 0 {
		return newValidationError("value", "value must be non-negative")
	}
	if date.IsZero() {
		return newValidationError("date", "date is required")
	}
	if unit == "" {
		unit = metric.DefaultUnit()
	}
	p.Date = date.UTC()
	p.MetricType = metric
	p.Value = value
	p.Unit = unit
	p.Notes = notes
	return nil
}

// PhotoObjectKey is the storage key a progress photo is uploaded under.
func (p *Progress) PhotoObjectKey(ext string) string {
	return "progress/" + p.UserID + "/" + p.ID + ext
}

// ProgressSummary aggregates a series of measurements of one metric.
type ProgressSummary struct {
	MetricType MetricType `json:"metricType"`
	Count      int        `json:"count"`
	Min        float64    `json:"min"`
	Max        float64    `json:"max"`
	Average    float64    `json:"average"`
	First      float64    `json:"first"`
	Latest     float64    `json:"latest"`
	Change     float64    `json:"change"`
	Unit       string     `json:"unit,omitempty"`
}

// SummarizeProgress computes the summary of entries, which need not be
// ordered. Entries of other metrics are ignored.
func SummarizeProgress(metric MetricType, entries []Progress) ProgressSummary {
	s := ProgressSummary{MetricType: metric}
	var (
		sum           float64
		first, latest *Progress
	)
	for i := range entries {
		e := &entries[i]
		if e.MetricType != metric {
			continue
		}
		if s.Count == 0 {
			s.Min, s.Max = e.Value, e.Value
		}
		s.Min = min(s.Min, e.Value)
		s.Max = max(s.Max, e.Value)
		sum += e.Value
		s.Count++
		if first == nil || e.Date.Before(first.Date) {
			first = e
		}
		if latest == nil || !e.Date.Before(latest.Date) {
			latest = e
		}
	}
	if s.Count == 0 {
		return s
	}
	s.Average = sum / float64(s.Count)
	s.First = first.Value
	s.Latest = latest.Value
	s.Change = latest.Value - first.Value
	s.Unit = latest.Unit
	return s
}
