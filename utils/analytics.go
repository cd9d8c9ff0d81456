package utils

import (
	"math"
	"sort"
)

// KPIMetric compares a value against the preceding period.
type KPIMetric struct {
	CurrentValue  float64 `json:"current_value"`
	PreviousValue float64 `json:"previous_value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Trend         string  `json:"trend"` // up, down, stable
}

// ComputeKPI builds the period-over-period comparison for a metric.
func ComputeKPI(current, previous float64) KPIMetric {
	m := KPIMetric{
		CurrentValue:  current,
		PreviousValue: previous,
		Change:        current - previous,
		Trend:         "stable",
	}
	if previous != 0 {
		m.ChangePercent = math.Round((current-previous)/previous*10000) / 100
	}
	switch {
	case m.Change > 0:
		m.Trend = "up"
	case m.Change < 0:
		m.Trend = "down"
	}
	return m
}

// StatisticalSummary describes a sample of durations or amounts.
type StatisticalSummary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes basic statistics over a sample. An empty sample
// returns a zero summary.
func Summarize(values []float64) StatisticalSummary {
	s := StatisticalSummary{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	for _, v := range sorted {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.Median = sorted[mid]
	}

	var variance float64
	for _, v := range sorted {
		d := v - s.Mean
		variance += d * d
	}
	variance /= float64(len(sorted))
	s.StdDev = math.Sqrt(variance)
	return s
}
