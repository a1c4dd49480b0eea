package domain

import "fmt"

type Metric string

const (
	MetricStrikes      Metric = "strike_differential"
	MetricPoints       Metric = "point_differential"
	MetricCapot        Metric = "capot_differential"
	MetricShutout      Metric = "shutout_differential"
	MetricCounterCapot Metric = "counter_capot_differential"
)

var Metrics = []Metric{
	MetricStrikes,
	MetricPoints,
	MetricCapot,
	MetricShutout,
	MetricCounterCapot,
}

// Rare reports whether a point where neither team recorded the sub-event
// has no value at all rather than a zero delta.
func (m Metric) Rare() bool {
	switch m {
	case MetricCapot, MetricShutout, MetricCounterCapot:
		return true
	}
	return false
}

func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// MetricSeries holds one cumulative value per timeline point; nil means the
// player has no data point there.
type MetricSeries struct {
	PlayerID string     `json:"playerId"`
	Values   []*float64 `json:"values"`
}

type SeriesDocument struct {
	Scope  string         `json:"scope"`
	Metric Metric         `json:"metric"`
	Labels []string       `json:"labels"`
	Series []MetricSeries `json:"series"`
}
