// Package forecast fits a linear trend to recent temperatures and
// extrapolates a short horizon ahead. The prediction is advisory only:
// the controller consults it when the raw reading sits inside the
// hysteresis dead band, and a raw band crossing always wins.
package forecast

import (
	"sync"
	"time"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// Defaults for the trend window and prediction horizon.
const (
	DefaultWindow  = 10
	DefaultHorizon = 30 * time.Second

	// minPoints is the fewest observations before a prediction is
	// offered.
	minPoints = 3
)

type point struct {
	at   time.Time
	temp float64
}

// Predictor holds a sliding window of temperature observations. Safe for
// concurrent use: the control loop observes while status readers may
// query.
type Predictor struct {
	mu      sync.Mutex
	window  int
	horizon time.Duration
	points  []point
}

// New creates a Predictor. window <= 0 or horizon <= 0 select the
// defaults.
func New(window int, horizon time.Duration) *Predictor {
	if window <= 0 {
		window = DefaultWindow
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Predictor{window: window, horizon: horizon}
}

// Observe adds one sample to the window, evicting the oldest when full.
func (p *Predictor) Observe(s telemetry.Sample) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.points = append(p.points, point{at: s.ObservedAt, temp: s.Temperature})
	if len(p.points) > p.window {
		p.points = p.points[1:]
	}
}

// Predict extrapolates the temperature expected one horizon after at
// using an ordinary least squares fit over the window. ok is false until
// enough observations have accumulated or while the fit is degenerate
// (all observations at the same instant).
func (p *Predictor) Predict(at time.Time) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.points) < minPoints {
		return 0, false
	}

	// Seconds relative to the first point keep the accumulators small.
	origin := p.points[0].at
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(p.points))
	for _, pt := range p.points {
		x := pt.at.Sub(origin).Seconds()
		sumX += x
		sumY += pt.temp
		sumXY += x * pt.temp
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	x := at.Add(p.horizon).Sub(origin).Seconds()
	return intercept + slope*x, true
}
