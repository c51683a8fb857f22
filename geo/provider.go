package geo

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/anyang-health/triage-app/schema"
)

const (
	logPrefix      = "geo"
	defaultTimeout = 15 * time.Second
)

var (
	ErrPermissionDenied = fmt.Errorf("location permission denied")
	ErrTimeout          = fmt.Errorf("location request timed out")
	ErrUnavailable      = fmt.Errorf("current position unavailable")
)

// Options bound a single position lookup. A zero Timeout falls back to
// the package default; the lookup never blocks past it.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxAge       time.Duration
}

// Provider - interface for obtaining the device position
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentCoordinate(ctx context.Context, opts Options) (schema.Coordinate, error)
}

// GoogleProvider resolves the current position through the Google
// Geolocation API. A position fix is cached in memory and served again
// while younger than the caller's MaxAge.
type GoogleProvider struct {
	client  *maps.Client
	consent bool

	mu        sync.Mutex
	lastFix   schema.Coordinate
	lastFixAt time.Time
}

func NewGoogleProvider(client *maps.Client, consent bool) *GoogleProvider {
	return &GoogleProvider{
		client:  client,
		consent: consent,
	}
}

func (g *GoogleProvider) RequestPermission(ctx context.Context) (bool, error) {
	return g.consent, nil
}

func (g *GoogleProvider) CurrentCoordinate(ctx context.Context, opts Options) (schema.Coordinate, error) {
	if !g.consent {
		return schema.Coordinate{}, ErrPermissionDenied
	}

	g.mu.Lock()
	if opts.MaxAge > 0 && !g.lastFixAt.IsZero() && time.Since(g.lastFixAt) <= opts.MaxAge {
		fix := g.lastFix
		g.mu.Unlock()
		return fix, nil
	}
	g.mu.Unlock()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{
		ConsiderIP: true,
	})
	if nil != err {
		if ctx.Err() == context.DeadlineExceeded {
			return schema.Coordinate{}, ErrTimeout
		}
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("geolocate current position")
		return schema.Coordinate{}, ErrUnavailable
	}

	fix := schema.Coordinate{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
	}
	if !fix.Valid() {
		return schema.Coordinate{}, ErrUnavailable
	}

	if opts.HighAccuracy {
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"accuracy": resp.Accuracy,
		}).Debug("position fix accuracy")
	}

	g.mu.Lock()
	g.lastFix = fix
	g.lastFixAt = time.Now()
	g.mu.Unlock()

	return fix, nil
}

// StaticProvider always answers with a fixed coordinate. It backs the
// configured fallback position and test setups.
type StaticProvider struct {
	Coordinate schema.Coordinate
	Granted    bool
}

func NewStaticProvider(c schema.Coordinate, granted bool) *StaticProvider {
	return &StaticProvider{
		Coordinate: c,
		Granted:    granted,
	}
}

func (s *StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	return s.Granted, nil
}

func (s *StaticProvider) CurrentCoordinate(ctx context.Context, opts Options) (schema.Coordinate, error) {
	if !s.Granted {
		return schema.Coordinate{}, ErrPermissionDenied
	}
	if !s.Coordinate.Valid() {
		return schema.Coordinate{}, ErrUnavailable
	}
	return s.Coordinate, nil
}
