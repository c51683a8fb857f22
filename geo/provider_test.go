package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"

	"github.com/anyang-health/triage-app/schema"
)

func TestStaticProviderGranted(t *testing.T) {
	p := NewStaticProvider(seoulCityHall, true)

	granted, err := p.RequestPermission(context.Background())
	assert.NoError(t, err)
	assert.True(t, granted)

	fix, err := p.CurrentCoordinate(context.Background(), Options{})
	assert.NoError(t, err)
	assert.Equal(t, seoulCityHall, fix)
}

func TestStaticProviderDenied(t *testing.T) {
	p := NewStaticProvider(seoulCityHall, false)

	granted, err := p.RequestPermission(context.Background())
	assert.NoError(t, err)
	assert.False(t, granted)

	_, err = p.CurrentCoordinate(context.Background(), Options{})
	assert.Equal(t, ErrPermissionDenied, err)
}

func TestStaticProviderInvalidCoordinate(t *testing.T) {
	p := NewStaticProvider(schema.Coordinate{}, true)

	_, err := p.CurrentCoordinate(context.Background(), Options{})
	assert.Equal(t, ErrUnavailable, err)
}

func TestGoogleProviderWithoutConsentNeverTouchesTheNetwork(t *testing.T) {
	// A nil maps client would panic on use; denied consent must return
	// before any call is attempted.
	p := NewGoogleProvider(nil, false)

	granted, err := p.RequestPermission(context.Background())
	assert.NoError(t, err)
	assert.False(t, granted)

	_, err = p.CurrentCoordinate(context.Background(), Options{Timeout: time.Second})
	assert.Equal(t, ErrPermissionDenied, err)
}

func TestGoogleProviderSlowBackendMapsToErrTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"location":{"lat":37.5665,"lng":126.978},"accuracy":20}`))
	}))
	defer server.Close()

	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(server.URL))
	assert.NoError(t, err)

	p := NewGoogleProvider(client, true)
	_, err = p.CurrentCoordinate(context.Background(), Options{
		Timeout: 50 * time.Millisecond,
	})
	assert.Equal(t, ErrTimeout, err)
}

func TestGoogleProviderServesCachedFixWithinMaxAge(t *testing.T) {
	p := NewGoogleProvider(nil, true)
	p.lastFix = anyang
	p.lastFixAt = time.Now()

	fix, err := p.CurrentCoordinate(context.Background(), Options{
		Timeout: time.Second,
		MaxAge:  10 * time.Second,
	})
	assert.NoError(t, err)
	assert.Equal(t, anyang, fix)
}
