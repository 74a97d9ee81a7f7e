package routing

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/platform/obs"
	"centre-scheduler-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultOSRMURL is the public OSRM demo server.
const DefaultOSRMURL = "https://router.project-osrm.org"

// maxRoutePoints is the most coordinates one route request may carry.
const maxRoutePoints = 100

// ErrNoRoute is returned when the routing service finds no path.
var ErrNoRoute = errors.New("no road route found")

// OSRMRoadProvider implements ports.RoadRouteProvider against the OSRM
// route service.
//
// It coordinates:
//   - Optional route caching keyed by rounded coordinates
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMRoadProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.RouteCache
	backoff time.Duration
	logger  zerolog.Logger
}

type osrmRouteResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// NewOSRMRoadProvider builds a provider for baseURL. cache may be nil.
func NewOSRMRoadProvider(baseURL string, cache ports.RouteCache, logger zerolog.Logger) (*OSRMRoadProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("osrm base url is empty")
	}

	return &OSRMRoadProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		profile: "driving",
		cache:   cache,
		backoff: initialBackoff,
		logger:  logger.With().Str("component", "osrm").Logger(),
	}, nil
}

// GetRoadRoute returns the driving route through points in order.
func (o *OSRMRoadProvider) GetRoadRoute(
	ctx context.Context,
	points []domain.Coordinates,
) (_ domain.RoadRoute, err error) {
	defer obs.Time(ctx, "osrm.GetRoadRoute")(&err)

	if len(points) < 2 {
		return domain.RoadRoute{}, errors.New("get road route: at least two points are required")
	}
	if len(points) > maxRoutePoints {
		return domain.RoadRoute{}, fmt.Errorf("get road route: %d points exceeds %d", len(points), maxRoutePoints)
	}
	for i, p := range points {
		if !validCoordinate(p) {
			return domain.RoadRoute{}, fmt.Errorf("get road route: invalid coordinate at index %d: (%f,%f)", i, p.Lat, p.Lng)
		}
	}

	key := RouteKey(o.profile, points)

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			// A broken cache must not block routing.
			o.logger.Warn().Err(err).Str("key", key).Msg("route cache read failed")
		} else if ok {
			obs.RoadRoutesTotal.WithLabelValues("cached").Inc()
			return cached, nil
		}
	}

	o.logger.Debug().Int("points", len(points)).Msg("route cache miss")

	route, err := o.fetchRoute(ctx, points)
	if err != nil {
		return domain.RoadRoute{}, fmt.Errorf("get road route: %w", err)
	}
	obs.RoadRoutesTotal.WithLabelValues("fetched").Inc()

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, route); err != nil {
			o.logger.Warn().Err(err).Str("key", key).Msg("route cache write failed")
		}
	}

	return route, nil
}

func (o *OSRMRoadProvider) fetchRoute(ctx context.Context, points []domain.Coordinates) (domain.RoadRoute, error) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%.6f,%.6f", p.Lng, p.Lat)
	}

	url := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=geojson",
		o.baseURL, o.profile, strings.Join(coords, ";"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, url)
	})
	if err != nil {
		return domain.RoadRoute{}, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close()

	var body osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RoadRoute{}, fmt.Errorf("decode osrm response: %w", err)
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return domain.RoadRoute{}, fmt.Errorf("osrm code %q %s: %w", body.Code, body.Message, ErrNoRoute)
	}

	r := body.Routes[0]
	return domain.RoadRoute{
		DistanceMeters:  int(math.Round(r.Distance)),
		DurationSeconds: int(math.Round(r.Duration)),
		Geometry:        r.Geometry.Coordinates,
	}, nil
}

func validCoordinate(c domain.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lng)
}

// RouteKey builds a cache key from the profile and coordinates rounded to
// 5 decimal places (~1m).
func RouteKey(profile string, points []domain.Coordinates) string {
	var b strings.Builder
	b.WriteString(profile)
	for _, p := range points {
		fmt.Fprintf(&b, "|%.5f,%.5f", p.Lat, p.Lng)
	}
	return b.String()
}
