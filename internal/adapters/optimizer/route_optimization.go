package optimizer

import (
	"bytes"
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/metrics"
	"cleaning-route-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "https://routeoptimization.googleapis.com"
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerMinute bounds solver calls made by this process. Zero disables the guard.
	RequestsPerMinute float64
	Burst             int

	TravelMode string
	LoadType   string
}

// RouteOptimizationClient submits routing problems to the Route Optimization
// REST API and maps the solved routes back to tours.
type RouteOptimizationClient struct {
	session    *http.Client
	baseURL    string
	limiter    *rate.Limiter
	travelMode string
	loadType   string
}

func NewRouteOptimizationClient(session *http.Client, opts Options) (*RouteOptimizationClient, error) {
	if session == nil {
		return nil, errors.New("route optimization client: http client must be non-nil")
	}
	if strings.TrimSpace(opts.LoadType) == "" {
		return nil, errors.New("route optimization client: load type must be non-empty")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	travelMode := strings.TrimSpace(opts.TravelMode)
	if travelMode == "" {
		travelMode = "DRIVING"
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerMinute/60), burst)
	}

	return &RouteOptimizationClient{
		session:    session,
		baseURL:    baseURL,
		limiter:    limiter,
		travelMode: travelMode,
		loadType:   opts.LoadType,
	}, nil
}

// NewRouteOptimizationClientFromCredentials authenticates with a service
// account key (JSON) and builds a client on an OAuth2 transport.
func NewRouteOptimizationClientFromCredentials(
	ctx context.Context,
	credentialsJSON []byte,
	opts Options,
) (*RouteOptimizationClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("route optimization client: credentials: %w", err)
	}

	session := oauth2.NewClient(ctx, creds.TokenSource)
	session.Timeout = opts.Timeout

	return NewRouteOptimizationClient(session, opts)
}

func (c *RouteOptimizationClient) OptimizeTours(
	ctx context.Context,
	parent string,
	problem *domain.RoutingProblem,
) (_ []domain.Tour, err error) {
	defer obs.Time(ctx, "optimizer.OptimizeTours")(&err)

	parent = strings.Trim(strings.TrimSpace(parent), "/")
	if parent == "" {
		return nil, errors.New("optimize tours: parent must be non-empty")
	}
	if problem == nil {
		return nil, errors.New("optimize tours: problem must be non-nil")
	}

	if c.limiter != nil && !c.limiter.Allow() {
		metrics.SolverCalls.WithLabelValues("throttled").Inc()
		return nil, fmt.Errorf("optimize tours: %w: %w", domain.ErrUpstreamFailure, domain.ErrSolverThrottled)
	}

	payload, err := json.Marshal(encodeModel(problem, c.travelMode, c.loadType))
	if err != nil {
		return nil, fmt.Errorf("optimize tours: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/%s:optimizeTours", c.baseURL, parent)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("optimize tours: %w", err)
	}

	started := time.Now()
	resp, err := c.do(req)
	metrics.SolverDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.SolverCalls.WithLabelValues("upstream_error").Inc()
		return nil, fmt.Errorf("optimize tours: %w: %w", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	var decoded optimizeToursResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.SolverCalls.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("optimize tours: decode response: %w: %v", domain.ErrMalformedSolverOutput, err)
	}

	tours, err := decodeTours(problem, decoded)
	if err != nil {
		metrics.SolverCalls.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("optimize tours: %w: %v", domain.ErrMalformedSolverOutput, err)
	}

	metrics.SolverCalls.WithLabelValues("ok").Inc()
	return tours, nil
}
