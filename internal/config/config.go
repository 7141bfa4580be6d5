package config

import (
	"cleaning-route-service/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production test"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`

	// SolverTimeout bounds one /optimize_routes request end to end.
	SolverTimeout time.Duration `env:"SOLVER_TIMEOUT" envDefault:"120s" validate:"gt=0"`

	Server struct {
		Addr            string        `env:"ADDR" envDefault:":8080" validate:"required"`
		AdminAddr       string        `env:"ADMIN_ADDR" envDefault:":9090" validate:"required"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"150s"`
		IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	} `envPrefix:"SERVER_"`

	Database struct {
		URL             string        `env:"URL,required" validate:"required"`
		MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10" validate:"gte=0"`
		MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5" validate:"gte=0"`
		ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
		ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	} `envPrefix:"DATABASE_"`

	Roster struct {
		Path string `env:"PATH" envDefault:"data/drivers.yaml" validate:"required"`
	} `envPrefix:"ROSTER_"`

	Locations struct {
		CleaningBy           string   `env:"CLEANING_BY" envDefault:"自社" validate:"required"`
		PlacementType        string   `env:"PLACEMENT_TYPE" envDefault:"部屋" validate:"required"`
		PrefectureID         string   `env:"PREFECTURE_ID" envDefault:"13"`
		ExcludedNamePrefixes []string `env:"EXCLUDED_NAME_PREFIXES" envSeparator:"," envDefault:"stayme,Elm"`
		IncludeAttendedOnly  bool     `env:"INCLUDE_ATTENDED_ONLY" envDefault:"false"`
	} `envPrefix:"LOCATIONS_"`

	Optimizer struct {
		// Mode "stub" plans locally without calling the optimization API.
		Mode              string  `env:"MODE" envDefault:"remote" validate:"oneof=remote stub"`
		Parent            string  `env:"PARENT" validate:"required"`
		BaseURL           string  `env:"BASE_URL" envDefault:"https://routeoptimization.googleapis.com" validate:"url"`
		CredentialsFile   string  `env:"CREDENTIALS_FILE" validate:"required_if=Mode remote"`
		RequestsPerMinute float64 `env:"REQUESTS_PER_MINUTE" envDefault:"10" validate:"gte=0"`
		Burst             int     `env:"BURST" envDefault:"2" validate:"gte=0"`
	} `envPrefix:"OPTIMIZER_"`

	Policy struct {
		PlanningDate      string        `env:"PLANNING_DATE" envDefault:"2024-02-13" validate:"datetime=2006-01-02"`
		DepotLat          float64       `env:"DEPOT_LAT" envDefault:"35.836189" validate:"latitude"`
		DepotLng          float64       `env:"DEPOT_LNG" envDefault:"139.814385" validate:"longitude"`
		ServiceDuration   time.Duration `env:"SERVICE_DURATION" envDefault:"6m" validate:"gt=0"`
		ArrivalBuffer     time.Duration `env:"ARRIVAL_BUFFER" envDefault:"90m" validate:"gte=0"`
		DepartureBuffer   time.Duration `env:"DEPARTURE_BUFFER" envDefault:"60m" validate:"gte=0"`
		LoadUnitPerStop   int64         `env:"LOAD_UNIT_PER_STOP" envDefault:"1" validate:"gt=0"`
		LoadType          string        `env:"LOAD_TYPE" envDefault:"pallets" validate:"required"`
		VisitWindowStart  string        `env:"VISIT_WINDOW_START" envDefault:"2024-02-12T22:00:00Z" validate:"required"`
		VisitWindowEnd    string        `env:"VISIT_WINDOW_END" envDefault:"2024-02-13T12:00:00Z" validate:"required"`
		HorizonStart      string        `env:"HORIZON_START" envDefault:"2024-02-12T20:00:00Z" validate:"required"`
		HorizonEnd        string        `env:"HORIZON_END" envDefault:"2024-02-13T15:00:00Z" validate:"required"`
		CostDivisor       int64         `env:"COST_DIVISOR" envDefault:"3" validate:"gt=0"`
		ExactCostDivision bool          `env:"EXACT_COST_DIVISION" envDefault:"false"`
		TravelMode        string        `env:"TRAVEL_MODE" envDefault:"DRIVING" validate:"oneof=DRIVING WALKING"`
		StrictHorizon     bool          `env:"STRICT_HORIZON" envDefault:"false"`
	} `envPrefix:"POLICY_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// the first error reads better in startup logs
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if _, err := cfg.BuildPolicy(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BuildPolicy turns the POLICY_* settings into the domain policy.
func (c *Config) BuildPolicy() (domain.Policy, error) {
	p := c.Policy

	date, err := time.Parse("2006-01-02", p.PlanningDate)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("policy: planning date: %w", err)
	}

	visit, err := domain.BuildWindow(p.VisitWindowStart, p.VisitWindowEnd)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("policy: visit window: %w", err)
	}
	if !visit.Ordered() {
		return domain.Policy{}, fmt.Errorf("policy: visit window %s starts after it ends", visit)
	}

	horizon, err := domain.BuildWindow(p.HorizonStart, p.HorizonEnd)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("policy: horizon: %w", err)
	}
	if !horizon.Ordered() {
		return domain.Policy{}, fmt.Errorf("policy: horizon %s starts after it ends", horizon)
	}

	return domain.Policy{
		PlanningDate:           date,
		Depot:                  domain.Coordinates{Lat: p.DepotLat, Lng: p.DepotLng},
		DefaultServiceDuration: p.ServiceDuration,
		ArrivalBuffer:          p.ArrivalBuffer,
		DepartureBuffer:        p.DepartureBuffer,
		LoadUnitPerStop:        p.LoadUnitPerStop,
		LoadType:               p.LoadType,
		VisitWindow:            visit,
		Horizon:                horizon,
		CostDivisor:            p.CostDivisor,
		ExactCostDivision:      p.ExactCostDivision,
		TravelMode:             p.TravelMode,
		StrictHorizon:          p.StrictHorizon,
	}, nil
}
