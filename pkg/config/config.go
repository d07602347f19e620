package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the engine.
	EnvPrefix = "resale"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "RESALE_DB_DSN"
	EnvDBHost = "RESALE_DB_HOST"
	EnvDBUser = "RESALE_DB_USER"
	EnvDBName = "RESALE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Search       SearchConfig
	Valuation    ValuationConfig
	Profit       ProfitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RESALE_APP_ENV" required:"true"`
	Port         string `envconfig:"RESALE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RESALE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESALE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RESALE_DB_DSN"`
	Driver string `envconfig:"RESALE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RESALE_DB_HOST"`
	LegacyPort     int    `envconfig:"RESALE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RESALE_DB_USER"`
	LegacyPassword string `envconfig:"RESALE_DB_PASSWORD"`
	LegacyName     string `envconfig:"RESALE_DB_NAME"`
	LegacySSLMode  string `envconfig:"RESALE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESALE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESALE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESALE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESALE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESALE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RESALE_REDIS_ADDR"`
	Password     string        `envconfig:"RESALE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESALE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESALE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESALE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESALE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESALE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESALE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SearchConfig points at the comparable-sales marketplace API.
type SearchConfig struct {
	BaseURL string        `envconfig:"RESALE_SEARCH_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"RESALE_SEARCH_API_KEY"`
	Timeout time.Duration `envconfig:"RESALE_SEARCH_TIMEOUT" default:"10s"`
}

// ValuationConfig tunes the cache-fronted component valuer.
type ValuationConfig struct {
	CacheTTL             time.Duration `envconfig:"RESALE_VALUATION_CACHE_TTL" default:"24h"`
	StaleRetention       int           `envconfig:"RESALE_VALUATION_STALE_RETENTION" default:"4"`
	LockTTL              time.Duration `envconfig:"RESALE_VALUATION_LOCK_TTL" default:"30s"`
	LookupTimeout        time.Duration `envconfig:"RESALE_VALUATION_LOOKUP_TIMEOUT" default:"10s"`
	MaxFilteredItems     int           `envconfig:"RESALE_VALUATION_MAX_FILTERED_ITEMS" default:"50"`
	MaxConcurrentLookups int           `envconfig:"RESALE_VALUATION_MAX_CONCURRENT_LOOKUPS" default:"3"`
}

// StaleWindow is the physical retention applied to cache writes so expired
// entries stay readable for the stale-fallback path.
func (v ValuationConfig) StaleWindow() time.Duration {
	retention := v.StaleRetention
	if retention < 1 {
		retention = 1
	}
	return v.CacheTTL * time.Duration(retention)
}

// ProfitConfig carries the fixed cost model and the buy policy. The policy
// defaults (2.0x multiplier, $100 net floor) are product constants; changing
// them is a product decision, not a tuning knob.
type ProfitConfig struct {
	DisassemblyLaborUSD float64 `envconfig:"RESALE_PROFIT_DISASSEMBLY_LABOR_USD" default:"25"`
	PackagingUSD        float64 `envconfig:"RESALE_PROFIT_PACKAGING_USD" default:"10"`
	ShippingRate        float64 `envconfig:"RESALE_PROFIT_SHIPPING_RATE" default:"0.08"`
	MarketplaceFeeRate  float64 `envconfig:"RESALE_PROFIT_MARKETPLACE_FEE_RATE" default:"0.13"`
	BuyROIMultiplier    float64 `envconfig:"RESALE_PROFIT_BUY_ROI_MULTIPLIER" default:"2.0"`
	BuyNetProfitFloor   float64 `envconfig:"RESALE_PROFIT_BUY_NET_PROFIT_FLOOR" default:"100"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RESALE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RESALE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
