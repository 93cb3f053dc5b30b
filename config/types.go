package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// AynaConfig contains AYNA API client and cache configuration
type AynaConfig struct {
	BaseURLs               []string `yaml:"baseURLs" validate:"omitempty,dive,url"`
	TimeoutMS              int      `yaml:"timeoutMS" validate:"gte=0"`
	ListCacheTTLSeconds    int      `yaml:"listCacheTTLSeconds" validate:"gte=0"`
	DetailsCacheTTLSeconds int      `yaml:"detailsCacheTTLSeconds" validate:"gte=0"`
	DetailsBatchSize       int      `yaml:"detailsBatchSize" validate:"gte=0"`
	SnapshotDir            string   `yaml:"snapshotDir"`
}

// AnalyticsConfig contains the check-in CSV source configuration
type AnalyticsConfig struct {
	CSVURL string `yaml:"csvURL" validate:"omitempty,url"`
}

// RefreshConfig contains the background route refresh configuration
type RefreshConfig struct {
	RouteIntervalMS int `yaml:"routeIntervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server       ServerConfig    `yaml:"server" validate:"required"`
	Ayna         AynaConfig      `yaml:"ayna"`
	Analytics    AnalyticsConfig `yaml:"analytics"`
	Refresh      RefreshConfig   `yaml:"refresh"`
	Language     string          `yaml:"language" validate:"omitempty,oneof=en az ru"`
	LanguageFile string          `yaml:"languageFile"`
}
