package models

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Port string
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
}

type ZonesConfig struct {
	GeoJSON string
}

type AuthConfig struct {
	Secret string
}

type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Weather  WeatherConfig
	Zones    ZonesConfig
	Auth     AuthConfig
}
