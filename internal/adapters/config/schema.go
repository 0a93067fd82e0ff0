package config

// Turretfile represents the structure of the optional turret.yaml configuration file.
// Every field is optional; unset fields keep their defaults and environment variables
// override whatever the file sets.
type Turretfile struct {
	Server   ServerDTO            `yaml:"server"`
	Session  string               `yaml:"session"`
	Platform string               `yaml:"platform"`
	Cache    CacheDTO             `yaml:"cache"`
	Log      LogDTO               `yaml:"log"`
	Clients  map[string]ClientDTO `yaml:"clients"`
}

// ServerDTO describes the resolver service endpoint.
type ServerDTO struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	TimeoutMs int    `yaml:"timeoutMs"`
	Retries   int    `yaml:"retries"`
}

// CacheDTO configures the in-memory and on-disk cache.
type CacheDTO struct {
	Queries *bool  `yaml:"queries"`
	Dir     string `yaml:"dir"`
}

// LogDTO configures logging.
type LogDTO struct {
	Enabled *bool  `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// ClientDTO holds the per-client settings, keyed by client id.
type ClientDTO struct {
	CacheToDisk       *bool  `yaml:"cacheToDisk"`
	CacheLocation     string `yaml:"cacheLocation"`
	AllowLiveResolves *bool  `yaml:"allowLiveResolves"`
	DefaultPath       string `yaml:"defaultPath"`
}
