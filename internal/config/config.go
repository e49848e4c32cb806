package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Driver selects the persistence backend.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverMongo  Driver = "mongo"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver Driver
		Path   string // sqlite file path
		URI    string // mongodb connection string
		Name   string // mongodb database name
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		ProtectArtists  bool
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
// The listen address, token secret and the connection setting for the selected
// database driver are mandatory; Load fails rather than fall back to defaults.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// required keys get empty defaults so AutomaticEnv can fill them;
	// validate rejects the empties
	v.SetDefault("server.addr", "")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("database.path", "")
	v.SetDefault("database.uri", "")

	v.SetDefault("database.driver", string(DriverSQLite))
	v.SetDefault("database.name", "artistadmin")
	v.SetDefault("auth.tokenttlminutes", 60)
	// artist routes ship open to match the original dashboard; see DESIGN.md
	v.SetDefault("auth.protectartists", false)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "artist-exports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server addr is required (ADMIN_SERVER_ADDR)")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth jwt secret is required (ADMIN_AUTH_JWTSECRET)")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database path is required (ADMIN_DATABASE_PATH)")
		}
	case DriverMongo:
		if strings.TrimSpace(c.Database.URI) == "" {
			return fmt.Errorf("database uri is required (ADMIN_DATABASE_URI)")
		}
		if strings.TrimSpace(c.Database.Name) == "" {
			return fmt.Errorf("database name is required (ADMIN_DATABASE_NAME)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}
