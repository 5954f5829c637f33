package config

import (
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/salestrack/customer-registry/pkg/logger"
)

var config *Config

const defaultAllowedExtensions = "txt,pdf,png,jpg,jpeg,gif,doc,docx,xls,xlsx,ppt,pptx"

// Config holds every recognized option. Only this struct must be used to
// read configuration values; no direct env access elsewhere.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppName  string `env:"APP_NAME,default=customer_registry"`
	AppDebug bool   `env:"APP_DEBUG,default=true"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR,default=:8080"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	// UploadDir is where blobs live; created at startup when absent.
	UploadDir string `env:"UPLOAD_DIR,default=uploads"`

	// MaxUploadBytes caps a single upload. 16 MiB by default.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES,default=16777216"`

	// AllowedExtensions is a comma list of extensions accepted for upload.
	// The default is applied in Load: the env tag splits on commas, so a
	// comma-separated default cannot live in the tag itself.
	AllowedExtensions string `env:"ALLOWED_EXTENSIONS"`

	PromNamespace     string `env:"PROM_NAMESPACE,default=customer_registry"`
	MetricsListenAddr string `env:"METRICS_LISTEN_ADDR"`
	MetricsURI        string `env:"METRICS_URI,default=/metrics"`
}

// AllowedExtensionList splits AllowedExtensions into its entries.
func (c *Config) AllowedExtensionList() []string {
	parts := strings.Split(c.AllowedExtensions, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration file "+path)
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	if strings.TrimSpace(c.AllowedExtensions) == "" {
		c.AllowedExtensions = defaultAllowedExtensions
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
