package config

import (
	"errors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	Debug    bool   `env:"DEBUG" env-default:"false"`

	// Webhook endpoints of the external workflows. Any of them may be left
	// empty; the corresponding action then fails validation when invoked,
	// not at startup.
	RubricWebhookURL      string `env:"RUBRIC_WEBHOOK_URL"`
	GradingWebhookURL     string `env:"GRADING_WEBHOOK_URL"`
	SpreadsheetWebhookURL string `env:"SPREADSHEET_WEBHOOK_URL"`

	// Optional OAuth2 client-credentials protection for the webhooks.
	WebhookTokenURL     string        `env:"WEBHOOK_TOKEN_URL"`
	WebhookClientID     string        `env:"WEBHOOK_CLIENT_ID"`
	WebhookClientSecret string        `env:"WEBHOOK_CLIENT_SECRET"`
	WebhookTimeout      time.Duration `env:"WEBHOOK_TIMEOUT" env-default:"0s"`

	DBDriver string `env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN    string `env:"DB_DSN"`

	BlobBasePath   string `env:"BLOB_BASE_PATH" env-default:"./data"`
	ArchiveUploads bool   `env:"ARCHIVE_UPLOADS" env-default:"false"`

	EnableLocalAuth    bool   `env:"ENABLE_LOCAL_AUTH" env-default:"true"`
	AuthHMACSecret     string `env:"AUTH_HMAC_SECRET" env-default:"supersecret-dev-key"`
	InstructorUser     string `env:"INSTRUCTOR_USER" env-default:"instructor"`
	InstructorPassHash string `env:"INSTRUCTOR_PASS_HASH" env-default:"$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`

	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"33554432"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE" env-default:"12h"`
}

// New reads ./.env when present, otherwise the process environment.
func New() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}
