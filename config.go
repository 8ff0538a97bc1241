package input

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/input/core/config"
)

// Config provides environment-based configuration for the input manager.
type Config struct {
	Sanitize       bool   `env:"INPUT_SANITIZE" envDefault:"true"`
	ClearSources   bool   `env:"INPUT_CLEAR_SOURCES" envDefault:"false"`
	RequestOrder   string `env:"INPUT_REQUEST_ORDER" envDefault:""`
	VariablesOrder string `env:"INPUT_VARIABLES_ORDER" envDefault:"EGPCS"`
	MaxMemory      int64  `env:"INPUT_MAX_MEMORY" envDefault:"10485760"`
	MaxFileSize    int64  `env:"INPUT_MAX_FILE_SIZE" envDefault:"0"`
	UploadDir      string `env:"INPUT_UPLOAD_DIR" envDefault:""`

	// Store receives accepted uploads and takes precedence over UploadDir.
	// It is set in code, e.g. to an s3.Store.
	Store UploadStore
}

// DefaultConfig returns the configuration used when nothing is set in the
// environment.
func DefaultConfig() Config {
	return Config{
		Sanitize:       true,
		ClearSources:   false,
		RequestOrder:   DefaultRequestOrder,
		VariablesOrder: DefaultVariablesOrder,
		MaxMemory:      DefaultMaxMemory,
	}
}

// LoadConfig reads Config from the environment (and .env, when present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the configuration into Manager options.
func (c Config) Options() []Option {
	return []Option{
		WithSanitize(c.Sanitize),
		WithClearSources(c.ClearSources),
		WithRequestOrder(c.RequestOrder),
		WithVariablesOrder(c.VariablesOrder),
	}
}

// SourceOptions converts the configuration into FromRequest options.
func (c Config) SourceOptions() []SourceOption {
	opts := make([]SourceOption, 0, 4)
	if c.MaxMemory > 0 {
		opts = append(opts, WithMaxMemory(c.MaxMemory))
	}
	if c.MaxFileSize > 0 {
		opts = append(opts, WithMaxFileSize(c.MaxFileSize))
	}
	if c.UploadDir != "" {
		opts = append(opts, WithUploadDir(c.UploadDir))
	}
	if c.Store != nil {
		opts = append(opts, WithUploadStore(c.Store))
	}
	return opts
}

// NewFromRequest captures r with cfg applied. Options in opts override the
// ones derived from cfg.
//
// A malformed body returns a nil Manager and an error wrapping
// ErrFailedToParseForm. Upload store failures return a usable Manager
// together with an error wrapping ErrFailedToStoreUpload.
//
// With ClearSources set, the parsed form caches on r are dropped after the
// capture so later r.FormValue calls cannot see body parameters.
func NewFromRequest(r *http.Request, cfg Config, opts ...Option) (*Manager, error) {
	src, err := FromRequest(r, cfg.SourceOptions()...)
	if err != nil && errors.Is(err, ErrFailedToParseForm) {
		return nil, err
	}

	m := New(src, append(cfg.Options(), opts...)...)

	if m.clearSources {
		r.Form = nil
		r.PostForm = nil
	}
	return m, err
}
