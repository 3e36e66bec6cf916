package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"numlist/internal/dataset"

	"github.com/BurntSushi/toml"
)

const (
	EnvAddr        = "NUMLIST_ADDR"
	EnvCORSOrigins = "NUMLIST_CORS_ORIGINS"
	EnvDatasetSize = "NUMLIST_DATASET_SIZE"
	EnvServer      = "NUMLIST_SERVER"
	EnvStateDir    = "NUMLIST_STATE_DIR"
)

// Server holds runtime settings for `numlist serve`.
type Server struct {
	Addr        string
	DatasetSize int
	// CORSOrigins is the origin allow-list; empty allows any origin.
	CORSOrigins []string
	// StaticDir optionally serves a built web client with index.html fallback.
	StaticDir string
	Gzip      bool
	// SearchRate limits searching item queries per second; 0 disables the limit.
	SearchRate  float64
	SearchBurst int
}

// serverFile is the config.toml key mapping.
type serverFile struct {
	Addr        string   `toml:"addr"`
	DatasetSize int      `toml:"dataset_size"`
	CORSOrigins []string `toml:"cors_origins"`
	StaticDir   string   `toml:"static_dir"`
	Gzip        bool     `toml:"gzip"`
	SearchRate  float64  `toml:"search_rate"`
	SearchBurst int      `toml:"search_burst"`
}

func DefaultServer() Server {
	return Server{
		Addr:        "127.0.0.1:5000",
		DatasetSize: dataset.DefaultSize,
		Gzip:        true,
		SearchBurst: 10,
	}
}

// LoadServer returns defaults overlaid with the TOML file at path (if any) and
// then with environment overrides.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if strings.TrimSpace(path) != "" {
		if err := overlayServerFile(&cfg, path); err != nil {
			return Server{}, err
		}
	}
	if err := applyServerEnv(&cfg); err != nil {
		return Server{}, err
	}
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func overlayServerFile(cfg *Server, path string) error {
	var raw serverFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load server config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load server config: unknown key %q", undecoded[0].String())
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("dataset_size") {
		cfg.DatasetSize = raw.DatasetSize
	}
	if meta.IsDefined("cors_origins") {
		cfg.CORSOrigins = raw.CORSOrigins
	}
	if meta.IsDefined("static_dir") {
		cfg.StaticDir = strings.TrimSpace(raw.StaticDir)
	}
	if meta.IsDefined("gzip") {
		cfg.Gzip = raw.Gzip
	}
	if meta.IsDefined("search_rate") {
		cfg.SearchRate = raw.SearchRate
	}
	if meta.IsDefined("search_burst") {
		cfg.SearchBurst = raw.SearchBurst
	}
	return nil
}

func applyServerEnv(cfg *Server) error {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCORSOrigins)); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatasetSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDatasetSize, err)
		}
		cfg.DatasetSize = n
	}
	return nil
}

func (c Server) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if c.DatasetSize < 0 || int64(c.DatasetSize) > math.MaxInt32 {
		return fmt.Errorf("server config dataset_size out of range: %d", c.DatasetSize)
	}
	if c.SearchRate < 0 {
		return fmt.Errorf("server config search_rate must not be negative")
	}
	if c.SearchRate > 0 && c.SearchBurst < 1 {
		return fmt.Errorf("server config search_burst must be at least 1 when search_rate is set")
	}
	return nil
}

// normalizeOrigins trims entries and drops blanks and trailing slashes.
func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Client holds settings for the TUI and the scriptable API commands.
type Client struct {
	ServerURL string
	StateDir  string
	LogFile   string
}

func DefaultClient() Client {
	cfg := Client{ServerURL: "http://127.0.0.1:5000"}
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateDir)); v != "" {
		cfg.StateDir = v
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.StateDir = filepath.Join(home, ".numlist")
	}
	return cfg
}
