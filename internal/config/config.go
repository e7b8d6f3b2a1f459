package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string `env:"DATABASE_URI"`
	UploadDir      string `env:"UPLOAD_DIR"`
	StoreFilesInDB bool   `env:"STORE_FILES_IN_DB"`
	Debug          bool   `env:"DEBUG"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL   string `env:"-"`
	SessionFile string `env:"SESSION_FILE"`
	Version     bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// envDefault для bool не спасает от пустого значения ("" не парсится),
	// поэтому дефолт true выставляется явно, когда переменная не задана.
	if os.Getenv("STORE_FILES_IN_DB") == "" {
		cfg.StoreFilesInDB = true
	}

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к sqlite-файлу)")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "корневая папка для загруженных файлов")
	flag.BoolVar(&cfg.StoreFilesInDB, "store-files-in-db", cfg.StoreFilesInDB, "дополнительно сохранять файлы как BLOB в БД")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "подробное (development) логирование")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the GrandLine server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "path to the client session file")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "grandline.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.SessionFile == "" {
		home, _ := os.UserHomeDir()
		cfg.SessionFile = filepath.Join(home, ".gl_session")
	}

	return cfg
}
