package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// ストレージ種別です。
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

const (
	defaultHTTPMaxBodyBytes   = 1 << 20
	defaultTranslatorTimeout  = 10 * time.Second
	defaultTranslatorBatch    = 25
	defaultTranslatorParallel = 4
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	HTTP         HTTPConfig         `yaml:"http"`
	Storage      StorageConfig      `yaml:"storage"`
	Database     DatabaseConfig     `yaml:"database"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Localization LocalizationConfig `yaml:"localization"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// HTTPConfig は JSON API サーバーに関する設定です。listen_addr が空なら起動しません。
type HTTPConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// StorageConfig は台帳データの保存先です。
type StorageConfig struct {
	Driver   string `yaml:"driver"`
	FilePath string `yaml:"file_path"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LedgerConfig は台帳エンジンの設定です。
type LedgerConfig struct {
	Timezone          string         `yaml:"timezone"`
	Location          *time.Location `yaml:"-"`
	PlaceholderPhotos []string       `yaml:"placeholder_photos"`
	SeedDemo          bool           `yaml:"seed_demo"`
}

// LocalizationConfig は UI 文言の言語設定です。
type LocalizationConfig struct {
	DefaultLanguage string           `yaml:"default_language"`
	Languages       []string         `yaml:"languages"`
	Translator      TranslatorConfig `yaml:"translator"`
}

// TranslatorConfig は翻訳 API の設定です。endpoint が空なら翻訳せず原文を表示します。
type TranslatorConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"-"`
	TimeoutRaw  string        `yaml:"timeout"`
	BatchSize   int           `yaml:"batch_size"`
	Concurrency int           `yaml:"concurrency"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
// ${VAR} 形式の記述は環境変数で展開します。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UsesPostgres は保存先が PostgreSQL かどうかを返します。
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == StoragePostgres
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("config: http.max_body_bytes must not be negative")
	}
	if c.HTTP.MaxBodyBytes == 0 {
		c.HTTP.MaxBodyBytes = defaultHTTPMaxBodyBytes
	}

	if err := c.Storage.validateAndNormalize(); err != nil {
		return err
	}
	if c.UsesPostgres() {
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	}
	if err := c.Ledger.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Localization.validateAndNormalize(); err != nil {
		return err
	}

	return nil
}

func (s *StorageConfig) validateAndNormalize() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case "":
		s.Driver = StorageMemory
	case StorageMemory, StoragePostgres:
	case StorageFile:
		if s.FilePath == "" {
			return fmt.Errorf("config: storage.file_path must be set for the file driver")
		}
	default:
		return fmt.Errorf("config: storage.driver %q is not supported", s.Driver)
	}
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LedgerConfig) validateAndNormalize() error {
	if l.Timezone == "" {
		l.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return fmt.Errorf("config: ledger.timezone: %w", err)
	}
	l.Location = loc

	photos := l.PlaceholderPhotos[:0]
	for _, p := range l.PlaceholderPhotos {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	l.PlaceholderPhotos = photos
	return nil
}

func (l *LocalizationConfig) validateAndNormalize() error {
	if l.DefaultLanguage == "" {
		l.DefaultLanguage = "en"
	}
	if len(l.Languages) == 0 {
		l.Languages = []string{"en"}
	}
	found := false
	for _, lang := range l.Languages {
		if lang == l.DefaultLanguage {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: localization.default_language %q must be listed in localization.languages", l.DefaultLanguage)
	}

	t := &l.Translator
	timeout, err := parseDurationAllowEmpty(t.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: localization.translator.timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultTranslatorTimeout
	}
	t.Timeout = timeout
	if t.BatchSize < 0 || t.Concurrency < 0 {
		return fmt.Errorf("config: localization.translator batch_size and concurrency must not be negative")
	}
	if t.BatchSize == 0 {
		t.BatchSize = defaultTranslatorBatch
	}
	if t.Concurrency == 0 {
		t.Concurrency = defaultTranslatorParallel
	}
	if t.Endpoint != "" {
		u, err := url.Parse(t.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: localization.translator.endpoint must be an absolute URL")
		}
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。認証情報はエスケープします。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
