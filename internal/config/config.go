package config

import (
	"flag"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypePostgres DBType = "postgres"
	DBTypeInMemory DBType = "inMemory"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultSQLitePath    = "geolink.db"
	defaultStoreTimeout  = 2 * time.Second
	defaultRecordTimeout = 500 * time.Millisecond
	defaultCertPath      = "cert.pem"
	defaultKeyPath       = "key.pem"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string
	// Публичный адрес сервиса, используется в выводе linkctl
	BaseURL *url.URL
	// Тип хранилища
	DBType      DBType
	SQLitePath  string
	DatabaseDSN string
	// Адрес redis для счетчиков исходов. Пустой адрес отключает приемник
	RedisAddr string
	// Ограничение на каждое обращение к хранилищу ссылок при проверке
	StoreTimeout time.Duration
	// Ограничение на запись события доступа
	RecordTimeout time.Duration
	EnableHTTPS   bool
	TLSCertPath   string
	TLSKeyPath    string
	LogLevel      string
}

// envConfig значения из окружения. Незаданная переменная остается нулевой и уступает флагу.
type envConfig struct {
	ServerAddress string        `env:"SERVER_ADDRESS"`
	BaseURL       *url.URL      `env:"BASE_URL"`
	DBType        DBType        `env:"DB_TYPE"`
	SQLitePath    string        `env:"SQLITE_PATH"`
	DatabaseDSN   string        `env:"DATABASE_DSN"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT"`
	RecordTimeout time.Duration `env:"RECORD_TIMEOUT"`
	EnableHTTPS   *bool         `env:"ENABLE_HTTPS"`
	TLSCertPath   string        `env:"TLS_CERT_PATH"`
	TLSKeyPath    string        `env:"TLS_KEY_PATH"`
	LogLevel      string        `env:"LOG_LEVEL"`
}

// LoadConfig читает конфигурацию из флагов командной строки и окружения. Окружение приоритетнее.
//
// Возвращает:
//   - *Config: проверенная конфигурация
//   - error: ошибка разбора или ErrInvalidConfig
func LoadConfig() (*Config, error) {
	return Load(os.Args[0], os.Args[1:])
}

// MustLoadConfig как LoadConfig, но паникует при ошибке.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// Load разбирает переданные аргументы и окружение.
func Load(name string, args []string) (*Config, error) {
	var envConf envConfig
	if err := env.Parse(&envConf); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	flagsConfig, err := loadFlags(name, args)
	if err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConf, flagsConfig)
	if validateErr := conf.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return conf, nil
}

// loadFlags парсит флаги командной строки.
func loadFlags(name string, args []string) (*Config, error) {
	flagsConfig := Config{
		BaseURL: &url.URL{Scheme: "http", Host: defaultServerAddress},
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&flagsConfig.ServerAddress, "a", defaultServerAddress, "Адрес сервера")
	fs.Func("b", "Публичный адрес сервиса (Scheme://Host)", func(rawURL string) error {
		parsedURL, err := parseBaseURL(rawURL)
		if err != nil {
			return err
		}
		flagsConfig.BaseURL = parsedURL
		return nil
	})
	fs.Func("db", "Тип хранилища: sqlite, postgres, inMemory", func(s string) error {
		flagsConfig.DBType = DBType(s)
		return nil
	})
	flagsConfig.DBType = DBTypeInMemory
	fs.StringVar(&flagsConfig.SQLitePath, "sqlite", defaultSQLitePath, "Путь к файлу sqlite")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN базы postgres")
	fs.StringVar(&flagsConfig.RedisAddr, "r", "", "Адрес redis для счетчиков исходов")
	fs.DurationVar(&flagsConfig.StoreTimeout, "store-timeout", defaultStoreTimeout, "Таймаут обращения к хранилищу")
	fs.DurationVar(&flagsConfig.RecordTimeout, "record-timeout", defaultRecordTimeout, "Таймаут записи события")
	fs.BoolVar(&flagsConfig.EnableHTTPS, "s", false, "Включить HTTPS")
	fs.StringVar(&flagsConfig.TLSCertPath, "cert", defaultCertPath, "Путь к сертификату")
	fs.StringVar(&flagsConfig.TLSKeyPath, "key", defaultKeyPath, "Путь к приватному ключу")
	fs.StringVar(&flagsConfig.LogLevel, "l", "", "Уровень логирования")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}
	return &flagsConfig, nil
}

// parseBaseURL отсекает Path и Query если они заданы в базовом урле.
func parseBaseURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base url")
	}
	return &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}, nil
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConf *envConfig, flagsConfig *Config) *Config {
	baseURL := flagsConfig.BaseURL
	if envConf.BaseURL != nil {
		baseURL = &url.URL{Scheme: envConf.BaseURL.Scheme, Host: envConf.BaseURL.Host}
	}
	enableHTTPS := flagsConfig.EnableHTTPS
	if envConf.EnableHTTPS != nil {
		enableHTTPS = *envConf.EnableHTTPS
	}

	return &Config{
		ServerAddress: defaultIfBlank(envConf.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:       baseURL,
		DBType:        defaultIfBlank(envConf.DBType, flagsConfig.DBType),
		SQLitePath:    defaultIfBlank(envConf.SQLitePath, flagsConfig.SQLitePath),
		DatabaseDSN:   defaultIfBlank(envConf.DatabaseDSN, flagsConfig.DatabaseDSN),
		RedisAddr:     defaultIfBlank(envConf.RedisAddr, flagsConfig.RedisAddr),
		StoreTimeout:  defaultIfBlank(envConf.StoreTimeout, flagsConfig.StoreTimeout),
		RecordTimeout: defaultIfBlank(envConf.RecordTimeout, flagsConfig.RecordTimeout),
		EnableHTTPS:   enableHTTPS,
		TLSCertPath:   defaultIfBlank(envConf.TLSCertPath, flagsConfig.TLSCertPath),
		TLSKeyPath:    defaultIfBlank(envConf.TLSKeyPath, flagsConfig.TLSKeyPath),
		LogLevel:      defaultIfBlank(envConf.LogLevel, flagsConfig.LogLevel),
	}
}

func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeInMemory:
	case DBTypeSQLite:
		if c.SQLitePath == "" {
			return errors.Wrap(ErrInvalidConfig, "sqlite path is required for sqlite storage")
		}
	case DBTypePostgres:
		if c.DatabaseDSN == "" {
			return errors.Wrap(ErrInvalidConfig, "database dsn is required for postgres storage")
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown storage type %q", c.DBType)
	}
	if c.ServerAddress == "" {
		return errors.Wrap(ErrInvalidConfig, "server address is empty")
	}
	if c.StoreTimeout <= 0 || c.RecordTimeout <= 0 {
		return errors.Wrap(ErrInvalidConfig, "timeouts must be positive")
	}
	if c.EnableHTTPS && (c.TLSCertPath == "" || c.TLSKeyPath == "") {
		return errors.Wrap(ErrInvalidConfig, "certificate and key paths are required for https")
	}
	return nil
}
