package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Cache 统计类接口的缓存（需配置 redis.addr 才生效）
type Cache struct {
	StatsTTLSec int
}

type Inventory struct {
	LowStockThreshold int
	WatchCron         string // 空则不启动巡检
}

type Web struct {
	StaticDir string // 旧版 dashboard 静态页目录，空则不挂载
}

type CORS struct {
	AllowOrigins []string
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	Cache     Cache
	Inventory Inventory
	Web       Web
	CORS      CORS
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jewellery-backoffice")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "jewellery-backoffice")
	v.SetDefault("jwt.accessTokenTTLMin", 24*60)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("cache.statsTTLSec", 30)
	v.SetDefault("inventory.lowStockThreshold", 5)
}

func Load(path string) *Config {
	c, err := LoadFile(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

// LoadFile 读取 yaml + APP_ 前缀环境变量（APP_DB_DSN 覆盖 db.dsn）
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
