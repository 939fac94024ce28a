package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

// 本地开发 / 测试的默认库：纯 Go 驱动，无需 cgo
const sqliteMemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

type Opts struct {
	Driver             string // mysql | postgres | sqlite
	DSN                string
	Username           string // 仅 mysql URL 形式的 DSN 生效，覆盖 URL 中的账号
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string // silent | error | warn | info
	Log                *zap.Logger
}

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

func NewGorm(o Opts) (*gorm.DB, error) {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	dial, err := dialector(&o)
	if err != nil {
		return nil, err
	}

	lvl, ok := gormLevels[o.LogLevel]
	if !ok {
		lvl = logger.Warn
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(lvl),
		TranslateError: true, // 唯一键冲突 → gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	return db.Session(&gorm.Session{
		PrepareStmt:            o.Driver != "sqlite", // sqlite 单连接不开
		CreateBatchSize:        200,
		SkipDefaultTransaction: true, // 多写操作走 Store.InTx
	}), nil
}

// dialector 按驱动选方言；可能改写 o 里的连接池设置
func dialector(o *Opts) (gorm.Dialector, error) {
	switch o.Driver {
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "mysql":
		dsn := normalizeMySQLDSN(o.DSN, o.Username, o.Password)
		o.Log.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		return mysql.Open(dsn), nil
	case "sqlite":
		if o.DSN == "" {
			o.DSN = sqliteMemoryDSN
		}
		if strings.Contains(o.DSN, ":memory:") {
			// 内存库每个连接各一份，只能单连接
			o.MaxOpenConns, o.MaxIdleConns = 1, 1
		}
		return sqlite.Open(o.DSN), nil
	}
	return nil, ErrUnsupportedDriver
}

// maskDSN user:pass@tcp(...) → user:****@tcp(...)
func maskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	if colon := strings.Index(dsn[:at], ":"); colon > 0 {
		return dsn[:colon+1] + "****" + dsn[at:]
	}
	return dsn
}

// jdbcParams Navicat / JDBC 连接串参数 → go-sql-driver 参数，空串表示丢弃
var jdbcParams = map[string]string{
	"characterEncoding":    "charset",
	"serverTimezone":       "loc",
	"useSSL":               "tls",
	"useUnicode":           "",
	"zeroDateTimeBehavior": "",
}

// normalizeMySQLDSN 把 mysql:// 或 jdbc:mysql:// URL 转成 user:pass@tcp(host)/db?...，
// 已是 go-sql-driver 格式的 DSN 原样返回。user/pass 非空时覆盖 URL 里的账号。
func normalizeMySQLDSN(input, user, pass string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}
	u, err := url.Parse(in)
	if err != nil {
		return in // 交给驱动报错
	}

	q := u.Query()
	urlPass, _ := u.User.Password()
	user = firstNonEmpty(user, q.Get("user"), u.User.Username())
	pass = firstNonEmpty(pass, q.Get("password"), urlPass)
	q.Del("user")
	q.Del("password")

	for from, to := range jdbcParams {
		v := q.Get(from)
		q.Del(from)
		if v == "" || to == "" || q.Get(to) != "" {
			continue
		}
		if from == "useSSL" {
			v = tlsMode(v)
		}
		q.Set(to, v)
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}

func tlsMode(useSSL string) string {
	switch v := strings.ToLower(useSSL); v {
	case "true", "1":
		return "true"
	case "skip-verify", "preferred":
		return v
	}
	return "false"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
