package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotate 文件输出 + 切割；Filename 为空则只写 stdout
type Rotate struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Options struct {
	App    string // 写进每条日志的 app 字段
	Level  string // debug / info / warn / error，非法值按 info
	JSON   bool   // 生产用 JSON；本地用彩色 console
	Rotate Rotate

	out zapcore.WriteSyncer // 测试替换 stdout
}

// New 返回 logger 与退出时调用的 cleanup（flush + 关闭切割文件）
func New(o Options) (*zap.Logger, func()) {
	lvl, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	enc := encoder(o.JSON)

	out := o.out
	if out == nil {
		out = zapcore.Lock(os.Stdout)
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, out, lvl)}

	var rot *lumberjack.Logger
	if o.Rotate.Filename != "" {
		rot = &lumberjack.Logger{
			Filename:   o.Rotate.Filename,
			MaxSize:    max(1, o.Rotate.MaxSizeMB),
			MaxBackups: max(0, o.Rotate.MaxBackups),
			MaxAge:     max(0, o.Rotate.MaxAgeDays),
			Compress:   o.Rotate.Compress,
		}
		// 文件里不要颜色码
		cores = append(cores, zapcore.NewCore(encoder(true), zapcore.AddSync(rot), lvl))
	}

	// 每秒同一条消息前 100 条全量，之后每 100 条取 1
	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if !o.JSON {
		opts = append(opts, zap.Development())
	}
	if o.App != "" {
		opts = append(opts, zap.Fields(zap.String("app", o.App)))
	}
	l := zap.New(core, opts...)

	return l, func() {
		_ = l.Sync()
		if rot != nil {
			_ = rot.Close()
		}
	}
}

func encoder(json bool) zapcore.Encoder {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// lineWriter 按行转成日志（gin.DefaultWriter 等只认 io.Writer）
type lineWriter struct {
	l     *zap.Logger
	level zapcore.Level
}

func (w lineWriter) Write(p []byte) (int, error) {
	if ce := w.l.Check(w.level, strings.TrimRight(string(p), "\r\n")); ce != nil {
		ce.Write()
	}
	return len(p), nil
}

func ToWriter(l *zap.Logger, level zapcore.Level) io.Writer {
	return lineWriter{l: l, level: level}
}

// ToStdLogger 给 http.Server.ErrorLog / cron 这类只收 *log.Logger 的地方
func ToStdLogger(l *zap.Logger, level zapcore.Level) (*log.Logger, error) {
	return zap.NewStdLogAt(l, level)
}

func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, err := zap.RedirectStdLogAt(l, level)
	if err != nil {
		return func() {}
	}
	return undo
}
