package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength bounds the statement text written per entry.
const maxSQLLength = 1000

// gormLevels maps config level names to gorm levels. "debug" falls back to
// warn; only "info" logs every statement.
var gormLevels = map[string]gormlogger.LogLevel{
	"silent":  gormlogger.Silent,
	"error":   gormlogger.Error,
	"warn":    gormlogger.Warn,
	"warning": gormlogger.Warn,
	"info":    gormlogger.Info,
}

// GormLogger writes gorm statements through zap, tagged with the statement's
// operation and table so store failures line up with the PersistenceError
// logged by the generators.
type GormLogger struct {
	ZapLogger     *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

// NewGormLogger creates a GORM logger writing through zap. logLevel is
// silent, error, warn or info; anything else means warn.
func NewGormLogger(zapLogger *zap.Logger, slowQuerySeconds float64, logLevel string) *GormLogger {
	level, ok := gormLevels[strings.ToLower(logLevel)]
	if !ok {
		level = gormlogger.Warn
	}
	return &GormLogger{
		ZapLogger:     zapLogger.Named("gorm"),
		SlowThreshold: time.Duration(slowQuerySeconds * float64(time.Second)),
		LogLevel:      level,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Info {
		WithContext(ctx, l.ZapLogger).Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Warn {
		WithContext(ctx, l.ZapLogger).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Error {
		WithContext(ctx, l.ZapLogger).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.SlowThreshold != 0 && elapsed > l.SlowThreshold
	if !failed && !(slow && l.LogLevel >= gormlogger.Warn) && l.LogLevel < gormlogger.Info {
		return
	}

	sql, rows := fc()
	op, table := statementTarget(sql)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("table", table),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxSQLLength {
		fields = append(fields, zap.String("sql", sql[:maxSQLLength]+"..."), zap.Bool("sql_truncated", true))
	} else {
		fields = append(fields, zap.String("sql", sql))
	}

	log := WithContext(ctx, l.ZapLogger)
	switch {
	case failed:
		log.Error("failed to "+op+" "+table, append(fields, zap.Error(err))...)
	case slow && l.LogLevel >= gormlogger.Warn:
		log.Warn("slow "+op+" on "+table, append(fields, zap.Duration("threshold", l.SlowThreshold))...)
	default:
		log.Info(op+" "+table, fields...)
	}
}

// statementTarget returns the lower-cased leading keyword of sql and the table
// it addresses, e.g. ("insert", "users"). Either is "unknown" when absent.
func statementTarget(sql string) (op, table string) {
	words := strings.Fields(sql)
	if len(words) == 0 {
		return "unknown", "unknown"
	}
	op = strings.ToLower(words[0])

	var marker string
	switch op {
	case "insert":
		marker = "into"
	case "select", "delete":
		marker = "from"
	case "update":
		return op, tableName(words, 1)
	case "create", "alter", "drop":
		marker = "table"
	default:
		return op, "unknown"
	}
	for i, w := range words {
		if strings.EqualFold(w, marker) {
			return op, tableName(words, i+1)
		}
	}
	return op, "unknown"
}

func tableName(words []string, i int) string {
	// CREATE TABLE IF NOT EXISTS users
	for i < len(words) && (strings.EqualFold(words[i], "if") || strings.EqualFold(words[i], "not") || strings.EqualFold(words[i], "exists")) {
		i++
	}
	if i >= len(words) {
		return "unknown"
	}
	name := strings.Trim(words[i], "\"`(")
	if j := strings.IndexAny(name, "\"`("); j >= 0 {
		name = name[:j]
	}
	if name == "" {
		return "unknown"
	}
	return name
}
