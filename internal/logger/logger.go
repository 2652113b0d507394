package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var log *slog.Logger

// Options описывает куда и как писать логи
type Options struct {
	Env string // "development" -> text + debug, иначе JSON

	// Если File задан, логи дублируются в файл с ротацией
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init инициализирует глобальный логгер
func Init(opts Options) {
	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}

	hopts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	var handler slog.Handler
	if opts.Env == "development" {
		hopts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(out, hopts)
	} else {
		handler = slog.NewJSONHandler(out, hopts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		Init(Options{Env: "development"})
	}
	return log
}

// ============================================
// Convenience функции
// ============================================

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// UploadLog логирует результат загрузки файла
func UploadLog(uploadType, path string, size int64, duration time.Duration, err error) {
	fields := []any{
		"upload_type", uploadType,
		"path", path,
		"size_bytes", size,
		"duration_ms", duration.Milliseconds(),
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("upload failed", fields...)
		return
	}
	GetLogger().Info("upload stored", fields...)
}
