// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package server

import (
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// statusRecorder captures the status code written by a handler so the
// access log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withAccessLog wraps a handler emitting one structured access log
// line per request.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.Int("status", rec.status),
			zap.String("url", r.URL.Path),
			zap.String("ip", getClientIP(r)),
		}

		if ua := r.UserAgent(); ua != "" {
			fields = append(fields, zap.String("user_agent", ua))
		}
		if op := r.Header.Get(operatorHeader); op != "" {
			fields = append(fields, zap.String("operator", op))
		}

		logger.Info("", fields...)
	})
}

func init() {
	logDir := os.Getenv("LOGS_DIR")

	// ensure that a trailing slash is available
	if len(logDir) > 0 && logDir[len(logDir)-1] != '/' {
		logDir += "/"
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder

	var core zapcore.Core

	if logDir == "" {
		// Log only to stdout
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			zapcore.InfoLevel,
		)
	} else {
		lumberjackLogger := &lumberjack.Logger{
			Filename:   logDir + "access.log", // Log file path
			MaxSize:    10,                    // Max size in MB before rotation
			MaxBackups: 5,                     // Max number of old log files to keep
			MaxAge:     30,                    // Max age in days to keep a log file
			Compress:   true,                  // Compress old logs
		}

		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(lumberjackLogger),
			zapcore.InfoLevel,
		)
	}

	logger = zap.New(core).With(zap.String("_type", "AccessLog"))
}
