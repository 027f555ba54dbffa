package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/facturapy/facturapy-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"WARN", zerolog.WarnLevel},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l := logger.New(logger.Config{Env: "production", Level: tc.level})
			assert.Equal(t, tc.want, l.Zerolog().GetLevel())
		})
	}
}

func TestNew_NivelInvalidoDegradaAInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "loudest"} {
		l := logger.New(logger.Config{Env: "production", Level: level})
		assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel(),
			"nivel %q debe degradar a info", level)
	}
}
