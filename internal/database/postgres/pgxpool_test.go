package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"job-board/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestQueryLogger_MapsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := queryLogger(zap.New(core))

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})
	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "SELECT 1", logs.All()[0].ContextMap()["sql"])
	assert.Equal(t, zapcore.DebugLevel, logs.All()[1].Level)
}

func TestNilPool(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), errNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errNilDB)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), errNilDB)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
}

func TestConnect_Live(t *testing.T) {
	host := os.Getenv("JOBBOARD_TEST_PG_HOST")
	if host == "" {
		t.Skip("JOBBOARD_TEST_PG_HOST not set")
	}

	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     "5432",
		DBName:     os.Getenv("JOBBOARD_TEST_PG_DB"),
		DBUser:     os.Getenv("JOBBOARD_TEST_PG_USER"),
		DBPassword: os.Getenv("JOBBOARD_TEST_PG_PASSWORD"),
		DBSSLMode:  "disable",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := Connect(ctx, cfg, "job-board-test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	var one int
	require.NoError(t, p.QueryRow(ctx, "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}
