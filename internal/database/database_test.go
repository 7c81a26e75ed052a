package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"kuse-store/internal/config"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		expectError bool
		errorMsg    string
		check       func(t *testing.T, st store.Store)
	}{
		{
			name: "Missing URL gives the unavailable store",
			cfg:  config.DatabaseConfig{Driver: config.DriverMongo, Name: "kuse", Timeout: time.Second},
			check: func(t *testing.T, st store.Store) {
				_, err := st.Collections(ctx)
				assert.True(t, errors.Is(err, store.ErrUnavailable))
			},
		},
		{
			name: "Memory driver",
			cfg:  config.DatabaseConfig{Driver: config.DriverMemory, Timeout: time.Second},
			check: func(t *testing.T, st store.Store) {
				assert.Equal(t, "memory", st.Name())
			},
		},
		{
			name: "Mongo client is lazy",
			cfg: config.DatabaseConfig{
				Driver:         config.DriverMongo,
				URL:            "mongodb://127.0.0.1:1",
				Name:           "kuse",
				Timeout:        100 * time.Millisecond,
				MaxConnections: 5,
			},
			check: func(t *testing.T, st store.Store) {
				assert.Equal(t, "kuse", st.Name())
			},
		},
		{
			name: "Malformed mongo URL",
			cfg: config.DatabaseConfig{
				Driver:         config.DriverMongo,
				URL:            "not-a-mongo-url",
				Name:           "kuse",
				Timeout:        time.Second,
				MaxConnections: 5,
			},
			expectError: true,
			errorMsg:    "failed to parse database config",
		},
		{
			name: "Malformed postgres URL",
			cfg: config.DatabaseConfig{
				Driver:         config.DriverPostgres,
				URL:            "postgres://%zz",
				Timeout:        time.Second,
				MaxConnections: 5,
			},
			expectError: true,
			errorMsg:    "failed to parse database config",
		},
		{
			name:        "Unknown driver",
			cfg:         config.DatabaseConfig{Driver: "redis", URL: "redis://localhost"},
			expectError: true,
			errorMsg:    "unsupported database driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := OpenStore(ctx, tt.cfg, logger)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, st)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, st)
			defer st.Close(ctx)

			tt.check(t, st)
		})
	}
}
