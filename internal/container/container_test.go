package container

import (
	"testing"
	"time"

	"signup-web/internal/config"
	"signup-web/internal/service"
	"signup-web/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "8080",
		ActivitiesAPIURL:     "http://localhost:8000",
		MessageHideDelay:     5 * time.Second,
		SessionIdleTTL:       30 * time.Minute,
		SessionSweepInterval: time.Minute,
		CSRFKey:              make([]byte, 32),
		LogLevel:             "info",
		Environment:          "test",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
	}{
		{
			name:   "Container with defaults",
			config: testConfig(),
		},
		{
			name: "Container with client timeout",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.ActivitiesTimeout = 3 * time.Second
				return cfg
			}(),
		},
		{
			name: "Container with zero hide delay",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.MessageHideDelay = 0
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testLogger := logger.NewNop()

			container, err := New(tt.config, testLogger)

			require.NoError(t, err)
			require.NotNil(t, container)
			assert.Equal(t, tt.config, container.Config)
			assert.Equal(t, testLogger, container.Logger)
			assert.NotNil(t, container.Client)
			assert.NotNil(t, container.Sessions)
			assert.NotNil(t, container.Renderer)
			assert.Zero(t, container.Sessions.Count())
		})
	}
}

func TestContainer_Getters(t *testing.T) {
	cfg := testConfig()
	testLogger := logger.NewNop()

	container, err := New(cfg, testLogger)
	require.NoError(t, err)

	assert.Same(t, cfg, container.GetConfig())
	assert.Same(t, testLogger, container.GetLogger())
	assert.Same(t, container.Sessions, container.GetSessionService())
	assert.Same(t, container.Renderer, container.GetRenderer())

	client := container.GetActivitiesClient()
	assert.Implements(t, (*service.ActivitiesClient)(nil), client)
	assert.IsType(t, &service.HTTPActivitiesClient{}, client)
}
