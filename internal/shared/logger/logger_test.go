package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_LocalIsDebug(t *testing.T) {
	log, err := New("analysis-relay", "local", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

func TestNew_ProductionIsInfo(t *testing.T) {
	log, err := New("analysis-relay", "prod", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}

func TestNew_LevelOverride(t *testing.T) {
	log, err := New("analysis-relay", "local", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))

	_, err = New("analysis-relay", "local", "loud")
	assert.Error(t, err)
}
