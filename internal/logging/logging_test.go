package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		assert.NoError(t, Init("debug", "json"))
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
		_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
		assert.True(t, ok)
	})

	t.Run("bad level", func(t *testing.T) {
		assert.Error(t, Init("loud", "json"))
	})

	t.Run("bad format", func(t *testing.T) {
		assert.Error(t, Init("info", "xml"))
	})
}

func TestComponent(t *testing.T) {
	entry := Component("ledger")
	assert.Equal(t, "ledger", entry.Data["component"])
}
