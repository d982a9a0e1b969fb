package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/centro/core"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "TEST : ", 0), &core.Config{Env: "TEST", Build: "test"})
	logger.Enable(false)

	logger.Info("server started")
	logger.Error("query failed", errors.New("connection refused"), map[string]interface{}{"enrollment_id": 4})

	out := buf.String()
	assert.Contains(t, out, "TEST : INFO: server started")
	assert.Contains(t, out, "ERROR: query failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "enrollment_id:4")
}

func TestRollbarLogger_prepare(t *testing.T) {
	err := errors.New("boom")
	got := RollbarLogger{}.prepare("msg", []interface{}{err})
	assert.Equal(t, []interface{}{"msg", err}, got)
}
