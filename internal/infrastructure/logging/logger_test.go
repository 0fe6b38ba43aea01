package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Format: "json", Prefix: "ledger", Output: &buf})

	l.Info("quiet")
	assert.Empty(t, buf.String())

	l.Warn("loud", "account", "12345678")
	out := buf.String()
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, `"account":"12345678"`)
	assert.Contains(t, out, "ledger")
}

func TestNew_Fallbacks(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "chatty", Format: "yaml", Output: &buf})

	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_TextKeepsLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "text", Output: &buf})

	l.Error("transfer failed", "err", "boom")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "boom")
}
