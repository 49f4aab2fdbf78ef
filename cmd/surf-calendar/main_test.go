package main

import (
	"bytes"
	"testing"
	"time"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/pkg/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := rootCommand()

	for _, name := range []string{"serve", "run", "dry-run", "worker"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer

	err := printReport(&out, &model.RunReport{RequestID: "req-1", Days: []model.DayReport{{Date: "2025-06-10", Action: model.ActionNoOp}}})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"requestId": "req-1"`)
	assert.Contains(t, out.String(), `"action": "no-op"`)
}

func TestNewSurfSettings(t *testing.T) {
	resource.Set("surf.degrade-mode", "delete")
	resource.Set("stormglass.wind-unit", "mps")
	resource.Set("stormglass.params", "swellHeight, windSpeed,,")
	resource.Set("surf.forecast.horizon-hours", 24)

	settings, err := newSurfSettings("surf-runs")

	require.NoError(t, err)
	assert.Equal(t, model.DegradeDelete, settings.DegradeMode)
	assert.Equal(t, external.WindUnitMPS, settings.WindUnit)
	assert.Equal(t, []string{"swellHeight", "windSpeed"}, settings.Params)
	assert.Equal(t, 24*time.Hour, settings.Horizon)
	assert.Equal(t, "surf-runs", settings.QueueName)
}

func TestNewSurfSettingsRejectsInvalidValues(t *testing.T) {
	resource.Set("stormglass.wind-unit", "knots")
	resource.Set("surf.degrade-mode", "archive")
	_, err := newSurfSettings("")
	assert.ErrorContains(t, err, "surf.degrade-mode")

	resource.Set("surf.degrade-mode", "retitle")
	resource.Set("stormglass.wind-unit", "beaufort")
	_, err = newSurfSettings("")
	assert.ErrorContains(t, err, "stormglass.wind-unit")
}
