package color_test

import (
	"strings"
	"testing"

	"github.com/glare-project/glare/pkg/color"
	"github.com/stretchr/testify/assert"
)

func TestEnableDisable(t *testing.T) {
	color.Enable()
	assert.True(t, color.Enabled())

	color.Disable()
	assert.False(t, color.Enabled())

	color.Enable()
	assert.True(t, color.Enabled())
}

func TestWrappingWhenEnabled(t *testing.T) {
	color.Enable()
	defer color.Disable()

	out := color.Error("boom")
	assert.True(t, strings.HasPrefix(out, color.Red))
	assert.True(t, strings.HasSuffix(out, color.Reset))
	assert.Contains(t, out, "boom")

	assert.Contains(t, color.SnapshotID("9f8e7d6c"), color.Cyan)
	assert.Contains(t, color.Header("March 2024"), color.Bold)
	assert.Contains(t, color.Dim("secondary"), color.DimCode)
}

func TestPassthroughWhenDisabled(t *testing.T) {
	color.Disable()

	assert.Equal(t, "boom", color.Error("boom"))
	assert.Equal(t, "warn", color.Warning("warn"))
	assert.Equal(t, "ok", color.Success("ok"))
	assert.Equal(t, "9f8e7d6c", color.SnapshotID("9f8e7d6c"))
}

func TestErrorf(t *testing.T) {
	color.Disable()
	assert.Equal(t, "load 3 records", color.Errorf("load %d records", 3))
}
