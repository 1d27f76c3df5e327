package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/camber-tools-mcp/internal/config"
	"github.com/ironsheep/camber-tools-mcp/internal/pipeline"
)

func writeArcImage(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 300, 320))
	for y := 0; y < 320; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
			d := math.Hypot(float64(x)-150, float64(y)-300)
			if x >= 50 && x <= 250 && y < 300 && d >= 200 && d <= 208 {
				img.Set(x, y, color.RGBA{255, 220, 0, 255})
			}
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func quietEnv(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvLogLevel, "error")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"--version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "camber-mcp dev"))
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "analyze <image>")
	assert.Contains(t, stdout.String(), config.EnvLogLevel)
}

func TestRun_UnknownCommand(t *testing.T) {
	quietEnv(t)
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "frobnicate")
}

func TestRun_BadConfig(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvLogLevel, "shouting")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"analyze", "x.png"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRun_Analyze(t *testing.T) {
	quietEnv(t)
	dir := t.TempDir()
	a := writeArcImage(t, dir, "a.png")
	b := writeArcImage(t, dir, "b.png")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"analyze", a, b}, &stdout, &stderr), stderr.String())

	var results []pipeline.Result
	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		var r pipeline.Result
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		results = append(results, r)
	}
	require.Len(t, results, 2)
	assert.Equal(t, a, results[0].InputPath)
	assert.Equal(t, b, results[1].InputPath)
	for _, r := range results {
		assert.True(t, r.HasMeasurement)
		_, err := os.Stat(r.OutputPath)
		assert.NoError(t, err)
	}
}

func TestRun_AnalyzeFailureContinues(t *testing.T) {
	quietEnv(t)
	dir := t.TempDir()
	good := writeArcImage(t, dir, "good.png")
	missing := filepath.Join(dir, "missing.png")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"analyze", missing, good}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "good.png")
}

func TestRun_AnalyzeNoPaths(t *testing.T) {
	quietEnv(t)
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"analyze"}, &stdout, &stderr))
}
