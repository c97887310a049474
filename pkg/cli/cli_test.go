package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/report"
	"github.com/mocno/bandex/pkg/rucard"
	"github.com/mocno/bandex/pkg/serializer"
)

const testConfig = `
bandex:
  restaurants:
    - id: 6
      color: green
  foods:
    liked:
      - strogonoff
    disliked:
      - fígado
`

func dwrReply(body string) string {
	return "throw 'allowScriptTagRemoting is false.';\n(function(){\r\nvar dwr=window.dwr._[0];\n//#DWR-REPLY\n" +
		`dwr.engine.remote.handleCallback("0","a",` + body + ");\n})();\n"
}

// menuSource serves a restaurant named after its id for ids up to last,
// with the same menu every day.
func menuSource(t *testing.T, last int) *httptest.Server {
	t.Helper()

	var objects []string
	for day := 1; day <= 7; day++ {
		for _, meal := range []string{"A", "J"} {
			objects = append(objects, fmt.Sprintf(
				`{cdpdia:"Arroz<br>Strogonoff de frango<br>Fígado acebolado",diasemana:%d,dtarfi:null,obscdpsmn:null,tiprfi:"%s",vlrclorfi:900}`,
				day, meal))
		}
	}
	menus := dwrReply("[" + strings.Join(objects, ",") + "]")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(r.PostForm.Get("c0-param0"), "string:"))

		switch {
		case strings.HasSuffix(r.URL.Path, "."+rucard.MethodRestaurant+".dwr"):
			if id < 1 || id > last {
				_, _ = w.Write([]byte(dwrReply(`[{nomrtn:null}]`)))
				return
			}
			_, _ = fmt.Fprintf(w, "%s", dwrReply(fmt.Sprintf(`[{nomrtn:"Restaurante %d"}]`, id)))
		case strings.HasSuffix(r.URL.Path, "."+rucard.MethodMenus+".dwr"):
			_, _ = w.Write([]byte(menus))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("NO_COLOR", "")
	t.Setenv(envSourceURL, "")
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "bandex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestMenus_Text(t *testing.T) {
	dir := isolateEnv(t)
	srv := menuSource(t, 10)
	cfg := writeConfig(t, dir, testConfig)

	out, err := run(t, "-e", "--no-logo", "--no-color", "--no-cache", "-c", cfg, "--source-url", srv.URL)
	require.NoError(t, err)

	for _, want := range []string{
		"Segunda-feira",
		"Sexta-feira",
		"Almoço",
		"Jantar",
		"Restaurante 6",
		"   ➤  Arroz",
		"   ♥  Strogonoff de frango",
		"   ✗  Fígado acebolado",
		"Valor energético: 900 kcal",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Sábado")
	assert.NotContains(t, out, "\x1b[", "colors must be disabled")
}

func TestMenus_JSON(t *testing.T) {
	dir := isolateEnv(t)
	srv := menuSource(t, 10)
	cfg := writeConfig(t, dir, testConfig)

	tests := []struct {
		name  string
		args  []string
		days  []string
		meals int
	}{
		{"whole week", []string{"-e"}, []string{"Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira"}, 2},
		{"combined short flags", []string{"-aj", "-w", "3"}, []string{"Quarta-feira"}, 2},
		{"dinner on saturday", []string{"-j", "-w", "sabado"}, []string{"Sábado"}, 1},
		{"lunch only", []string{"--lunch", "--weekday", "dom"}, []string{"Domingo"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-t", "json", "--no-cache", "-c", cfg, "--source-url", srv.URL}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)

			var rep report.Report
			require.NoError(t, json.Unmarshal([]byte(out), &rep))

			var days []string
			for _, d := range rep.Days {
				days = append(days, d.Name)
				assert.Len(t, d.Meals, tt.meals)
			}
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestMenus_OutputFile(t *testing.T) {
	dir := isolateEnv(t)
	srv := menuSource(t, 10)
	cfg := writeConfig(t, dir, testConfig)
	path := filepath.Join(dir, "menus.yaml")

	out, err := run(t, "-a", "-w", "1", "-t", "yaml", "-o", path, "--no-cache", "-c", cfg, "--source-url", srv.URL)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, yaml.Unmarshal(data, &rep))
	require.Len(t, rep.Days, 1)
	assert.Equal(t, "Restaurante 6", rep.Days[0].Meals[0].Restaurants[0].Name)
}

func TestMenus_OutputFormatFromPath(t *testing.T) {
	dir := isolateEnv(t)
	srv := menuSource(t, 10)
	cfg := writeConfig(t, dir, testConfig)

	tests := []struct {
		file    string
		args    []string
		want    string
		notWant string
	}{
		{"menus.json", nil, `"restaurantId": 6`, "restaurantId: 6"},
		{"menus.yaml", nil, "restaurantId: 6", `"restaurantId"`},
		{"menus.txt", []string{"--no-logo"}, "Restaurante 6", "restaurantId"},
		{"forced.json", []string{"-t", "yaml"}, "restaurantId: 6", `"restaurantId"`},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			args := append([]string{"-a", "-w", "1", "-o", path, "--no-cache", "-c", cfg, "--source-url", srv.URL}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Empty(t, out)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
			assert.NotContains(t, string(data), tt.notWant)
		})
	}
}

func TestMenus_DiskCache(t *testing.T) {
	dir := isolateEnv(t)
	cfg := writeConfig(t, dir, testConfig)
	cacheFile := filepath.Join(dir, "menus.db")

	var calls atomic.Int32
	srv := menuSource(t, 10)
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		srv.Config.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(counting.Close)

	args := []string{"-a", "-w", "1", "-t", "json", "--cache-file", cacheFile, "-c", cfg, "--source-url", counting.URL}

	_, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	_, err = run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "second run must be served from the disk cache")

	_, err = run(t, append(args, "--no-cache")...)
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestMenus_Errors(t *testing.T) {
	dir := isolateEnv(t)
	cfg := writeConfig(t, dir, testConfig)
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("bandex:\n  restaurants:\n    - id: 0\n"), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"weekday with everything", []string{"-e", "-w", "2", "-c", cfg}, "not both"},
		{"invalid weekday", []string{"-w", "8", "-c", cfg}, "between 1 (Monday) and 7 (Sunday)"},
		{"unknown format", []string{"-t", "xml", "-c", cfg}, "unknown output format"},
		{"invalid config", []string{"-c", bad}, "invalid configuration"},
		{"missing config", []string{"-c", filepath.Join(dir, "missing.yaml")}, "missing.yaml"},
		{"unexpected argument", []string{"-c", cfg, "extra"}, "unexpected argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append(tt.args, "--no-cache")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRestaurants(t *testing.T) {
	isolateEnv(t)
	srv := menuSource(t, 3)

	out, err := run(t, "--source-url", srv.URL, "-t", "json", "restaurants", "--to", "10")
	require.NoError(t, err)

	var list []rucard.RestaurantInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, []rucard.RestaurantInfo{
		{ID: 1, Name: "Restaurante 1"},
		{ID: 2, Name: "Restaurante 2"},
		{ID: 3, Name: "Restaurante 3"},
	}, list)

	out, err = run(t, "--source-url", srv.URL, "restaurants", "--from", "2", "--to", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Restaurante 2")
	assert.NotContains(t, out, "Restaurante 3")

	_, err = run(t, "--source-url", srv.URL, "restaurants", "--from", "5", "--to", "2")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	dir := isolateEnv(t)
	cfg := writeConfig(t, dir, testConfig)

	out, err := run(t, "config", "validate", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuração válida: "+cfg+" (flag)")
	assert.Contains(t, out, "1 restaurantes, 1 alimentos preferidos, 1 alimentos evitados")

	t.Setenv(config.EnvConfigFile, cfg)
	out, err = run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "(env)")

	t.Setenv(config.EnvConfigFile, "")
	out, err = run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "configuração padrão")
	assert.Contains(t, out, "4 restaurantes")
}

func TestConfigShow(t *testing.T) {
	dir := isolateEnv(t)
	cfg := writeConfig(t, dir, testConfig)

	out, err := run(t, "config", "show", "-c", cfg)
	require.NoError(t, err)

	shown, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []int{6}, func() []int {
		var ids []int
		for _, id := range shown.RestaurantIDs() {
			ids = append(ids, int(id))
		}
		return ids
	}())

	out, err = run(t, "config", "show", "-c", cfg, "-t", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, `"strogonoff"`)
}

func TestConfigSchema(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "config", "schema")
	require.NoError(t, err)
	assert.Equal(t, string(config.Schema()), out)
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    serializer.Format
		wantErr bool
	}{
		{"text", []string{"-t", "text"}, "", false},
		{"upper case", []string{"-t", "TEXT"}, "", false},
		{"json", []string{"-t", "json"}, serializer.FormatJSON, false},
		{"yaml", []string{"-t", "yaml"}, serializer.FormatYAML, false},
		{"table", []string{"-t", "table"}, serializer.FormatTable, false},
		{"unknown", []string{"-t", "xml"}, "", true},
		{"default", nil, "", false},
		{"json from path", []string{"-o", "menus.json"}, serializer.FormatJSON, false},
		{"yml from path", []string{"-o", "out/menus.YML"}, serializer.FormatYAML, false},
		{"txt keeps text", []string{"-o", "menus.txt"}, "", false},
		{"unknown extension", []string{"-o", "menus.out"}, "", false},
		{"explicit format wins", []string{"-t", "text", "-o", "menus.json"}, "", false},
		{"explicit yaml wins", []string{"-o", "menus.json", "-t", "yaml"}, serializer.FormatYAML, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var err error
			cmd := newRootCmd()
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				got, err = parseOutputFormat(c)
				return nil
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{name}, tt.args...)))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorEnabled(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name    string
		args    []string
		noColor string
		want    bool
	}{
		{"default", nil, "", true},
		{"flag", []string{"--no-color"}, "", false},
		{"env", nil, "1", false},
		{"file output", []string{"-o", "menus.txt"}, "", false},
		{"stdout dash", []string{"-o", "-"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)

			var got bool
			cmd := newRootCmd()
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				got = colorEnabled(c)
				return nil
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{name}, tt.args...)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNowIsOverridable(t *testing.T) {
	dir := isolateEnv(t)
	srv := menuSource(t, 10)
	cfg := writeConfig(t, dir, testConfig)

	orig := now
	t.Cleanup(func() { now = orig })
	// Tuesday 15:00: dinner is being served.
	now = func() time.Time { return time.Date(2025, time.March, 4, 15, 0, 0, 0, time.Local) }

	out, err := run(t, "-t", "json", "--no-cache", "-c", cfg, "--source-url", srv.URL)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Days, 1)
	assert.Equal(t, "Terça-feira", rep.Days[0].Name)
	require.Len(t, rep.Days[0].Meals, 1)
	assert.Equal(t, "Jantar", rep.Days[0].Meals[0].Title)
}
