package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// testEnv holds the directories one test runs commands against.
type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range []string{"INVENTORY_CONFIG_DIR", "INVENTORY_DATA_DIR", "INVENTORY_AUTHORITY", "INVENTORY_BACKEND", "INVENTORY_LOG_LEVEL", "INVENTORY_LOG_FORMAT", "INVENTORY_LOG_FILE"} {
		t.Setenv(k, "")
	}
	root := t.TempDir()
	return &testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *testEnv) runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "inventory %s", strings.Join(args, " "))
	return out
}

func (e *testEnv) listTools(t *testing.T) []types.Tool {
	t.Helper()
	var tools []types.Tool
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "list", "--json")), &tools))
	return tools
}

func createAx(t *testing.T, e *testEnv) string {
	t.Helper()
	out := e.mustRun(t, "create", "--name", "Ax", "--price", "19.84", "--quantity", "6", "--supplier", "Supplier_A", "--phone", "3313467...")
	return strings.TrimSpace(out)
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "version")
	assert.Contains(t, out, "inventory v")
	assert.Contains(t, out, "github.com/mesh-intelligence/inventory")
}

func TestInit(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "init")
	assert.Contains(t, out, "Inventory initialized")
	assert.FileExists(t, filepath.Join(e.dataDir, types.DatabaseName))

	data, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, e.dataDir, cfg.DataDir)
	assert.Equal(t, types.DefaultAuthority, cfg.Authority)

	out = e.mustRun(t, "init")
	assert.NotContains(t, out, "Wrote", "existing config is kept")
}

func TestCreateGetList(t *testing.T) {
	e := newTestEnv(t)

	uri := createAx(t, e)
	assert.True(t, strings.HasPrefix(uri, "content://com.example.android.inventory/tools/"), uri)

	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Ax", tools[0].Name)
	assert.Equal(t, 19.84, tools[0].Price)

	out := e.mustRun(t, "get", uri, "--json")
	var tool types.Tool
	require.NoError(t, json.Unmarshal([]byte(out), &tool))
	assert.Equal(t, tools[0], tool)

	out = e.mustRun(t, "get", "tools/1", "--yaml")
	assert.Contains(t, out, "supplier_name: Supplier_A")

	out = e.mustRun(t, "get", "1")
	assert.Contains(t, out, "19.84")
	assert.Contains(t, out, "Supplier_A")

	out = e.mustRun(t, "list")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ax")
}

func TestListProjectionAndFilter(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)
	e.mustRun(t, "create", "--name", "Saw", "--price", "7", "--quantity", "1", "--supplier", "Acme", "--phone", "555")

	out := e.mustRun(t, "list", "--json", "--columns", "name", "--where", "quantity < ?", "--arg", "5")
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{"name": "Saw"}, rows[0])

	_, err := e.run(t, "list", "--columns", "color")
	assert.ErrorIs(t, err, types.ErrUnknownColumn)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestListEmpty(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "list")
	assert.Contains(t, out, "No tools")
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "missing name",
			args:    []string{"--price", "1", "--supplier", "S", "--phone", "1"},
			wantErr: types.ErrMissingName,
		},
		{
			name:    "negative price",
			args:    []string{"--name", "Ax", "--price", "-1", "--supplier", "S", "--phone", "1"},
			wantErr: types.ErrInvalidPrice,
		},
		{
			name:    "bad quantity",
			args:    []string{"--name", "Ax", "--price", "1", "--quantity", "lots", "--supplier", "S", "--phone", "1"},
			wantErr: types.ErrInvalidQuantity,
		},
		{
			name:    "missing phone",
			args:    []string{"--name", "Ax", "--price", "1", "--supplier", "S"},
			wantErr: types.ErrMissingSupplierPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			_, err := e.run(t, append([]string{"create"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, exitUserError, exitCode(err))
			assert.Empty(t, e.listTools(t))
		})
	}
}

func TestCreateWithoutPriceIsSystemError(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "create", "--name", "Ax", "--supplier", "S", "--phone", "1")
	assert.ErrorIs(t, err, types.ErrNoResult)
	assert.Equal(t, exitSysError, exitCode(err))
}

func TestUpdateMergesCurrentRow(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)

	out := e.mustRun(t, "update", "1", "--quantity", "12")
	assert.Contains(t, out, "Updated 1 tool")

	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, types.Quantity(12), tools[0].Quantity)
	assert.Equal(t, "Ax", tools[0].Name, "unchanged fields are kept")
	assert.Equal(t, 19.84, tools[0].Price)
}

func TestUpdateKeepsMissingQuantity(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "create", "--name", "Level", "--price", "15", "--supplier", "Acme", "--phone", "555")
	require.Nil(t, e.listTools(t)[0].Quantity)

	e.mustRun(t, "update", "1", "--name", "Spirit level")

	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Spirit level", tools[0].Name)
	assert.Nil(t, tools[0].Quantity, "update does not invent a quantity")

	assert.Contains(t, e.mustRun(t, "get", "1", "--json"), `"quantity": null`)

	e.mustRun(t, "update", "1", "--quantity", "4")
	assert.Equal(t, types.Quantity(4), e.listTools(t)[0].Quantity)
}

func TestImportRejectsInvalidTools(t *testing.T) {
	e := newTestEnv(t)

	file := filepath.Join(t.TempDir(), "tools.jsonl")
	require.NoError(t, os.WriteFile(file, []byte(strings.Join([]string{
		`{"name":"Ax","price":19.84,"supplier_name":"Supplier_A","supplier_phone":"3313467..."}`,
		`{"name":"Neg","price":-5,"quantity":-3,"supplier_name":"Acme","supplier_phone":"555"}`,
		`{}`,
	}, "\n")), 0o644))

	assert.Contains(t, e.mustRun(t, "import", file), "Imported 1 tools, skipped 2 lines")

	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Ax", tools[0].Name)
	assert.Nil(t, tools[0].Quantity)
}

func TestUpdateErrors(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "missing tool", args: []string{"update", "99", "--quantity", "1"}, wantErr: types.ErrNotFound},
		{name: "invalid value", args: []string{"update", "1", "--price", "-3"}, wantErr: types.ErrInvalidPrice},
		{name: "collection without required fields", args: []string{"update", "--all", "--quantity", "1"}, wantErr: types.ErrMissingName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}

	for _, args := range [][]string{
		{"update", "1"},
		{"update"},
		{"update", "1", "--all", "--quantity", "1"},
		{"update", "1", "--where", "x", "--quantity", "1"},
	} {
		_, err := e.run(t, args...)
		assert.Equal(t, exitUserError, exitCode(err), "inventory %s", strings.Join(args, " "))
	}
}

func TestUpdateAll(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)
	createAx(t, e)

	out := e.mustRun(t, "update", "--all", "--where", "supplier = ?", "--arg", "Supplier_A",
		"--name", "Ax", "--supplier", "Supplier_B", "--phone", "555-0100")
	assert.Contains(t, out, "Updated 2 tools")

	for _, tool := range e.listTools(t) {
		assert.Equal(t, "Supplier_B", tool.SupplierName)
	}
}

func TestUpdateInteractive(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)

	saved := editFields
	t.Cleanup(func() { editFields = saved })
	editFields = func(f *toolFields, title string) error {
		assert.Equal(t, "Ax", f.name, "form opens with the stored tool")
		f.name = "Hatchet"
		return nil
	}

	e.mustRun(t, "update", "1", "--interactive")
	assert.Equal(t, "Hatchet", e.listTools(t)[0].Name)

	editFields = func(f *toolFields, title string) error { return errors.New("user aborted") }
	_, err := e.run(t, "update", "1", "-i")
	assert.Error(t, err)
}

func TestCreateInteractive(t *testing.T) {
	e := newTestEnv(t)

	saved := editFields
	t.Cleanup(func() { editFields = saved })
	editFields = func(f *toolFields, title string) error {
		*f = toolFields{name: "Level", price: "15", quantity: "", supplier: "Acme", phone: "555"}
		return nil
	}

	e.mustRun(t, "create", "--interactive")
	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Level", tools[0].Name)
	assert.Nil(t, tools[0].Quantity, "blank quantity is stored as NULL")
}

func TestDelete(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)
	createAx(t, e)
	createAx(t, e)

	assert.Contains(t, e.mustRun(t, "delete", "1"), "Deleted 1 tools")
	assert.Contains(t, e.mustRun(t, "delete", "1"), "Deleted 0 tools")
	assert.Contains(t, e.mustRun(t, "delete", "--all"), "Deleted 2 tools")
	assert.Empty(t, e.listTools(t))

	_, err := e.run(t, "delete", "tools")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestSeed(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "seed")
	assert.Contains(t, out, "content://com.example.android.inventory/tools/")

	tools := e.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Ax", tools[0].Name)
	assert.Equal(t, "3313467...", tools[0].SupplierPhone)
}

func TestType(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "type", "content://com.example.android.inventory/tools")
	assert.Equal(t, "vnd.android.cursor.dir/com.example.android.inventory/tools\n", out)

	out = e.mustRun(t, "type", "tools/4")
	assert.Equal(t, "vnd.android.cursor.item/com.example.android.inventory/tools\n", out)

	_, err := e.run(t, "type", "content://elsewhere/tools")
	assert.ErrorIs(t, err, types.ErrUnknownAddress)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestAuthorityFlag(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "--authority", "org.example.shed", "seed")
	assert.Contains(t, out, "content://org.example.shed/tools/")

	_, err := e.run(t, "--authority", "bad/authority", "list")
	assert.ErrorIs(t, err, types.ErrAuthorityInvalid)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestConfigFileAuthority(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("authority: org.example.shed\n"), 0o644))

	out := e.mustRun(t, "type", "content://org.example.shed/tools")
	assert.Contains(t, out, "org.example.shed")

	t.Setenv("INVENTORY_AUTHORITY", "net.example.garage")
	out = e.mustRun(t, "type", "content://net.example.garage/tools/1")
	assert.Contains(t, out, "net.example.garage")
}

func TestExportImport(t *testing.T) {
	src := newTestEnv(t)
	createAx(t, src)
	src.mustRun(t, "create", "--name", "Saw", "--price", "7.25", "--quantity", "0", "--supplier", "Acme", "--phone", "555")

	file := filepath.Join(t.TempDir(), "tools.jsonl")
	assert.Contains(t, src.mustRun(t, "export", file), "Exported 2 tools")

	stdout := src.mustRun(t, "export")
	assert.Equal(t, 2, strings.Count(stdout, "\n"))

	dst := newTestEnv(t)
	assert.Contains(t, dst.mustRun(t, "import", file), "Imported 2 tools, skipped 0 lines")

	got := dst.listTools(t)
	require.Len(t, got, 2)
	assert.Equal(t, "Ax", got[0].Name)
	assert.Equal(t, "Saw", got[1].Name)

	_, err := dst.run(t, "import", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestWatchRendersOnceAndStops(t *testing.T) {
	e := newTestEnv(t)
	createAx(t, e)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, err := e.runContext(t, ctx, "watch", "--json")
	require.NoError(t, err)

	// Only the first rendering is checked; a late file event may add more.
	var tools []types.Tool
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&tools))
	assert.Len(t, tools, 1)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(userErrorf("bad id")))
	assert.Equal(t, exitUserError, exitCode(types.ErrMissingName))
	assert.Equal(t, exitUserError, exitCode(types.ErrInsertNotSupported))
	assert.Equal(t, exitSysError, exitCode(errors.New("disk full")))
	assert.Equal(t, exitSysError, exitCode(types.ErrSchemaTooNew))
}

func TestUnknownFlagIsUserError(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "list", "--bogus")
	assert.Equal(t, exitUserError, exitCode(err))
}
