package envcheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/sourceenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveEnvFile(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.env")

	assert.Equal(t, abs, envcheck.ResolveEnvFile("/srv/app", abs))
	assert.Equal(t, filepath.Join("/srv/app", ".env"), envcheck.ResolveEnvFile("/srv/app", ".env"))
	assert.Equal(t, filepath.Join("/srv/app", "config", "prod.env"), envcheck.ResolveEnvFile("/srv/app", "config/prod.env"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", `# comment
DATABASE_URL=postgresql://localhost:5432/db
PORT=3000
QUOTED="hello world"
export API_KEY=sk_test
`)

	store := sourceenv.NewMap(map[string]string{"PORT": "8080"})
	loaded, err := envcheck.LoadEnvFile(store, path)
	require.NoError(t, err)

	assert.Equal(t, []string{"API_KEY", "DATABASE_URL", "QUOTED"}, loaded)
	assert.Equal(t, map[string]string{
		"API_KEY":      "sk_test",
		"DATABASE_URL": "postgresql://localhost:5432/db",
		"PORT":         "8080",
		"QUOTED":       "hello world",
	}, store.Vars())
}

func TestLoadEnvFile_Missing(t *testing.T) {
	store := sourceenv.NewMap(nil)
	loaded, err := envcheck.LoadEnvFile(store, filepath.Join(t.TempDir(), ".env"))

	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, store.Vars())
}

func TestLoadEnvFile_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".env", "KEY='unterminated\n")

	_, err := envcheck.LoadEnvFile(sourceenv.NewMap(nil), path)
	assert.Error(t, err)
}

func TestDetectEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env.production", "A=1\n")
	writeFile(t, dir, ".env", "A=1\n")
	writeFile(t, dir, "other.env", "A=1\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env.test"), 0755))

	assert.Equal(t, []string{".env", ".env.production"}, envcheck.DetectEnvFiles(dir))
	assert.Empty(t, envcheck.DetectEnvFiles(t.TempDir()))
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SHARED=base\nBASE_ONLY=1\n")
	writeFile(t, dir, ".env.local", "SHARED=local\nLOCAL_ONLY=1\n")

	store := sourceenv.NewMap(nil)
	prov, err := envcheck.LoadEnvFiles(store, dir)
	require.NoError(t, err)

	shared, _ := store.Lookup("SHARED")
	assert.Equal(t, "base", shared, "earlier files take precedence")
	assert.Equal(t, "file:.env", prov.SourceOf("SHARED"))
	assert.Equal(t, "file:.env", prov.SourceOf("BASE_ONLY"))
	assert.Equal(t, "file:.env.local", prov.SourceOf("LOCAL_ONLY"))
	assert.Equal(t, []string{"BASE_ONLY", "SHARED", "LOCAL_ONLY"}, prov.Names())
}
