package cmd

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esp-create-project/internal/config"
	"esp-create-project/internal/project"
)

// templateZip builds an in-memory zip shaped like the real template archive.
func templateZip(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name, body string
	}{
		{"esp-idf-template-master/", ""},
		{"esp-idf-template-master/CMakeLists.txt", "cmake_minimum_required(VERSION 3.5)\n\ninclude(project.cmake)\n\n# placeholder\nproject(esp-template)\n"},
		{"esp-idf-template-master/main/", ""},
		{"esp-idf-template-master/main/CMakeLists.txt", "set(COMPONENT_ADD_INCLUDEDIRS \".\")\n\nregister_component()\n\nset(COMPONENT_SRCS \"main.c\")\n"},
		{"esp-idf-template-master/main/main.c", "void app_main(void)\n{\n}\n"},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.body != "" {
			_, err = w.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// writeRegistry points the default template name at the given URL so tests
// never touch the real network.
func writeRegistry(t *testing.T, url string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	content := "templates:\n  - name: " + config.DefaultTemplateName + "\n    url: " + url + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// chdir is t.Chdir from Go 1.24, reimplemented so the tests build on
// older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		// Flag values live in package globals and cobra remembers which
		// flags were changed; put everything back so tests cannot see
		// each other's arguments.
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		rootCmd.Flags().VisitAll(reset)
		rootCmd.PersistentFlags().VisitAll(reset)
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCreateDefaultsTargetName(t *testing.T) {
	payload := templateZip(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	chdir(t, t.TempDir())
	err := execute(t, "--registry", writeRegistry(t, srv.URL+"/master.zip"))
	require.NoError(t, err)

	// Omitting the name argument defaults the target directory.
	assert.DirExists(t, DefaultTargetDir)
	assert.FileExists(t, filepath.Join(DefaultTargetDir, "main", "main.c"))
	assert.FileExists(t, filepath.Join(DefaultTargetDir, "CMakeLists.txt"))
	// No git was requested, so no repository either.
	assert.NoDirExists(t, filepath.Join(DefaultTargetDir, ".git"))
}

func TestCreateNamedCppProject(t *testing.T) {
	payload := templateZip(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	chdir(t, t.TempDir())
	err := execute(t, "--registry", writeRegistry(t, srv.URL+"/master.zip"),
		"--language", "cpp", "--std", "11", "blinky")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join("blinky", "main", "main.cpp"))
	assert.NoFileExists(t, filepath.Join("blinky", "main", "main.c"))
}

func TestCreateNoGitSkipsRepository(t *testing.T) {
	payload := templateZip(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	chdir(t, t.TempDir())
	err := execute(t, "--registry", writeRegistry(t, srv.URL+"/master.zip"), "--no-git", "quiet")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join("quiet", "main", "main.c"))
	assert.NoDirExists(t, filepath.Join("quiet", ".git"))
}

func TestCreateGitAndNoGitConflict(t *testing.T) {
	chdir(t, t.TempDir())
	err := execute(t, "--git", "--no-git", "never")
	require.Error(t, err)
	assert.NoDirExists(t, "never")
}

func TestCreateNetworkFailureCreatesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	chdir(t, t.TempDir())
	err := execute(t, "--registry", writeRegistry(t, url+"/master.zip"), "myproj")
	require.Error(t, err)

	// The download failed before the target directory was created.
	assert.NoDirExists(t, "myproj")
}

func TestCreateRefusesNonEmptyTarget(t *testing.T) {
	payload := templateZip(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("taken", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("taken", "keep.txt"), []byte("x"), 0644))

	err := execute(t, "--registry", writeRegistry(t, srv.URL+"/master.zip"), "taken")
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrTargetNotEmpty)
	assert.FileExists(t, filepath.Join("taken", "keep.txt"))
	assert.NoFileExists(t, filepath.Join("taken", "CMakeLists.txt"))
}

func TestCreateUnknownTemplate(t *testing.T) {
	chdir(t, t.TempDir())
	err := execute(t, "--template", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}
