package lang

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinEnvKeys(t *testing.T) {
	keys := BuiltinEnvKeys()

	for _, want := range []string{"bin", "env", "file", "hex", "kv", "levels", "mung", "path", "precision"} {
		assert.Contains(t, keys, want)
	}

	assert.IsIncreasing(t, keys)
}

func TestBuiltinEnvLookup(t *testing.T) {
	assert.Equal(t, []string{"exists", "isDir", "isRegular", "isSymlink"}, BuiltinEnvLookup("file"))
	assert.Equal(t, []string{"prefix", "prefixif"}, BuiltinEnvLookup("mung"))
	assert.Nil(t, BuiltinEnvLookup("hex"))
	assert.Nil(t, BuiltinEnvLookup("file.exists.x"))
	assert.Nil(t, BuiltinEnvLookup("nope"))
	assert.Equal(t, BuiltinEnvKeys(), BuiltinEnvLookup(""))

	t.Setenv("DEBUGLOG_LOOKUP_TEST", "1")
	assert.Contains(t, BuiltinEnvLookup("env"), "DEBUGLOG_LOOKUP_TEST")
}

func TestBuiltinEnvCache_IsCopy(t *testing.T) {
	env := BuiltinEnvCache()
	env["hex"] = nil

	assert.NotNil(t, BuiltinEnvCache()["hex"])
}

func TestFileFunctions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	link := filepath.Join(dir, "l")

	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.Symlink(file, link); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	assert.True(t, fileExists(file))
	assert.False(t, fileExists(filepath.Join(dir, "missing")))
	assert.True(t, fileIsDir(dir))
	assert.True(t, fileIsRegular(file))
	assert.False(t, fileIsRegular(dir))
	assert.True(t, fileIsSymlink(link))
	assert.False(t, fileIsSymlink(file))
}

func TestPathFunctions(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b", "c"), pathCat("a", "b", "c"))
	assert.Equal(t, "b", pathRel("/a", "/a/b"))
	assert.True(t, filepath.IsAbs(pathAbs(".")))
}

func TestMungPrefix(t *testing.T) {
	sep := string(os.PathListSeparator)

	got := mungPrefix("/usr/bin"+sep+"/bin", "/opt/bin")
	assert.True(t, strings.HasPrefix(got, "/opt/bin"+sep), got)
	assert.Contains(t, got, "/usr/bin")
}
