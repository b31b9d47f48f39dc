package runconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Default_returnsBuiltInDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("cfgkit-run-config", cfg.Kind)
	assert.True(cfg.SortTieBreaks)
	assert.Empty(cfg.OutputDir)
	assert.False(cfg.Interactive)
}

func Test_Load_missingFileReturnsDefault(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func Test_Load_parsesFileAndOverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cfgkit.toml")
	content := "kind = \"cfgkit-run-config\"\noutput_dir = \"out\"\ninteractive = true\nsort_tie_breaks = false\n"
	assert.NoError(os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("out", cfg.OutputDir)
	assert.True(cfg.Interactive)
	assert.False(cfg.SortTieBreaks)
}

func Test_ScanHeader_readsKindWithoutFullParse(t *testing.T) {
	assert := assert.New(t)

	h, err := ScanHeader([]byte("kind = \"cfgkit-run-config\"\noutput_dir = \"out\"\n"))
	assert.NoError(err)
	assert.Equal("cfgkit-run-config", h.Kind)
}

func Test_ScanHeader_errorsOnMalformedTOML(t *testing.T) {
	assert := assert.New(t)

	_, err := ScanHeader([]byte("this is not = = toml"))
	assert.Error(err)
}
