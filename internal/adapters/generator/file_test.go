package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/adapters/generator"
	"go.trai.ch/unify/internal/core/domain"
)

const manifest = `[package]
name = "hack"

### BEGIN UNIFY SECTION
[dependencies]
serde = { version = "1.0.200" }
### END UNIFY SECTION

[lib]
path = "lib.rs"
`

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	f, err := generator.New().Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	assert.Equal(t, "[dependencies]\nserde = { version = \"1.0.200\" }\n", f.Section())

	require.NoError(t, f.WriteSection(domain.DisabledMessage))
	assert.Equal(t, domain.DisabledMessage, f.Section())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[package]
name = "hack"

### BEGIN UNIFY SECTION
`+domain.DisabledMessage+`### END UNIFY SECTION

[lib]
path = "lib.rs"
`, string(data))
}

func TestParse_Markers(t *testing.T) {
	tests := []struct {
		name        string
		contents    string
		wantSection string
		errContains string
	}{
		{
			name:        "empty section",
			contents:    domain.SectionBegin + "\n" + domain.SectionEnd + "\n",
			wantSection: "",
		},
		{
			name:        "end without trailing newline",
			contents:    domain.SectionBegin + "\r\na = 1\r\n" + domain.SectionEnd,
			wantSection: "a = 1\r\n",
		},
		{
			name:        "missing begin",
			contents:    "[package]\n" + domain.SectionEnd + "\n",
			errContains: domain.ErrSectionMarkersMissing.Error(),
		},
		{
			name:        "end before begin",
			contents:    domain.SectionEnd + "\n" + domain.SectionBegin + "\n",
			errContains: domain.ErrSectionMarkersMissing.Error(),
		},
		{
			name:        "marker must be a whole line",
			contents:    "# " + domain.SectionBegin + "\n" + domain.SectionEnd + "\n",
			errContains: domain.ErrSectionMarkersMissing.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := generator.Parse("Cargo.toml", tt.contents)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSection, f.Section())
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := generator.New().Open(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, domain.ErrManifestReadFailed.Error())
}

func TestNewPackage(t *testing.T) {
	op := generator.NewPackage("hack", "hack")

	f, err := generator.Parse("Cargo.toml", op.Manifest)
	require.NoError(t, err)
	assert.Empty(t, f.Section())
	assert.Contains(t, op.Manifest, domain.GeneratedHeader)
	assert.Contains(t, op.Manifest, `name = "hack"`)
	assert.NotEmpty(t, op.LibRS)
}
