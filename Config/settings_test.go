package Config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json5")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings := Load(filepath.Join(t.TempDir(), "nope.json5"))
	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, "backups", settings.BackupDir)
	assert.NotEmpty(t, settings.DefaultLists.Products)
}

func TestLoadJSON5WithComments(t *testing.T) {
	path := writeSettings(t, `{
		// snapshots land on the shared drive
		backup_dir: "/mnt/copias",
		backup_schedule: "0 0 3 * * *",
		default_lists: {
			products: ["Maillot"],
			fabrics: ["Lycra"],
			payment_types: ["Bizum"],
			clubs: ["CC Norte"]
		}
	}`)

	settings := Load(path)
	assert.Equal(t, "/mnt/copias", settings.BackupDir)
	assert.Equal(t, "0 0 3 * * *", settings.BackupSchedule)
	assert.Equal(t, []string{"Maillot"}, settings.DefaultLists.Products)
	assert.Equal(t, []string{"CC Norte"}, settings.DefaultLists.Clubs)
}

func TestLoadPartialFileKeepsFallbacks(t *testing.T) {
	path := writeSettings(t, `{ backup_dir: "copias" }`)

	settings := Load(path)
	assert.Equal(t, "copias", settings.BackupDir)
	assert.Equal(t, "0 30 2 * * *", settings.BackupSchedule)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultSettings().DefaultLists, settings.DefaultLists)
}

func TestLoadMalformedFileUsesDefaults(t *testing.T) {
	path := writeSettings(t, `{ backup_dir: `)
	assert.Equal(t, DefaultSettings(), Load(path))
}
