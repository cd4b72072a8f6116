package Config

import (
	"log"
	"os"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"Imperyo/Models"
)

// Settings are the non-secret, per-deployment knobs. Secrets stay in the
// environment; this file can be edited and committed by the workshop.
type Settings struct {
	// BackupDir is where snapshot spreadsheets are written, relative to the
	// application root.
	BackupDir string `json:"backup_dir"`
	// BackupSchedule is the cron spec of the nightly snapshot.
	BackupSchedule string `json:"backup_schedule"`
	// DefaultLists seed the selectors when the store has no catalogue lists
	// yet (fresh deployment).
	DefaultLists Models.CatalogueLists `json:"default_lists"`
}

// DefaultSettings returns the built-in fallbacks.
func DefaultSettings() Settings {
	return Settings{
		BackupDir:      "backups",
		BackupSchedule: "0 30 2 * * *",
		DefaultLists: Models.CatalogueLists{
			Products:     []string{"Maillot", "Culotte", "Camiseta", "Chaleco", "Mono"},
			Fabrics:      []string{"Lycra", "Poliéster", "Malla"},
			PaymentTypes: []string{"Efectivo", "Transferencia", "Bizum"},
			Clubs:        []string{},
		},
	}
}

// Load reads the settings file, falling back to defaults when it is absent.
// The file is JSON5 so it can carry comments and unquoted keys.
func Load(path string) Settings {
	settings := DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading settings file %s: %v", path, err)
		}
		return settings
	}
	if err := json5.Unmarshal(raw, &settings); err != nil {
		log.Printf("Error parsing settings file %s, using defaults: %v", path, err)
		return DefaultSettings()
	}
	if settings.BackupDir == "" {
		settings.BackupDir = "backups"
	}
	if settings.BackupSchedule == "" {
		settings.BackupSchedule = "0 30 2 * * *"
	}
	return settings
}
