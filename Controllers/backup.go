package Controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"Imperyo/Backup"
	"Imperyo/Models"
	"Imperyo/Store"
)

// BackupHandler serves the on-demand backup and the restore-from-snapshot
// screens.
type BackupHandler struct {
	State     *Models.AppState
	Gateway   *Store.Gateway
	BackupDir string
}

// NewBackupHandler creates a backup handler.
func NewBackupHandler(state *Models.AppState, gateway *Store.Gateway, backupDir string) *BackupHandler {
	return &BackupHandler{
		State:     state,
		Gateway:   gateway,
		BackupDir: backupDir,
	}
}

// RunBackup writes a snapshot spreadsheet of the whole working set.
func (h *BackupHandler) RunBackup(c *fiber.Ctx) error {
	path, err := Backup.WriteSnapshot(h.State, h.BackupDir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Backup failed: %v", err),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Backup written",
		"path":    path,
	})
}

// Restore wipes and re-inserts each collection from an uploaded snapshot
// file, then reloads the working set from the store. Per-sheet partial
// success is allowed.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	file, err := c.FormFile("snapshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing snapshot file",
		})
	}

	tmpPath := filepath.Join(os.TempDir(), file.Filename)
	if err := c.SaveFile(file, tmpPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Could not store upload: %v", err),
		})
	}
	defer os.Remove(tmpPath)

	restoreErr := Backup.Restore(c.Context(), h.Gateway, tmpPath)

	// Reload whatever the store now holds, even after a partial restore.
	if reloaded, err := h.Gateway.LoadAll(c.Context()); err == nil {
		*h.State = *reloaded
	}

	if restoreErr != nil {
		return RespondError(c, restoreErr)
	}
	return c.JSON(fiber.Map{
		"message": "Restore completed",
	})
}
