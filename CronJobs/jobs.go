package CronJobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"Imperyo/Backup"
	"Imperyo/Models"
)

// BackupScheduler writes a snapshot spreadsheet on a cron schedule, on top
// of the on-demand backup screen.
type BackupScheduler struct {
	cronScheduler  *cron.Cron
	state          *Models.AppState
	backupDir      string
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewBackupScheduler creates a scheduler over the shared working set.
func NewBackupScheduler(state *Models.AppState, backupDir, schedule string, runImmediately bool) *BackupScheduler {
	return &BackupScheduler{
		cronScheduler:  cron.New(cron.WithSeconds()),
		state:          state,
		backupDir:      backupDir,
		schedule:       schedule,
		runImmediately: runImmediately,
	}
}

// Start initiates the scheduled backup job.
func (b *BackupScheduler) Start() error {
	var err error
	b.jobID, err = b.cronScheduler.AddFunc(b.schedule, func() {
		log.Println("Running scheduled backup snapshot")
		b.runBackup()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	b.cronScheduler.Start()
	log.Printf("Backup scheduler started with schedule %q", b.schedule)

	if b.runImmediately {
		log.Println("Running initial backup snapshot")
		b.runBackup()
	}
	return nil
}

// Stop terminates the scheduler.
func (b *BackupScheduler) Stop() {
	if b.cronScheduler != nil {
		b.cronScheduler.Stop()
		log.Println("Backup scheduler stopped")
	}
}

// UpdateSchedule changes the cron spec of the backup job.
// Format: "0 30 2 * * *" = every day at 02:30:00.
func (b *BackupScheduler) UpdateSchedule(schedule string) error {
	b.cronScheduler.Remove(b.jobID)

	var err error
	b.jobID, err = b.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled backup snapshot")
		b.runBackup()
	})
	if err != nil {
		return fmt.Errorf("error rescheduling cron job: %w", err)
	}
	b.schedule = schedule
	return nil
}

func (b *BackupScheduler) runBackup() {
	if _, err := Backup.WriteSnapshot(b.state, b.backupDir); err != nil {
		log.Printf("Scheduled backup failed: %v", err)
	}
}
