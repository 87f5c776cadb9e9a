// Package archive moves a finished translation output aside so the next
// run starts from a clean slate while keeping the old results around.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveRun moves the output CSV and its progress log into an archive
// directory next to the output, named with a timestamp
func ArchiveRun(outputPath string) error {
	// Check if the output file exists
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return fmt.Errorf("output file does not exist: %s", outputPath)
	}

	// Get parent directory and create archive path
	parentDir := filepath.Dir(outputPath)
	archiveDir := filepath.Join(parentDir, "archive")

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Generate timestamp
	base := filepath.Base(outputPath)
	timestamp := time.Now().Format("20060102-150405")
	archiveName := fmt.Sprintf("%s-%s", timestamp, base)
	archivePath := filepath.Join(archiveDir, archiveName)

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archiveName = fmt.Sprintf("%s-%s", timestamp, base)
		archivePath = filepath.Join(archiveDir, archiveName)
	}

	// Move the output file into the archive
	if err := os.Rename(outputPath, archivePath); err != nil {
		return fmt.Errorf("failed to archive output file: %w", err)
	}

	// Move the progress log alongside it, if one exists
	logPath := outputPath + ".progress.log"
	if _, err := os.Stat(logPath); err == nil {
		if err := os.Rename(logPath, archivePath+".progress.log"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to archive progress log: %v\n", err)
		}
	}

	fmt.Printf("Output archived to: %s\n", archivePath)
	return nil
}
