package app

import (
	"fmt"
	"io"
	"os"

	"filippo.io/age"
)

// Export writes a complete snapshot of the catalog and log database to
// destPath. When the config names an age recipient key file, the
// snapshot is encrypted to that recipient; otherwise it is written as
// a plain SQLite file.
func (a *App) Export(destPath string) error {
	tmpFile, err := os.CreateTemp("", "caloriemgl-export-*.db")
	if err != nil {
		return fmt.Errorf("creating temp file for export: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	// VACUUM INTO refuses to overwrite; the temp file must not exist.
	os.Remove(tmpPath)

	if err := a.store.BackupTo(tmpPath); err != nil {
		return fmt.Errorf("snapshotting database: %w", err)
	}

	if a.cfg.Export.RecipientPath == "" {
		return copyFile(tmpPath, destPath)
	}
	return encryptFile(tmpPath, destPath, a.cfg.Export.RecipientPath)
}

// encryptFile encrypts src to dest using the age recipients listed in
// recipientPath.
func encryptFile(src, dest, recipientPath string) error {
	keyFile, err := os.Open(recipientPath)
	if err != nil {
		return fmt.Errorf("opening recipient key file: %w", err)
	}
	defer keyFile.Close()

	recipients, err := age.ParseRecipients(keyFile)
	if err != nil {
		return fmt.Errorf("parsing recipient key file: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer out.Close()

	w, err := age.Encrypt(out, recipients...)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted export: %w", err)
	}
	return out.Close()
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return out.Close()
}
