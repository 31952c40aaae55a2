package main

import (
	"fmt"
	"io/fs"
	"os"

	"gamelib/db/migrations"
)

// validateCommand checks the flag combination before any connection is made.
func validateCommand(command, name string) error {
	switch command {
	case "up", "down", "status":
		return nil
	case "create":
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q: use up, down, status, create", command)
	}
}

// migrationSource reads migrations from dir when it exists so freshly created
// files are picked up, and falls back to the copy embedded in the binary.
func migrationSource(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	return migrations.FS
}
