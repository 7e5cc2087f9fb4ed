package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pathserve/pathserve/internal/utils"
)

// renameRecord remembers a rename so it can be reverted once.
type renameRecord struct {
	from string
	to   string
}

// fileActions carries the REPL's filesystem side effects. The zero
// value is ready to use; these live beside the prompt, never in the
// search core.
type fileActions struct {
	lastRename *renameRecord
}

// open launches the platform opener for path, without waiting on it.
func (a *fileActions) open(path string) error {
	if !utils.FileExists(path) && !utils.DirExists(path) {
		return fmt.Errorf("no such path: %s", path)
	}
	if err := openerCommand(path).Start(); err != nil {
		return fmt.Errorf("launching opener: %w", err)
	}
	return nil
}

func openerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// rename moves oldPath to newName inside the same directory and records
// the change for undoRename.
func (a *fileActions) rename(oldPath, newName string) (string, error) {
	if !utils.ValidFilename(newName) {
		return "", fmt.Errorf("invalid filename: %q", newName)
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if utils.FileExists(newPath) || utils.DirExists(newPath) {
		return "", fmt.Errorf("target already exists: %s", newPath)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", err
	}
	a.lastRename = &renameRecord{from: oldPath, to: newPath}
	return newPath, nil
}

// undoRename reverts the most recent rename, once.
func (a *fileActions) undoRename() (string, error) {
	if a.lastRename == nil {
		return "", fmt.Errorf("nothing to undo")
	}
	rec := a.lastRename
	if err := os.Rename(rec.to, rec.from); err != nil {
		return "", err
	}
	a.lastRename = nil
	return rec.from, nil
}

// validCreatePath accepts nested paths but rejects traversal anywhere
// and unsafe characters in the final component.
func validCreatePath(path string) bool {
	if strings.Contains(path, "..") {
		return false
	}
	return utils.ValidFilename(filepath.Base(path))
}

func (a *fileActions) mkdir(path string) error {
	if !validCreatePath(path) {
		return fmt.Errorf("invalid directory path: %q", path)
	}
	return os.MkdirAll(path, 0o755)
}

func (a *fileActions) touch(path string) error {
	if !validCreatePath(path) {
		return fmt.Errorf("invalid file path: %q", path)
	}
	if utils.FileExists(path) {
		return fmt.Errorf("file already exists: %s", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// list reads a directory with containers sorted first.
func (a *fileActions) list(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}
