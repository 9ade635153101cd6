package pdf

import (
	"log"
	"os/exec"
	"runtime"
)

// Opener hands a finished output file to the platform's default application.
// Calls are best-effort by contract: failures are logged and swallowed, never
// surfaced to the task that produced the file.
type Opener interface {
	Open(path string)
}

// DefaultAppOpener shells out to the platform launcher.
type DefaultAppOpener struct{}

func (DefaultAppOpener) Open(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Warning: could not open %s with default app: %v", path, err)
		return
	}
	// Reap the launcher so finished previews don't linger as zombies.
	go cmd.Wait()
}

// NopOpener is used when preview is disabled.
type NopOpener struct{}

func (NopOpener) Open(string) {}
