package report

import (
	"os/exec"
	"runtime"
)

// Opener opens a file with the host's default handler
type Opener interface {
	Open(path string) error
}

// SystemOpener shells out to start, open or xdg-open depending on the OS
type SystemOpener struct {
	goos string
}

// NewSystemOpener creates an opener for the running OS
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS}
}

// Open starts the handler without waiting for it to exit
func (o *SystemOpener) Open(path string) error {
	cmd := o.command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (o *SystemOpener) command(path string) *exec.Cmd {
	switch o.goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
