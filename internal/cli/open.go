package cli

import (
	"os/exec"
	"runtime"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

// revealCommand returns the program that opens dir in the file browser of
// goos.
func revealCommand(goos, dir string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{dir}, nil
	case "windows":
		return "explorer", []string{dir}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{dir}, nil
	}
	return "", nil, errors.New(errors.ErrCodeUnsupported, "cannot open folders on %s", goos)
}

// revealFolder opens dir in the platform file browser without waiting for
// it to close. The browser is not tied to a context so it outlives the run.
func revealFolder(dir string) error {
	name, args, err := revealCommand(runtime.GOOS, dir)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "run %s", name)
	}
	go cmd.Wait() //nolint:errcheck // explorer exits non-zero on success
	return nil
}
