package drive

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/upv-tools/upv-cli/common"
	"github.com/upv-tools/upv-cli/shell"
)

// Manager mounts, unmounts and opens the UPV network drive.
type Manager struct {
	runner shell.Runner
	out    io.Writer
	errOut io.Writer
}

// New creates a Manager with explicit collaborators.
func New(runner shell.Runner, out, errOut io.Writer) *Manager {
	return &Manager{runner: runner, out: out, errOut: errOut}
}

// NewManager creates a Manager bound to the real process runner and the
// process's standard streams.
func NewManager() *Manager {
	return New(shell.NewRunner(), os.Stdout, os.Stderr)
}

// SharePath builds the UNC path of a user's share. Shares are bucketed on
// the NAS by the first letter of the username, always lowercased, while the
// username itself keeps its casing.
func SharePath(username string, domain Domain) (string, error) {
	if username == "" {
		return "", common.ErrEmptyUsername
	}

	first, _ := utf8.DecodeRuneInString(username)
	bucket := unicode.ToLower(first)

	return fmt.Sprintf(`%s%c\%s`, domain.SharePrefix(), bucket, username), nil
}

// Mount maps the user's share onto the given drive letter. The password is
// optional; when empty no credentials are sent and net use authenticates
// with the current session. When openAfter is set, a successful mount is
// followed by Open with the existence check disabled, since the drive was
// just created.
func (m *Manager) Mount(username string, domain Domain, password string, letter rune, openAfter bool) error {
	path, err := SharePath(username, domain)
	if err != nil {
		return common.CodedFrom(common.ExitDriveError, err)
	}

	fmt.Fprintf(m.out, "Mounting %s as drive %c:...\n", path, letter)

	args := []string{"use", fmt.Sprintf("%c:", letter), path}
	if password != "" {
		args = append(args, fmt.Sprintf(`/user:%s\%s`, domain, username), password)
	}

	res, err := m.runner.Run("net", args...)
	if err != nil {
		return common.WrapError(err, "failed to run net")
	}
	if !res.Success {
		return common.NewCodedError(common.ExitDriveError,
			"failed to mount drive %c:: %s", letter, strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintf(m.out, "Drive %c: mounted successfully\n", letter)

	if openAfter {
		return m.Open(letter, false)
	}
	return nil
}

// Unmount removes the drive mapping. With force, net use is told to close
// open files without asking. net use reports a mapping with open files by
// mentioning the /N prompt on stdout; that case gets its own error so
// callers can tell "in use" from "not mounted".
func (m *Manager) Unmount(letter rune, force bool) error {
	fmt.Fprintf(m.out, "Unmounting drive %c:...\n", letter)

	args := []string{"use", fmt.Sprintf("%c:", letter), "/delete"}
	if force {
		args = append(args, "/y")
	}

	res, err := m.runner.Run("net", args...)
	if err != nil {
		return common.WrapError(err, "failed to run net")
	}
	if !res.Success {
		// Detection depends on net use's localized output mentioning the
		// /N prompt, so it is best effort.
		if strings.Contains(res.Stdout, "/N") {
			return common.CodedFrom(common.ExitDriveInUse, fmt.Errorf(
				"drive %c: has open files; close them or retry with --force: %w",
				letter, common.ErrDriveInUse))
		}
		return common.NewCodedError(common.ExitDriveError,
			"failed to unmount drive %c:: %s", letter, strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintf(m.out, "Drive %c: unmounted successfully\n", letter)
	return nil
}

// Open shows the drive in the file explorer. Explorer is spawned without
// waiting; it reports nothing useful through its exit code. With checkExists
// set, the drive root is stat'd first so a missing mount fails here instead
// of in a silent explorer window.
func (m *Manager) Open(letter rune, checkExists bool) error {
	root := fmt.Sprintf(`%c:\`, letter)

	if checkExists && !common.FileExists(root) {
		return common.CodedFrom(common.ExitDriveError, fmt.Errorf(
			"drive %c: is not mounted: %w", letter, common.ErrDriveNotFound))
	}

	fmt.Fprintf(m.out, "Opening drive %c: in explorer...\n", letter)

	if err := m.runner.Start("explorer.exe", root); err != nil {
		return common.WrapError(err, "failed to launch explorer")
	}
	return nil
}

// Status prints net use's report of current mappings verbatim.
func (m *Manager) Status() error {
	fmt.Fprintln(m.out, "Checking network drive status...")

	res, err := m.runner.Run("net", "use")
	if err != nil {
		return common.WrapError(err, "failed to run net")
	}

	fmt.Fprintln(m.out, res.Stdout)
	return nil
}
