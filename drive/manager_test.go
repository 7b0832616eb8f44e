package drive

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/upv-tools/upv-cli/common"
	"github.com/upv-tools/upv-cli/shell"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls   []recordedCall
	results []shell.Result
	errs    []error
}

func (f *fakeRunner) next() (shell.Result, error) {
	idx := len(f.calls) - 1
	var res shell.Result
	var err error
	if idx < len(f.results) {
		res = f.results[idx]
	}
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return res, err
}

func (f *fakeRunner) Run(name string, args ...string) (shell.Result, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return f.next()
}

func (f *fakeRunner) RunScript(name, script string, args ...string) (shell.Result, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return f.next()
}

func (f *fakeRunner) Start(name string, args ...string) error {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	_, err := f.next()
	return err
}

func newTestManager(runner *fakeRunner) (*Manager, *bytes.Buffer) {
	var out bytes.Buffer
	return New(runner, &out, &out), &out
}

func TestSharePath(t *testing.T) {
	tests := []struct {
		name     string
		username string
		domain   Domain
		want     string
	}{
		{"student", "jperez", DomainAlumno, `\\nasupv.upv.es\alumnos\j\jperez`},
		{"staff", "mgarcia", DomainUPVNet, `\\nasupv.upv.es\discos\m\mgarcia`},
		{"uppercase first letter", "Jperez", DomainAlumno, `\\nasupv.upv.es\alumnos\j\Jperez`},
		{"preserves inner casing", "aLopez", DomainUPVNet, `\\nasupv.upv.es\discos\a\aLopez`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SharePath(tt.username, tt.domain)
			if err != nil {
				t.Fatalf("SharePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SharePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSharePath_EmptyUsername(t *testing.T) {
	_, err := SharePath("", DomainAlumno)
	if !errors.Is(err, common.ErrEmptyUsername) {
		t.Errorf("error = %v, want ErrEmptyUsername", err)
	}
}

func TestMount_EmptyUsernameRunsNothing(t *testing.T) {
	runner := &fakeRunner{}
	m, _ := newTestManager(runner)

	err := m.Mount("", DomainAlumno, "", 'W', false)
	if !errors.Is(err, common.ErrEmptyUsername) {
		t.Fatalf("error = %v, want ErrEmptyUsername", err)
	}
	if code := common.ExitCodeFor(err); code != common.ExitDriveError {
		t.Errorf("exit code = %d, want %d", code, common.ExitDriveError)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner invoked %d times, want 0", len(runner.calls))
	}
}

func TestMount_WithoutPassword(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Success: true}}}
	m, _ := newTestManager(runner)

	if err := m.Mount("jperez", DomainAlumno, "", 'W', false); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	call := runner.calls[0]
	want := []string{"use", "W:", `\\nasupv.upv.es\alumnos\j\jperez`}
	if call.name != "net" || len(call.args) != len(want) {
		t.Fatalf("call = %s %v, want net %v", call.name, call.args, want)
	}
	for i := range want {
		if call.args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, call.args[i], want[i])
		}
	}
}

func TestMount_WithPassword(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Success: true}}}
	m, _ := newTestManager(runner)

	if err := m.Mount("mgarcia", DomainUPVNet, "secret", 'X', false); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	call := runner.calls[0]
	if len(call.args) != 5 {
		t.Fatalf("args = %v, want 5 elements", call.args)
	}
	if call.args[3] != `/user:UPVNET\mgarcia` {
		t.Errorf("user arg = %q", call.args[3])
	}
	if call.args[4] != "secret" {
		t.Errorf("password arg = %q", call.args[4])
	}
}

func TestMount_Failure(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Stderr: "System error 85 has occurred.", Success: false}}}
	m, _ := newTestManager(runner)

	err := m.Mount("jperez", DomainAlumno, "", 'W', false)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := common.ExitCodeFor(err); code != common.ExitDriveError {
		t.Errorf("exit code = %d, want %d", code, common.ExitDriveError)
	}
	if !strings.Contains(err.Error(), "System error 85") {
		t.Errorf("error does not carry stderr: %v", err)
	}
}

func TestMount_OpenAfterSkipsExistenceCheck(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Success: true}, {Success: true}}}
	m, _ := newTestManager(runner)

	// The drive letter does not exist on the test host; openAfter must not
	// stat it before launching explorer.
	if err := m.Mount("jperez", DomainAlumno, "", 'W', true); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("got %d runner calls, want 2", len(runner.calls))
	}
	second := runner.calls[1]
	if second.name != "explorer.exe" || len(second.args) != 1 || second.args[0] != `W:\` {
		t.Errorf("second call = %s %v, want explorer.exe [W:\\]", second.name, second.args)
	}
}

func TestUnmount(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Success: true}}}
	m, _ := newTestManager(runner)

	if err := m.Unmount('W', false); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	call := runner.calls[0]
	want := []string{"use", "W:", "/delete"}
	if len(call.args) != len(want) {
		t.Fatalf("args = %v, want %v", call.args, want)
	}
}

func TestUnmount_Forced(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Success: true}}}
	m, _ := newTestManager(runner)

	if err := m.Unmount('W', true); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	call := runner.calls[0]
	if call.args[len(call.args)-1] != "/y" {
		t.Errorf("forced unmount missing /y: %v", call.args)
	}
}

func TestUnmount_InUse(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{
		Stdout:  "You have open files on W:.  Do you want to continue this operation? (Y/N) [N]:",
		Success: false,
	}}}
	m, _ := newTestManager(runner)

	err := m.Unmount('W', false)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := common.ExitCodeFor(err); code != common.ExitDriveInUse {
		t.Errorf("exit code = %d, want %d", code, common.ExitDriveInUse)
	}
	if !errors.Is(err, common.ErrDriveInUse) {
		t.Errorf("error = %v, want ErrDriveInUse", err)
	}
	if !strings.Contains(err.Error(), "open files") {
		t.Errorf("error = %v", err)
	}
}

func TestUnmount_NotMounted(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{
		Stderr:  "The network connection could not be found.",
		Success: false,
	}}}
	m, _ := newTestManager(runner)

	err := m.Unmount('W', false)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := common.ExitCodeFor(err); code != common.ExitDriveError {
		t.Errorf("exit code = %d, want %d", code, common.ExitDriveError)
	}
}

func TestOpen_MissingDrive(t *testing.T) {
	runner := &fakeRunner{}
	m, _ := newTestManager(runner)

	// Q: is by far the least likely letter to be mapped on a test host.
	err := m.Open('Q', true)
	if err == nil {
		t.Skip("drive Q: exists on this host")
	}
	if code := common.ExitCodeFor(err); code != common.ExitDriveError {
		t.Errorf("exit code = %d, want %d", code, common.ExitDriveError)
	}
	if !errors.Is(err, common.ErrDriveNotFound) {
		t.Errorf("error = %v, want ErrDriveNotFound", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("explorer launched for missing drive: %d calls", len(runner.calls))
	}
}

func TestStatus_PrintsRawOutput(t *testing.T) {
	runner := &fakeRunner{results: []shell.Result{{Stdout: "Status  Local  Remote\nOK      W:     \\\\nasupv.upv.es\\discos\\m\\mgarcia", Success: true}}}
	m, out := newTestManager(runner)

	if err := m.Status(); err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !strings.Contains(out.String(), `W:`) {
		t.Errorf("output = %q", out.String())
	}
	call := runner.calls[0]
	if call.name != "net" || len(call.args) != 1 || call.args[0] != "use" {
		t.Errorf("call = %s %v, want net [use]", call.name, call.args)
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{"ALUMNO", DomainAlumno, false},
		{"alumno", DomainAlumno, false},
		{"Alumno", DomainAlumno, false},
		{"UPVNET", DomainUPVNet, false},
		{"upvnet", DomainUPVNet, false},
		{" upvnet ", DomainUPVNet, false},
		{"", "", true},
		{"STAFF", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDomain(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDomain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDomain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLetter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"W", 'W', false},
		{"w", 'W', false},
		{"W:", 'W', false},
		{"x:", 'X', false},
		{" Z ", 'Z', false},
		{"", 0, true},
		{"WX", 0, true},
		{"1", 0, true},
		{":", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLetter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLetter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLetter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDomainSharePrefixes(t *testing.T) {
	if p := DomainAlumno.SharePrefix(); p != `\\nasupv.upv.es\alumnos\` {
		t.Errorf("ALUMNO prefix = %q", p)
	}
	if p := DomainUPVNet.SharePrefix(); p != `\\nasupv.upv.es\discos\` {
		t.Errorf("UPVNET prefix = %q", p)
	}
}
