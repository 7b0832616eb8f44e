package vpn

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/upv-tools/upv-cli/common"
	"github.com/upv-tools/upv-cli/shell"
)

// Manager drives PowerShell and the RAS dialers to manage UPV VPN profiles.
// It holds no state of its own; every operation re-queries the registry.
type Manager struct {
	runner   shell.Runner
	prompter shell.Prompter
	out      io.Writer
	errOut   io.Writer
}

// New creates a Manager with explicit collaborators.
func New(runner shell.Runner, prompter shell.Prompter, out, errOut io.Writer) *Manager {
	return &Manager{
		runner:   runner,
		prompter: prompter,
		out:      out,
		errOut:   errOut,
	}
}

// NewManager creates a Manager bound to the real process runner and the
// process's standard streams.
func NewManager() *Manager {
	return New(shell.NewRunner(), shell.NewPrompter(), os.Stdout, os.Stderr)
}

// Create adds a new UPV VPN profile to the registry. The EAP payload is too
// large for a flat argument list, so the whole Add-VpnConnection call is
// delivered to PowerShell as a script over stdin with the payload embedded
// in a here-string. When autoConnect is set, a successful create is followed
// by Connect.
func (m *Manager) Create(name string, autoConnect bool) error {
	fmt.Fprintf(m.out, "Creating VPN connection '%s'...\n", name)

	script := fmt.Sprintf(
		"Add-VpnConnection -Name '%s' -ServerAddress '%s' -AuthenticationMethod Eap -EncryptionLevel Required -TunnelType Sstp -EapConfigXmlStream @'\r\n%s\r\n'@\r\n\r\n",
		name,
		common.VPNServerAddress,
		eapConfigXML(),
	)

	res, err := m.runner.RunScript("powershell", script, "-Command", "-")
	if err != nil {
		return common.WrapError(err, "failed to run PowerShell")
	}
	if !res.Success {
		return common.NewCodedError(common.ExitVPNError,
			"failed to create VPN connection '%s': %s", name, strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintf(m.out, "VPN connection '%s' created successfully\n", name)

	if autoConnect {
		return m.Connect(name)
	}
	return nil
}

// Connect opens the Windows connection dialog for an existing profile via
// rasphone. Success means the dialog was launched, not that the user
// completed authentication.
func (m *Manager) Connect(name string) error {
	fmt.Fprintf(m.out, "Opening connection dialog for '%s'...\n", name)

	res, err := m.runner.Run("rasphone", "-d", name)
	if err != nil {
		return common.WrapError(err, "failed to run rasphone")
	}
	if !res.Success {
		return common.NewCodedError(common.ExitVPNError,
			"failed to open connection dialog for '%s': %s", name, strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintf(m.out, "Connection dialog opened for '%s'\n", name)
	return nil
}

// Disconnect hangs up whatever dial-up connection is currently active.
// rasdial needs no profile name for this.
func (m *Manager) Disconnect() error {
	fmt.Fprintln(m.out, "Disconnecting from VPN...")

	res, err := m.runner.Run("rasdial", "/disconnect")
	if err != nil {
		return common.WrapError(err, "failed to run rasdial")
	}
	if !res.Success {
		return common.NewCodedError(common.ExitVPNError,
			"failed to disconnect from VPN: %s", strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintln(m.out, "Disconnected from VPN successfully")
	return nil
}

// Delete removes a single profile, asking for confirmation unless force is
// set. Declining is a successful no-op.
func (m *Manager) Delete(name string, force bool) error {
	if !force {
		ok, err := m.prompter.Confirm(fmt.Sprintf("Are you sure you want to delete VPN connection '%s'?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(m.out, "Operation cancelled.")
			return nil
		}
	}

	fmt.Fprintf(m.out, "Deleting VPN connection '%s'...\n", name)

	if err := m.deleteConnection(name); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "VPN connection '%s' deleted successfully\n", name)
	return nil
}

// List prints the tool-owned profiles in registry order.
func (m *Manager) List() error {
	fmt.Fprintln(m.out, "Listing UPV VPN connections...")

	connections, err := m.Connections()
	if err != nil {
		return err
	}

	if len(connections) == 0 {
		fmt.Fprintln(m.out, "No UPV VPN connections found.")
		return nil
	}

	fmt.Fprintf(m.out, "Found %d UPV VPN connection(s):\n", len(connections))
	for _, conn := range connections {
		fmt.Fprintf(m.out, "  - %s\n", conn)
	}
	return nil
}

// Purge deletes every tool-owned profile except those named in exceptNames.
// Unless force is set it requires two confirmations: a yes/no prompt naming
// the count, then typing DELETE verbatim. Individual deletion failures do
// not stop the loop or fail the operation; only the initial registry query
// can make Purge return a hard error.
func (m *Manager) Purge(force bool, exceptNames []string) error {
	all, err := m.Connections()
	if err != nil {
		return common.WrapError(err, "failed to retrieve UPV VPN connections")
	}

	var connections []string
	for _, conn := range all {
		if !common.StringInSlice(conn, exceptNames) {
			connections = append(connections, conn)
		}
	}

	if len(connections) == 0 {
		fmt.Fprintln(m.out, "No UPV VPN connections found to delete.")
		return nil
	}

	fmt.Fprintf(m.out, "Found %d UPV VPN connection(s) to delete:\n", len(connections))
	for _, conn := range connections {
		fmt.Fprintf(m.out, "  - %s\n", conn)
	}

	if !force {
		ok, err := m.prompter.Confirm(fmt.Sprintf("\nAre you sure you want to delete ALL %d UPV VPN connections?", len(connections)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(m.out, "Operation cancelled.")
			return nil
		}

		ok, err = m.prompter.Challenge("This action cannot be undone. Type 'DELETE' to confirm", "DELETE")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(m.out, "Operation cancelled.")
			return nil
		}
	}

	fmt.Fprintf(m.out, "\nDeleting %d UPV VPN connections...\n", len(connections))

	deleted := 0
	failed := 0
	for _, conn := range connections {
		if err := m.deleteConnection(conn); err != nil {
			fmt.Fprintf(m.errOut, "  ✗ Failed to delete '%s': %v\n", conn, err)
			failed++
			continue
		}
		fmt.Fprintf(m.out, "  ✓ Deleted '%s'\n", conn)
		deleted++
	}

	fmt.Fprintln(m.out, "\nPurge completed:")
	fmt.Fprintf(m.out, "  %d connections deleted successfully\n", deleted)
	if failed > 0 {
		fmt.Fprintf(m.out, "  %d connections failed to delete\n", failed)
	}

	return nil
}

// Status prints rasdial's report of active dial-ups verbatim; no parsing.
func (m *Manager) Status() error {
	fmt.Fprintln(m.out, "Checking VPN status...")

	res, err := m.runner.Run("rasdial")
	if err != nil {
		return common.WrapError(err, "failed to run rasdial")
	}

	fmt.Fprintln(m.out, res.Stdout)
	return nil
}

// Connections returns the names of tool-owned profiles: registry entries
// whose server address equals the fixed UPV gateway, in the order the
// registry reports them.
func (m *Manager) Connections() ([]string, error) {
	query := fmt.Sprintf(
		"Get-VpnConnection | Where-Object {$_.ServerAddress -eq '%s'} | Select-Object -ExpandProperty Name",
		common.VPNServerAddress,
	)

	res, err := m.runner.Run("powershell", "-Command", query)
	if err != nil {
		return nil, common.WrapError(err, "failed to run PowerShell")
	}
	if !res.Success {
		return nil, common.NewCodedError(common.ExitVPNError,
			"failed to get VPN connections: %s", strings.TrimSpace(res.Stderr))
	}

	var connections []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			connections = append(connections, name)
		}
	}

	return connections, nil
}

// deleteConnection removes one profile from the registry.
func (m *Manager) deleteConnection(name string) error {
	command := fmt.Sprintf("Remove-VpnConnection -Name '%s' -Force", name)

	res, err := m.runner.Run("powershell", "-Command", command)
	if err != nil {
		return common.WrapError(err, "failed to run PowerShell")
	}
	if !res.Success {
		return common.NewCodedError(common.ExitVPNError,
			"failed to delete VPN connection '%s': %s", name, strings.TrimSpace(res.Stderr))
	}

	return nil
}
