// Package vpn manages UPV VPN connection profiles through the Windows
// connection registry.
//
// All state lives in the registry itself; the package re-queries it on every
// command and never persists anything of its own. Profiles are considered
// tool-owned only when their server address matches the fixed UPV gateway,
// which is the sole disambiguation mechanism for list and purge: the
// registry is shared with entries this tool did not create.
//
// External collaborators:
//
//   - PowerShell: Add-VpnConnection, Get-VpnConnection, Remove-VpnConnection
//   - rasphone: opens the connection dialog for an existing profile
//   - rasdial: disconnects and reports active dial-ups
//
// Every operation is synchronous; one external process runs at a time.
package vpn
