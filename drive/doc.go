// Package drive mounts and unmounts the UPV "Disco W" network share as a
// local drive letter through net use, and opens the mounted drive in the
// file explorer.
//
// The UNC path of a user's share is derived from the account domain and the
// username; see SharePath. Credentials are only passed to net use when a
// password is available, otherwise the mount relies on the current session.
package drive
