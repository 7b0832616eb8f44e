package cmd

import (
	"github.com/spf13/cobra"

	"github.com/upv-tools/upv-cli/vpn"
)

var (
	vpnCreateConnect bool
	vpnDeleteForce   bool
	vpnPurgeForce    bool
	vpnPurgeExcept   []string
)

var vpnCmd = &cobra.Command{
	Use:   "vpn",
	Short: "Manage UPV VPN connections",
}

var vpnCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new UPV VPN connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Create(args[0], vpnCreateConnect)
	},
}

var vpnConnectCmd = &cobra.Command{
	Use:   "connect NAME",
	Short: "Open the connection dialog for a VPN connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Connect(args[0])
	},
}

var vpnDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect from the VPN",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Disconnect()
	},
}

var vpnDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a VPN connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Delete(args[0], vpnDeleteForce)
	},
}

var vpnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List UPV VPN connections",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().List()
	},
}

var vpnPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all UPV VPN connections",
	Long: `Delete every VPN connection that points at the UPV gateway.
Connections named with --except are kept. Without --force the purge asks
for confirmation twice.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Purge(vpnPurgeForce, vpnPurgeExcept)
	},
}

var vpnStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current VPN connection status",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vpn.NewManager().Status()
	},
}

func init() {
	vpnCreateCmd.Flags().BoolVarP(&vpnCreateConnect, "connect", "c", false, "open the connection dialog after creating")
	vpnDeleteCmd.Flags().BoolVarP(&vpnDeleteForce, "force", "f", false, "delete without asking for confirmation")
	vpnPurgeCmd.Flags().BoolVarP(&vpnPurgeForce, "force", "f", false, "purge without asking for confirmation")
	vpnPurgeCmd.Flags().StringArrayVarP(&vpnPurgeExcept, "except", "e", nil, "connection to keep (repeatable)")

	vpnCmd.AddCommand(vpnCreateCmd)
	vpnCmd.AddCommand(vpnConnectCmd)
	vpnCmd.AddCommand(vpnDisconnectCmd)
	vpnCmd.AddCommand(vpnDeleteCmd)
	vpnCmd.AddCommand(vpnListCmd)
	vpnCmd.AddCommand(vpnPurgeCmd)
	vpnCmd.AddCommand(vpnStatusCmd)
}
