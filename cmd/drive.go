package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upv-tools/upv-cli/drive"
	"github.com/upv-tools/upv-cli/keyring"
	"github.com/upv-tools/upv-cli/shell"
)

var (
	drivePassword     string
	driveAskPassword  bool
	driveSavePassword bool
	driveLetterFlag   string
	driveOpenAfter    bool
	driveUnmountForce bool
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Manage the UPV network drive",
}

var driveMountCmd = &cobra.Command{
	Use:   "mount [USERNAME [DOMAIN]]",
	Short: "Mount the UPV network drive",
	Long: `Mount the user's share from the UPV NAS as a local drive letter.
Username and domain fall back to the values stored in the configuration
file. Without a password the mount authenticates with the current session;
--ask-password prompts for one, and --save-password stores it in the
system keyring for later mounts.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, domain, err := resolveAccount(args)
		if err != nil {
			return err
		}
		letter, err := resolveLetter()
		if err != nil {
			return err
		}

		password := drivePassword
		if driveAskPassword {
			password, err = shell.NewPrompter().Password(fmt.Sprintf("Password for %s\\%s", domain, username))
			if err != nil {
				return err
			}
		}
		if password == "" {
			// A previously saved password beats an unauthenticated mount.
			if saved, err := keyring.Get(username, domain.String()); err == nil {
				fmt.Printf("Using saved password for %s\\%s\n", domain, username)
				password = saved
			}
		}

		if err := drive.NewManager().Mount(username, domain, password, letter, driveOpenAfter); err != nil {
			return err
		}

		if driveSavePassword && password != "" {
			if err := keyring.Store(username, domain.String(), password); err != nil {
				return fmt.Errorf("drive mounted, but saving the password failed: %w", err)
			}
		}
		return nil
	},
}

var driveUnmountCmd = &cobra.Command{
	Use:   "unmount",
	Short: "Unmount the UPV network drive",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, err := resolveLetter()
		if err != nil {
			return err
		}
		return drive.NewManager().Unmount(letter, driveUnmountForce)
	},
}

var driveOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the UPV network drive in the file explorer",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, err := resolveLetter()
		if err != nil {
			return err
		}
		return drive.NewManager().Open(letter, true)
	},
}

var driveForgetCmd = &cobra.Command{
	Use:   "forget [USERNAME [DOMAIN]]",
	Short: "Remove a saved password from the keyring",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, domain, err := resolveAccount(args)
		if err != nil {
			return err
		}
		if err := keyring.Delete(username, domain.String()); err != nil {
			return err
		}
		fmt.Printf("Removed saved password for %s\\%s\n", domain, username)
		return nil
	},
}

var driveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current network drive mappings",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return drive.NewManager().Status()
	},
}

// resolveAccount combines positional arguments with configured defaults.
func resolveAccount(args []string) (string, drive.Domain, error) {
	username := cfg.DefaultUsername
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		return "", "", errors.New("no username given and no default_username configured")
	}

	domainName := cfg.DefaultDomain
	if len(args) > 1 {
		domainName = args[1]
	}
	domain, err := drive.ParseDomain(domainName)
	if err != nil {
		return "", "", err
	}
	return username, domain, nil
}

func resolveLetter() (rune, error) {
	name := driveLetterFlag
	if name == "" {
		name = cfg.DefaultDrive
	}
	return drive.ParseLetter(name)
}

func init() {
	driveMountCmd.Flags().StringVarP(&drivePassword, "password", "p", "", "password for the share")
	driveMountCmd.Flags().BoolVar(&driveAskPassword, "ask-password", false, "prompt for the password")
	driveMountCmd.Flags().BoolVar(&driveSavePassword, "save-password", false, "store the password in the system keyring")
	driveMountCmd.Flags().BoolVarP(&driveOpenAfter, "open", "o", false, "open the drive in the explorer after mounting")
	driveUnmountCmd.Flags().BoolVarP(&driveUnmountForce, "force", "f", false, "close open files without asking")

	for _, cmd := range []*cobra.Command{driveMountCmd, driveUnmountCmd, driveOpenCmd} {
		cmd.Flags().StringVarP(&driveLetterFlag, "drive", "d", "", "drive letter (defaults to the configured letter)")
	}

	driveCmd.AddCommand(driveMountCmd)
	driveCmd.AddCommand(driveUnmountCmd)
	driveCmd.AddCommand(driveOpenCmd)
	driveCmd.AddCommand(driveForgetCmd)
	driveCmd.AddCommand(driveStatusCmd)
}
