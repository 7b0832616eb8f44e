package common

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "upv-cli"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "upv-cli"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "upv-cli.log"
)

// VPN constants.
const (
	// VPNServerAddress is the fixed address of UPV's VPN gateway. Registry
	// entries whose server address equals this constant are the only ones
	// this tool treats as its own; everything else in the shared Windows
	// connection registry is left alone.
	VPNServerAddress = "vpn.upv.es"
)

// Network drive constants.
const (
	// ShareHost is the NAS serving the personal network drives.
	ShareHost = "nasupv.upv.es"
	// DefaultDriveLetter is where Disco W is mounted unless told otherwise.
	DefaultDriveLetter = 'W'
)
