package config

// Store backend selector values
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

// Defaults applied when the corresponding environment variable is unset
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"
	DefaultDataDir     = "data"

	DefaultTickInterval     = "1s"
	DefaultAutosaveInterval = "5s"
	DefaultMaxOfflineCredit = "12h"

	DefaultFaucetAmount = "10"

	// DefaultTreasuryAddr receives simulated payments for seeds and upgrades
	DefaultTreasuryAddr = "0x000000000000000000000000000000000000dEaD"
)
