package leaderboard

// DefaultLimit is the number of entries returned when no limit is specified
// or limit <= 0
const DefaultLimit = 10

// Log message constants
const (
	LogMsgRecordHarvestCalled = "RecordHarvest called"
	LogMsgStatsSaveFailed     = "Failed to save leaderboard"
	LogMsgArcadeSaveFailed    = "Failed to save arcade scores"
	LogMsgScoreSubmitted      = "Arcade score submitted"
)

// Error message constants
const (
	ErrMsgAddressRequired = "address is required"
	ErrMsgUnknownMetric   = "unknown leaderboard metric"
	ErrMsgNegativeScore   = "score must be non-negative"
)
