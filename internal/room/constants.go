package room

// Action names used for the in-flight payment guard and metrics labels
const (
	ActionPlantSeed        = "plant_seed"
	ActionUpgradeEquipment = "upgrade_equipment"
	ActionUpgradeCapacity  = "upgrade_capacity"
)

// DefaultSessionCacheSize bounds how many grow rooms are held in memory at
// once; evicted sessions are saved and reloaded on their next action.
const DefaultSessionCacheSize = 256

// Log message constants
const (
	LogMsgConnectCalled       = "Connect called"
	LogMsgDisconnectCalled    = "Disconnect called"
	LogMsgPlantSeedCalled     = "PlantSeed called"
	LogMsgHarvestCalled       = "HarvestPlant called"
	LogMsgUpgradeEquipCalled  = "UpgradeEquipment called"
	LogMsgUpgradeCapCalled    = "UpgradeCapacity called"
	LogMsgOfflineCredit       = "Applied offline growth credit"
	LogMsgSaveFailed          = "Failed to save room state"
	LogMsgSessionEvicted      = "Session evicted from cache"
	LogMsgSeedPlanted         = "Seed planted"
	LogMsgPlantHarvested      = "Plant harvested"
	LogMsgEquipmentUpgraded   = "Equipment upgraded"
	LogMsgCapacityUpgraded    = "Plant capacity upgraded"
	LogMsgPaymentFailed       = "Payment failed, state unchanged"
	LogMsgRefundFailed        = "Refund failed after precondition change"
	LogMsgBalanceRefreshed    = "Wallet balance refreshed"
	LogMsgNotifyFailedHarvest = "Failed to announce harvest"
)
