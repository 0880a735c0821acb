package worker

const (
	GrowthWorkerName   = "growth"
	AutosaveWorkerName = "autosave"

	DefaultPoolWorkers   = 2
	DefaultPoolQueueSize = 64

	LogMsgWorkerJobFailed  = "worker job failed"
	LogMsgAutosaveDeferred = "autosave queue full, deferring flush to next sweep"
)
