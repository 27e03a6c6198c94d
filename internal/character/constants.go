package character

// Store operations, used as the metric label for remote write failures
const (
	OpSaveCharacter = "save_character"
)

// Log messages
const (
	LogMsgRemoteWriteFailed = "Character save failed, keeping local change"
	LogMsgPublishFailed     = "Failed to publish character event"
)

// WarnFmtRemoteWrite is the user-facing warning for a failed save
const WarnFmtRemoteWrite = "saved locally but the shared store rejected the change: %v"
