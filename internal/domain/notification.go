package domain

// NotificationVariant classifies a user-facing notification
type NotificationVariant string

const (
	NotifyInfo    NotificationVariant = "info"
	NotifySuccess NotificationVariant = "success"
	NotifyError   NotificationVariant = "error"
)

// Notification is a fire-and-forget user-facing message
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}
