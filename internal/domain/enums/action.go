package enums

// ActionName identifies an action submitted to the moderation backend.
type ActionName string

const (
	ActionMarkReviewed  ActionName = "mark_reviewed"
	ActionDeleteMessage ActionName = "delete_message"
)

type AuditAction string

const (
	AuditActionSessionStart AuditAction = "SESSION_START"
	AuditActionMarkReviewed AuditAction = "MARK_REVIEWED"
	AuditActionDeleteItem   AuditAction = "DELETE_ITEM"
)
