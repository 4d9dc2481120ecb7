package enums

type EntityType string

const (
	EntityTypeChatMessage EntityType = "chat_message"
	EntityTypeActivity    EntityType = "activity"
	EntityTypeReaction    EntityType = "reaction"
)
