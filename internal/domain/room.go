package domain

type RoomID string

// Room is descriptive metadata for a registered multicast group.
// Membership is derived elsewhere; a room never stores its members.
type Room struct {
	ID          RoomID `json:"roomId" mapstructure:"id"`
	Name        string `json:"displayName" mapstructure:"name"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	Image       string `json:"imageRef,omitempty" mapstructure:"image"`
}
