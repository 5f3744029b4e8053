package core

import "github.com/dkeye/Chat/internal/domain"

// EventType tags every frame crossing the transport. The set is
// closed: adapters switch over these constants instead of
// registering handlers by name.
type EventType string

const (
	// inbound
	EventJoinRoom    EventType = "join_room"
	EventSendMessage EventType = "send_message"

	// outbound
	EventRoomList        EventType = "room_list"
	EventJoinAck         EventType = "join_acknowledged"
	EventPresenceChanged EventType = "presence_changed"
	EventMessageReceived EventType = "message_received"
	EventSystemNotice    EventType = "system_notice"
	EventError           EventType = "error"
)

// PresenceKind discriminates presence_changed payloads.
type PresenceKind string

const (
	PresenceJoined PresenceKind = "joined"
	PresenceLeft   PresenceKind = "left"
)

// Event is the sealed union of outbound frames. Only types in this
// package implement it.
type Event interface {
	Kind() EventType
	isEvent()
}

// Envelope is the minimal inbound frame: adapters decode the type
// first, then the payload for that type.
type Envelope struct {
	Type EventType `json:"type"`
}

// JoinRoomPayload is the body of an inbound join_room frame.
type JoinRoomPayload struct {
	Room domain.RoomID `json:"roomId"`
}

// SendMessagePayload is the body of an inbound send_message frame.
type SendMessagePayload struct {
	Text string `json:"text"`
}

type RoomList struct {
	Type  EventType     `json:"type"`
	Rooms []domain.Room `json:"rooms"`
}

type JoinAck struct {
	Type EventType     `json:"type"`
	Room domain.RoomID `json:"roomId"`
}

type PresenceChanged struct {
	Type        EventType         `json:"type"`
	Room        domain.RoomID     `json:"roomId"`
	Members     []domain.Identity `json:"members"`
	ChangedUser domain.Identity   `json:"changedUser"`
	Change      PresenceKind      `json:"kind"`
}

type MessageReceived struct {
	Type      EventType       `json:"type"`
	ID        string          `json:"id"`
	Sender    domain.Identity `json:"sender"`
	Text      string          `json:"text"`
	Timestamp int64           `json:"timestamp"`
}

type SystemNotice struct {
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp int64     `json:"timestamp"`
}

type ErrorEvent struct {
	Type   EventType `json:"type"`
	Reason string    `json:"reason"`
}

func NewRoomList(rooms []domain.Room) RoomList {
	return RoomList{Type: EventRoomList, Rooms: rooms}
}

func NewJoinAck(room domain.RoomID) JoinAck {
	return JoinAck{Type: EventJoinAck, Room: room}
}

func NewPresenceChanged(room domain.RoomID, members []domain.Identity, changed domain.Identity, kind PresenceKind) PresenceChanged {
	return PresenceChanged{Type: EventPresenceChanged, Room: room, Members: members, ChangedUser: changed, Change: kind}
}

func NewMessageReceived(id string, sender domain.Identity, text string, ts int64) MessageReceived {
	return MessageReceived{Type: EventMessageReceived, ID: id, Sender: sender, Text: text, Timestamp: ts}
}

func NewSystemNotice(message string, ts int64) SystemNotice {
	return SystemNotice{Type: EventSystemNotice, Message: message, Timestamp: ts}
}

func NewErrorEvent(reason string) ErrorEvent {
	return ErrorEvent{Type: EventError, Reason: reason}
}

func (e RoomList) Kind() EventType        { return e.Type }
func (e JoinAck) Kind() EventType         { return e.Type }
func (e PresenceChanged) Kind() EventType { return e.Type }
func (e MessageReceived) Kind() EventType { return e.Type }
func (e SystemNotice) Kind() EventType    { return e.Type }
func (e ErrorEvent) Kind() EventType      { return e.Type }

func (RoomList) isEvent()        {}
func (JoinAck) isEvent()         {}
func (PresenceChanged) isEvent() {}
func (MessageReceived) isEvent() {}
func (SystemNotice) isEvent()    {}
func (ErrorEvent) isEvent()      {}
