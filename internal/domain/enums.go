package domain

// Segment is a coarse customer classification used to vary message tone.
type Segment string

const (
	SegmentNew       Segment = "new"
	SegmentReturning Segment = "returning"
	SegmentVIP       Segment = "vip"
	SegmentDormant   Segment = "dormant"
)

func (s Segment) String() string { return string(s) }

func (s Segment) IsValid() bool {
	switch s {
	case SegmentNew, SegmentReturning, SegmentVIP, SegmentDormant:
		return true
	}
	return false
}

// Channel is the delivery channel of an outbound message.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelSMS   Channel = "sms"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelSMS:
		return true
	}
	return false
}

// MessageStatus is the delivery state of an outbound message.
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

func (s MessageStatus) String() string { return string(s) }

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageStatusPending, MessageStatusSent, MessageStatusDelivered, MessageStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a message in status s may move to next.
// pending -> sent|delivered|failed, sent -> delivered|failed. Terminal states never move.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	switch s {
	case MessageStatusPending:
		return next == MessageStatusSent || next == MessageStatusDelivered || next == MessageStatusFailed
	case MessageStatusSent:
		return next == MessageStatusDelivered || next == MessageStatusFailed
	}
	return false
}
