package model

type SubscriptionToggleResult struct {
	ChannelUUID string `json:"channel_uuid"`
	Subscribed  bool   `json:"is_subscribed"`
}
