// Package models defines the Eludris API data shapes shared by the REST and
// gateway clients. Field names and casing match the instance's JSON contract.
package models

// StatusType is a user's presence kind.
type StatusType string

// Presence kinds reported by the instance.
const (
	StatusOnline  StatusType = "ONLINE"
	StatusOffline StatusType = "OFFLINE"
	StatusIdle    StatusType = "IDLE"
	StatusBusy    StatusType = "BUSY"
)

// Status is a user's presence, optionally with a custom text.
type Status struct {
	Text *string    `json:"text,omitempty"`
	Type StatusType `json:"type"`
}

// User is a single user record as sent by the instance.
type User struct {
	DisplayName  *string `json:"display_name,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Avatar       *uint64 `json:"avatar,omitempty"`
	Username     string  `json:"username"`
	Status       Status  `json:"status"`
	ID           uint64  `json:"id"`
	SocialCredit int64   `json:"social_credit"`
	Badges       uint64  `json:"badges"`
	Permissions  uint64  `json:"permissions"`
}

// Message is a chat message. The same shape is used for sending and receiving.
type Message struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// InstanceInfo is the metadata payload served at an instance's REST root.
// GatewayURL ("pandemonium_url") is where the real-time connection lives.
type InstanceInfo struct {
	Description        *string `json:"description,omitempty"`
	InstanceName       string  `json:"instance_name"`
	Version            string  `json:"version"`
	OprishURL          string  `json:"oprish_url"`
	PandemoniumURL     string  `json:"pandemonium_url"`
	EffisURL           string  `json:"effis_url"`
	MessageLimit       int     `json:"message_limit"`
	FileSize           uint64  `json:"file_size"`
	AttachmentFileSize uint64  `json:"attachment_file_size"`
}
