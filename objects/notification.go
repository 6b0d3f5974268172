// /home/krylon/go/src/github.com/blicero/spesen/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:08:55 krylon>

// Package objects provides the data types used by the application.
package objects

import (
	"fmt"
	"time"

	"github.com/blicero/spesen/objects/category"
)

//go:generate ffjson notification.go

// Notification is a message shown to the user. Notifications are
// created by the notification service and stored in the notification
// log; they are never modified after creation.
type Notification struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Category  category.Category `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
}

// Payload returns the Notification's title and body, suitable for
// posting a desktop notification.
func (n *Notification) Payload() (string, string) {
	return n.Category.String(), n.Message
} // func (n *Notification) Payload() (string, string)

func (n *Notification) String() string {
	return fmt.Sprintf("Notification{ ID: %s, Category: %q, Timestamp: %s, Message: %q }",
		n.ID,
		n.Category,
		n.Timestamp.Format(time.RFC3339),
		n.Message)
} // func (n *Notification) String() string

// Settings are the user's notification preferences.
type Settings struct {
	NotificationsEnabled     bool `json:"notificationsEnabled"`
	TransactionNotifications bool `json:"transactionNotifications"`
}
