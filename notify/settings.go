// /home/krylon/go/src/github.com/blicero/spesen/notify/settings.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 11:52:26 krylon>

package notify

import (
	"strconv"

	"github.com/blicero/spesen/objects"
)

// The toggles are stored and reported, but the Service itself does not
// consult them.

func (s *Service) flag(key string) bool {
	var val, _, err = s.store.Get(key)

	if err != nil {
		s.log.Printf("[ERROR] Cannot read setting %s: %s\n",
			key,
			err.Error())
	}

	// Anything but an explicit "false" counts as enabled.
	return val != "false"
} // func (s *Service) flag(key string) bool

// Settings returns the user's notification preferences.
func (s *Service) Settings() objects.Settings {
	return objects.Settings{
		NotificationsEnabled:     s.flag(KeyNotificationsEnabled),
		TransactionNotifications: s.flag(KeyTransactionNotifications),
	}
} // func (s *Service) Settings() objects.Settings

// SetNotificationsEnabled turns notifications on or off. Turning them off
// turns off transaction notifications as well.
func (s *Service) SetNotificationsEnabled(on bool) error {
	var err error

	if err = s.store.Set(KeyNotificationsEnabled, strconv.FormatBool(on)); err != nil {
		s.log.Printf("[ERROR] Cannot save setting %s: %s\n",
			KeyNotificationsEnabled,
			err.Error())
		return err
	} else if !on {
		return s.SetTransactionNotifications(false)
	}

	return nil
} // func (s *Service) SetNotificationsEnabled(on bool) error

// SetTransactionNotifications turns transaction notifications on or off.
func (s *Service) SetTransactionNotifications(on bool) error {
	var err error

	if err = s.store.Set(KeyTransactionNotifications, strconv.FormatBool(on)); err != nil {
		s.log.Printf("[ERROR] Cannot save setting %s: %s\n",
			KeyTransactionNotifications,
			err.Error())
	}

	return err
} // func (s *Service) SetTransactionNotifications(on bool) error

// ApplySettings stores both toggles at once.
func (s *Service) ApplySettings(cfg objects.Settings) error {
	if err := s.SetNotificationsEnabled(cfg.NotificationsEnabled); err != nil {
		return err
	} else if !cfg.NotificationsEnabled {
		return nil
	}

	return s.SetTransactionNotifications(cfg.TransactionNotifications)
} // func (s *Service) ApplySettings(cfg objects.Settings) error
