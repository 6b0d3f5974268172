// /home/krylon/go/src/github.com/blicero/spesen/notify/notify.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 11:47:02 krylon>

// Package notify implements the notification service. It keeps a log of
// all notifications shown to the user, delivers new ones through the
// platform, and sends the twice-daily prompts to record transactions.
package notify

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/kv"
	"github.com/blicero/spesen/logdomain"
	"github.com/blicero/spesen/objects"
	"github.com/blicero/spesen/objects/category"
	"github.com/blicero/spesen/platform"
	"github.com/blicero/spesen/scheduler"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/shopspring/decimal"
)

// Keys in the general store.
const (
	KeyLog                      = "notifications"
	KeyNotificationsEnabled     = "notificationsEnabled"
	KeyTransactionNotifications = "transactionNotifications"
)

// Delays of the follow-up notifications sent after a transaction.
const (
	UpdateDelay   = 10 * time.Second
	ReminderDelay = 5 * time.Minute
)

// Default times for the system notifications.
const (
	DefaultMorning = "0 9 * * *"
	DefaultEvening = "0 18 * * *"
)

// SystemMessage is the text of the twice-daily system notification.
const SystemMessage = "Do you want to add this transaction?"

// SchedulerState holds the handles of the daily timers. A nil handle means
// the timer is not running.
type SchedulerState struct {
	Morning *scheduler.Task
	Evening *scheduler.Task
}

// Service is the notification service.
type Service struct {
	log     *log.Logger
	store   kv.Store
	sched   *scheduler.Scheduler
	toaster platform.Toaster
	pusher  platform.Pusher
	morning *scheduler.Daily
	evening *scheduler.Daily

	logLock sync.Mutex
	lastID  int64

	stateLock sync.Mutex
	state     SchedulerState
}

// New creates a notification Service that keeps its log in store.
// If morning or evening are nil, the system notifications are sent at
// 09:00 and 18:00, respectively.
func New(
	store kv.Store,
	sched *scheduler.Scheduler,
	toaster platform.Toaster,
	pusher platform.Pusher,
	morning, evening *scheduler.Daily) (*Service, error) {
	var (
		err error
		s   = &Service{
			store:   store,
			sched:   sched,
			toaster: toaster,
			pusher:  pusher,
			morning: morning,
			evening: evening,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	} else if s.morning == nil {
		if s.morning, err = scheduler.ParseDaily(DefaultMorning); err != nil {
			return nil, err
		}
	}

	if s.evening == nil {
		if s.evening, err = scheduler.ParseDaily(DefaultEvening); err != nil {
			return nil, err
		}
	}

	if s.toaster == nil {
		s.toaster = nopToaster{}
	}

	if s.pusher == nil {
		s.pusher = platform.NopPusher{}
	}

	return s, nil
} // func New(...) (*Service, error)

type nopToaster struct{}

func (nopToaster) Toast(string) {}

// nextID returns a new ID derived from the current time in milliseconds.
// IDs handed out by one Service never repeat and never go backwards, even
// if the clock does.
func (s *Service) nextID(now time.Time) int64 {
	var id = now.UnixMilli()

	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id
	return id
} // func (s *Service) nextID(now time.Time) int64

func (s *Service) load() ([]objects.Notification, error) {
	var (
		err   error
		raw   string
		found bool
		list  []objects.Notification
	)

	if raw, found, err = s.store.Get(KeyLog); err != nil {
		return nil, err
	} else if !found || raw == "" {
		return []objects.Notification{}, nil
	} else if err = ffjson.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("cannot parse notification log: %w", err)
	}

	if list == nil {
		list = []objects.Notification{}
	}

	return list, nil
} // func (s *Service) load() ([]objects.Notification, error)

func (s *Service) save(list []objects.Notification) error {
	var (
		err error
		buf []byte
	)

	if list == nil {
		list = []objects.Notification{}
	}

	if buf, err = ffjson.Marshal(list); err != nil {
		return fmt.Errorf("cannot serialize notification log: %w", err)
	}

	return s.store.Set(KeyLog, string(buf))
} // func (s *Service) save(list []objects.Notification) error

// AddNotification creates a Notification, prepends it to the log and
// delivers it through the platform. Failures are logged, never returned,
// since a notification is always the side effect of some other action.
func (s *Service) AddNotification(msg string, cat category.Category) objects.Notification {
	var (
		err  error
		list []objects.Notification
		now  = s.sched.Clock().Now()
	)

	s.logLock.Lock()
	var n = objects.Notification{
		ID:        strconv.FormatInt(s.nextID(now), 10),
		Message:   msg,
		Category:  cat,
		Timestamp: now.UTC().Truncate(time.Millisecond),
	}

	if list, err = s.load(); err != nil {
		s.log.Printf("[ERROR] Cannot load notification log: %s\n",
			err.Error())
	} else if err = s.save(append([]objects.Notification{n}, list...)); err != nil {
		s.log.Printf("[ERROR] Cannot save notification log: %s\n",
			err.Error())
	}
	s.logLock.Unlock()

	s.log.Printf("[DEBUG] Add %s\n", n.String())

	s.toaster.Toast(msg)

	var title, body = n.Payload()
	if err = s.pusher.Push(title, body); err != nil {
		s.log.Printf("[ERROR] Cannot push notification %s: %s\n",
			n.ID,
			err.Error())
	}

	return n
} // func (s *Service) AddNotification(msg string, cat category.Category) objects.Notification

// SendTransactionNotification announces a new transaction.
func (s *Service) SendTransactionNotification(amount decimal.Decimal, cat string) objects.Notification {
	var msg = fmt.Sprintf("New transaction: %s for %s",
		amount.String(),
		cat)
	return s.AddNotification(msg, category.Transaction)
} // func (s *Service) SendTransactionNotification(amount decimal.Decimal, cat string) objects.Notification

// SendTransactionUpdateNotification confirms, after UpdateDelay, that a
// transaction has been processed. The returned Task is never stopped by
// the Service. If the process exits before the delay has elapsed, the
// notification is lost.
func (s *Service) SendTransactionUpdateNotification(amount decimal.Decimal, cat string) *scheduler.Task {
	var msg = fmt.Sprintf("Transaction of %s for %s has been processed",
		amount.String(),
		cat)

	return s.sched.After(UpdateDelay, "transaction update", func() {
		s.AddNotification(msg, category.TransactionUpdate)
	})
} // func (s *Service) SendTransactionUpdateNotification(amount decimal.Decimal, cat string) *scheduler.Task

// SendReminderNotification asks the user, after ReminderDelay, whether
// they want to add the transaction.
//
// This is sent after the transaction has been saved already, which is
// how the mobile app has always behaved.
func (s *Service) SendReminderNotification(amount decimal.Decimal, cat string) *scheduler.Task {
	var msg = fmt.Sprintf("Reminder: Would you like to add this transaction of %s for %s?",
		amount.String(),
		cat)

	return s.sched.After(ReminderDelay, "reminder", func() {
		s.AddNotification(msg, category.Reminder)
	})
} // func (s *Service) SendReminderNotification(amount decimal.Decimal, cat string) *scheduler.Task

// SendSystemNotification sends the prompt to record a transaction.
func (s *Service) SendSystemNotification() objects.Notification {
	return s.AddNotification(SystemMessage, category.System)
} // func (s *Service) SendSystemNotification() objects.Notification

// GetAllNotifications returns the log, newest first. If the log does not
// exist or cannot be read, it returns an empty slice.
func (s *Service) GetAllNotifications() []objects.Notification {
	var (
		err  error
		list []objects.Notification
	)

	s.logLock.Lock()
	list, err = s.load()
	s.logLock.Unlock()

	if err != nil {
		s.log.Printf("[ERROR] Cannot load notification log: %s\n",
			err.Error())
		return []objects.Notification{}
	}

	sort.SliceStable(list, func(i, j int) bool {
		var a, b = list[i], list[j]

		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}

		var x, _ = strconv.ParseInt(a.ID, 10, 64)
		var y, _ = strconv.ParseInt(b.ID, 10, 64)
		return x > y
	})

	return list
} // func (s *Service) GetAllNotifications() []objects.Notification

// DeleteNotification removes the Notification with the given ID from the
// log. If there is no such Notification, nothing happens.
func (s *Service) DeleteNotification(id string) {
	var (
		err  error
		list []objects.Notification
	)

	s.logLock.Lock()
	defer s.logLock.Unlock()

	if list, err = s.load(); err != nil {
		s.log.Printf("[ERROR] Cannot load notification log: %s\n",
			err.Error())
		return
	}

	var kept = make([]objects.Notification, 0, len(list))
	for _, n := range list {
		if n.ID != id {
			kept = append(kept, n)
		}
	}

	if len(kept) == len(list) {
		s.log.Printf("[DEBUG] Notification %s not found\n", id)
		return
	} else if err = s.save(kept); err != nil {
		s.log.Printf("[ERROR] Cannot save notification log: %s\n",
			err.Error())
	}
} // func (s *Service) DeleteNotification(id string)

// ClearAllNotifications empties the log and withdraws all notifications
// posted to the platform.
func (s *Service) ClearAllNotifications() {
	var err error

	s.logLock.Lock()
	err = s.save(nil)
	s.logLock.Unlock()

	if err != nil {
		s.log.Printf("[ERROR] Cannot clear notification log: %s\n",
			err.Error())
	}

	if err = s.pusher.CancelAll(); err != nil {
		s.log.Printf("[ERROR] Cannot cancel platform notifications: %s\n",
			err.Error())
	}
} // func (s *Service) ClearAllNotifications()

// StartSystemNotifications starts the morning and evening timers.
// If either one is running already, it does nothing.
func (s *Service) StartSystemNotifications() {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if s.state.Morning != nil || s.state.Evening != nil {
		s.log.Println("[DEBUG] System notifications are running already")
		return
	}

	s.state.Morning = s.sched.Every(s.morning, "morning notification", func() {
		s.SendSystemNotification()
	})
	s.state.Evening = s.sched.Every(s.evening, "evening notification", func() {
		s.SendSystemNotification()
	})

	s.log.Printf("[INFO] Started system notifications, next at %s and %s\n",
		s.state.Morning.Due().Format(common.TimestampFormat),
		s.state.Evening.Due().Format(common.TimestampFormat))
} // func (s *Service) StartSystemNotifications()

// StopSystemNotifications stops both timers.
func (s *Service) StopSystemNotifications() {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if s.state.Morning != nil {
		s.state.Morning.Stop()
		s.state.Morning = nil
	}

	if s.state.Evening != nil {
		s.state.Evening.Stop()
		s.state.Evening = nil
	}
} // func (s *Service) StopSystemNotifications()

// ActiveTimers returns the number of daily timers that are running.
func (s *Service) ActiveTimers() int {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	var cnt int

	for _, t := range []*scheduler.Task{s.state.Morning, s.state.Evening} {
		if t != nil && t.Active() {
			cnt++
		}
	}

	return cnt
} // func (s *Service) ActiveTimers() int

// State returns a copy of the Service's SchedulerState.
func (s *Service) State() SchedulerState {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	return s.state
} // func (s *Service) State() SchedulerState
