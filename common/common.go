// /home/krylon/go/src/github.com/blicero/spesen/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 20:11:37 krylon>

// Package common contains constants, variables and functions used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/blicero/spesen/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// AppName is the name of the application.
const AppName = "Spesen"

// Version is the version number of the application.
const Version = "0.3.1"

// DefaultPort is the default TCP port the backend listens on for requests
// from front-ends.
const DefaultPort = 7203

// Debug enables additional log output.
const Debug = true

// BuildStamp is the time the binary was built, set via -ldflags.
var BuildStamp = "(unknown)"

// Various formats for time stamps.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatDate      = "2006-01-02"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

var (
	pathLock sync.RWMutex
	logLock  sync.Mutex
	logFile  *os.File
	minLevel logutils.LogLevel = "TRACE"
)

// BaseDir is the folder where all application-specific files are stored.
var BaseDir = filepath.Join(os.Getenv("HOME"), "."+AppName+".d")

// LogPath is the path of the log file.
var LogPath = filepath.Join(BaseDir, "spesen.log")

// DbPath is the path of the database that holds the local key-value stores.
var DbPath = filepath.Join(BaseDir, "spesen.db")

// SetBaseDir sets the application's base directory and the paths derived
// from it. This should only be done during initialization, before any
// loggers or databases have been created.
func SetBaseDir(path string) error {
	pathLock.Lock()
	BaseDir = path
	LogPath = filepath.Join(BaseDir, "spesen.log")
	DbPath = filepath.Join(BaseDir, "spesen.db")
	pathLock.Unlock()

	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	return InitApp()
} // func SetBaseDir(path string) error

// Path returns the current base directory, log path and database path.
func Path() (base, logPath, dbPath string) {
	pathLock.RLock()
	base, logPath, dbPath = BaseDir, LogPath, DbPath
	pathLock.RUnlock()
	return
} // func Path() (base, logPath, dbPath string)

// InitApp makes sure the base directory exists.
func InitApp() error {
	var base, _, _ = Path()

	if err := os.MkdirAll(base, 0700); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot create base directory %s: %s\n",
			base,
			err.Error())
		return err
	}

	return nil
} // func InitApp() error

// SetLogLevel sets the minimum level of messages that make it into the log.
// Unknown level names are rejected.
func SetLogLevel(level string) error {
	for _, l := range LogLevels {
		if string(l) == level {
			logLock.Lock()
			minLevel = l
			logLock.Unlock()
			return nil
		}
	}

	return fmt.Errorf("Invalid log level %q", level)
} // func SetLogLevel(level string) error

// GetLogger tries to create a named logger instance and return it.
// If the log file cannot be opened, an error is returned.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logName = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, err
	}

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		var _, logPath, _ = Path()

		if logFile, err = os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
			logFile = nil
			fmt.Fprintf(os.Stderr,
				"Error opening log file %s: %s\n",
				logPath,
				err.Error())
			return nil, err
		}
	}

	var writer = io.MultiWriter(os.Stdout, logFile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: minLevel,
		Writer:   writer,
	}

	return log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a randomized UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
