// /home/krylon/go/src/github.com/blicero/spesen/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 22:30:14 krylon>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blicero/spesen/backend"
	"github.com/blicero/spesen/clients/clientlib"
	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/config"
	"github.com/blicero/spesen/session"
	"golang.org/x/term"
)

func main() {
	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp)

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
} // func main()

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		err                                   error
		cfg                                   *config.Config
		fs                                    = flag.NewFlagSet(common.AppName, flag.ContinueOnError)
		appDir, mode, addr, envFile, logLevel string
	)

	fs.SetOutput(stderr)

	fs.StringVar(
		&appDir,
		"appdir",
		"",
		"The directory where application-specific files live")

	fs.StringVar(
		&mode,
		"mode",
		"backend",
		"One of *backend*, *list*, *unlock* or *login*",
	)

	fs.StringVar(
		&addr,
		"address",
		"",
		"Address to either listen on (backend) or connect to (everything else)",
	)

	fs.StringVar(
		&envFile,
		"env",
		".env",
		"File to load environment variables from",
	)

	fs.StringVar(
		&logLevel,
		"loglevel",
		"",
		"Minimum level of log messages",
	)

	if err = fs.Parse(args); err != nil {
		return err
	} else if cfg, err = config.Load(envFile); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "appdir":
			cfg.BaseDir = appDir
		case "address":
			cfg.ListenAddr = addr
		case "loglevel":
			cfg.LogLevel = logLevel
		}
	})

	if err = common.SetBaseDir(cfg.BaseDir); err != nil {
		return err
	} else if err = common.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	var in = bufio.NewReader(stdin)

	switch mode {
	case "backend":
		return runBackend(cfg, stdout)
	case "list":
		return runList(cfg, stdout)
	case "unlock":
		return runUnlock(cfg, stdin, in, stdout)
	case "login":
		return runLogin(cfg, stdin, in, stdout)
	default:
		return fmt.Errorf("Unknown mode %q", mode)
	}
} // func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error

func runBackend(cfg *config.Config, stdout io.Writer) error {
	var (
		err    error
		daemon *backend.Daemon
	)

	if daemon, err = backend.Summon(cfg); err != nil {
		return fmt.Errorf("Failed to initialize backend: %w", err)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Fprintf(stdout, "Quitting on signal %s\n", sig)
			return daemon.Banish()
		case <-ticker.C:
			continue
		}
	}

	return nil
} // func runBackend(cfg *config.Config, stdout io.Writer) error

func runList(cfg *config.Config, stdout io.Writer) error {
	var (
		err error
		c   *clientlib.Client
	)

	if c, err = clientlib.NewClient(cfg.ListenAddr); err != nil {
		return err
	}

	var list, lerr = c.Notifications()
	if lerr != nil {
		return lerr
	} else if len(list) == 0 {
		fmt.Fprintln(stdout, "No notifications")
		return nil
	}

	for _, n := range list {
		fmt.Fprintf(stdout, "%s  %-18s  %s\n",
			n.Timestamp.Local().Format(common.TimestampFormat),
			n.Category,
			n.Message)
	}

	return nil
} // func runList(cfg *config.Config, stdout io.Writer) error

// readSecret reads a line without echoing it if stdin is a terminal.
func readSecret(stdin io.Reader, in *bufio.Reader, stdout io.Writer, prompt string) (string, error) {
	fmt.Fprint(stdout, prompt)

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		var buf, err = term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stdout)
		return string(buf), err
	}

	return readLine(in)
} // func readSecret(...) (string, error)

func readLine(in *bufio.Reader) (string, error) {
	var line, err = in.ReadString('\n')

	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
} // func readLine(in *bufio.Reader) (string, error)

func runUnlock(cfg *config.Config, stdin io.Reader, in *bufio.Reader, stdout io.Writer) error {
	var (
		err       error
		c         *clientlib.Client
		next, msg string
		pin       string
	)

	if c, err = clientlib.NewClient(cfg.ListenAddr); err != nil {
		return err
	} else if next, err = c.Launch(); err != nil {
		return err
	}

	for i := 0; next == session.PinEntry.String() && i < session.MaxAttempts; i++ {
		if pin, err = readSecret(stdin, in, stdout, "PIN: "); err != nil {
			return err
		}

		msg, next, err = c.EnterPin(pin)
		if err != nil && !errors.Is(err, clientlib.ErrRequestFailed) {
			return err
		}

		fmt.Fprintln(stdout, msg)
	}

	switch next {
	case session.Home.String():
		fmt.Fprintln(stdout, "Unlocked")
		return nil
	case session.Login.String():
		return errors.New("Not logged in, please run with -mode login")
	default:
		return errors.New(session.PinTooManyAttempts.Message())
	}
} // func runUnlock(...) error

func runLogin(cfg *config.Config, stdin io.Reader, in *bufio.Reader, stdout io.Writer) error {
	var (
		err             error
		c               *clientlib.Client
		email, password string
		next            string
	)

	if c, err = clientlib.NewClient(cfg.ListenAddr); err != nil {
		return err
	}

	fmt.Fprint(stdout, "Email: ")

	if email, err = readLine(in); err != nil {
		return err
	} else if password, err = readSecret(stdin, in, stdout, "Password: "); err != nil {
		return err
	} else if next, err = c.Login(email, password); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Logged in, continue at %s\n", next)
	return nil
} // func runLogin(...) error
