// /home/krylon/go/src/github.com/blicero/spesen/session/session_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 10:44:19 krylon>

package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/blicero/spesen/kv"
	"github.com/blicero/spesen/remote"
	"github.com/blicero/spesen/remote/remotetest"
	"github.com/stretchr/testify/suite"
)

type GateSuite struct {
	suite.Suite
	srv   *remotetest.Server
	api   *remote.Client
	store *kv.Memory
	gate  *Gate
	ctx   context.Context
	token string
}

func (s *GateSuite) SetupTest() {
	var err error

	s.ctx = context.Background()
	s.srv = remotetest.New()
	s.store = kv.NewMemory()

	s.api, err = remote.NewClient(s.srv.URL, time.Second)
	s.Require().NoError(err)

	s.gate, err = NewGate(s.store, s.api, 500*time.Millisecond)
	s.Require().NoError(err)

	s.api.SetUnauthorizedHook(s.gate.HandleUnauthorized)

	var user = s.srv.AddUser("Erin", "erin@example.com", "secret")
	s.token = s.srv.Token(user.ID, time.Hour)
} // func (s *GateSuite) SetupTest()

func (s *GateSuite) TearDownTest() {
	s.srv.Close()
} // func (s *GateSuite) TearDownTest()

func TestGate(t *testing.T) {
	suite.Run(t, new(GateSuite))
} // func TestGate(t *testing.T)

func (s *GateSuite) set(key, val string) {
	s.Require().NoError(s.store.Set(key, val))
} // func (s *GateSuite) set(key, val string)

func (s *GateSuite) present(key string) bool {
	var _, found, _ = s.store.Get(key)
	return found
} // func (s *GateSuite) present(key string) bool

func (s *GateSuite) enter(pin string) (PinResult, Destination) {
	var lock = s.gate.PinLock()
	lock.Enter(pin)
	return lock.Submit(s.ctx)
} // func (s *GateSuite) enter(pin string) (PinResult, Destination)

func (s *GateSuite) TestLaunchNoToken() {
	s.Equal(Login, s.gate.Launch(s.ctx))
	s.Equal(NoToken, s.gate.State())
	s.Equal(0, s.srv.VerifyCount())
} // func (s *GateSuite) TestLaunchNoToken()

func (s *GateSuite) TestLaunchTokenNoPinValid() {
	s.set(KeyToken, s.token)

	s.Equal(Home, s.gate.Launch(s.ctx))
	s.Equal(Authenticated, s.gate.State())
	s.Equal(1, s.srv.VerifyCount())
	s.True(s.present(KeyToken))
} // func (s *GateSuite) TestLaunchTokenNoPinValid()

func (s *GateSuite) TestLaunchTokenNoPinInvalid() {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError, http.StatusForbidden} {
		s.set(KeyToken, s.token)
		s.set(KeyPinSet, "true")
		s.srv.SetVerifyStatus(status)

		s.Equal(Login, s.gate.Launch(s.ctx), "status %d", status)
		s.Equal(NoToken, s.gate.State())
		s.False(s.present(KeyToken))
		s.False(s.present(KeyPinSet))
	}
} // func (s *GateSuite) TestLaunchTokenNoPinInvalid()

func (s *GateSuite) TestLaunchTimeout() {
	s.set(KeyToken, s.token)
	s.srv.SetDelay(2 * time.Second)

	s.Equal(Login, s.gate.Launch(s.ctx))
	s.False(s.present(KeyToken))
} // func (s *GateSuite) TestLaunchTimeout()

func (s *GateSuite) TestLaunchStorageFailure() {
	s.store.GetErr = errors.New("keychain locked")
	s.Equal(Login, s.gate.Launch(s.ctx))
	s.Equal(NoToken, s.gate.State())
} // func (s *GateSuite) TestLaunchStorageFailure()

func (s *GateSuite) TestLaunchWithPin() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")

	s.Equal(PinEntry, s.gate.Launch(s.ctx))
	s.Equal(TokenPinUnverified, s.gate.State())
	s.Equal(0, s.srv.VerifyCount(), "PIN entry must not hit the network")
} // func (s *GateSuite) TestLaunchWithPin()

func (s *GateSuite) TestCorrectPinVerifies() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")
	s.gate.Launch(s.ctx)

	var res, dst = s.enter("1234")
	s.Equal(PinAccepted, res)
	s.Equal(Home, dst)
	s.Equal(1, s.srv.VerifyCount())
	s.Equal(Authenticated, s.gate.State())
} // func (s *GateSuite) TestCorrectPinVerifies()

func (s *GateSuite) TestCorrectPinExpiredToken() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")
	s.srv.Revoke(s.token)

	var res, dst = s.enter("1234")
	s.Equal(PinSessionExpired, res)
	s.Equal(Login, dst)
	s.False(s.present(KeyToken))
	s.False(s.present(KeyPin))
} // func (s *GateSuite) TestCorrectPinExpiredToken()

func (s *GateSuite) TestThreeWrongPins() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")

	var lock = s.gate.PinLock()

	var res, dst = s.enter("0000")
	s.Equal(PinRejected, res)
	s.Equal(PinEntry, dst)
	s.Equal(1, lock.Attempts())
	s.Equal(0, lock.Entered())

	res, _ = s.enter("1111")
	s.Equal(PinRejected, res)
	s.Equal(2, lock.Attempts())

	res, dst = s.enter("2222")
	s.Equal(PinTooManyAttempts, res)
	s.Equal(PinEntry, dst)
	s.Equal(0, lock.Attempts())
	s.Equal(0, lock.Entered())
	s.Equal(0, s.srv.VerifyCount())

	// A correct PIN afterwards still works.
	res, _ = s.enter("1234")
	s.Equal(PinAccepted, res)
} // func (s *GateSuite) TestThreeWrongPins()

func (s *GateSuite) TestPinInput() {
	var lock = s.gate.PinLock()

	s.True(lock.Press('1'))
	s.False(lock.Press('x'))
	s.True(lock.Press('2'))
	lock.Backspace()
	s.Equal(1, lock.Entered())

	for _, r := range "2345" {
		lock.Press(r)
	}
	s.Equal(PinLength, lock.Entered())
	s.False(lock.Press('6'))

	lock.Backspace()
	var res, dst = lock.Submit(s.ctx)
	s.Equal(PinIncomplete, res)
	s.Equal(PinEntry, dst)
	s.NotEmpty(res.Message())
} // func (s *GateSuite) TestPinInput()

func (s *GateSuite) TestPinReadFailure() {
	s.set(KeyToken, s.token)
	s.store.GetErr = errors.New("boom")

	var res, _ = s.enter("1234")
	s.Equal(PinError, res)
} // func (s *GateSuite) TestPinReadFailure()

func (s *GateSuite) TestUnauthorizedEvicts() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")
	s.set(KeyPinSet, "true")
	s.srv.Revoke(s.token)

	var _, err = s.api.ListTransactions(s.ctx, s.token)
	s.ErrorIs(err, remote.ErrUnauthorized)

	s.False(s.present(KeyToken))
	s.False(s.present(KeyPin))
	s.False(s.present(KeyPinSet))
	s.Equal(NoToken, s.gate.State())
} // func (s *GateSuite) TestUnauthorizedEvicts()

func (s *GateSuite) TestLogin() {
	var dst, err = s.gate.Login(s.ctx, "", "x")
	s.ErrorIs(err, ErrMissingCredentials)
	s.Equal(Login, dst)

	_, err = s.gate.Login(s.ctx, "not-an-address", "x")
	s.ErrorIs(err, ErrInvalidEmail)

	_, err = s.gate.Login(s.ctx, "erin@example.com", "wrong")
	s.Error(err)
	s.False(s.present(KeyToken))

	dst, err = s.gate.Login(s.ctx, "erin@example.com", "secret")
	s.NoError(err)
	s.Equal(Home, dst)
	s.True(s.present(KeyToken))

	var name, _, _ = s.store.Get(KeyUserName)
	s.Equal("Erin", name)

	// With a PIN set up, login leads to the PIN lock.
	s.set(KeyPin, "9876")
	s.set(KeyPinSet, "true")
	dst, err = s.gate.Login(s.ctx, "erin@example.com", "secret")
	s.NoError(err)
	s.Equal(PinEntry, dst)

	s.NoError(s.gate.Logout())
	for _, key := range []string{KeyToken, KeyPin, KeyPinSet, KeyUserID, KeyUserName, KeyUserEmail} {
		s.False(s.present(key), key)
	}
} // func (s *GateSuite) TestLogin()

func (s *GateSuite) TestSetupPin() {
	s.ErrorIs(s.gate.SetupPin(s.ctx, "12a4", "12a4"), ErrPinFormat)
	s.ErrorIs(s.gate.SetupPin(s.ctx, "1234", "4321"), ErrPinMismatch)
	s.Equal(0, s.srv.VerifyCount())

	s.ErrorIs(s.gate.SetupPin(s.ctx, "1234", "1234"), ErrNoSession)

	s.set(KeyToken, s.token)
	s.NoError(s.gate.SetupPin(s.ctx, "1234", "1234"))

	var pin, _, _ = s.store.Get(KeyPin)
	var flag, _, _ = s.store.Get(KeyPinSet)
	s.Equal("1234", pin)
	s.Equal("true", flag)

	s.srv.Revoke(s.token)
	s.ErrorIs(s.gate.SetupPin(s.ctx, "5555", "5555"), ErrSessionExpired)
	s.Equal(NoToken, s.gate.State())
	for _, key := range []string{KeyToken, KeyPin, KeyPinSet} {
		s.False(s.present(key), key)
	}

	// The old PIN must not guard the next session.
	var dst, err = s.gate.Login(s.ctx, "erin@example.com", "secret")
	s.NoError(err)
	s.Equal(Home, dst)
} // func (s *GateSuite) TestSetupPin()

func (s *GateSuite) TestEnterStrict() {
	var lock = s.gate.PinLock()

	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")

	for _, pin := range []string{"1x234", "12345", "1234\n", "１２３４"} {
		s.False(lock.Enter(pin), pin)
		s.Equal(0, lock.Entered(), pin)

		var res, dst = lock.Submit(s.ctx)
		s.Equal(PinIncomplete, res, pin)
		s.Equal(PinEntry, dst, pin)
	}

	s.Equal(0, lock.Attempts())
	s.Equal(0, s.srv.VerifyCount())

	s.True(lock.Enter("12"))
	s.Equal(2, lock.Entered())
	s.True(lock.Enter("1234"))

	var res, dst = lock.Submit(s.ctx)
	s.Equal(PinAccepted, res)
	s.Equal(Home, dst)
} // func (s *GateSuite) TestEnterStrict()

func (s *GateSuite) TestChangePinUsesOtherKey() {
	s.set(KeyToken, s.token)
	s.Require().NoError(s.gate.SetupPin(s.ctx, "1234", "1234"))

	// A PIN set up through SetupPin is not visible to ChangePin.
	s.ErrorIs(s.gate.ChangePin("1234", "5678", "5678"), ErrWrongPin)

	s.set(KeyPinLegacy, "1234")
	s.ErrorIs(s.gate.ChangePin("1234", "5678", "8765"), ErrPinMismatch)
	s.NoError(s.gate.ChangePin("1234", "5678", "5678"))

	var legacy, _, _ = s.store.Get(KeyPinLegacy)
	var pin, _, _ = s.store.Get(KeyPin)
	s.Equal("5678", legacy)
	s.Equal("1234", pin)
} // func (s *GateSuite) TestChangePinUsesOtherKey()

func (s *GateSuite) TestRemovePin() {
	s.set(KeyToken, s.token)
	s.set(KeyPinLegacy, "2468")
	s.set(KeyPinSet, "true")

	s.ErrorIs(s.gate.RemovePin("1357"), ErrWrongPin)
	s.NoError(s.gate.RemovePin("2468"))

	for _, key := range []string{KeyPinLegacy, KeyPinSet, KeyToken} {
		s.False(s.present(key), key)
	}
} // func (s *GateSuite) TestRemovePin()

func (s *GateSuite) TestDisablePin() {
	s.set(KeyToken, s.token)
	s.set(KeyPin, "1234")

	s.NoError(s.gate.DisablePin(s.ctx))
	s.False(s.present(KeyPin))
	s.True(s.present(KeyToken))

	s.set(KeyPin, "1234")
	s.srv.Revoke(s.token)
	s.ErrorIs(s.gate.DisablePin(s.ctx), ErrSessionExpired)
	s.False(s.present(KeyToken))
	s.False(s.present(KeyPin))
} // func (s *GateSuite) TestDisablePin()
