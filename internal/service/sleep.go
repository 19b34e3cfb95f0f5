// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/ambience/internal/logger"
)

const (
	dbusInterface   = "org.freedesktop.login1.Manager"
	dbusWatchMember = "PrepareForSleep"

	resumeDebounce   = 2 * time.Second
	signalBufferSize = 8

	busReconnectDelay   = 5 * time.Second
	networkWakeupDelay  = 10 * time.Second
	reconnectDelay      = 2 * time.Second
	subscribeRetryDelay = 10 * time.Second
)

// sleepState tracks suspend and resume events of the system
type sleepState struct {
	mu          sync.Mutex
	suspendedAt time.Time
	lastResume  time.Time
}

// monitorSleepResume watches logind for suspend and resume events and refreshes the
// output after the system woke up. The system bus connection is re-established on loss.
func (s *Service) monitorSleepResume(ctx context.Context) {
	state := new(sleepState)

	for {
		conn := s.connectToSystemBus(ctx)
		if conn == nil {
			return
		}

		if !s.setupSleepMonitoring(ctx, conn) {
			continue
		}

		sigCh := make(chan *dbus.Signal, signalBufferSize)
		conn.Signal(sigCh)
		s.logger.Debug("subscribed to dbus signal", slog.String("interface", dbusInterface),
			slog.String("member", dbusWatchMember))

		s.handleSleepSignals(ctx, sigCh, state)

		conn.RemoveSignal(sigCh)
		if err := conn.Close(); err != nil {
			s.logger.Error("failed to close system bus connection", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// connectToSystemBus connects to the system bus, retrying until it succeeds or ctx is
// cancelled. The connection is closed once ctx is done.
func (s *Service) connectToSystemBus(ctx context.Context) *dbus.Conn {
	for {
		conn, err := dbus.ConnectSystemBus()
		if err != nil {
			s.logger.Debug("failed to connect to system bus", logger.Err(err))
			select {
			case <-time.After(busReconnectDelay):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		go func() {
			<-ctx.Done()
			if err := conn.Close(); err != nil {
				s.logger.Error("failed to close system bus connection", logger.Err(err))
			}
		}()

		return conn
	}
}

// setupSleepMonitoring subscribes to the logind sleep signal. It returns false if the
// subscription failed and the caller should reconnect.
func (s *Service) setupSleepMonitoring(ctx context.Context, conn *dbus.Conn) bool {
	err := conn.AddMatchSignal(dbus.WithMatchInterface(dbusInterface), dbus.WithMatchMember(dbusWatchMember))
	if err == nil {
		return true
	}

	s.logger.Error("failed to subscribe to dbus signal", slog.String("interface", dbusInterface),
		slog.String("member", dbusWatchMember), logger.Err(err))
	if err = conn.Close(); err != nil {
		s.logger.Error("failed to close system bus connection", logger.Err(err))
	}
	select {
	case <-time.After(subscribeRetryDelay):
	case <-ctx.Done():
	}
	return false
}

func (s *Service) handleSleepSignals(ctx context.Context, sigCh chan *dbus.Signal, state *sleepState) {
	for {
		select {
		case <-ctx.Done():
			return
		case sgn, ok := <-sigCh:
			if !ok {
				return
			}
			s.processSleepSignal(ctx, sgn, state)
		}
	}
}

// processSleepSignal dispatches a PrepareForSleep signal. Its only argument is true
// before the system suspends and false after it resumed.
func (s *Service) processSleepSignal(ctx context.Context, sgn *dbus.Signal, state *sleepState) {
	if sgn == nil || len(sgn.Body) != 1 {
		return
	}
	sleeping, ok := sgn.Body[0].(bool)
	if !ok {
		return
	}
	if sleeping {
		state.mu.Lock()
		state.suspendedAt = s.now()
		state.mu.Unlock()
		s.logger.Debug("system is going to sleep")
		return
	}
	s.handleResumeEvent(ctx, state)
}

// handleResumeEvent re-renders the cached weather right away, so that the time period
// and theme follow the clock, and fetches fresh data once the network is back.
func (s *Service) handleResumeEvent(ctx context.Context, state *sleepState) {
	now := s.now()

	state.mu.Lock()
	if !state.lastResume.IsZero() && now.Sub(state.lastResume) < resumeDebounce {
		state.mu.Unlock()
		return
	}
	state.lastResume = now
	var slept time.Duration
	if !state.suspendedAt.IsZero() {
		slept = now.Sub(state.suspendedAt)
	}
	state.mu.Unlock()

	s.logger.Debug("system resumed from sleep", slog.Duration("slept", slept))
	s.printWeather(ctx)

	select {
	case <-ctx.Done():
		return
	case <-time.After(networkWakeupDelay):
	}
	s.refresh(ctx)
}
