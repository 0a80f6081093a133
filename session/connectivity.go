package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"clementus360/daily-tracker/config"
	"github.com/sirupsen/logrus"
)

// Connectivity reports whether the remote store is reachable.
type Connectivity interface {
	IsOnline() bool
	OnChange(fn func(online bool)) (unsubscribe func())
}

// Monitor holds the online flag and notifies subscribers on transitions.
type Monitor struct {
	mu     sync.RWMutex
	online bool
	next   int
	subs   map[int]func(bool)
}

func NewMonitor(online bool) *Monitor {
	return &Monitor{online: online, subs: make(map[int]func(bool))}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *Monitor) OnChange(fn func(bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Set updates the flag. Subscribers only hear about actual transitions.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	config.Logger.WithField("online", online).Info("Connectivity changed")
	for _, fn := range subs {
		fn(online)
	}
}

// Check probes url once and records the result. Any HTTP response counts as
// online; a transport error counts as offline.
func (m *Monitor) Check(ctx context.Context, client *http.Client, url string) bool {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		config.Logger.WithError(err).Warn("Invalid probe URL")
		m.Set(false)
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		config.Logger.WithFields(logrus.Fields{"url": url}).Debug("Probe failed: ", err)
		m.Set(false)
		return false
	}
	resp.Body.Close()
	m.Set(true)
	return true
}

// Probe runs Check every interval until ctx is done.
func (m *Monitor) Probe(ctx context.Context, client *http.Client, url string, interval time.Duration) {
	m.Check(ctx, client, url)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx, client, url)
		}
	}
}
