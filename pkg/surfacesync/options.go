package surfacesync

import (
	"log/slog"

	"github.com/dmitrymomot/cookiesync/pkg/account"
)

type Option func(*Syncer)

func WithAccount(p account.Provider) Option {
	return func(s *Syncer) {
		if p != nil {
			s.account = p
		}
	}
}

func WithPreference(p Preference) Option {
	return func(s *Syncer) {
		s.pref = p
	}
}

// WithHosts sets the known first-party hosts.
func WithHosts(hosts ...string) Option {
	return func(s *Syncer) {
		s.hosts = hosts
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}
