// Package session owns the calculator state for one interactive session:
// it loads history when opened, records calculations, and flushes on Close.
package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/meusprojetos/minhasferramentas/internal/utils"
	"github.com/meusprojetos/minhasferramentas/pkg/converter"
	"github.com/meusprojetos/minhasferramentas/pkg/history"
	"github.com/meusprojetos/minhasferramentas/pkg/prefs"
)

type Config struct {
	Ordering history.Ordering
	Locale   converter.Locale
	// Logger receives persistence failures. Defaults to utils.Log.
	Logger logrus.FieldLogger
}

type Session struct {
	history   *history.Store
	formatter converter.Formatter
	log       logrus.FieldLogger
	closed    bool
}

// Open builds the history for store and loads it. A load failure is logged
// and the session starts with an empty history.
func Open(ctx context.Context, store prefs.Store, cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = utils.Log
	}
	var opts []history.Option
	if cfg.Ordering != "" {
		opts = append(opts, history.WithOrdering(cfg.Ordering))
	}
	locale := cfg.Locale
	if locale == "" {
		locale = converter.LocalePT
	}

	h := history.New(store, opts...)
	s := &Session{
		history:   h,
		formatter: converter.Formatter{Locale: locale},
		log:       log.WithField("ordering", string(h.Ordering())),
	}
	if err := s.history.Load(ctx); err != nil {
		s.log.WithError(err).Warn("Could not load history, starting empty")
	} else {
		s.log.WithField("entries", s.history.Len()).Debug("History loaded")
	}
	return s
}

// Calculate runs the converter on the raw inputs. On invalid input it returns
// the fixed user-facing message together with converter.ErrInvalidInput and
// leaves the history alone. Otherwise the entry is recorded and the result
// line returned.
func (s *Session) Calculate(ctx context.Context, rawMass, rawPrice string) (string, error) {
	r, err := converter.Calculate(rawMass, rawPrice)
	if err != nil {
		s.log.WithFields(logrus.Fields{"mass": rawMass, "price": rawPrice}).Debug("Rejected input")
		return s.formatter.InvalidInputMessage(), err
	}
	if err := s.history.Add(ctx, s.formatter.FormatEntry(r)); err != nil {
		s.log.WithError(err).Warn("Could not save history")
	}
	return s.formatter.FormatResult(r), nil
}

// Add records an already formatted entry, e.g. one read from an export.
func (s *Session) Add(ctx context.Context, entry string) {
	if err := s.history.Add(ctx, entry); err != nil {
		s.log.WithError(err).Warn("Could not save history")
	}
}

func (s *Session) Clear(ctx context.Context) {
	if err := s.history.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("Could not save cleared history")
	}
}

func (s *Session) Render() string { return s.history.Render() }

func (s *Session) Entries() []string { return s.history.Entries() }

// Close performs the final flush. Failures are logged and absorbed; Close
// never returns an error for a persistence problem.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.history.Flush(ctx); err != nil {
		s.log.WithError(err).Warn("Final history flush failed")
	}
	return nil
}
