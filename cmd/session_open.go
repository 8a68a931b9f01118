package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/meusprojetos/minhasferramentas/internal/utils"
	"github.com/meusprojetos/minhasferramentas/pkg/converter"
	"github.com/meusprojetos/minhasferramentas/pkg/history"
	"github.com/meusprojetos/minhasferramentas/pkg/prefs"
	"github.com/meusprojetos/minhasferramentas/pkg/session"
)

// openedSession bundles a session with the resources that back it.
type openedSession struct {
	*session.Session
	store prefs.Store
	lock  *utils.PrefsLock
}

func sessionConfig() (session.Config, error) {
	ordering, err := history.ParseOrdering(viper.GetString("history.ordering"))
	if err != nil {
		return session.Config{}, err
	}
	locale, err := converter.ParseLocale(viper.GetString("format.locale"))
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{Ordering: ordering, Locale: locale, Logger: utils.Log}, nil
}

// openPrefs returns the durable store, or an in-memory one when the
// database cannot be used. The lock is nil for in-memory stores.
func openPrefs() (prefs.Store, *utils.PrefsLock) {
	if viper.GetBool("ephemeral") {
		return prefs.NewMemory(), nil
	}

	dbPath, err := utils.GetAbsDBPath(viper.GetString("dbpath"))
	if err != nil {
		utils.Log.Warnf("Could not resolve prefs path, history will not be saved: %v", err)
		return prefs.NewMemory(), nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		utils.Log.Warnf("Could not create %s, history will not be saved: %v", filepath.Dir(dbPath), err)
		return prefs.NewMemory(), nil
	}

	lock, err := utils.NewPrefsLock(dbPath)
	if err == nil {
		err = lock.Lock()
	}
	if err != nil {
		utils.Log.Warnf("Could not lock prefs, history will not be saved: %v", err)
		return prefs.NewMemory(), nil
	}

	db, err := prefs.Open(dbPath, viper.GetDuration("db.timeout"))
	if err != nil {
		_ = lock.Unlock()
		utils.Log.Warnf("Could not open %s, history will not be saved: %v", dbPath, err)
		return prefs.NewMemory(), nil
	}
	utils.Log.Debugf("Using prefs database %s", dbPath)
	return db, lock
}

func openSession(ctx context.Context) (*openedSession, error) {
	cfg, err := sessionConfig()
	if err != nil {
		return nil, err
	}
	store, lock := openPrefs()
	return &openedSession{
		Session: session.Open(ctx, store, cfg),
		store:   store,
		lock:    lock,
	}, nil
}

// Close flushes the session and releases the store and lock.
func (o *openedSession) Close(ctx context.Context) error {
	_ = o.Session.Close(ctx)
	var firstErr error
	if err := o.store.Close(); err != nil {
		firstErr = fmt.Errorf("close prefs: %w", err)
	}
	if o.lock != nil {
		if err := o.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
