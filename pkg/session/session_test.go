package session

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/meusprojetos/minhasferramentas/internal/utils"
	"github.com/meusprojetos/minhasferramentas/pkg/converter"
	"github.com/meusprojetos/minhasferramentas/pkg/history"
	"github.com/meusprojetos/minhasferramentas/pkg/prefs"
)

type brokenPrefs struct{}

var errBroken = errors.New("broken")

func (brokenPrefs) PutStringSet(context.Context, string, string, []string) error  { return errBroken }
func (brokenPrefs) PutStringList(context.Context, string, string, []string) error { return errBroken }
func (brokenPrefs) GetStringSet(context.Context, string, string) ([]string, error) {
	return nil, errBroken
}
func (brokenPrefs) GetStringList(context.Context, string, string) ([]string, error) {
	return nil, errBroken
}
func (brokenPrefs) Close() error { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCalculateRecordsEntry(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, prefs.NewMemory(), Config{Logger: quietLogger()})

	msg, err := s.Calculate(ctx, "250", "12.50")
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if msg != "Valor por KG: R$ 50.00" {
		t.Fatalf("unexpected result %q", msg)
	}
	want := "Histórico:\nGramas: 250.0, Valor: R$ 12.50 -> Valor por KG: R$ 50.00"
	if got := s.Render(); got != want {
		t.Fatalf("unexpected render:\n%q\nwant\n%q", got, want)
	}
}

func TestCalculateInvalidLeavesHistory(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, prefs.NewMemory(), Config{Logger: quietLogger()})
	_, _ = s.Calculate(ctx, "100", "5")
	before := s.Entries()

	for _, in := range [][2]string{{"0", "5"}, {"abc", "5"}, {"100", ""}} {
		msg, err := s.Calculate(ctx, in[0], in[1])
		if !errors.Is(err, converter.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %v, got %v", in, err)
		}
		if msg != "Por favor, insira as gramas e o valor do produto corretamente." {
			t.Fatalf("unexpected message %q", msg)
		}
	}
	if !reflect.DeepEqual(s.Entries(), before) {
		t.Fatalf("history changed on invalid input: %v", s.Entries())
	}
}

func TestEnglishLocale(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, prefs.NewMemory(), Config{Locale: converter.LocaleEN, Logger: quietLogger()})
	if _, err := s.Calculate(ctx, "250", "12.5"); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if got := s.Entries()[0]; got != "Mass: 250.0, Price: R$ 12.50 -> Unit price: R$ 50.00" {
		t.Fatalf("unexpected entry %q", got)
	}
}

func TestReopenRestoresHistory(t *testing.T) {
	ctx := context.Background()
	db, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.sqlite"), 0)
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	defer db.Close()

	s := Open(ctx, db, Config{Logger: quietLogger()})
	_, _ = s.Calculate(ctx, "500", "10")
	_, _ = s.Calculate(ctx, "250", "12.50")
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	again := Open(ctx, db, Config{Logger: quietLogger()})
	if !reflect.DeepEqual(again.Entries(), s.Entries()) {
		t.Fatalf("want %v, got %v", s.Entries(), again.Entries())
	}
}

func TestClearThenRender(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	s := Open(ctx, p, Config{Logger: quietLogger()})
	_, _ = s.Calculate(ctx, "100", "5")
	s.Clear(ctx)
	s.Clear(ctx)
	if s.Render() != history.Header {
		t.Fatalf("expected only header, got %q", s.Render())
	}
	stored, _ := p.GetStringList(ctx, history.PrefsNamespace, history.PrefsKey)
	if len(stored) != 0 {
		t.Fatalf("expected empty stored history, got %v", stored)
	}
}

func TestBrokenStoreIsNotFatal(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()

	s := Open(ctx, brokenPrefs{}, Config{Logger: logger})
	if s.Render() != history.Header {
		t.Fatalf("expected empty history after failed load")
	}
	msg, err := s.Calculate(ctx, "250", "12.50")
	if err != nil || msg != "Valor por KG: R$ 50.00" {
		t.Fatalf("calculate should succeed without storage: %q, %v", msg, err)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("expected in-memory entry")
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close must absorb persistence failure, got %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	// load, add, final flush
	if warnings != 3 {
		t.Fatalf("expected 3 warnings, got %d", warnings)
	}
}

func TestLegacyOrderingSession(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	s := Open(ctx, p, Config{Ordering: history.OrderingLegacySet, Logger: quietLogger()})
	_, _ = s.Calculate(ctx, "100", "1")
	_, _ = s.Calculate(ctx, "900", "1")
	_ = s.Close(ctx)

	again := Open(ctx, p, Config{Ordering: history.OrderingLegacySet, Logger: quietLogger()})
	got := again.Entries()
	if len(got) != 2 || got[0] < got[1] {
		t.Fatalf("expected lexicographic descending order, got %v", got)
	}
}

func TestDefaultLoggerIsProjectLogger(t *testing.T) {
	hook := test.NewLocal(utils.Log)
	out := utils.Log.Out
	utils.Log.SetOutput(io.Discard)
	defer func() {
		utils.Log.SetOutput(out)
		utils.Log.ReplaceHooks(make(logrus.LevelHooks))
	}()

	Open(context.Background(), brokenPrefs{}, Config{})
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("expected load warning on utils.Log, got %v", hook.AllEntries())
	}
	if got := hook.LastEntry().Data["ordering"]; got != string(history.OrderingSequence) {
		t.Fatalf("expected default sequence ordering, got %v", got)
	}
}
