package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"moodmate/pkg/store"
)

type stubAnalyzer struct {
	score float64
	err   error
}

func (s stubAnalyzer) Polarity(_ context.Context, _ string) (float64, error) {
	return s.score, s.err
}

type stubSynthesizer struct {
	audio []byte
	err   error
}

func (s stubSynthesizer) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return s.audio, s.err
}

type recordingArchive struct {
	keys []string
	err  error
}

func (a *recordingArchive) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	a.keys = append(a.keys, key)
	return a.err
}

func (a *recordingArchive) PresignGet(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", nil
}

func newTestApp(t *testing.T, analyzer stubAnalyzer, synth stubSynthesizer, archive *recordingArchive) *App {
	t.Helper()
	cfg := Config{
		JWTSecret:   "test-secret",
		SessionTTL:  time.Hour,
		Store:       store.NewMemoryStore(),
		Analyzer:    analyzer,
		Synthesizer: synth,
	}
	if archive != nil {
		cfg.Archive = archive
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestRegisterAndLogin(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)

	user, err := a.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected server-assigned user id")
	}
	if user.PasswordHash == "pw123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	loggedIn, token, err := a.Login("alice", "pw123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || loggedIn.ID != user.ID {
		t.Fatalf("unexpected login result: token=%q id=%q", token, loggedIn.ID)
	}

	resolved, ok := a.UserFromToken(token)
	if !ok || resolved.ID != user.ID {
		t.Fatalf("token should resolve to alice, ok=%v id=%q", ok, resolved.ID)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)

	if _, err := a.Register("alice", "pw123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := a.Register("alice", "other"); !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("second register err = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)

	for _, tc := range [][2]string{{"", "pw"}, {"alice", ""}, {"   ", "pw"}} {
		if _, err := a.Register(tc[0], tc[1]); !errors.Is(err, ErrUsernameAndPasswordRequired) {
			t.Fatalf("Register(%q, %q) err = %v, want ErrUsernameAndPasswordRequired", tc[0], tc[1], err)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)
	if _, err := a.Register("alice", "pw123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := a.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := a.Login("nobody", "pw123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)
	if _, err := a.Register("alice", "pw123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, err := a.Login("alice", "pw123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.UserFromToken(token); ok {
		t.Fatalf("token should not resolve after logout")
	}
}

func TestCheckInRecordsSessionAndReturnsAudio(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x01}
	a := newTestApp(t, stubAnalyzer{score: 0.8}, stubSynthesizer{audio: audio}, nil)
	user, err := a.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := a.CheckIn(context.Background(), user.ID, "I feel great today")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if result.MoodScore != 0.8 {
		t.Fatalf("mood score = %v, want 0.8", result.MoodScore)
	}
	if !strings.Contains(result.ResponseText, "feeling positive") {
		t.Fatalf("expected positive-band response, got %q", result.ResponseText)
	}
	if string(result.Audio) != string(audio) {
		t.Fatalf("unexpected audio payload")
	}

	history, err := a.History(user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].MoodScore != 0.8 {
		t.Fatalf("history mood score = %v, want 0.8", history[0].MoodScore)
	}
	if history[0].ExerciseType != "breathing" {
		t.Fatalf("history exercise = %q, want breathing", history[0].ExerciseType)
	}
}

func TestCheckInRequiresMessage(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{}, stubSynthesizer{audio: []byte{1}}, nil)
	if _, err := a.CheckIn(context.Background(), "u1", "   "); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("err = %v, want ErrMessageRequired", err)
	}
}

func TestCheckInFailsWhenSynthesisFailsButKeepsRecord(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{score: -0.7}, stubSynthesizer{err: errors.New("voice down")}, nil)
	user, err := a.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := a.CheckIn(context.Background(), user.ID, "rough day"); err == nil {
		t.Fatalf("expected check-in to fail when synthesis fails")
	}
	// The record is written before synthesis, matching the source ordering.
	history, err := a.History(user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected the check-in to remain recorded, got %d entries", len(history))
	}
}

func TestCheckInArchivesAudioBestEffort(t *testing.T) {
	archive := &recordingArchive{}
	a := newTestApp(t, stubAnalyzer{score: 0.2}, stubSynthesizer{audio: []byte{1, 2, 3}}, archive)
	user, err := a.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := a.CheckIn(context.Background(), user.ID, "doing fine"); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if len(archive.keys) != 1 || !strings.HasPrefix(archive.keys[0], "checkins/") {
		t.Fatalf("expected one archived clip under checkins/, got %v", archive.keys)
	}

	// Archive failure must not fail the check-in.
	archive.err = errors.New("bucket down")
	if _, err := a.CheckIn(context.Background(), user.ID, "still fine"); err != nil {
		t.Fatalf("check-in should tolerate archive failure: %v", err)
	}
}

func TestHistoryOrdersNewestFirst(t *testing.T) {
	a := newTestApp(t, stubAnalyzer{score: 0.3}, stubSynthesizer{audio: []byte{1}}, nil)
	user, err := a.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := a.CheckIn(context.Background(), user.ID, msg); err != nil {
			t.Fatalf("check-in %q: %v", msg, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	history, err := a.History(user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.After(history[i-1].Timestamp) {
			t.Fatalf("history not newest first at index %d", i)
		}
	}
}
