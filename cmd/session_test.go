package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/clicker-session/internal"
	"github.com/iksnae/clicker-session/testutil"
)

type classroom struct {
	state  string
	roster string
	log    string
}

func newClassroom(t *testing.T) classroom {
	t.Helper()
	dir := t.TempDir()
	c := classroom{
		state:  filepath.Join(dir, "state"),
		roster: testutil.WriteFile(t, dir, "class.csv", testutil.DefaultRoster()),
		log: testutil.WriteFile(t, dir, "L1610141030.xml", testutil.SessionXML(
			[]testutil.Vote{{ID: "100", Ans: "A"}, {ID: "101", Ans: "C"}},
		)),
	}
	testutil.Touch(t, c.log, time.Now().Add(-time.Hour))
	return c
}

// nextPoll appends a question block to the session log and bumps its mtime
func (c classroom) nextPoll(t *testing.T, blocks ...[]testutil.Vote) {
	t.Helper()
	testutil.WriteFile(t, filepath.Dir(c.log), filepath.Base(c.log), testutil.SessionXML(blocks...))
	testutil.Touch(t, c.log, time.Now())
}

func (c classroom) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--state-dir", c.state}, args...)...)
}

func TestSessionLifecycle(t *testing.T) {
	c := newClassroom(t)
	first := []testutil.Vote{{ID: "100", Ans: "A"}, {ID: "101", Ans: "C"}}

	out, err := c.run(t, "start", "--roster", c.roster, "--log", c.log)
	if err != nil {
		t.Fatalf("start error = %v", err)
	}
	for _, want := range []string{"Question 1", "Choice A", "Choice C", "No Choice", "Alice", "Bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("start output missing %q\n%s", want, out)
		}
	}

	if _, err := c.run(t, "poll"); err == nil || !strings.Contains(err.Error(), "no new polls") {
		t.Fatalf("poll on unchanged log error = %v, want no new polls", err)
	}

	c.nextPoll(t, first, []testutil.Vote{{ID: "100", Ans: "B"}})
	out, err = c.run(t, "poll")
	if err != nil {
		t.Fatalf("poll error = %v", err)
	}
	if !strings.Contains(out, "Question 2") {
		t.Errorf("poll output missing Question 2\n%s", out)
	}

	out, err = c.run(t, "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "Question 2") || !strings.Contains(out, "Choice B") {
		t.Errorf("show output = %s", out)
	}

	out, err = c.run(t, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	for _, want := range []string{"Participants:", "Questions:", "2", c.roster} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q\n%s", want, out)
		}
	}

	exportPath := filepath.Join(t.TempDir(), "out", "results.csv")
	if _, err := c.run(t, "export", "--out", exportPath); err != nil {
		t.Fatalf("export error = %v", err)
	}
	want := "Student/Team,Question 1,Question 2\nAlice,A,B\nBob,C,\n"
	if got := testutil.ReadFile(t, exportPath); got != want {
		t.Errorf("exported CSV = %q, want %q", got, want)
	}

	out, err = c.run(t, "status")
	if err != nil {
		t.Fatalf("status after export error = %v", err)
	}
	if !strings.Contains(out, "No active session.") {
		t.Errorf("session should end after export, status = %s", out)
	}
}

func TestStartCommand_RefusesActiveSession(t *testing.T) {
	c := newClassroom(t)
	if _, err := c.run(t, "start", "-r", c.roster, "-l", c.log); err != nil {
		t.Fatalf("start error = %v", err)
	}

	if _, err := c.run(t, "start", "-r", c.roster, "-l", c.log); err == nil {
		t.Error("second start should fail while a session is active")
	}
	if _, err := c.run(t, "start", "-r", c.roster, "-l", c.log, "--force"); err != nil {
		t.Errorf("start --force error = %v", err)
	}
}

func TestStartCommand_MissingFlags(t *testing.T) {
	c := newClassroom(t)
	if _, err := c.run(t, "start", "--roster", c.roster); err == nil {
		t.Error("start without --log should fail")
	}
}

func TestStartCommand_UnknownDevice(t *testing.T) {
	c := newClassroom(t)
	c.nextPoll(t, []testutil.Vote{{ID: "100", Ans: "A"}, {ID: "999", Ans: "B"}})

	_, err := c.run(t, "start", "-r", c.roster, "-l", c.log)
	var unknown *internal.UnknownDeviceError
	if !errors.As(err, &unknown) {
		t.Fatalf("start error = %v, want UnknownDeviceError", err)
	}
	if unknown.Device != "999" {
		t.Errorf("UnknownDeviceError.Device = %q, want 999", unknown.Device)
	}
	if _, statErr := os.Stat(filepath.Join(c.state, "session.yaml")); !os.IsNotExist(statErr) {
		t.Error("failed start should not save a session")
	}
}

func TestStartCommand_SkipUnknownDevicesFromEnv(t *testing.T) {
	c := newClassroom(t)
	c.nextPoll(t, []testutil.Vote{{ID: "100", Ans: "A"}, {ID: "999", Ans: "B"}})
	t.Setenv("CLICKER_CLASSIFY_SKIP_UNKNOWN_DEVICES", "true")

	out, err := c.run(t, "start", "-r", c.roster, "-l", c.log)
	if err != nil {
		t.Fatalf("start error = %v", err)
	}
	if !strings.Contains(out, "Skipped unknown device(s): 999") {
		t.Errorf("start output should list skipped device\n%s", out)
	}
}

func TestPollCommand_Force(t *testing.T) {
	c := newClassroom(t)
	if _, err := c.run(t, "start", "-r", c.roster, "-l", c.log); err != nil {
		t.Fatalf("start error = %v", err)
	}

	out, err := c.run(t, "poll", "--force")
	if err != nil {
		t.Fatalf("poll --force error = %v", err)
	}
	if !strings.Contains(out, "Question 2") {
		t.Errorf("forced poll should record Question 2\n%s", out)
	}
}

func TestPollCommand_NoSession(t *testing.T) {
	c := newClassroom(t)
	_, err := c.run(t, "poll")
	if !errors.Is(err, internal.ErrNoActiveSession) {
		t.Errorf("poll error = %v, want ErrNoActiveSession", err)
	}
}

func TestShowCommand_NoSession(t *testing.T) {
	c := newClassroom(t)
	if _, err := c.run(t, "show"); !errors.Is(err, internal.ErrNoActiveSession) {
		t.Errorf("show error = %v, want ErrNoActiveSession", err)
	}
}
