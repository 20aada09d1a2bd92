package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/clicker-session/internal"
	"github.com/iksnae/clicker-session/testutil"
)

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	roster := testutil.WriteFile(t, dir, "class.csv", testutil.DefaultRoster())

	tests := []struct {
		name     string
		votes    []testutil.Vote
		skip     bool
		wantErr  bool
		wantText string
	}{
		{
			name:     "all clickers known",
			votes:    []testutil.Vote{{ID: "100", Ans: "A"}},
			wantText: "All responding clickers are on the roster",
		},
		{
			name:     "unknown clicker fails",
			votes:    []testutil.Vote{{ID: "100", Ans: "A"}, {ID: "555", Ans: "B"}},
			wantErr:  true,
			wantText: "555",
		},
		{
			name:     "unknown clicker skipped",
			votes:    []testutil.Vote{{ID: "555", Ans: "B"}},
			skip:     true,
			wantText: "will be skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := testutil.WriteFile(t, dir, tt.name+".xml", testutil.SessionXML(tt.votes))
			settings.Classify.SkipUnknownDevices = tt.skip
			t.Cleanup(func() { settings.Classify.SkipUnknownDevices = false })

			var out bytes.Buffer
			err := runCheck(&out, roster, log)
			if (err != nil) != tt.wantErr {
				t.Errorf("runCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var unknown *internal.UnknownDeviceError
				if !errors.As(err, &unknown) {
					t.Errorf("runCheck() error = %v, want UnknownDeviceError", err)
				} else if unknown.Device != "555" || unknown.Choice != "B" {
					t.Errorf("UnknownDeviceError = %+v, want device 555 choice B", unknown)
				}
			}
			if !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("runCheck() output missing %q\n%s", tt.wantText, out.String())
			}
		})
	}
}

func TestRunCheck_BadLog(t *testing.T) {
	dir := t.TempDir()
	roster := testutil.WriteFile(t, dir, "class.csv", testutil.DefaultRoster())
	log := testutil.WriteFile(t, dir, "notes.xml", "<notes><n/></notes>")

	var out bytes.Buffer
	err := runCheck(&out, roster, log)
	var unrecognized *internal.UnrecognizedLogFormatError
	if !errors.As(err, &unrecognized) {
		t.Fatalf("runCheck() error = %v, want UnrecognizedLogFormatError", err)
	}
	if !strings.Contains(out.String(), "Session log could not be read") {
		t.Errorf("runCheck() output = %s", out.String())
	}
}

func TestCheckCommand_MissingFlags(t *testing.T) {
	if _, err := execute(t, "check", "--log", "x.xml"); err == nil {
		t.Error("check without --roster should fail")
	}
}
