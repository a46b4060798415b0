package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{" INFO ", log.InfoLevel, false},
		{"warning", log.WarnLevel, false},
		{"warn", log.WarnLevel, false},
		{"trace", log.TraceLevel, false},
		{"verbose", log.InfoLevel, true},
	}
	for _, tc := range cases {
		got, err := parseLogLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseLogLevel(%q) err=%v, wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInitLog_FallsBackOnUnknownLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	if err := InitLog("debug", false); err != nil {
		t.Fatalf("InitLog(debug) err: %v", err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want debug", log.GetLevel())
	}
	if err := InitLog("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("level = %v, want info fallback", log.GetLevel())
	}
}

func TestCategoriesUsableBeforeInit(t *testing.T) {
	if MainLog == nil || TranscoderLog == nil {
		t.Fatalf("category entries must be initialised at package load")
	}
	if got := TranscoderLog.Data["category"]; got != "TRANSCODER" {
		t.Fatalf("category field = %v", got)
	}
}
