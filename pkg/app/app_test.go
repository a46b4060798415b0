package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eyexzy/serde-practice/internal/storage"
	"github.com/eyexzy/serde-practice/pkg/factory"
)

const requestJSON = `{"type":"success","stream":{"user_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","is_private":false,"settings":0,"shard_url":"https://example.com/shard/1","public_tariff":{"id":1,"price":100,"duration":"15m","description":"Basic"},"private_tariff":{"client_price":250,"duration":"30m","description":"Custom"}},"gifts":[{"id":1,"price":10,"description":"Gift 1"},{"id":2,"price":20,"description":"Gift 2"}],"debug":{"duration":"5s","at":"2024-01-01T00:00:00Z"}}`

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "request.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRun_PrintsEveryFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := factory.Default()
	cfg.Input.Path = writeInput(t, dir, requestJSON)

	var out bytes.Buffer
	application, err := NewApp(cfg, &out)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := application.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	printed := out.String()
	for _, want := range []string{
		"Decoded request:",
		"==== json ====\n" + requestJSON + "\n",
		"==== yaml ====",
		"==== toml ====",
		`{"name":"Concert","date":"Date: 2024-11-15"}`,
		"decoded: {Name:Concert Date:2024-11-15}",
	} {
		if !strings.Contains(printed, want) {
			t.Fatalf("output missing %q:\n%s", want, printed)
		}
	}
}

func TestRun_FileStorage(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfg, err := factory.Parse([]byte(
		"input:\n  path: " + writeInput(t, dir, requestJSON) + "\n" +
			"output:\n  formats: [yaml, toml]\n" +
			"storage:\n  driver: file\n  dir: " + outDir + "\n",
	))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	var out bytes.Buffer
	application, err := NewApp(cfg, &out)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := application.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"request.yaml", "request.toml", "event.yaml", "event.toml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "request.json")); !os.IsNotExist(err) {
		t.Fatalf("request.json should not be written, stat err = %v", err)
	}

	docs, err := application.Store().List(context.Background(), storage.Query{Kind: "request"})
	if err != nil || len(docs) != 2 {
		t.Fatalf("stored request docs = %d, %v", len(docs), err)
	}
	if strings.Contains(out.String(), "==== json ====") {
		t.Fatalf("json printed although not configured")
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg := factory.Default()
	cfg.Input.Path = filepath.Join(dir, "missing.json")
	application, err := NewApp(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := application.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "read input") {
		t.Fatalf("err = %v, want read input failure", err)
	}

	cfg = factory.Default()
	cfg.Input.Path = writeInput(t, dir, strings.Replace(requestJSON, "15m", "fifteen", 1))
	application, err = NewApp(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	err = application.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "/stream/public_tariff/duration") {
		t.Fatalf("err = %v, want schema error path", err)
	}
}

func TestNewApp_Errors(t *testing.T) {
	if _, err := NewApp(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}

	cfg := factory.Default()
	cfg.Output.Formats = []string{"xml"}
	if _, err := NewApp(cfg, nil); err == nil {
		t.Fatalf("expected error for unsupported output format")
	}
}
