package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"exactprint/internal/trace"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("readUIMode(%q) = %q, %v", tc.in, got, err)
		}
	}
	if !uiModeOn.enabled(nil) || uiModeOff.enabled(nil) {
		t.Error("explicit modes must not consult the terminal")
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, true); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if payload.Tool != "exactprint" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestCleanupsRunInReverse(t *testing.T) {
	var order []int
	atExit(func() { order = append(order, 1) })
	atExit(func() { order = append(order, 2) })
	runCleanups()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("order = %v", order)
	}
	if len(cleanups) != 0 {
		t.Fatal("cleanups not reset")
	}
}

func TestDumpTraceRing(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelDetail, Mode: trace.ModeRing, RingSize: 16})
	if err != nil {
		t.Fatalf("trace.New: %v", err)
	}
	trace.Begin(tr, trace.ScopeFile, "process_file", 0).WithExtra("path", "a.hs").End("")

	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&stderr)
	cmd.SetContext(trace.WithTracer(context.Background(), tr))
	dumpTraceRing(cmd)
	if !strings.Contains(stderr.String(), "process_file") || !strings.Contains(stderr.String(), "path=a.hs") {
		t.Fatalf("ring not dumped:\n%s", stderr.String())
	}

	// без кольца ничего не пишется
	stderr.Reset()
	cmd.SetContext(trace.WithTracer(context.Background(), trace.Nop))
	dumpTraceRing(cmd)
	if stderr.Len() != 0 {
		t.Fatalf("unexpected output: %q", stderr.String())
	}
}
