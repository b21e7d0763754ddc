package main

import (
	"bytes"
	"strings"
	"testing"

	icmd "github.com/ljxowen/movie-recommender/internal/client/cmd"
)

func TestVersionCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := icmd.NewRootCmd("1.2.3", "2026-01-01")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "moviecat 1.2.3") {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
