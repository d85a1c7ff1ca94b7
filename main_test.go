package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		Name string
		Args []string
		Want options
	}{
		{
			Name: "defaults",
			Args: []string{"pong.ch8"},
			Want: options{
				romPath:  "pong.ch8",
				frontend: FRONTEND_SDL,
				scale:    15,
				hz:       emulator.DEFAULT_CLOCK_HZ,
				origin:   0x200,
			},
		},
		{
			Name: "everything set",
			Args: []string{
				"-frontend", "term", "-scale", "4", "-hz", "500", "-origin", "0x600",
				"-shift-vy", "-loadstore-inc", "-debug", "roms/tetris.ch8",
			},
			Want: options{
				romPath:  "roms/tetris.ch8",
				frontend: FRONTEND_TERMINAL,
				scale:    4,
				hz:       500,
				origin:   0x600,
				quirks:   emulator.Quirks{ShiftUsesVY: true, LoadStoreIncrementsI: true},
				debug:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := parseFlags(tt.Args, &out)
			assert.NoError(t, err)

			if diff := cmp.Diff(tt.Want, got, cmp.AllowUnexported(options{})); diff != "" {
				t.Errorf("parseFlags() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, 0, out.Len())
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		Name string
		Args []string
	}{
		{"no rom", []string{}},
		{"two roms", []string{"a.ch8", "b.ch8"}},
		{"bad frontend", []string{"-frontend", "gl", "a.ch8"}},
		{"bad hz", []string{"-hz", "0", "a.ch8"}},
		{"hz above ticker resolution", []string{"-hz", "2000000000", "a.ch8"}},
		{"bad origin", []string{"-origin", "0x10000", "a.ch8"}},
		{"unknown flag", []string{"-turbo", "a.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := parseFlags(tt.Args, &out)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(out.String(), banner) {
				t.Errorf("usage not printed, got %q", out.String())
			}
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("parseFlags(-h) error = %v, want %v", err, flag.ErrHelp)
	}
	assert.Equal(t, true, strings.Contains(out.String(), "-frontend"))
}

func TestRunFailsOnMissingROM(t *testing.T) {
	opts := options{
		romPath:  filepath.Join(t.TempDir(), "missing.ch8"),
		frontend: FRONTEND_TERMINAL,
		hz:       emulator.DEFAULT_CLOCK_HZ,
		origin:   emulator.START_ADDRESS,
	}

	err := run(opts, log.NewTestLogger(t))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("run() error = %v, want %v", err, os.ErrNotExist)
	}
}
