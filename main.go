package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/adrichey/chip8vm/platform"
	"github.com/adrichey/chip8vm/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

const banner = "chip8vm - a CHIP-8 interpreter\n"

// Frontends selectable with -frontend.
const (
	FRONTEND_SDL      = "sdl"
	FRONTEND_TERMINAL = "term"
)

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

type options struct {
	romPath  string
	frontend string
	scale    int
	hz       int
	origin   uint16
	quirks   emulator.Quirks
	debug    bool
	quiet    bool
}

// frontend is what Run needs plus a way to give the host back.
type frontend interface {
	emulator.Frontend
	Close()
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(opts.debug, opts.quiet)
	if err := run(opts, logger); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	opts := options{origin: emulator.START_ADDRESS}

	fs := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, banner)
		fmt.Fprintf(output, "usage: chip8vm [options] <rom>\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.frontend, "frontend", FRONTEND_SDL, "frontend to present the machine on: sdl or term")
	fs.IntVar(&opts.scale, "scale", platform.DEFAULT_SCALE, "window pixels per CHIP-8 pixel (sdl only)")
	fs.IntVar(&opts.hz, "hz", emulator.DEFAULT_CLOCK_HZ, "instructions executed per second")
	fs.Func("origin", "address the rom is loaded at and execution starts from (default 0x200)", func(s string) error {
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return err
		}
		opts.origin = uint16(v)
		return nil
	})
	fs.BoolVar(&opts.quirks.ShiftUsesVY, "shift-vy", false, "8xy6 and 8xyE shift Vy into Vx")
	fs.BoolVar(&opts.quirks.LoadStoreIncrementsI, "loadstore-inc", false, "Fx55 and Fx65 leave I past the last register")
	fs.BoolVar(&opts.debug, "debug", false, "log debug messages")
	fs.BoolVar(&opts.quiet, "quiet", false, "only log errors")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errors.New("expected exactly one rom path")
	}
	opts.romPath = fs.Arg(0)

	switch {
	case opts.frontend != FRONTEND_SDL && opts.frontend != FRONTEND_TERMINAL:
		err := fmt.Errorf("unknown frontend %q", opts.frontend)
		fmt.Fprintln(output, err)
		fs.Usage()
		return opts, err
	case opts.hz <= 0 || opts.hz > emulator.MAX_CLOCK_HZ:
		err := fmt.Errorf("hz must be between 1 and %d, got %d", emulator.MAX_CLOCK_HZ, opts.hz)
		fmt.Fprintln(output, err)
		fs.Usage()
		return opts, err
	}

	return opts, nil
}

func newLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(opts options, logger *log.Logger) error {
	settings := emulator.DefaultSettings()
	settings.ROMOrigin = opts.origin
	settings.Quirks = opts.quirks
	settings.Logger = logger

	m, err := emulator.New(settings)
	if err != nil {
		return err
	}
	if err := m.LoadROMFile(opts.romPath); err != nil {
		return err
	}

	fe, err := openFrontend(opts, logger)
	if err != nil {
		return err
	}
	defer fe.Close()

	// cancelled on ctrl-c
	ctx := app.Context()

	logger.Info("Running",
		log.String("rom", opts.romPath),
		log.String("frontend", opts.frontend),
		log.Int("hz", opts.hz))

	err = emulator.Run(ctx, m, fe, opts.hz)
	var fault *emulator.Fault
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("Stopped")
		return nil
	case errors.As(err, &fault):
		regs := m.Registers()
		logger.Debug("Machine state",
			log.String("registers", fmt.Sprintf("% X", regs[:])),
			log.Hex("i", m.I()))
		return err
	default:
		return err
	}
}

func openFrontend(opts options, logger *log.Logger) (frontend, error) {
	if opts.frontend == FRONTEND_TERMINAL {
		return terminal.New(logger)
	}
	return platform.New(platform.WINDOW_TITLE, opts.scale, logger)
}
