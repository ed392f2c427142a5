// Command pekwm is the process entry point: it parses flags, loads the
// bootstrap configuration, runs the window manager until it quits or a
// restart is requested, and maps the terminal error onto the exit codes
// of spec.md 6.
//
// Grounded on esimov-caire/cmd/caire/main.go's flag-parsing shape (flag
// vars declared at package scope, a single function doing the real work
// returning an int, os.Exit called once from main) -- the only pack repo
// with a cmd/<name>/main.go layout to imitate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-go/internal/config"
	"github.com/pekwm/pekwm-go/internal/wm"
	"github.com/pekwm/pekwm-go/internal/xerrors"
)

var (
	display    = flag.String("display", "", "X display to connect to (defaults to $DISPLAY)")
	configPath = flag.String("config", "", "path to the bootstrap TOML config file")
	replace    = flag.Bool("replace", false, "replace a running window manager")
	logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return xerrors.ExitCode(err)
	}
	if *display != "" {
		opts.Display = *display
	}
	if *replace {
		opts.Replace = true
	}

	for {
		code, restart, err := runOnce(opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if !restart {
			return code
		}
	}
}

// runOnce runs a single instance of the window manager to completion,
// reporting whether the caller should re-exec (a Restart action) rather
// than exit.
func runOnce(opts config.Options) (code int, restart bool, err error) {
	manager, err := wm.New(opts)
	if err != nil {
		return xerrors.ExitCode(err), false, err
	}
	defer manager.Close()

	manager.Scan()
	err = manager.Run()
	if errors.Is(err, wm.ErrRestart) {
		return 0, true, nil
	}
	return xerrors.ExitCode(err), false, err
}
