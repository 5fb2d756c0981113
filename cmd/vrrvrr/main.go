package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

const version = "1.0.0"

func printVersion() {
	fmt.Printf("VRRVRR v%s\n", version)
	fmt.Println("Wearable haptic/visual metronome daemon")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  vrrvrr [OPTIONS]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Daemon that drives a silent metronome from a 4x4 matrix keypad")
	fmt.Println("  (via Linux input devices) or a virtual keypad over a Unix socket.")
	fmt.Println("  Tempo is set by typing digits, tapping the beat, or recalling one")
	fmt.Println("  of four stored presets; the beat is rendered as LED blinks and")
	fmt.Println("  vibration pulses.")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML config file (optional)")
	fmt.Println()
	fmt.Println("  -keypad-device string")
	fmt.Println("        Linux input event device for the keypad (e.g. /dev/input/event3)")
	fmt.Println()
	fmt.Println("  -store string")
	fmt.Println("        Path to the preset block file")
	fmt.Println()
	fmt.Println("  -ipc-socket string")
	fmt.Println("        Unix domain socket path for the virtual keypad")
	fmt.Println()
	fmt.Println("  -vibration-off")
	fmt.Println("        Disable vibration output (hardware switch override)")
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Virtual keypad only (no hardware)")
	fmt.Println("  vrrvrr -ipc-socket /tmp/vrrvrr.sock")
	fmt.Println()
	fmt.Println("  # Physical keypad")
	fmt.Println("  vrrvrr -keypad-device /dev/input/event3")
	fmt.Println()
	fmt.Println("  # Set tempo to 120 through the virtual keypad")
	fmt.Println("  vrrvrrctl tempo 120")
	fmt.Println()
	fmt.Println("  # Raw protocol: one JSON key event per line on the socket")
	fmt.Println(`  echo '{"type":"key_released","data":{"key":13}}' | nc -U /tmp/vrrvrr.sock`)
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  - Requires read access to the input device (run as root or add user to 'input' group)")
	fmt.Println("  - Presets persist across restarts in the preset block file")
	fmt.Println()
}

func main() {
	// Check for version/help flags early
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
		if arg == "-help" || arg == "--help" || arg == "-h" {
			printUsage()
			return
		}
	}

	// Parse command-line flags
	var (
		configPath    = flag.String("config", "", "Path to YAML config file")
		keypadDevice  = flag.String("keypad-device", "", "Linux input event device for the keypad")
		storePath     = flag.String("store", "", "Path to the preset block file")
		ipcSocketPath = flag.String("ipc-socket", "", "Unix domain socket path for the virtual keypad")
		vibrationOff  = flag.Bool("vibration-off", false, "Disable vibration output")
		logLevelStr   = flag.String("log-level", "", "Log level: error, warn, info, debug")
		showVersion   = flag.Bool("version", false, "Print version and exit")
		showHelp      = flag.Bool("help", false, "Print help message")
	)

	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		printVersion()
		return
	}

	// Load configuration: defaults, then file, then flag overrides
	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(ExpandPath(*configPath))
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	FlagOverrides{
		KeypadDevice:  *keypadDevice,
		StorePath:     *storePath,
		IPCSocketPath: *ipcSocketPath,
		LogLevel:      *logLevelStr,
	}.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logLevel, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	logger := setupLogger(logLevel)

	engineCfg := cfg.ToEngineConfig()

	// Preset store: stored block wins, factory defaults on any validation
	// failure (all-or-nothing).
	storeFile := ExpandPath(cfg.Storage.Path)
	if err := os.MkdirAll(filepath.Dir(storeFile), 0755); err != nil {
		logger.Error("failed to create storage directory", "path", storeFile, "error", err)
		os.Exit(1)
	}
	store := newFileStore(storeFile)

	state := NewMetronomeState(cfg.DefaultPresets())
	if block, err := store.ReadBlock(); err != nil {
		logger.Warn("preset block unavailable, using defaults", "error", err)
	} else if presets, err := decodePresetBlock(block); err != nil {
		logger.Warn("preset block invalid, using defaults", "error", err)
	} else {
		state.Presets = presets
		logger.Info("presets loaded", "path", storeFile)
	}

	// Shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	// Central event channel: keypad, IPC, timers, battery monitor
	events := make(chan Event, 64)
	timers := newTimerSet(events)

	eff := &effects{
		outputs:   &logOutputs{logger: logger},
		vibSwitch: constSwitch(*vibrationOff),
		store:     store,
		suspender: &logSuspender{logger: logger},
		timers:    timers,
		logger:    logger,
	}

	// Collaborators
	if len(cfg.Keypad.Devices) > 0 {
		reader := newKeypadReader(
			cfg.Keypad.Devices,
			time.Duration(cfg.Keypad.LongPressMS)*time.Millisecond,
			events,
			logger,
		)
		go func() {
			if err := reader.run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("keypad reader stopped", "error", err)
				cancel()
			}
		}()
	}

	if cfg.IPC.SocketPath != "" {
		go func() {
			if err := runIPCServer(ctx, cfg.IPC.SocketPath, events, logger); err != nil && ctx.Err() == nil {
				logger.Error("IPC server stopped", "error", err)
				cancel()
			}
		}()
	}

	if cfg.Battery.VoltagePath != "" {
		mon := newBatteryMonitor(
			cfg.Battery.VoltagePath,
			cfg.Battery.ThresholdMV,
			time.Duration(cfg.Battery.CheckIntervalSec)*time.Second,
			events,
			logger,
		)
		go mon.run(ctx)
	}

	logger.Debug("starting vrrvrr", "version", version)
	logger.Info("listening",
		"keypad_devices", cfg.Keypad.Devices,
		"ipc_socket", cfg.IPC.SocketPath,
		"store", storeFile,
		"vibration_off", *vibrationOff)

	// Power-on indication and inactivity arming happen through the reducer.
	events <- Started{At: time.Now()}

	runEngine(ctx, events, state, engineCfg, eff, timers, logger)
}
