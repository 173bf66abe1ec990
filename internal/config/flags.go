package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagMute      = flag.Bool("mute", false, "Disable sound")
	flagRoll      = flag.String("roll", "", "Dice to roll, e.g. 2d6+1d20")
	flagPower     = flag.Float64("power", -1, "Throw strength in [0, 1]; negative picks at random")
	flagSpin      = flag.Float64("spin", -1, "Throw spin in [0, 1]; negative picks at random")
	flagSeed      = flag.Uint64("seed", 0, "Random seed; 0 picks one")
	flagMaxFrames = flag.Int("max-frames", 0, "Give up after this many frames")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagRoll != "" {
		cfg.Roll.Notation = *flagRoll
	}
	if *flagPower >= 0 {
		cfg.Roll.Power = float32(*flagPower)
	}
	if *flagSpin >= 0 {
		cfg.Roll.Spin = float32(*flagSpin)
	}
	if *flagSeed != 0 {
		cfg.Roll.Seed = *flagSeed
	}
	if *flagMaxFrames > 0 {
		cfg.Roll.MaxFrames = *flagMaxFrames
	}
}
