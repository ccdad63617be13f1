package config

import "flag"

// Flags holds command-line overrides bound to a flag set.
type Flags struct {
	fs            *flag.FlagSet
	config        *string
	debug         *bool
	seed          *uint64
	trunkStrength *float64
	logFile       *string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:            fs,
		config:        fs.String("config", "", "Path to config file (.yaml or .toml)"),
		debug:         fs.Bool("debug", false, "Enable debug logging"),
		seed:          fs.Uint64("seed", 0, "Random seed"),
		trunkStrength: fs.Float64("trunk-strength", 0, "Trunk stiffness for wind baking, 0 to 0.999"),
		logFile:       fs.String("log-file", "", "Write logs to this file"),
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// isSet reports whether the flag was given on the command line.
func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.isSet("seed") {
		cfg.Generation.Seed = *f.seed
	}
	if f.isSet("trunk-strength") {
		cfg.Generation.TrunkStrength = float32(*f.trunkStrength)
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
