package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagOut     = flag.String("out", "", "Output file (.obj, .stl, .json.gz)")
	flagProfile = flag.String("profile", "", "Vehicle profile (Lisp) to evaluate")
	flagFloor   = flag.Bool("floor", false, "Include the ground plane")
	flagProxies = flag.Bool("proxies", false, "Export collision proxies alongside the car")
	flagYaw     = flag.Float64("yaw", 0, "Yaw in degrees applied to the exported car")
	flagLogFile = flag.String("log", "", "Also write logs to this file")
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
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagProfile != "" {
		cfg.Profile.Path = *flagProfile
	}
	if *flagFloor {
		cfg.Output.Floor = true
	}
	if *flagProxies {
		cfg.Output.Proxies = true
	}
	if *flagYaw != 0 {
		cfg.Placement.Yaw = float32(*flagYaw)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
