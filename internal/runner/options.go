package runner

import (
	"os"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	envutil "github.com/projectdiscovery/utils/env"
	updateutils "github.com/projectdiscovery/utils/update"
)

var au = aurora.New(aurora.WithColors(true))

var (
	// Env overrides for deployment defaults; cli flags win over both.
	defaultTimeout     = envutil.GetEnvOrDefault("PINGX_TIMEOUT", 1000)
	defaultConcurrency = envutil.GetEnvOrDefault("PINGX_CONCURRENCY", 100)
)

// Options contains the configuration options for tuning the sweep process.
type Options struct {
	CIDR  string
	Hosts goflags.StringSlice

	Timeout                 int // per-probe timeout in milliseconds
	Unprivileged            bool
	IncludeNetworkBroadcast bool

	Concurrency int
	Sequential  bool

	CSVFile string

	ConfigFile         string
	Silent             bool
	Verbose            bool
	NoColor            bool
	Version            bool
	DisableUpdateCheck bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`pingx discovers reachable hosts in an IPv4 subnet using concurrent ICMP echo probes`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.CIDR, "cidr", "n", "", "IPv4 network to sweep in CIDR notation (e.g. 192.168.1.0/24)"),
		flagSet.StringSliceVarP(&options.Hosts, "host", "t", nil, "individual IPv4 hosts to probe (comma separated)", goflags.NormalizedStringSliceOptions),
	)

	flagSet.CreateGroup("probe", "Probe",
		flagSet.IntVar(&options.Timeout, "timeout", defaultTimeout, "per-probe timeout in milliseconds"),
		flagSet.BoolVarP(&options.Unprivileged, "unprivileged", "up", false, "probe via udp datagram sockets instead of raw icmp (no root required)"),
		flagSet.BoolVarP(&options.IncludeNetworkBroadcast, "include-network-broadcast", "inb", false, "also probe the network and broadcast addresses"),
	)

	flagSet.CreateGroup("rate", "Rate",
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", defaultConcurrency, "maximum number of probes in flight"),
		flagSet.BoolVar(&options.Sequential, "sequential", false, "probe one host at a time"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.CSVFile, "csv", "o", "", "file to export results to in csv format"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "cli flag configuration file"),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(updateutils.GetUpdateToolCallback("pingx", version), "update", "u", "update pingx to latest version"),
		flagSet.BoolVarP(&options.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic pingx update check"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Could not read config file %s: %s\n", options.ConfigFile, err)
		}
	}

	// configure aurora for logging
	au = aurora.New(aurora.WithColors(true))

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	if !options.DisableUpdateCheck {
		latestVersion, err := updateutils.GetToolVersionCallback("pingx", version)()
		if err != nil {
			if options.Verbose {
				gologger.Error().Msgf("pingx version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current pingx version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	options.validate()

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
		au = aurora.New(aurora.WithColors(false))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

func (options *Options) validate() {
	if options.Silent && options.Verbose {
		gologger.Fatal().Msg("silent and verbose flags cannot be used together")
	}
	if options.CIDR == "" && len(options.Hosts) == 0 {
		gologger.Fatal().Msg("no input provided, use -cidr and/or -host")
	}
	if options.Timeout <= 0 {
		gologger.Fatal().Msg("timeout must be a positive number of milliseconds")
	}
	if options.Concurrency <= 0 && !options.Sequential {
		gologger.Fatal().Msg("concurrency must be positive, or use -sequential")
	}
}
