package config

const (
	defaultConfigPath           = "~/.config/radiotimeline/config.toml"
	defaultBaseDir              = "~/radio/broadcasts"
	defaultLogDir               = "~/.local/share/radiotimeline/logs"
	defaultStateDir             = "~/.local/share/radiotimeline"
	defaultTranscriptSubdir     = "transcript"
	defaultRoleWindow           = 3
	defaultGuestMinInteractions = 7
	defaultGuestDominance       = 2.0
	defaultLabelGuestMinRate    = 0.2
	defaultLabelGuestMinCount   = 5
	defaultLabelADMinSeconds    = 0.5
	defaultLabelADMaxSeconds    = 100.0
	defaultBlockMusicMinSeconds = 60.0
	defaultBlockMusicRatio      = 0.7
	defaultSRTMusicMinSeconds   = 35.0
	defaultSRTGapMusicSeconds   = 30.0
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"

	// BaseDirEnv overrides paths.base_dir when set.
	BaseDirEnv = "RADIOTIMELINE_BASE_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BaseDir:  defaultBaseDir,
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Layout: Layout{
			TranscriptSubdir: defaultTranscriptSubdir,
		},
		Roles: Roles{
			Window:               defaultRoleWindow,
			GuestMinInteractions: defaultGuestMinInteractions,
			GuestDominance:       defaultGuestDominance,
		},
		Labels: Labels{
			GuestMinRate:  defaultLabelGuestMinRate,
			GuestMinCount: defaultLabelGuestMinCount,
			ADMinSeconds:  defaultLabelADMinSeconds,
			ADMaxSeconds:  defaultLabelADMaxSeconds,
		},
		Blocks: Blocks{
			MusicMinSeconds: defaultBlockMusicMinSeconds,
			MusicRatio:      defaultBlockMusicRatio,
		},
		SRT: SRT{
			Enabled:            true,
			MusicMinSeconds:    defaultSRTMusicMinSeconds,
			GapMusicMinSeconds: defaultSRTGapMusicSeconds,
		},
		Store: Store{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
