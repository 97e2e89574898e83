package config

const (
	defaultOutputDir     = "./avatar-out"
	defaultLogDir        = "~/.local/share/avatarforge/logs"
	defaultJobsDB        = "~/.local/share/avatarforge/jobs.db"
	defaultLanguage      = "en"
	defaultAtlasMinSize  = 512
	defaultSpeechRateWPM = 150.0
	defaultSampleRate    = 60
	defaultTargetWidth   = 400
	defaultTargetHeight  = 600
	defaultBatchWorkers  = 4
	defaultBatchPattern  = "*"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			JobsDB:    defaultJobsDB,
		},
		Rules: Rules{
			Language: defaultLanguage,
		},
		Atlas: Atlas{
			MinSize: defaultAtlasMinSize,
		},
		Graph: Graph{
			Presets: []string{"idle-talk", "full-emotion"},
		},
		Lipsync: Lipsync{
			SpeechRateWPM: defaultSpeechRateWPM,
			SampleRate:    defaultSampleRate,
		},
		Optimizer: Optimizer{
			TargetWidth:  defaultTargetWidth,
			TargetHeight: defaultTargetHeight,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
			Pattern: defaultBatchPattern,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
