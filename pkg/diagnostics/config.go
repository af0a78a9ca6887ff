package diagnostics

type Config struct {
	Enabled  bool `env:"DIAGNOSTICS_ENABLED" envDefault:"false"`
	Capacity int  `env:"DIAGNOSTICS_CAPACITY" envDefault:"100"`
}

func DefaultConfig() Config {
	return Config{Capacity: DefaultCapacity}
}

// NewFromConfig returns a Recorder, or nil when diagnostics are disabled.
func NewFromConfig(cfg Config) *Recorder {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	return NewRecorder(cfg.Capacity)
}
