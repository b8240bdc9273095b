package config

func ValidateForRun(cfg *Config) error {
	if err := cfg.DB.Validate(); err != nil {
		return err
	}
	if err := cfg.Redis.Validate(); err != nil {
		return err
	}
	return cfg.Schedule.Validate()
}
