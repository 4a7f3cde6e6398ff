package cli

import "e2eperf/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	ProjectPath string
	Filter      string
	FailFast    bool
	Driver      string
	Headed      bool
	NoOpen      bool
	Verbose     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		Filter:     f.Filter,
		FailFast:   f.FailFast,
		Driver:     f.Driver,
		Headed:     f.Headed,
		NoOpen:     f.NoOpen,
		Verbose:    f.Verbose,
	}
}

// LoadConfig rebuilds cfg in place from the project's config sources and the
// parsed flags. Commands hold cfg by pointer, so it is overwritten rather than replaced.
func LoadConfig(cfg *config.Config, flags *Flags) error {
	loaded, err := config.Load(flags.ProjectPath, flags.ConfigFile)
	if err != nil {
		return err
	}
	loaded.ApplyFlags(flags.ToConfigFlags())
	if err := loaded.Validate(); err != nil {
		return err
	}
	*cfg = *loaded
	return nil
}
