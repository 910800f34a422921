package cli

import "syci/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	NameFilter string
	Verbose    bool
	Inspect    bool
	Assembly   bool
	Update     bool
	FlagP      bool
	Optimize   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		NameFilter: f.NameFilter,
		Verbose:    f.Verbose,
		Inspect:    f.Inspect,
		Assembly:   f.Assembly,
		Update:     f.Update,
		FlagP:      f.FlagP,
		Optimize:   f.Optimize,
	}
}
