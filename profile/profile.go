// Package profile adds opt-in CPU and heap profiling to CLI commands.
//
// Create a [Config], register its flags, and wrap the command body in
// [Profiler.Start] / [Profiler.Stop]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	prof := cfg.NewProfiler()
//	err := prof.Start()
//	defer prof.Stop()
//
// A zero-value Config leaves profiling disabled.
package profile

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPUProfile  string
	HeapProfile string
}

// Config holds profiling output paths. Empty paths disable the
// corresponding profile.
type Config struct {
	Flags       Flags
	CPUProfile  string
	HeapProfile string
}

// NewConfig returns a new [Config] with default flag names and profiling
// disabled.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			CPUProfile:  "cpu-profile",
			HeapProfile: "heap-profile",
		},
	}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file")
}

// NewProfiler creates a [Profiler] using this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: *c}
}

// Profiler controls one profiling session around a command run.
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start begins CPU profiling when enabled. Call [Profiler.Stop] when the
// command finishes to write snapshot profiles.
func (p *Profiler) Start() error {
	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile)
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		f.Close()

		return fmt.Errorf("starting CPU profile: %w", err)
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the heap snapshot when enabled.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		p.cpuFile = nil
	}

	if p.HeapProfile == "" {
		return nil
	}

	f, err := os.Create(p.HeapProfile)
	if err != nil {
		return fmt.Errorf("creating heap profile: %w", err)
	}

	err = pprof.Lookup("heap").WriteTo(f, 0)
	if err != nil {
		f.Close()

		return fmt.Errorf("writing heap profile: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("writing heap profile: %w", err)
	}

	return nil
}
