// Package flagx lets several components share os.Args: each one keeps only
// the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Set describes the flags a component owns. Boolean flags never consume the
// following argument as their value.
type Set struct {
	valued  map[string]struct{}
	boolean map[string]struct{}
}

// NewSet builds a Set from value-taking flag names and boolean flag names,
// both written with their leading dashes ("-d", "--config").
func NewSet(valued []string, boolean ...string) Set {
	s := Set{
		valued:  make(map[string]struct{}, len(valued)),
		boolean: make(map[string]struct{}, len(boolean)),
	}
	for _, f := range valued {
		s.valued[f] = struct{}{}
	}
	for _, f := range boolean {
		s.boolean[f] = struct{}{}
	}
	return s
}

func (s Set) owns(name string) bool {
	_, v := s.valued[name]
	_, b := s.boolean[name]
	return v || b
}

// Filter returns the owned flags from args, in order, together with their
// values. Both "-d value" and "-d=value" forms are understood. The result is
// never nil.
func (s Set) Filter(args []string) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if s.owns(name) {
				filtered = append(filtered, arg)
			}
			continue
		}

		if !s.owns(arg) {
			continue
		}
		filtered = append(filtered, arg)

		if _, isBool := s.boolean[arg]; isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// FilterArgs keeps only allowedFlags (all value-taking) and their values.
func FilterArgs(args []string, allowedFlags []string) []string {
	return NewSet(allowedFlags).Filter(args)
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// The last occurrence wins; "" means no file was requested.
func ConfigPath(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

// JsonConfigFlags is ConfigPath applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}
