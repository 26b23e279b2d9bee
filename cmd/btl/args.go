package main

import (
	"fmt"
	"slices"
	"strings"
)

const argTerminator = "--"

type flagSpec struct {
	long     string
	aliases  []string
	hasValue bool
}

// knownFlags lists every spelling btl consumes itself. "-mx" is spelled out
// because pflag shorthands are a single character.
var knownFlags = []flagSpec{
	{long: "--update-trackers", aliases: []string{"-u"}},
	{long: "--move-to", aliases: []string{"-m"}, hasValue: true},
	{long: "--move-to-exclude", aliases: []string{"-mx"}, hasValue: true},
	{long: "--help", aliases: []string{"-h"}},
}

// splitArgs separates btl's own flags from pass-through arguments.
//
// Known flags are rewritten to their long "--name=value" form so pflag can
// parse them unambiguously; everything else keeps its original order. A
// literal "--" ends btl's flags and is not forwarded.
func splitArgs(raw []string) (known, passthrough []string, err error) {
	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == argTerminator {
			passthrough = append(passthrough, raw[i+1:]...)
			break
		}

		spec, value, inline, ok := matchFlag(arg)
		if !ok {
			passthrough = append(passthrough, arg)
			continue
		}
		if !spec.hasValue {
			known = append(known, arg)
			continue
		}
		if !inline {
			if i+1 >= len(raw) {
				return nil, nil, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			value = raw[i]
		}
		known = append(known, spec.long+"="+value)
	}
	return known, passthrough, nil
}

func matchFlag(arg string) (spec flagSpec, value string, inline, ok bool) {
	name, value, inline := strings.Cut(arg, "=")
	for _, candidate := range knownFlags {
		if name == candidate.long || slices.Contains(candidate.aliases, name) {
			if inline && !candidate.hasValue {
				// "--update-trackers=true" is left for pflag to parse.
				if name != candidate.long {
					return flagSpec{}, "", false, false
				}
			}
			return candidate, value, inline, true
		}
	}
	return flagSpec{}, "", false, false
}
