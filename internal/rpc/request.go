package rpc

import (
	"strings"
)

// Environment variables exposing request flags to the runner scripts.
const (
	UpdateEnv   = "SYCI_UPDATE"
	FlagPEnv    = "SYCI_P"
	OptimizeEnv = "SYCI_O"
)

// Request is a CallTest path with its optional flag prefix, e.g. "011#tests/a.sy"
type Request struct {
	Path     string
	Update   bool // compiler was re-uploaded before this call
	FlagP    bool
	Optimize bool
}

// Encode renders the wire form: three 0/1 digits for update, p and O, a '#',
// then the path.
func (r Request) Encode() string {
	return bit(r.Update) + bit(r.FlagP) + bit(r.Optimize) + "#" + r.Path
}

// Env returns the flags as KEY=0|1 pairs.
func (r Request) Env() []string {
	return []string{
		UpdateEnv + "=" + bit(r.Update),
		FlagPEnv + "=" + bit(r.FlagP),
		OptimizeEnv + "=" + bit(r.Optimize),
	}
}

// ParseRequest splits the optional flag prefix off raw. Anything that is not
// exactly three 0/1 digits before the first '#' is treated as a plain path.
func ParseRequest(raw string) Request {
	prefix, path, ok := strings.Cut(raw, "#")
	if !ok || len(prefix) != 3 || strings.Trim(prefix, "01") != "" {
		return Request{Path: raw}
	}
	return Request{
		Path:     path,
		Update:   prefix[0] == '1',
		FlagP:    prefix[1] == '1',
		Optimize: prefix[2] == '1',
	}
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
