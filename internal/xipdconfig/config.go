// Package xipdconfig loads the optional .xipdrc.json project settings
// file. It deliberately parses the document schema-free (go-simplejson)
// rather than into a fixed struct: unrecognized keys are ignored instead
// of rejected, so older config files keep working against newer
// compiler versions.
package xipdconfig

import (
	"fmt"
	"os"

	"github.com/bitly/go-simplejson"
)

// Config holds the settings xipd reads from .xipdrc.json. Zero values
// mean "not set"; callers fall back to flag defaults.
type Config struct {
	StdlibRoot string
	DotPath    string
	NoAutoformat bool
}

// Load reads and parses path. A missing file is not an error: it
// returns the zero Config, matching xipdrc being entirely optional.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("xipdconfig: reading %s: %w", path, err)
	}

	js, err := simplejson.NewJson(data)
	if err != nil {
		return Config{}, fmt.Errorf("xipdconfig: parsing %s: %w", path, err)
	}

	cfg := Config{}
	if v, err := js.Get("stdlibRoot").String(); err == nil {
		cfg.StdlibRoot = v
	}
	if v, err := js.Get("dotPath").String(); err == nil {
		cfg.DotPath = v
	}
	if v, err := js.Get("noAutoformat").Bool(); err == nil {
		cfg.NoAutoformat = v
	}
	return cfg, nil
}

// Merge overlays non-zero fields of override onto base, returning the
// result. Used to let CLI flags win over xipdrc settings.
func Merge(base, override Config) Config {
	result := base
	if override.StdlibRoot != "" {
		result.StdlibRoot = override.StdlibRoot
	}
	if override.DotPath != "" {
		result.DotPath = override.DotPath
	}
	if override.NoAutoformat {
		result.NoAutoformat = true
	}
	return result
}
