package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"github.com/tiseno100/chipset-reversing/emu/log"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Log     LogConfig     `toml:"log"`
	Output  OutputConfig  `toml:"output"`
}

type GeneralConfig struct {
	// Chipset used when none is given on the command line.
	Chipset string `toml:"chipset"`
}

type LogConfig struct {
	// Modules with debug logs enabled.
	Modules []string `toml:"modules"`
}

type OutputConfig struct {
	JSON bool `toml:"json"`
}

// DefaultConfig is the configuration used when there's no configuration
// file.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Chipset: "ali-aladdin-iii"},
	}
}

var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("chipset-reversing")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// ConfigPath returns the path of the configuration file in the config
// directory.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfig loads the configuration at path. A missing file is not an error,
// the default configuration is returned instead. Keys not present in the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown configuration key").String("key", key.String()).End()
	}
	return cfg, nil
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
