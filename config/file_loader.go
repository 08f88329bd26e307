package config

import (
	"path"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/ecsig/core/tag"
	"github.com/kochabx/ecsig/core/validator"
	"github.com/kochabx/ecsig/errors"
)

// DefaultEnvPrefix is prepended to every environment variable name
const DefaultEnvPrefix = "ECSIG"

// Source describes where configuration is read from
type Source struct {
	File      string   // explicit file path, takes precedence over Name
	Name      string   // file name searched in Paths
	Paths     []string // search directories
	Optional  bool     // tolerate a missing file found by name search
	EnvPrefix string   // environment prefix, e.g. ECSIG -> ECSIG_SERVER_ADDR
}

// fileLoader loads configuration from file and environment
type fileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	source   Source
}

func newFileLoader(v *viper.Viper, validate validator.Validator, source Source) *fileLoader {
	if source.File != "" {
		v.SetConfigFile(source.File)
	} else {
		for _, p := range source.Paths {
			v.AddConfigPath(p)
		}
		ext := path.Ext(source.Name)
		v.SetConfigName(strings.TrimSuffix(source.Name, ext))
		v.SetConfigType(strings.TrimPrefix(ext, "."))
	}

	v.SetEnvPrefix(source.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &fileLoader{
		viper:    v,
		validate: validate,
		source:   source,
	}
}

// Load applies struct defaults, then the file, then the environment, and
// validates the result
func (l *fileLoader) Load(target any) error {
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Wrap(err, 500, "failed to apply defaults")
	}

	// AutomaticEnv only reaches keys viper knows about.
	for _, key := range keys(reflect.TypeOf(target), "") {
		_ = l.viper.BindEnv(key)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !l.source.Optional || !errors.As(err, &notFound) {
			return errors.NewWithMetadata(404, map[string]string{"file": l.configFile()}, "config file not found").WithCause(err)
		}
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Wrap(err, 500, "config parse error")
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Wrap(err, 400, "config validation failed")
		}
	}

	return nil
}

// configFile names the file being loaded, for error metadata
func (l *fileLoader) configFile() string {
	if f := l.viper.ConfigFileUsed(); f != "" {
		return f
	}
	if l.source.File != "" {
		return l.source.File
	}
	return l.source.Name
}

// Watch invokes callback on every file change
func (l *fileLoader) Watch(callback func()) {
	l.viper.OnConfigChange(func(fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})
	l.viper.WatchConfig()
}

// keys lists the dotted keys of all leaf fields of a struct type, named by
// their mapstructure tag or lowercased field name
func keys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			out = append(out, keys(ft, name)...)
			continue
		}
		out = append(out, name)
	}
	return out
}
