package section

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// LoadFromFile loads a section definition from a JSON or YAML file
func LoadFromFile(filepath string) (*Section, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return decode(v)
}

// Parse reads a section definition in the given format (json, yaml, toml)
func Parse(r io.Reader, format string) (*Section, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return decode(v)
}

// decode accepts either explicit vertices or a shape block
func decode(v *viper.Viper) (*Section, error) {
	var doc struct {
		Section `mapstructure:",squash"`
		Shape   *Shape `mapstructure:"shape"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("invalid section document: %w", err)
	}
	if doc.Shape != nil {
		s, err := doc.Shape.Build(doc.Name)
		if err != nil {
			return nil, err
		}
		s.Description = doc.Description
		return s, nil
	}
	section := doc.Section
	if err := section.Validate(); err != nil {
		return nil, err
	}
	return &section, nil
}
