package sources

import (
	"fmt"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/slog"
	"gopkg.in/yaml.v3"
)

var _ configuration.IConfigurationSource = (*YamlConfigurationSource)(nil)

type YamlConfigurationSource struct {
	Path           string
	Optional       bool
	ReloadOnChange bool
}

func (ss *YamlConfigurationSource) BuildConfigurationProvider(_ configuration.IConfigurationBuilder) configuration.IConfigurationProvider {
	return NewYamlConfigurationProvider(ss)
}

var _ configuration.IConfigurationProvider = (*YamlConfigurationProvider)(nil)

type YamlConfigurationProvider struct {
	*FileConfigurationProvider
}

func NewYamlConfigurationProvider(source *YamlConfigurationSource) *YamlConfigurationProvider {
	provider := &YamlConfigurationProvider{
		FileConfigurationProvider: NewFileConfigurationProvider(&FileConfigurationSource{
			Path:           source.Path,
			Optional:       source.Optional,
			ReloadOnChange: source.ReloadOnChange,
		}),
	}
	provider.OnLoad = provider.OnLoadYaml
	return provider
}

func (ss *YamlConfigurationProvider) OnLoadYaml(bytes []byte) {
	newMap, err := ConvertYamlToConfigurationKV("", bytes)
	if err != nil {
		slog.Warnf("load yaml %v: %v", ss.path, err)
		ss.Replace(container.NewMap[string, string]())
		return
	}

	ss.Replace(newMap)
}

func ConvertYamlToConfigurationKV(head string, data []byte) (container.Map[string, string], error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal failed: %w", err)
	}

	newMap := container.NewMap[string, string]()
	for key, value := range doc {
		if err := flatten(newMap, joinKey(head, key), value); err != nil {
			return nil, err
		}
	}
	return newMap, nil
}
