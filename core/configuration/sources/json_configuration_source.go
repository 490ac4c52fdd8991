package sources

import (
	"fmt"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/slog"
	jsoniter "github.com/json-iterator/go"
	stripjsoncomments "github.com/trapcodeio/go-strip-json-comments"
)

var _ configuration.IConfigurationSource = (*JsonConfigurationSource)(nil)

type JsonConfigurationSource struct {
	Path           string
	Optional       bool
	ReloadOnChange bool
}

func (ss *JsonConfigurationSource) BuildConfigurationProvider(_ configuration.IConfigurationBuilder) configuration.IConfigurationProvider {
	return NewJsonConfigurationProvider(ss)
}

var _ configuration.IConfigurationProvider = (*JsonConfigurationProvider)(nil)

type JsonConfigurationProvider struct {
	*FileConfigurationProvider
}

func NewJsonConfigurationProvider(source *JsonConfigurationSource) *JsonConfigurationProvider {
	provider := &JsonConfigurationProvider{
		FileConfigurationProvider: NewFileConfigurationProvider(&FileConfigurationSource{
			Path:           source.Path,
			Optional:       source.Optional,
			ReloadOnChange: source.ReloadOnChange,
		}),
	}
	provider.OnLoad = provider.OnLoadJson
	return provider
}

func (ss *JsonConfigurationProvider) OnLoadJson(bytes []byte) {
	newMap, err := ConvertJsonToConfigurationKV("", stripjsoncomments.Strip(string(bytes)))
	if err != nil {
		slog.Warnf("load json %v: %v", ss.path, err)
		ss.Replace(container.NewMap[string, string]())
		return
	}

	ss.Replace(newMap)
}

// ConvertJsonToConfigurationKV flattens a json object into configuration keys below head.
func ConvertJsonToConfigurationKV(head string, json string) (container.Map[string, string], error) {
	var jsons map[string]any
	if err := jsoniter.UnmarshalFromString(json, &jsons); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	newMap := container.NewMap[string, string]()
	for key, value := range jsons {
		if err := flatten(newMap, joinKey(head, key), value); err != nil {
			return nil, err
		}
	}
	return newMap, nil
}
