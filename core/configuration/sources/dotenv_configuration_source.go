package sources

import (
	"strings"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/slog"
	"github.com/joho/godotenv"
)

// DotenvSectionDelimiter separates sections in variable names: CONTAINER__SYNCHRONIZED is Container:Synchronized.
const DotenvSectionDelimiter = "__"

var _ configuration.IConfigurationSource = (*DotenvConfigurationSource)(nil)

type DotenvConfigurationSource struct {
	Path           string
	Optional       bool
	ReloadOnChange bool
	// Prefix keeps only the variables starting with it and strips it from the key.
	Prefix string
}

func (ss *DotenvConfigurationSource) BuildConfigurationProvider(_ configuration.IConfigurationBuilder) configuration.IConfigurationProvider {
	return NewDotenvConfigurationProvider(ss)
}

var _ configuration.IConfigurationProvider = (*DotenvConfigurationProvider)(nil)

type DotenvConfigurationProvider struct {
	*FileConfigurationProvider

	prefix string
}

func NewDotenvConfigurationProvider(source *DotenvConfigurationSource) *DotenvConfigurationProvider {
	provider := &DotenvConfigurationProvider{
		FileConfigurationProvider: NewFileConfigurationProvider(&FileConfigurationSource{
			Path:           source.Path,
			Optional:       source.Optional,
			ReloadOnChange: source.ReloadOnChange,
		}),
		prefix: strings.ToUpper(source.Prefix),
	}
	provider.OnLoad = provider.OnLoadDotenv
	return provider
}

func (ss *DotenvConfigurationProvider) OnLoadDotenv(bytes []byte) {
	env, err := godotenv.Unmarshal(string(bytes))
	if err != nil {
		slog.Warnf("load dotenv %v: %v", ss.path, err)
		ss.Replace(container.NewMap[string, string]())
		return
	}

	ss.Replace(ConvertEnvToConfigurationKV(ss.prefix, env))
}

func ConvertEnvToConfigurationKV(prefix string, env map[string]string) container.Map[string, string] {
	newMap := container.NewMap[string, string]()
	for key, value := range env {
		upper := strings.ToUpper(key)
		if len(prefix) > 0 {
			if !strings.HasPrefix(upper, prefix) {
				continue
			}
			upper = upper[len(prefix):]
		}
		newMap.Add(strings.ReplaceAll(upper, DotenvSectionDelimiter, configuration.KeyDelimiter), value)
	}
	return newMap
}
