package sources

import (
	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

var _ configuration.IConfigurationSource = (*MemoryConfigurationSource)(nil)

type MemoryConfigurationSource struct {
	InitData map[string]string
}

func (ss *MemoryConfigurationSource) BuildConfigurationProvider(_ configuration.IConfigurationBuilder) configuration.IConfigurationProvider {
	return NewMemoryConfigurationProvider(ss)
}

var _ configuration.IConfigurationProvider = (*MemoryConfigurationProvider)(nil)

type MemoryConfigurationProvider struct {
	*configuration.Provider
}

func NewMemoryConfigurationProvider(source *MemoryConfigurationSource) *MemoryConfigurationProvider {
	provider := configuration.NewProvider()
	provider.Replace(container.Map[string, string](source.InitData).Copy())
	return &MemoryConfigurationProvider{
		Provider: provider,
	}
}
