package configuration

import (
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

var _ IConfigurationSection = (*Section)(nil)

type Section struct {
	root IConfigurationRoot
	path string
	key  string
}

func NewSection(root IConfigurationRoot, path string) *Section {
	return &Section{
		root: root,
		path: path,
		key:  pathSectionKey(path),
	}
}

func (ss *Section) Get(key string) string {
	return ss.root.Get(pathCombine(ss.path, key))
}

func (ss *Section) TryGet(key string) (value string, ok bool) {
	return ss.root.TryGet(pathCombine(ss.path, key))
}

func (ss *Section) Set(key string, value string) {
	ss.root.Set(pathCombine(ss.path, key), value)
}

func (ss *Section) GetSection(key string) IConfigurationSection {
	return ss.root.GetSection(pathCombine(ss.path, key))
}

func (ss *Section) GetChildren() container.List[IConfigurationSection] {
	return ss.root.GetChildrenByPath(ss.path)
}

func (ss *Section) GetChildrenByPath(path string) container.List[IConfigurationSection] {
	return ss.root.GetChildrenByPath(pathCombine(ss.path, path))
}

func (ss *Section) GetReloadNotifier() INotifier {
	return ss.root.GetReloadNotifier()
}

func (ss *Section) GetKey() string {
	return ss.key
}

func (ss *Section) GetPath() string {
	return ss.path
}

func (ss *Section) GetValue() (string, bool) {
	return ss.root.TryGet(ss.path)
}

// SetValue sets key relative to this section.
func (ss *Section) SetValue(key, value string) {
	ss.root.Set(pathCombine(ss.path, key), value)
}
