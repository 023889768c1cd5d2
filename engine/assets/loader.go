package assets

// Loader turns a file on disk into a Resource. One loader is registered per AssetType.
type Loader interface {
	Load(path string) (*Resource, error)
	Unload(*Resource) error
}
