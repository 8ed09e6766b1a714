package mocks

// FileSystem is a mock implementation of ports.FileSystem backed by a
// map.
type FileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool
}

// NewFileSystem creates an empty in-memory file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		Files: map[string][]byte{},
		Dirs:  map[string]bool{},
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	return m.Files[path], nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	m.Files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	m.Dirs[path] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	_, ok := m.Files[path]
	if !ok {
		ok = m.Dirs[path]
	}
	return ok, nil
}

func (m *FileSystem) Remove(path string) error {
	delete(m.Files, path)
	delete(m.Dirs, path)
	return nil
}
