package workspace

// FileReader defines operations for reading source files.
type FileReader interface {
	ReadFile(path string) (string, error)
}
