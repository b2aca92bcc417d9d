// Package workspace is a client for the workspace service that owns projects, their
// containers and the files inside them.
package workspace

import (
	"path"
	"strings"
)

// FileContent is a file fetched from a container.
type FileContent struct {
	FileName    string `json:"fileName"`
	FileDir     string `json:"fileDir"`
	FileType    string `json:"fileType"`
	FileContent string `json:"fileContent"`
	Success     bool   `json:"success"`
}

// EmptyFile is substituted when a file cannot be fetched.
var EmptyFile = FileContent{}

// SplitPath splits a container file path into its directory and file name.
func SplitPath(filePath string) (dir, name string) {
	clean := path.Clean("/" + strings.TrimSpace(filePath))
	dir, name = path.Split(clean)
	return strings.TrimSuffix(dir, "/"), name
}
