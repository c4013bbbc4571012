package service

import "os"

// FileInfo reports the existence and size of a staged upload.
type FileInfo struct {
	Exists bool
	Size   int64
}

// FileInspector is the narrow collaborator the orchestrator uses to probe
// local files.
type FileInspector interface {
	Inspect(path string) FileInfo
}

// OSFileInspector inspects files on the local filesystem.
type OSFileInspector struct{}

func NewOSFileInspector() *OSFileInspector {
	return &OSFileInspector{}
}

func (OSFileInspector) Inspect(path string) FileInfo {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return FileInfo{}
	}
	return FileInfo{Exists: true, Size: info.Size()}
}
