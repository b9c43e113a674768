package common

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/static"
)

type embedFileSystem struct {
	http.FileSystem
}

func (f embedFileSystem) Exists(prefix string, path string) bool {
	_, err := f.Open(path)
	return err == nil
}

// EmbedFolder exposes a subdirectory of an embedded filesystem to
// static.Serve.
func EmbedFolder(fsEmbed embed.FS, targetPath string) static.ServeFileSystem {
	sub, err := fs.Sub(fsEmbed, targetPath)
	if err != nil {
		panic(err)
	}
	return embedFileSystem{FileSystem: http.FS(sub)}
}
