package icicle

import (
	"embed"
	"io/fs"
)

//go:embed topics
var topicsFS embed.FS

// helpTopics returns the embedded help topics rooted at the topics directory
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		// The directory is embedded at build time
		panic(err)
	}
	return sub
}
