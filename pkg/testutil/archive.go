package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"testing"
)

// ToolchainArchive builds a gzipped tarball laid out like a release asset,
// with an environment file and one tool under oss-cad-suite/bin.
func ToolchainArchive(t *testing.T, version string) []byte {
	t.Helper()

	files := []struct {
		name string
		body string
		mode int64
		dir  bool
	}{
		{name: "oss-cad-suite/", dir: true, mode: 0755},
		{name: "oss-cad-suite/environment", body: "export ICICLE_TOOLCHAIN=" + version + "\n", mode: 0644},
		{name: "oss-cad-suite/bin/", dir: true, mode: 0755},
		{name: "oss-cad-suite/bin/yosys", body: "#!/bin/sh\necho " + version + "\n", mode: 0644},
		{name: "oss-cad-suite/libexec/", dir: true, mode: 0755},
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, f := range files {
		hdr := &tar.Header{Name: f.name, Mode: f.mode, Typeflag: tar.TypeReg, Size: int64(len(f.body))}
		if f.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write tar header %s: %v", f.name, err)
		}
		if !f.dir {
			if _, err := tw.Write([]byte(f.body)); err != nil {
				t.Fatalf("Failed to write tar entry %s: %v", f.name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}
