package installer

import (
	"archive/tar"
	"compress/gzip"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
)

// ExtractTarGz unpacks a gzip-compressed tar stream into dest. Entries
// that would land outside dest, including through symlinks, are rejected.
func ExtractTarGz(ctx context.Context, r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to open gzip stream")
	}
	defer func() { _ = gz.Close() }()

	return untarStream(ctx, gz, dest)
}

func untarStream(ctx context.Context, r io.Reader, dest string) error {
	root, err := filepath.Abs(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for '%s'", dest)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", root)
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to resolve '%s'", root)
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrIO, "extraction cancelled")
		}

		header, err := tr.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrIO, "failed to read tar header")
		}

		target, err := within(root, header.Name)
		if err != nil {
			return err
		}
		if target == root {
			continue
		}
		rel, err := filepath.Rel(root, target)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to relativize '%s'", header.Name)
		}

		// Earlier entries may have turned a parent into a symlink
		parent, err := resolveIn(realRoot, realRoot, filepath.Dir(rel), header.Name)
		if err != nil {
			return err
		}
		target = filepath.Join(parent, filepath.Base(rel))

		switch header.Typeflag {
		case tar.TypeDir:
			dir, err := resolveIn(realRoot, parent, filepath.Base(rel), header.Name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, dirMode(header.Mode)); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", dir)
			}
		case tar.TypeReg, tar.TypeRegA:
			if err := removeSymlink(target); err != nil {
				return err
			}
			if err := writeFile(tr, target, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(realRoot, parent, header.Name, header.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(parent, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create directory for '%s'", target)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create symlink '%s'", target)
			}
		case tar.TypeLink:
			linked, err := within(root, header.Linkname)
			if err != nil {
				return err
			}
			linkedRel, _ := filepath.Rel(root, linked)
			source, err := resolveIn(realRoot, realRoot, linkedRel, header.Linkname)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(parent, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create directory for '%s'", target)
			}
			if err := os.Link(source, target); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create hard link '%s'", target)
			}
		default:
			// Devices, fifos and the like have no place in a toolchain
		}
	}
	return nil
}

func writeFile(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create directory for '%s'", target)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create file '%s'", target)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrIO, "failed to write file '%s'", target)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to close file '%s'", target)
	}
	return nil
}

// removeSymlink clears a symlink sitting where a regular file is about to
// be written, so the write cannot follow it.
func removeSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to replace symlink '%s'", path)
	}
	return nil
}

// within joins name onto root and fails if the result escapes root
func within(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if !contains(root, target) {
		return "", escapeError(name)
	}
	return target, nil
}

// resolveIn walks rel from base one component at a time, following any
// symlinks already on disk, and fails as soon as the walk leaves realRoot.
// Components that do not exist yet are taken literally.
func resolveIn(realRoot, base, rel, name string) (string, error) {
	cur := base
	missing := false
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if missing {
				return "", escapeError(name)
			}
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, part)
			if missing {
				break
			}
			info, err := os.Lstat(cur)
			if err != nil {
				missing = true
				break
			}
			if info.Mode()&os.ModeSymlink != 0 {
				resolved, err := filepath.EvalSymlinks(cur)
				if err != nil {
					missing = true
					break
				}
				cur = resolved
			}
		}
		if !contains(realRoot, cur) {
			return "", escapeError(name)
		}
	}
	return cur, nil
}

func checkLinkTarget(realRoot, parent, link, linkname string) error {
	if filepath.IsAbs(linkname) {
		return errors.Newf(errors.ErrIO, "archive symlink '%s' has absolute target '%s'", link, linkname).
			WithDetail(errors.DetailPath, link)
	}
	if _, err := resolveIn(realRoot, parent, linkname, link); err != nil {
		return errors.Newf(errors.ErrIO, "archive symlink '%s' points outside the extraction directory", link).
			WithDetail(errors.DetailPath, link)
	}
	return nil
}

func contains(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func escapeError(name string) error {
	return errors.Newf(errors.ErrIO, "archive entry '%s' escapes the extraction directory", name).
		WithDetail(errors.DetailPath, name)
}

func dirMode(mode int64) os.FileMode {
	perm := os.FileMode(mode).Perm()
	if perm == 0 {
		return 0755
	}
	// Directories must stay writable so extraction can fill them
	return perm | 0700
}

// MakeExecutable sets the execute bits on every regular file under the
// given subdirectories of root. Missing subdirectories are skipped.
func MakeExecutable(root string, subpaths []string) error {
	for _, sub := range subpaths {
		dir := filepath.Join(root, filepath.FromSlash(sub))
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) && path == dir {
					return filepath.SkipDir
				}
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.Chmod(path, info.Mode().Perm()|0111)
		})
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to make files under '%s' executable", dir).
				WithDetail(errors.DetailPath, dir)
		}
	}
	return nil
}
