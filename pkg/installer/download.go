package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/pterm/pterm"
)

func (i *Installer) download(ctx context.Context, dest, downloadURL string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create download directory '%s'", filepath.Dir(dest))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "invalid download url '%s'", downloadURL)
	}
	req.Header.Set("User-Agent", UserAgent)

	i.logger.Info().Str("url", downloadURL).Msg("Downloading toolchain")
	resp, err := i.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to download '%s'", downloadURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := errors.Newf(errors.ErrIO, "failed to download '%s': unexpected status %s", downloadURL, resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			e = errors.Newf(errors.ErrInvalidInput,
				"no release found at '%s'. Check the version and your platform", downloadURL)
		}
		return e
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to create temporary download file")
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	var body io.Reader = resp.Body
	bar := i.startProgress(resp.ContentLength, filepath.Base(dest))
	if bar != nil {
		body = &progressReader{r: resp.Body, bar: bar}
	}

	_, copyErr := io.Copy(tmpFile, body)
	if bar != nil {
		_, _ = bar.Stop()
	}
	if copyErr != nil {
		_ = tmpFile.Close()
		return errors.Wrapf(copyErr, errors.ErrIO, "failed to download '%s'", downloadURL)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to write downloaded archive")
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to finalize download '%s'", dest)
	}
	return nil
}

func (i *Installer) startProgress(total int64, title string) *pterm.ProgressbarPrinter {
	if i.opts.Progress == nil || total <= 0 {
		return nil
	}
	// pterm counts in ints; report KiB so large archives stay in range
	bar, err := pterm.DefaultProgressbar.
		WithTotal(int((total + 1023) / 1024)).
		WithTitle(fmt.Sprintf("Downloading %s", title)).
		WithWriter(i.opts.Progress).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		i.logger.Debug().Err(err).Msg("Progress bar unavailable")
		return nil
	}
	return bar
}

type progressReader struct {
	r       io.Reader
	bar     *pterm.ProgressbarPrinter
	pending int64
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.pending += int64(n)
	if kib := p.pending / 1024; kib > 0 {
		p.bar.Add(int(kib))
		p.pending -= kib * 1024
	}
	return n, err
}
