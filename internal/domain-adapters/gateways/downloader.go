package gateways

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces"
)

// maxEntrySize caps a single extracted file (decompression bomb guard)
const maxEntrySize = 1 << 30

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Downloader handles downloading and extracting installation artifacts
type Downloader struct {
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(logger interfaces.Logger) *Downloader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Downloader{
		httpClient: &http.Client{
			Timeout: 15 * time.Minute, // Installers are large
		},
		logger: logger,
	}
}

// NewDownloaderWithClient creates a downloader using the given HTTP client
func NewDownloaderWithClient(client *http.Client, logger interfaces.Logger) *Downloader {
	d := NewDownloader(logger)
	d.httpClient = client
	return d
}

// DownloadArtifact downloads the descriptor's install URL into outputDir
func (d *Downloader) DownloadArtifact(ctx context.Context, desc *entities.Descriptor, outputDir string) (*entities.Artifact, error) {
	if desc.Install.URL == "" {
		return nil, fmt.Errorf("%s has no download url", desc.Name)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, sanitizeFilename(desc.Install.URL))
	if err := d.downloadFile(ctx, desc.Install.URL, outputPath); err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	artifactType := "installer"
	if desc.Install.Method == entities.InstallArchive {
		artifactType = "archive"
	}

	return &entities.Artifact{
		Name:    desc.Name,
		Version: desc.Version,
		URL:     desc.Install.URL,
		Path:    outputPath,
		Type:    artifactType,
	}, nil
}

// sanitizeFilename derives a safe local file name from a download URL
func sanitizeFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Opaque != "" {
		return "download"
	}

	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}

	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if strings.Trim(name, "_.") == "" {
		return "download"
	}
	return name
}

// downloadFile downloads a file from URL to destination
func (d *Downloader) downloadFile(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ocrboot/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	//nolint:gosec // G304: dest is built from the configured download directory
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	//nolint:errcheck // Defer close on file being written
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	d.logger.Info("downloaded", interfaces.F("file", filepath.Base(dest)), interfaces.F("bytes", written))
	return nil
}

// ExtractArchive extracts a .zip or .tar.gz archive into destDir.
// With stripRoot the first path component of every entry is dropped.
func (d *Downloader) ExtractArchive(archivePath, destDir string, stripRoot bool) error {
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return d.extractZip(archivePath, destDir, stripRoot)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return d.extractTarGz(archivePath, destDir, stripRoot)
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
}

// entryTarget maps an archive entry name to its path below destDir.
// An empty result means the entry is skipped.
func entryTarget(destDir, name string, stripRoot bool) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if stripRoot {
		idx := strings.Index(strings.TrimPrefix(name, "./"), "/")
		if idx < 0 {
			return "", nil
		}
		name = strings.TrimPrefix(name, "./")[idx+1:]
	}
	if name == "" || name == "." {
		return "", nil
	}

	//nolint:gosec // G305: Path traversal validated below
	target := filepath.Join(destDir, filepath.FromSlash(name))
	cleanDest := filepath.Clean(destDir)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path in archive: %s", name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	//nolint:gosec // G304: target validated by entryTarget
	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(outFile, io.LimitReader(r, maxEntrySize)); err != nil {
		_ = outFile.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// extractZip extracts a .zip file to destination directory
func (d *Downloader) extractZip(zipPath, destDir string, stripRoot bool) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	for _, f := range zr.File {
		target, err := entryTarget(destDir, f.Name, stripRoot)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		mode := f.Mode().Perm()
		if mode == 0 {
			mode = 0644
		}
		err = writeEntry(target, rc, mode)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}

	d.logger.Info("extracted", interfaces.F("archive", filepath.Base(zipPath)), interfaces.F("dest", destDir))
	return nil
}

// extractTarGz extracts a .tar.gz file to destination directory
func (d *Downloader) extractTarGz(tarPath, destDir string, stripRoot bool) error {
	//nolint:gosec // G304: File path tarPath is function parameter for extraction
	file, err := os.Open(tarPath)
	if err != nil {
		return fmt.Errorf("failed to open tar.gz: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	//nolint:errcheck // Defer close on gzip reader
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Symlinks are created after regular files so their targets exist
	type symlinkInfo struct {
		target   string
		linkname string
	}
	var symlinks []symlinkInfo

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("tar read error: %w", err)
		}

		target, err := entryTarget(destDir, header.Name, stripRoot)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

		case tar.TypeReg:
			//nolint:gosec // G115: Integer overflow from tar header mode is acceptable
			if err := writeEntry(target, tr, os.FileMode(header.Mode)); err != nil {
				return err
			}

		case tar.TypeSymlink:
			symlinks = append(symlinks, symlinkInfo{target: target, linkname: header.Linkname})

		default:
			d.logger.Warn("ignoring unsupported tar entry",
				interfaces.F("type", string(header.Typeflag)), interfaces.F("name", header.Name))
		}
	}

	for _, link := range symlinks {
		if err := os.MkdirAll(filepath.Dir(link.target), 0750); err != nil {
			return fmt.Errorf("failed to create directory for symlink: %w", err)
		}
		if err := os.Symlink(link.linkname, link.target); err != nil {
			// Some archives ship broken symlinks
			d.logger.Warn("failed to create symlink",
				interfaces.F("link", link.target), interfaces.F("target", link.linkname), interfaces.F("error", err))
		}
	}

	d.logger.Info("extracted", interfaces.F("archive", filepath.Base(tarPath)), interfaces.F("dest", destDir))
	return nil
}
