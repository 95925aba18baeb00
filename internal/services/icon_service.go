package services

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"quickcmd/internal/infrastructure/logging"
	"quickcmd/internal/types"
)

const (
	iconExt = ".svg"
	// UserIconRoute is the asset server prefix for user icons.
	UserIconRoute = "/user-icons/"
	// BundledIconRoute is where the frontend ships its own icons.
	BundledIconRoute = "/assets/svg/"
)

// IconService finds command icons in the user icon directory.
type IconService struct {
	dir    string
	logger logging.Logger
}

func NewIconService(dir string, logger logging.Logger) *IconService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &IconService{dir: dir, logger: logging.WithComponent(logger, "icons")}
}

// UserIconDir returns the directory without creating it.
func (s *IconService) UserIconDir() string {
	return s.dir
}

// ListUserIcons creates the directory if needed and returns the .svg file
// names in it. Read failures yield an empty list.
func (s *IconService) ListUserIcons() []string {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Warn("Cannot create icon directory", "dir", s.dir, "error", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("Cannot read icon directory", "dir", s.dir, "error", err)
		return []string{}
	}

	icons := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), iconExt) {
			continue
		}
		icons = append(icons, e.Name())
	}
	return icons
}

// ResolveIcon maps an icon name to a URL, preferring a user icon with the
// same file name over the bundled one.
func (s *IconService) ResolveIcon(icon string) types.ResolvedIcon {
	file := icon
	if !strings.HasSuffix(file, iconExt) {
		file += iconExt
	}

	if s.hasUserIcon(file) {
		return types.ResolvedIcon{
			File:   file,
			URL:    UserIconRoute + file,
			Path:   filepath.Join(s.dir, file),
			Source: types.IconSourceUser,
		}
	}
	return types.ResolvedIcon{File: file, URL: BundledIconRoute + file, Source: types.IconSourceBundled}
}

func (s *IconService) hasUserIcon(file string) bool {
	if !validIconFile(file) {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, file))
	return err == nil && info.Mode().IsRegular()
}

// validIconFile rejects names that would leave the icon directory.
func validIconFile(file string) bool {
	return file != iconExt &&
		!strings.ContainsAny(file, `/\`) &&
		path.Clean(file) == file &&
		!strings.HasPrefix(file, "..")
}

// ServeHTTP serves user icons under UserIconRoute for the webview asset
// server. Other paths get 404 so the asset server can fall through.
func (s *IconService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	file, ok := strings.CutPrefix(r.URL.Path, UserIconRoute)
	if !ok || !strings.HasSuffix(file, iconExt) || !s.hasUserIcon(file) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, filepath.Join(s.dir, file))
}
