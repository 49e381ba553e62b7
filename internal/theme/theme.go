// Package theme gathers the cosmetic inputs of the display: background and
// header images and the optional theme file. Nothing here can stop a
// session; a missing or unreadable asset falls back to a default.
package theme

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/vote-reveal/internal/view"
)

const FallbackBackground = "background-color: #0E1117;"

const DefaultTitle = "Voterastics 2025 - Live Count"

var errMissingAsset = errors.New("asset file not found")

type Options struct {
	BackgroundFile string
	HeaderImage    string
	ThemeFile      string
	Language       string
}

type Theme struct {
	Title       string
	Labels      view.Labels
	Colors      view.Colors
	Background  string
	HeaderImage string
}

type themeFile struct {
	Title    string      `yaml:"title"`
	Language string      `yaml:"language"`
	Labels   yaml.Node   `yaml:"labels"`
	Colors   view.Colors `yaml:"colors"`
}

// Load never fails. Misses are logged at debug level only.
func Load(opts Options, log *zap.Logger) Theme {
	if log == nil {
		log = zap.NewNop()
	}

	t := Theme{
		Title:      DefaultTitle,
		Labels:     view.LabelSet(opts.Language),
		Colors:     view.DefaultColors,
		Background: FallbackBackground,
	}

	if opts.ThemeFile != "" {
		if err := t.applyFile(opts.ThemeFile, opts.Language); err != nil {
			if errors.Is(err, errMissingAsset) {
				log.Debug("theme file not found, using defaults", zap.String("path", opts.ThemeFile))
			} else {
				log.Warn("ignoring theme file", zap.String("path", opts.ThemeFile), zap.Error(err))
			}
		}
	}

	if uri, err := DataURI(opts.BackgroundFile); err == nil {
		t.Background = fmt.Sprintf(`background-image: url("%s");`, uri)
	} else {
		log.Debug("background image unavailable, using fallback color", zap.String("path", opts.BackgroundFile), zap.Error(err))
	}

	if uri, err := DataURI(opts.HeaderImage); err == nil {
		t.HeaderImage = uri
	} else {
		log.Debug("header image unavailable", zap.String("path", opts.HeaderImage), zap.Error(err))
	}

	return t
}

func (t *Theme) applyFile(path, lang string) error {
	data, err := readAsset(path)
	if err != nil {
		return err
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	labels := t.Labels
	if f.Language != "" && lang == "" {
		labels = view.LabelSet(f.Language)
	}
	if !f.Labels.IsZero() {
		if err := f.Labels.Decode(&labels); err != nil {
			return fmt.Errorf("parsing labels in %s: %w", path, err)
		}
	}

	for name, c := range map[string]string{
		"accent":       f.Colors.Accent,
		"glow":         f.Colors.Glow,
		"timestamp":    f.Colors.Timestamp,
		"button_start": f.Colors.ButtonStart,
		"button_end":   f.Colors.ButtonEnd,
	} {
		if c != "" && !view.IsHexColor(c) {
			return fmt.Errorf("colors.%s in %s: %q is not a hex color", name, path, c)
		}
	}

	t.Labels = labels
	t.Colors = f.Colors.Merge(t.Colors)
	if f.Title != "" {
		t.Title = f.Title
	}
	return nil
}

// DataURI inlines the file at path so the page needs no static file route.
func DataURI(path string) (string, error) {
	data, err := readAsset(path)
	if err != nil {
		return "", err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func readAsset(path string) ([]byte, error) {
	if path == "" {
		return nil, errMissingAsset
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errMissingAsset, path)
	}
	return data, err
}

// ViewOptions copies the theme into renderer options.
func (t Theme) ViewOptions(base view.Options) view.Options {
	base.Title = t.Title
	base.Labels = t.Labels
	base.Colors = t.Colors
	base.Background = t.Background
	base.HeaderImage = t.HeaderImage
	return base
}
