package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SettingsKind names a JSON settings file in the configuration directory of the site.
type SettingsKind string

const (
	SettingsBranding        SettingsKind = "branding"
	SettingsNavigation      SettingsKind = "navigation"
	SettingsTheme           SettingsKind = "theme"
	SettingsAdSense         SettingsKind = "adsense"
	SettingsContentDefaults SettingsKind = "content-defaults"
)

func (x SettingsKind) FileName() string {
	return string(x) + ".json"
}

// Topic is the cache invalidation topic the kind belongs to.
func (x SettingsKind) Topic() Topic {
	switch x {
	case SettingsTheme:
		return TopicTheme
	case SettingsAdSense:
		return TopicAds
	default:
		return TopicSettings
	}
}

// Settings is implemented by every settings document.
type Settings interface {
	Kind() SettingsKind
	Validate() error
}

// SettingsDocument wraps a settings value with the blob sha it was read at.
type SettingsDocument[T Settings] struct {
	Value T             `json:"value"`
	SHA   types.BlobSHA `json:"sha,omitempty"`
}

type SettingsInput[T Settings] struct {
	Value   T             `json:"value"`
	Message string        `json:"message,omitempty"`
	BaseSHA types.BlobSHA `json:"sha,omitempty"`
}

type Branding struct {
	SiteName string            `json:"siteName"`
	Tagline  string            `json:"tagline,omitempty"`
	Logo     string            `json:"logo,omitempty"`
	Favicon  string            `json:"favicon,omitempty"`
	Social   map[string]string `json:"social,omitempty"`
}

func (Branding) Kind() SettingsKind { return SettingsBranding }

func (x Branding) Validate() error {
	if strings.TrimSpace(x.SiteName) == "" {
		return goerr.Wrap(types.ErrValidationFailed, "siteName is required")
	}
	return nil
}

type NavItem struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	External bool   `json:"external,omitempty"`
}

type Navigation struct {
	Items []NavItem `json:"items"`
}

func (Navigation) Kind() SettingsKind { return SettingsNavigation }

func (x Navigation) Validate() error {
	for i, item := range x.Items {
		if strings.TrimSpace(item.Label) == "" || strings.TrimSpace(item.Href) == "" {
			return goerr.Wrap(types.ErrValidationFailed, "navigation item needs label and href", goerr.V("index", i))
		}
	}
	return nil
}

type Theme struct {
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
	FontFamily   string `json:"fontFamily,omitempty"`
	DarkMode     bool   `json:"darkMode"`
}

func (Theme) Kind() SettingsKind { return SettingsTheme }

var ptnHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (x Theme) Validate() error {
	for name, c := range map[string]string{"primaryColor": x.PrimaryColor, "accentColor": x.AccentColor} {
		if c != "" && !ptnHexColor.MatchString(c) {
			return goerr.Wrap(types.ErrValidationFailed, "invalid color", goerr.V("field", name), goerr.V("value", c))
		}
	}
	return nil
}

type AdSense struct {
	Enabled     bool              `json:"enabled"`
	PublisherID string            `json:"publisherId,omitempty"`
	AutoAds     bool              `json:"autoAds"`
	Slots       map[string]string `json:"slots,omitempty"`
}

func (AdSense) Kind() SettingsKind { return SettingsAdSense }

var (
	ptnPublisherID = regexp.MustCompile(`^ca-pub-[0-9]{16}$`)
	ptnAdSlot      = regexp.MustCompile(`^[0-9]{6,12}$`)
)

func (x AdSense) Validate() error {
	if x.Enabled && x.PublisherID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "publisherId is required when ads are enabled")
	}
	if x.PublisherID != "" && !ptnPublisherID.MatchString(x.PublisherID) {
		return goerr.Wrap(types.ErrValidationFailed, "invalid publisherId", goerr.V("publisherId", x.PublisherID))
	}
	for name, slot := range x.Slots {
		if !ptnAdSlot.MatchString(slot) {
			return goerr.Wrap(types.ErrValidationFailed, "invalid ad slot", goerr.V("slot", name))
		}
	}
	return nil
}

type ContentDefaults struct {
	Author    string   `json:"author,omitempty"`
	HeroImage string   `json:"heroImage,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Draft     bool     `json:"draft"`
}

func (ContentDefaults) Kind() SettingsKind { return SettingsContentDefaults }

func (x ContentDefaults) Validate() error {
	for _, tag := range x.Tags {
		if strings.TrimSpace(tag) == "" {
			return goerr.Wrap(types.ErrValidationFailed, "empty tag in content defaults")
		}
	}
	return nil
}
