package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSettingsValidate(t *testing.T) {
	valid := []model.Settings{
		model.Branding{SiteName: "Blog"},
		model.Navigation{Items: []model.NavItem{{Label: "Home", Href: "/"}}},
		model.Theme{PrimaryColor: "#fff", AccentColor: "#A0B1C2"},
		model.AdSense{},
		model.AdSense{Enabled: true, PublisherID: "ca-pub-0123456789012345", Slots: map[string]string{"sidebar": "1234567890"}},
		model.ContentDefaults{Tags: []string{"go"}},
	}
	for _, s := range valid {
		gt.NoError(t, s.Validate())
	}

	invalid := []model.Settings{
		model.Branding{SiteName: " "},
		model.Navigation{Items: []model.NavItem{{Label: "Home"}}},
		model.Theme{PrimaryColor: "red"},
		model.AdSense{Enabled: true},
		model.AdSense{PublisherID: "ca-pub-123"},
		model.AdSense{PublisherID: "ca-pub-0123456789012345", Slots: map[string]string{"top": "abc"}},
		model.ContentDefaults{Tags: []string{""}},
	}
	for _, s := range invalid {
		gt.True(t, errors.Is(s.Validate(), types.ErrValidationFailed))
	}
}

func TestSettingsKind(t *testing.T) {
	gt.V(t, model.SettingsTheme.Topic()).Equal(model.TopicTheme)
	gt.V(t, model.SettingsAdSense.Topic()).Equal(model.TopicAds)
	gt.V(t, model.SettingsBranding.Topic()).Equal(model.TopicSettings)
	gt.V(t, model.SettingsNavigation.FileName()).Equal("navigation.json")
}
