package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSiteLayout(t *testing.T) {
	layout := model.DefaultSiteLayout()
	gt.NoError(t, layout.Validate())

	t.Run("image detection", func(t *testing.T) {
		gt.V(t, layout.IsImage("public/images/a.PNG")).Equal(true)
		gt.V(t, layout.IsImage("src/assets/hero.webp")).Equal(true)
		gt.V(t, layout.IsImage("src/content/blog/a.png")).Equal(false)
		gt.V(t, layout.IsImage("publicity/a.png")).Equal(false)
		gt.V(t, layout.IsImage("public/doc.pdf")).Equal(false)
	})

	t.Run("reference forms", func(t *testing.T) {
		gt.V(t, layout.ReferenceForms("public/images/a.png")).Equal([]string{"public/images/a.png", "/images/a.png"})
		gt.V(t, layout.ReferenceForms("src/assets/a.png")).Equal([]string{"src/assets/a.png", "assets/a.png"})
	})

	t.Run("paths", func(t *testing.T) {
		gt.V(t, layout.SettingsPath(model.SettingsContentDefaults)).Equal("src/config/content-defaults.json")
		gt.V(t, layout.SiteDescriptorPath()).Equal("src/config/site.json")
		dir := gt.R1(layout.CollectionDir(model.CollectionPages)).NoError(t)
		gt.V(t, dir).Equal("src/content/pages")
		_, err := layout.CollectionDir("drafts")
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("invalid layout", func(t *testing.T) {
		broken := model.DefaultSiteLayout()
		broken.PostsDir = "../posts"
		gt.True(t, errors.Is(broken.Validate(), types.ErrInvalidOption))

		broken = model.DefaultSiteLayout()
		broken.ImageDirs = nil
		gt.True(t, errors.Is(broken.Validate(), types.ErrInvalidOption))
	})
}

func TestLookupPreset(t *testing.T) {
	def := gt.R1(model.LookupPreset("")).NoError(t)
	gt.V(t, def.Name).Equal("balanced")
	gt.V(t, def.JPEGQuality).Equal(82)
	gt.V(t, def.MaxWidth).Equal(2400)

	aggressive := gt.R1(model.LookupPreset("aggressive")).NoError(t)
	gt.V(t, aggressive.JPEGQuality).Equal(70)
	gt.V(t, aggressive.MaxWidth).Equal(1920)

	lossless := gt.R1(model.LookupPreset("lossless")).NoError(t)
	gt.V(t, lossless.MaxWidth).Equal(0)

	_, err := model.LookupPreset("max")
	gt.True(t, errors.Is(err, types.ErrValidationFailed))
}
