package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestBranchNameFromDomain(t *testing.T) {
	cases := map[string]types.BranchName{
		"My-Site.com":        "site-my-site-com",
		"example.com":        "site-example-com",
		"EXAMPLE.COM":        "site-example-com",
		"a--b..c":            "site-a-b-c",
		".leading.dot":       "site-leading-dot",
		"trailing-":          "site-trailing",
		"blog.example.co.uk": "site-blog-example-co-uk",
		" spaced.example ":   "site-spaced-example",
	}
	for domain, want := range cases {
		t.Run(domain, func(t *testing.T) {
			name := gt.R1(model.BranchNameFromDomain(domain)).NoError(t)
			gt.V(t, name).Equal(want)

			again := gt.R1(model.BranchNameFromDomain(domain)).NoError(t)
			gt.V(t, again).Equal(name)
		})
	}

	for _, domain := range []string{"", "...", "-", "exa mple.com", "example.com/x", "ex@mple.com"} {
		t.Run("invalid "+domain, func(t *testing.T) {
			_, err := model.BranchNameFromDomain(domain)
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		})
	}
}
