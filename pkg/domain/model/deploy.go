package model

import (
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type VercelProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VercelDeployment struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	State  string `json:"state"`
	Branch string `json:"branch"`
}

type LinkProjectInput struct {
	Name string
	Repo RepoRef
}

type CreateDeploymentInput struct {
	Project string
	Repo    RepoRef
	RepoID  int64
	Ref     types.BranchName
}

type CloneRepositoryInput struct {
	Name           string `json:"name"`
	Owner          string `json:"owner,omitempty"`
	Description    string `json:"description,omitempty"`
	Private        bool   `json:"private"`
	Domain         string `json:"domain,omitempty"`
	LinkDeployment bool   `json:"linkDeployment"`
	Connect        bool   `json:"connect"`
}

func (x *CloneRepositoryInput) Validate() error {
	ref := RepoRef{Owner: x.Owner, Name: x.Name}
	if ref.Owner == "" {
		ref.Owner = "placeholder"
	}
	if err := ref.Validate(); err != nil {
		return err
	}
	if x.Domain != "" {
		if _, err := BranchNameFromDomain(x.Domain); err != nil {
			return err
		}
		if !x.LinkDeployment {
			return goerr.Wrap(types.ErrValidationFailed, "domain requires linkDeployment")
		}
	}
	return nil
}

type CreateFromTemplateInput struct {
	Template    RepoRef
	Owner       string
	Name        string
	Description string
	Private     bool
}

// StepResult records the outcome of one step of a multi-step operation. Failed steps are not rolled back.
type StepResult struct {
	Step  string `json:"step"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type CloneRepositoryResult struct {
	Repository *GitHubRepository `json:"repository,omitempty"`
	Project    *VercelProject    `json:"project,omitempty"`
	Steps      []*StepResult     `json:"steps"`
	Connected  bool              `json:"connected"`
}

type DeployResult struct {
	Deployment *VercelDeployment `json:"deployment"`
}
