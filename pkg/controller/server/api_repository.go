package server

import (
	"net/http"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
)

func (x *Server) getRepository(_ http.ResponseWriter, _ *http.Request, sess *model.Session) (*model.Repository, error) {
	return sess.ActiveRepository, nil
}

func (x *Server) connectRepository(r *http.Request, sess *model.Session, input *model.ConnectRepositoryInput) (*model.ConnectRepositoryResult, error) {
	return x.uc.ConnectRepository(r.Context(), sess, input)
}

func (x *Server) disconnectRepository(_ http.ResponseWriter, r *http.Request, sess *model.Session) (any, error) {
	return nil, x.uc.DisconnectRepository(r.Context(), sess)
}

func (x *Server) syncRepository(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.Repository, error) {
	return x.uc.SyncRepository(r.Context(), sess)
}

func (x *Server) listGitHubRepositories(_ http.ResponseWriter, r *http.Request, sess *model.Session) ([]*model.GitHubRepository, error) {
	return x.uc.ListGitHubRepositories(r.Context(), sess)
}

func (x *Server) listBranches(_ http.ResponseWriter, r *http.Request, sess *model.Session) ([]*model.Branch, error) {
	return x.uc.ListBranches(r.Context(), sess)
}

func (x *Server) createBranch(r *http.Request, sess *model.Session, input *model.CreateBranchInput) (*model.Branch, error) {
	return x.uc.CreateBranch(r.Context(), sess, input)
}

func (x *Server) switchBranch(r *http.Request, sess *model.Session, input *model.SwitchBranchInput) (*model.Repository, error) {
	return x.uc.SwitchBranch(r.Context(), sess, input)
}
