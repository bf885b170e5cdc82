package server

import (
	"net/http"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
)

func (x *Server) analyzePerformance(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.PerformanceReport, error) {
	return x.uc.AnalyzePerformance(r.Context(), sess)
}

func (x *Server) cleanupPerformance(r *http.Request, sess *model.Session, input *model.CleanupInput) (*model.CleanupResult, error) {
	return x.uc.CleanupPerformance(r.Context(), sess, input)
}

func (x *Server) listPending(_ http.ResponseWriter, r *http.Request, sess *model.Session) ([]*model.PendingChangeView, error) {
	return x.uc.ListPending(r.Context(), sess)
}

type discardResult struct {
	Discarded int `json:"discarded"`
}

func (x *Server) discardPending(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*discardResult, error) {
	n, err := x.uc.DiscardPending(r.Context(), sess)
	if err != nil {
		return nil, err
	}
	return &discardResult{Discarded: n}, nil
}

func (x *Server) commitPending(w http.ResponseWriter, r *http.Request, sess *model.Session) (*model.CommitPendingResult, error) {
	input, err := decodeBody[model.CommitPendingInput](w, r, true)
	if err != nil {
		return nil, err
	}
	return x.uc.CommitPending(r.Context(), sess, input)
}
