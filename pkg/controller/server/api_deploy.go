package server

import (
	"net/http"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
)

func (x *Server) cloneRepository(r *http.Request, sess *model.Session, input *model.CloneRepositoryInput) (*model.CloneRepositoryResult, error) {
	return x.uc.CloneRepository(r.Context(), sess, input)
}

func (x *Server) deploy(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.DeployResult, error) {
	return x.uc.Deploy(r.Context(), sess)
}

func (x *Server) analyzePageSpeed(r *http.Request, _ *model.Session, input *model.PageSpeedInput) (*model.PageSpeedReport, error) {
	return x.uc.AnalyzePageSpeed(r.Context(), input)
}

func (x *Server) searchPerformance(_ http.ResponseWriter, r *http.Request, _ *model.Session) (*model.SearchPerformance, error) {
	days, err := queryInt(r, "days")
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}

	return x.uc.QuerySearchPerformance(r.Context(), &model.SearchPerformanceInput{
		SiteURL: r.URL.Query().Get("site"),
		Days:    days,
		Limit:   limit,
	})
}
