package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
)

func (x *Server) listFiles(_ http.ResponseWriter, r *http.Request, sess *model.Session) ([]*model.FileEntry, error) {
	return x.uc.ListFiles(r.Context(), sess, r.URL.Query().Get("dir"))
}

func (x *Server) readContent(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.Content, error) {
	return x.uc.ReadContent(r.Context(), sess, r.URL.Query().Get("path"))
}

func (x *Server) writeContent(r *http.Request, sess *model.Session, input *model.WriteContentInput) (*model.WriteResult, error) {
	return x.uc.WriteContent(r.Context(), sess, input)
}

// deleteInput accepts the target either as JSON body or as path/sha query parameters.
func deleteInput(w http.ResponseWriter, r *http.Request) (*model.DeleteContentInput, error) {
	input, err := decodeBody[model.DeleteContentInput](w, r, true)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	if input.Path == "" {
		input.Path = q.Get("path")
	}
	if input.BaseSHA == "" {
		input.BaseSHA = types.BlobSHA(q.Get("sha"))
	}
	return input, nil
}

func (x *Server) deleteContent(w http.ResponseWriter, r *http.Request, sess *model.Session) (*model.WriteResult, error) {
	input, err := deleteInput(w, r)
	if err != nil {
		return nil, err
	}
	return x.uc.DeleteContent(r.Context(), sess, input)
}

// entryRoutes mounts list/create/get/update/delete of one collection.
func (x *Server) entryRoutes(c model.Collection) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", handle(func(_ http.ResponseWriter, r *http.Request, sess *model.Session) ([]*model.EntrySummary, error) {
			return x.uc.ListEntries(r.Context(), sess, c)
		}))
		r.Post("/", handle(withBody(func(r *http.Request, sess *model.Session, input *model.EntryInput) (*model.Entry, error) {
			return x.uc.CreateEntry(r.Context(), sess, c, input)
		})))
		r.Get("/{slug}", handle(func(_ http.ResponseWriter, r *http.Request, sess *model.Session) (*model.Entry, error) {
			return x.uc.GetEntry(r.Context(), sess, c, chi.URLParam(r, "slug"))
		}))
		r.Put("/{slug}", handle(withBody(func(r *http.Request, sess *model.Session, input *model.EntryInput) (*model.Entry, error) {
			input.Slug = chi.URLParam(r, "slug")
			return x.uc.UpdateEntry(r.Context(), sess, c, input)
		})))
		r.Delete("/{slug}", handle(func(w http.ResponseWriter, r *http.Request, sess *model.Session) (*model.WriteResult, error) {
			input, err := deleteInput(w, r)
			if err != nil {
				return nil, err
			}
			return x.uc.DeleteEntry(r.Context(), sess, c, chi.URLParam(r, "slug"), input)
		}))
	}
}
