package app

import (
	"net/http"

	"github.com/klabast/wb-services/transit-dashboard/internal/filter"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/store"
)

// record is what a dashboard page lists, searches and edits.
type record[T any] interface {
	store.Record[T]
	filter.Record
}

// resource serves the list and CRUD endpoints of one page.
type resource[T record[T]] struct {
	srv  *Server
	repo store.Repository[T]
	// prepare adjusts a record before it is created or stored after an update.
	prepare func(T) T
	// narrow applies page specific query parameters after the search filter.
	narrow func(r *http.Request, items []T) ([]T, error)
}

func newResource[T record[T]](s *Server, repo store.Repository[T]) *resource[T] {
	return &resource[T]{srv: s, repo: repo}
}

func (rs *resource[T]) mount(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base, rs.list)
	mux.Handle("POST "+base, rs.srv.guard(rs.create))
	mux.HandleFunc("GET "+base+"/{id}", rs.get)
	mux.Handle("PUT "+base+"/{id}", rs.srv.guard(rs.update))
	mux.Handle("DELETE "+base+"/{id}", rs.srv.guard(rs.remove))
}

// filtered lists the records matching q and tab plus any page specific narrowing.
func (rs *resource[T]) filtered(r *http.Request) ([]T, error) {
	items, err := rs.repo.List(r.Context())
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	out := filter.Apply(items, q.Get("q"), q.Get("tab"))
	if rs.narrow != nil {
		if out, err = rs.narrow(r, out); err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (rs *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := rs.filtered(r)
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (rs *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	item, err := rs.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rs *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	var item T
	if err := decodeStrict(body, &item); err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	if rs.prepare != nil {
		item = rs.prepare(item)
	}
	created, err := rs.repo.Create(r.Context(), item)
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	rs.srv.log.Info("record created", logx.String("kind", rs.repo.Kind()), logx.String("id", created.EntityID()))
	writeJSON(w, http.StatusCreated, created)
}

// update decodes the body onto the stored record, so omitted fields keep their value.
func (rs *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	updated, err := rs.repo.Mutate(r.Context(), r.PathValue("id"), func(cur T) (T, error) {
		if err := decodeStrict(body, &cur); err != nil {
			return cur, err
		}
		if rs.prepare != nil {
			cur = rs.prepare(cur)
		}
		return cur, nil
	})
	if err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	rs.srv.log.Info("record updated", logx.String("kind", rs.repo.Kind()), logx.String("id", updated.EntityID()))
	writeJSON(w, http.StatusOK, updated)
}

func (rs *resource[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := rs.repo.Delete(r.Context(), id); err != nil {
		rs.srv.fail(w, r, err)
		return
	}
	rs.srv.log.Info("record deleted", logx.String("kind", rs.repo.Kind()), logx.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
