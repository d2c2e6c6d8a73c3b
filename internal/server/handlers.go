// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/planb/altroute"
	"github.com/katalvlaran/planb/starmap"
)

var (
	errNoRoute    = errors.New("no route")
	errBadRequest = errors.New("bad request")
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type routeBody struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Jumps int      `json:"jumps"`
	Route []string `json:"route"`
}

type routesBody struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Jumps  int        `json:"jumps"`
	Routes [][]string `json:"routes"`
}

type pairBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type diameterBody struct {
	Diameter  int        `json:"diameter"`
	Endpoints []pairBody `json:"endpoints"`
}

type systemBody struct {
	ID        starmap.SystemID `json:"id"`
	Name      string           `json:"name"`
	Stargates []string         `json:"stargates"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, starmap.ErrSystemNotFound), errors.Is(err, errNoRoute):
		return http.StatusNotFound
	case errors.Is(err, altroute.ErrInvalidConfig), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WarnContext(r.Context(), "write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "query failed", "error", err, "request_id", requestIDFrom(r.Context()))
	}
	s.writeJSON(w, r, status, errorBody{Error: err.Error(), RequestID: requestIDFrom(r.Context())})
}

// endpoints resolves the from and to query or form values.
func (s *Server) endpoints(r *http.Request) (from, to starmap.SystemID, err error) {
	if from, err = s.p.Resolve(r.FormValue("from")); err != nil {
		return 0, 0, err
	}
	if to, err = s.p.Resolve(r.FormValue("to")); err != nil {
		return 0, 0, err
	}

	return from, to, nil
}

func (s *Server) frontPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Plan B")
}

// formRoute answers the plain-text form: a "from -> to" line, then one
// system name per line.
func (s *Server) formRoute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	from, to, err := s.endpoints(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	route, ok, err := s.p.ShortestRoute(from, to)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !ok {
		http.Error(w, errNoRoute.Error(), http.StatusNotFound)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s\n", r.FormValue("from"), r.FormValue("to"))
	for _, name := range s.p.Names(route) {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":      "ok",
		"systems":     s.p.Map().Len(),
		"table_built": s.p.Built(),
	})
}

func (s *Server) apiRoute(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.endpoints(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	route, ok, err := s.p.ShortestRoute(from, to)
	if err == nil && !ok {
		err = errNoRoute
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, routeBody{
		From:  r.FormValue("from"),
		To:    r.FormValue("to"),
		Jumps: len(route) - 1,
		Route: s.p.Names(route),
	})
}

func (s *Server) apiRoutes(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.endpoints(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	routes, ok, err := s.p.AllShortestRoutes(r.Context(), from, to)
	if err == nil && !ok {
		err = errNoRoute
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := routesBody{From: r.FormValue("from"), To: r.FormValue("to"), Jumps: len(routes[0]) - 1}
	for _, route := range routes {
		body.Routes = append(body.Routes, s.p.Names(route))
	}
	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) apiAlternatives(w http.ResponseWriter, r *http.Request) {
	o, err := s.altOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from, to, err := s.endpoints(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	routes, ok, err := s.p.AlternativeRoutes(r.Context(), from, to, o)
	if err == nil && !ok {
		err = errNoRoute
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := routesBody{From: r.FormValue("from"), To: r.FormValue("to"), Jumps: len(routes[0]) - 1}
	for _, route := range routes {
		body.Routes = append(body.Routes, s.p.Names(route))
	}
	s.writeJSON(w, r, http.StatusOK, body)
}

// altOptions overlays query parameters on the configured defaults.
func (s *Server) altOptions(r *http.Request) (altroute.Options, error) {
	o := s.cfg.Alternatives
	q := r.URL.Query()
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, fmt.Errorf("%w: max=%q", errBadRequest, v)
		}
		o.MaxRoutes = n
	}
	for name, dst := range map[string]*float64{
		"sharing":    &o.Sharing,
		"local_opt":  &o.LocalOpt,
		"ub_stretch": &o.UBStretch,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, fmt.Errorf("%w: %s=%q", errBadRequest, name, v)
		}
		*dst = f
	}

	return o, o.Validate()
}

func (s *Server) apiDiameter(w http.ResponseWriter, r *http.Request) {
	d, err := s.p.Diameter(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := diameterBody{Diameter: d.Distance, Endpoints: make([]pairBody, 0, len(d.Endpoints))}
	for _, pair := range d.Endpoints {
		names := s.p.Names([]starmap.SystemID{pair.From, pair.To})
		body.Endpoints = append(body.Endpoints, pairBody{From: names[0], To: names[1]})
	}
	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) apiSystem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sys, ok := s.p.ByName(name)
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: %q", starmap.ErrSystemNotFound, name))
		return
	}
	body := systemBody{ID: sys.ID, Name: sys.Name, Stargates: make([]string, 0)}
	for _, x := range s.p.Map().Successors(sys.Index) {
		body.Stargates = append(body.Stargates, s.p.Map().At(x).Name)
	}
	s.writeJSON(w, r, http.StatusOK, body)
}
