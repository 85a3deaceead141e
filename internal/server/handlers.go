package server

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"league_results_renderer/internal/present"
	"league_results_renderer/internal/table"
	"league_results_renderer/internal/widgets"
)

// Output formats.
const (
	formatHTML = "html"
	formatXLSX = "xlsx"
	formatCSV  = "csv"
)

var stateKey = regexp.MustCompile(`^s[0-9]+$`)

type request struct {
	league string
	id     string
	format string
	opts   widgets.Options
	states widgets.States
}

func (s *Server) parseRequest(r *http.Request, idVar string) (request, error) {
	vars := mux.Vars(r)
	q := r.URL.Query()
	req := request{
		league: vars["league"],
		id:     vars[idVar],
		format: formatHTML,
		opts:   widgets.DefaultOptions(),
		states: widgets.States{},
	}

	if f := q.Get("format"); f != "" {
		switch f {
		case formatHTML, formatXLSX, formatCSV:
			req.format = f
		default:
			return req, fmt.Errorf("unknown format %q", f)
		}
	}
	if v := q.Get("championship"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid championship index %q", v)
		}
		req.opts.ChampionshipIndex = idx
	}
	if v := q.Get("eventName"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid eventName %q", v)
		}
		req.opts.DisplayEventName = show
	}
	if v := q.Get("sessionNames"); v != "" {
		req.opts.DisplaySessionNames = widgets.ParseSessionNameMode(v)
	}

	for key, values := range q {
		if !stateKey.MatchString(key) || len(values) == 0 {
			continue
		}
		state, err := table.ParseSortState(values[0])
		if err != nil {
			s.log.WithError(err).WithField("key", key).Debug("ignoring sort state")
			continue
		}
		req.states[key] = state
	}
	return req, nil
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	const widget = "results"
	req, err := s.parseRequest(r, "event")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tabs, err := s.data.Results(r.Context(), req.league, req.id)
	if err != nil {
		s.fetchFailed(w, widget, req, err)
		return
	}
	page, err := s.builder.ResultsPage(tabs, req.opts, req.states)
	if err != nil {
		s.renderFailed(w, widget, req, err)
		return
	}
	s.write(w, r, widget, req, page, present.NewHTML(r.URL.Path))
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	const widget = "standings"
	req, err := s.parseRequest(r, "event")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tabs, err := s.data.Standings(r.Context(), req.league, req.id)
	if err != nil {
		s.fetchFailed(w, widget, req, err)
		return
	}
	page, err := s.builder.StandingsPage(tabs, req.opts, req.states)
	if err != nil {
		s.renderFailed(w, widget, req, err)
		return
	}
	s.write(w, r, widget, req, page, present.NewHTML(r.URL.Path))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const widget = "schedule"
	req, err := s.parseRequest(r, "season")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := s.data.Schedule(r.Context(), req.league, req.id)
	if err != nil {
		s.fetchFailed(w, widget, req, err)
		return
	}
	page, err := s.builder.SchedulePage(events, req.states)
	if err != nil {
		s.renderFailed(w, widget, req, err)
		return
	}
	htmlOut := present.NewHTML(r.URL.Path)
	htmlOut.TableStyle = ""
	s.write(w, r, widget, req, page, htmlOut)
}

func (s *Server) fetchFailed(w http.ResponseWriter, widget string, req request, err error) {
	s.metrics.ObserveRenderError(widget, "fetch")
	s.log.WithError(err).WithFields(logrus.Fields{
		"widget": widget,
		"league": req.league,
		"id":     req.id,
	}).Warn("failed to fetch widget data")
	http.Error(w, "failed to fetch league data", http.StatusBadGateway)
}

func (s *Server) renderFailed(w http.ResponseWriter, widget string, req request, err error) {
	s.metrics.ObserveRenderError(widget, "render")
	s.log.WithError(err).WithFields(logrus.Fields{
		"widget": widget,
		"league": req.league,
		"id":     req.id,
	}).Error("failed to render widget")
	http.Error(w, "failed to render widget", http.StatusInternalServerError)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, widget string, req request, page *widgets.Page, htmlOut present.HTML) {
	var buf bytes.Buffer
	var err error
	switch req.format {
	case formatXLSX:
		err = present.WriteXLSX(&buf, page)
		if err == nil {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", "attachment; filename="+widget+".xlsx")
			w.Header().Set("Content-Transfer-Encoding", "binary")
		}
	case formatCSV:
		err = present.WriteCSV(&buf, page)
		if err == nil {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", "attachment; filename="+widget+".csv")
		}
	default:
		htmlOut.Link = sortLink(r)
		err = htmlOut.Write(&buf, page)
		if err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
	}
	if err != nil {
		s.renderFailed(w, widget, req, err)
		return
	}

	s.metrics.ObserveRender(widget, req.format)
	_, _ = buf.WriteTo(w)
}

// sortLink builds header links that keep every query parameter and replace
// the sort state of one table.
func sortLink(r *http.Request) func(key string, state table.SortState) string {
	return func(key string, state table.SortState) string {
		q := r.URL.Query()
		q.Set(key, state.String())
		return r.URL.Path + "?" + q.Encode()
	}
}
