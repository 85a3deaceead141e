package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"league_results_renderer/internal/logging"
	"league_results_renderer/internal/metrics"
	"league_results_renderer/internal/present"
	"league_results_renderer/internal/table"
	"league_results_renderer/internal/timefmt"
	"league_results_renderer/internal/widgets"
)

type fakeData struct {
	results   []widgets.ResultTab
	standings []widgets.StandingTab
	events    []widgets.Event
	err       error
	calls     []string
}

func (f *fakeData) Results(_ context.Context, league, eventID string) ([]widgets.ResultTab, error) {
	f.calls = append(f.calls, "results:"+league+":"+eventID)
	return f.results, f.err
}

func (f *fakeData) Standings(_ context.Context, league, eventID string) ([]widgets.StandingTab, error) {
	f.calls = append(f.calls, "standings:"+league+":"+eventID)
	return f.standings, f.err
}

func (f *fakeData) Schedule(_ context.Context, league, seasonID string) ([]widgets.Event, error) {
	f.calls = append(f.calls, "schedule:"+league+":"+seasonID)
	return f.events, f.err
}

func memberID(id int64) *int64 {
	return &id
}

func testData() *fakeData {
	return &fakeData{
		results: []widgets.ResultTab{{
			EventName: "Round 1", Date: "2024-04-02T19:00:00", TrackName: "Spa", ConfigName: "-",
			DisplayName: "Pro", StrengthOfField: 2000,
			SessionResults: []widgets.SessionResult{{
				SessionName: "Race",
				ResultRows: []widgets.ResultRow{
					{MemberID: memberID(1), Firstname: "Ada", Lastname: "Lovelace", FinalPosition: 1,
						FastestLapTime: timefmt.ParseDuration("00:01:30.100"), TotalPoints: 25},
					{MemberID: memberID(2), Firstname: "Grace", Lastname: "Hopper", FinalPosition: 2,
						FastestLapTime: timefmt.ParseDuration("00:01:29.900"), TotalPoints: 20},
				},
			}},
		}},
		standings: []widgets.StandingTab{{
			Name: "Drivers",
			StandingRows: []widgets.StandingRow{
				{Position: 1, Firstname: "Ada", Lastname: "Lovelace", TotalPoints: 25},
				{Position: 2, Firstname: "Grace", Lastname: "Hopper", TotalPoints: 20},
			},
		}},
		events: []widgets.Event{
			{Name: "Round 1", Date: "2024-04-02T19:00:00", TrackName: "Spa", ConfigName: "-",
				Sessions: []widgets.Session{{SessionType: widgets.SessionRace, Laps: 20}}},
		},
	}
}

func newTestServer(data DataSource) (*Server, *metrics.Metrics) {
	m := metrics.New()
	log := logging.NewLogger("test", "error", "json", io.Discard)
	return New(data, widgets.Builder{Display: timefmt.DefaultDisplay()}, m, log), m
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestResultsHTML(t *testing.T) {
	data := testData()
	srv, _ := newTestServer(data)

	rec := get(t, srv.Routes(), "/demo/results/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"results:demo:latest"}, data.calls)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "4/2/2024 - Round 1: Spa</h3>")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, `<td style="font-weight: bold">1:29.900</td>`)

	id := present.NewHTML("/demo/results/latest").TableID("s0")
	assert.Contains(t, body, `href="/demo/results/latest?s0=0.`)
	assert.Contains(t, body, "#"+id)
}

func TestResultsHTML_SortState(t *testing.T) {
	srv, _ := newTestServer(testData())
	h := srv.Routes()

	// Pos, Name, Team, Fastest Lap, Avg. Lap, Interval, Laps Lead, Laps Compl.,
	// Race Pts., Penalty, Total Pts., IR, Incs
	state := table.SortState{Active: 3, Directions: make([]table.Direction, 13)}
	for i := range state.Directions {
		state.Directions[i] = table.Ascending
	}
	rec := get(t, h, "/demo/results/1?s0="+url.QueryEscape(state.String()))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "Grace Hopper"), strings.Index(body, "Ada Lovelace"))

	// clicking the active header again links to the toggled state
	toggled := state.Click(3)
	assert.Contains(t, body, "s0="+url.QueryEscape(toggled.String()))
}

func TestResultsHTML_InvalidStateIgnored(t *testing.T) {
	srv, _ := newTestServer(testData())
	rec := get(t, srv.Routes(), "/demo/results/1?s0=garbage")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResults_Empty(t *testing.T) {
	srv, _ := newTestServer(&fakeData{})
	rec := get(t, srv.Routes(), "/demo/results/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestResults_BadRequest(t *testing.T) {
	srv, _ := newTestServer(testData())
	h := srv.Routes()
	for _, target := range []string{
		"/demo/results/1?format=pdf",
		"/demo/results/1?championship=first",
		"/demo/results/1?eventName=maybe",
	} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestResults_FetchError(t *testing.T) {
	srv, _ := newTestServer(&fakeData{err: errors.New("api down")})
	rec := get(t, srv.Routes(), "/demo/results/1")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStandingsCSV(t *testing.T) {
	data := testData()
	srv, m := newTestServer(data)

	rec := get(t, srv.Routes(), "/demo/standings/12?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=standings.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, []string{"standings:demo:12"}, data.calls)

	reader := csv.NewReader(bytes.NewReader(rec.Body.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Drivers"}, records[0])
	assert.Equal(t, "Pos", records[1][0])
	assert.Equal(t, "Ada Lovelace", records[2][1])

	mrec := get(t, m.Handler(), "/metrics")
	assert.Contains(t, mrec.Body.String(), `league_widgets_renders_total{format="csv",widget="standings"} 1`)
}

func TestScheduleXLSX(t *testing.T) {
	srv, _ := newTestServer(testData())

	rec := get(t, srv.Routes(), "/demo/schedule/current?format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=schedule.xlsx", rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	v, err := f.GetCellValue(sheets[0], "C2")
	require.NoError(t, err)
	assert.Equal(t, "Round 1", v)
}

func TestScheduleHTML_NoTableStyle(t *testing.T) {
	srv, _ := newTestServer(testData())
	rec := get(t, srv.Routes(), "/demo/schedule/current")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="table table-sm table-striped table-hover">`)
	assert.NotContains(t, rec.Body.String(), "<a href")
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(testData())
	h := srv.Routes()

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
