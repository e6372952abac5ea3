package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// guardedTransport fails the test if any request goes out.
type guardedTransport struct{ t *testing.T }

func (g guardedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	g.t.Fatalf("unexpected network call to %s", req.URL)
	return nil, nil
}

func noNetworkClient(t *testing.T) *http.Client {
	t.Helper()
	return &http.Client{Transport: guardedTransport{t: t}}
}

func TestAdaptersValidateRequiredArgsBeforeNetwork(t *testing.T) {
	t.Parallel()

	client := noNetworkClient(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		result  contractx.ToolResult
		wantErr string
	}{
		{"weather", NewWeatherClient(WeatherConfig{}, WithHTTPClient(client)).Execute(ctx, nil), "missing city"},
		{"news", NewNewsClient(NewsConfig{}, WithHTTPClient(client)).Execute(ctx, map[string]any{}), "missing topic"},
		{"wikipedia", NewWikipediaClient(WikipediaConfig{}, WithHTTPClient(client)).Execute(ctx, map[string]any{"topic": "  "}), "missing topic"},
		{"deezer", NewDeezerClient(DeezerConfig{}, WithHTTPClient(client)).Execute(ctx, map[string]any{"query": 42}), "missing query"},
		{"flights", NewFlightsClient(FlightsConfig{}, WithHTTPClient(client)).Execute(ctx, map[string]any{"origin": "MEX"}), "missing destination"},
		{"youtube", NewYouTubeClient(YouTubeConfig{}, WithHTTPClient(client)).Execute(ctx, map[string]any{}), "missing artistName"},
	}

	for _, tc := range cases {
		if tc.result.Error != tc.wantErr {
			t.Fatalf("%s: error = %q, want %q", tc.name, tc.result.Error, tc.wantErr)
		}
	}
}

func TestWeatherExecuteSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Madrid" {
			t.Fatalf("city query = %q, want Madrid", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Fatalf("units = %q, want metric", got)
		}
		w.Write([]byte(`{"name":"Madrid","main":{"temp":21.5,"humidity":40},"weather":[{"description":"cielo claro"}]}`))
	}))
	t.Cleanup(server.Close)

	c := NewWeatherClient(WeatherConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"city": "Madrid"})
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	result, ok := out.Result.(WeatherResult)
	if !ok {
		t.Fatalf("unexpected result type %T", out.Result)
	}
	if result.City != "Madrid" || result.Temperature != 21.5 || result.Humidity != 40 || result.Description != "cielo claro" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestWeatherExecuteCityNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	t.Cleanup(server.Close)

	c := NewWeatherClient(WeatherConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"city": "Nusquam"})
	if out.Error != "city not found" {
		t.Fatalf("error = %q, want upstream message", out.Error)
	}
}

func TestWeatherExecuteTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refused connection

	c := NewWeatherClient(WeatherConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"city": "Madrid"})
	if out.Error == "" {
		t.Fatal("transport failure must surface as ToolResult.Error")
	}
}

func TestNewsExecuteSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "3" {
			t.Fatalf("pageSize = %q, want 3", got)
		}
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Titular uno","url":"https://n/1","source":{"name":"Diario"}},
			{"title":"Titular dos","url":"https://n/2","source":{"name":"Gaceta"}}
		]}`))
	}))
	t.Cleanup(server.Close)

	c := NewNewsClient(NewsConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"topic": "ciencia"})
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	articles, ok := out.Result.([]NewsArticle)
	if !ok || len(articles) != 2 {
		t.Fatalf("unexpected result: %#v", out.Result)
	}
	if !strings.Contains(out.Summary, "Titular uno") || !strings.Contains(out.Summary, "Diario") {
		t.Fatalf("summary missing headline details: %q", out.Summary)
	}
}

func TestNewsExecuteNoResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	t.Cleanup(server.Close)

	c := NewNewsClient(NewsConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"topic": "nada"})
	if out.Error != "" {
		t.Fatalf("empty result set is not an error, got %q", out.Error)
	}
	if !strings.Contains(out.Summary, "No encontré noticias") {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
}

func TestWikipediaExecuteSearchAndExtract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") == "search" {
			w.Write([]byte(`{"query":{"search":[{"title":"Agujero negro"}]}}`))
			return
		}
		if got := r.URL.Query().Get("titles"); got != "Agujero negro" {
			t.Fatalf("titles = %q, want resolved article title", got)
		}
		w.Write([]byte(`{"query":{"pages":{"123":{"extract":"Un agujero negro es una región del espacio."}}}}`))
	}))
	t.Cleanup(server.Close)

	c := NewWikipediaClient(WikipediaConfig{BaseURL: server.URL})
	out := c.Execute(context.Background(), map[string]any{"topic": "agujeros negros"})
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Summary != "Un agujero negro es una región del espacio." {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
}

func TestWikipediaExecuteNoMatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	t.Cleanup(server.Close)

	c := NewWikipediaClient(WikipediaConfig{BaseURL: server.URL})
	out := c.Execute(context.Background(), map[string]any{"topic": "xyzzy"})
	if !strings.Contains(out.Summary, "No encontré nada en Wikipedia") {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
}

func TestDeezerExecuteReturnsSong(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{
			"title":"Clocks","link":"https://deezer/1",
			"artist":{"name":"Coldplay"},
			"album":{"title":"A Rush of Blood to the Head","cover_medium":"https://deezer/cover"}
		}]}`))
	}))
	t.Cleanup(server.Close)

	c := NewDeezerClient(DeezerConfig{BaseURL: server.URL})
	out := c.Execute(context.Background(), map[string]any{"query": "Clocks"})
	song, ok := out.Result.(contractx.Song)
	if !ok {
		t.Fatalf("unexpected result type %T", out.Result)
	}
	if song.Title != "Clocks" || song.Artist != "Coldplay" || song.Cover != "https://deezer/cover" {
		t.Fatalf("unexpected song: %+v", song)
	}
}

func TestFlightsExecuteSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("depart_date"); got != "2026-09-15" {
			t.Fatalf("depart_date = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"BCN":{"0":{
			"price":120,"airline":"VY","flight_number":8460,
			"departure_at":"2026-09-15T08:00:00Z","return_at":"","expires_at":"2026-09-10T00:00:00Z"
		}}}}`))
	}))
	t.Cleanup(server.Close)

	c := NewFlightsClient(FlightsConfig{BaseURL: server.URL, Token: "tok"})
	out := c.Execute(context.Background(), map[string]any{
		"origin": "MAD", "destination": "BCN", "date": "2026-09-15",
	})
	fare, ok := out.Result.(FlightResult)
	if !ok {
		t.Fatalf("unexpected result type %T", out.Result)
	}
	if fare.Price != 120 || fare.Airline != "VY" {
		t.Fatalf("unexpected fare: %+v", fare)
	}
}

func TestYouTubeExecuteSearchThenStats(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/youtube/v3/search"):
			if got := r.URL.Query().Get("q"); got != "Shakira oficial" {
				t.Fatalf("search q = %q", got)
			}
			w.Write([]byte(`{"items":[{"id":{"channelId":"UC1"},"snippet":{"title":"Shakira"}}]}`))
		case strings.HasPrefix(r.URL.Path, "/youtube/v3/channels"):
			if got := r.URL.Query().Get("id"); got != "UC1" {
				t.Fatalf("channels id = %q", got)
			}
			w.Write([]byte(`{"items":[{
				"statistics":{"subscriberCount":"40000000","viewCount":"30000000000","videoCount":"200"},
				"snippet":{"description":"Canal oficial.\nMás info","thumbnails":{"default":{"url":"https://yt/thumb"}}}
			}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	c := NewYouTubeClient(YouTubeConfig{BaseURL: server.URL, APIKey: "k"})
	out := c.Execute(context.Background(), map[string]any{"artistName": "Shakira"})
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	stats, ok := out.Result.(ChannelStats)
	if !ok {
		t.Fatalf("unexpected result type %T", out.Result)
	}
	if stats.ChannelName != "Shakira" || stats.Subscribers != "40000000" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Description != "Canal oficial." {
		t.Fatalf("description must keep only the first line, got %q", stats.Description)
	}
	if !strings.Contains(out.Summary, "Shakira") {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
}

func TestToolResultPayloadShapes(t *testing.T) {
	t.Parallel()

	errPayload := contractx.ToolResult{Tool: ToolWeather, Error: "boom"}.Payload()
	if errPayload["error"] != "boom" || len(errPayload) != 1 {
		t.Fatalf("error payload = %#v", errPayload)
	}

	summaryPayload := contractx.ToolResult{Tool: ToolNews, Summary: "s", Result: []NewsArticle{}}.Payload()
	if summaryPayload["summary"] != "s" {
		t.Fatalf("summary payload = %#v", summaryPayload)
	}
	if _, ok := summaryPayload["result"]; !ok {
		t.Fatalf("summary payload must keep structured data: %#v", summaryPayload)
	}
}
