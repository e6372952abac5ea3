// Package tool holds the tool registry and the external lookup adapters the
// model backend can invoke mid-turn. Declarations and handlers are bound
// together at registration and immutable afterwards, so the registry is
// safely read-shared across concurrent requests.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/charla-ai/charla/bot/contract"
)

const (
	ToolWeather   = "weather.current"
	ToolNews      = "news.headlines"
	ToolWikipedia = "wikipedia.summary"
	ToolDeezer    = "deezer.search"
	ToolFlights   = "flights.search"
	ToolYouTube   = "youtube.artist_stats"
)

// Handler executes one tool invocation. Handlers never fail outward: every
// adapter-level problem is reported through ToolResult.Error.
type Handler func(ctx context.Context, args map[string]any) contractx.ToolResult

type entry struct {
	info    *schema.ToolInfo
	handler Handler
}

// Registry maps tool names to their declaration and handler. Registration
// order is the declaration order sent to the model backend, which binds
// invocation requests to declarations by name.
type Registry struct {
	entries []entry
	byName  map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Handler{}}
}

func (r *Registry) Register(info *schema.ToolInfo, h Handler) error {
	if info == nil || strings.TrimSpace(info.Name) == "" {
		return fmt.Errorf("%w: tool declaration needs a name", contractx.ErrValidation)
	}
	if h == nil {
		return fmt.Errorf("%w: tool=%s has no handler", contractx.ErrValidation, info.Name)
	}
	if _, exists := r.byName[info.Name]; exists {
		return fmt.Errorf("%w: tool=%s registered twice", contractx.ErrValidation, info.Name)
	}
	r.entries = append(r.entries, entry{info: info, handler: h})
	r.byName[info.Name] = h
	return nil
}

// Declarations returns all tool declarations in registration order. The
// order is stable for the process lifetime.
func (r *Registry) Declarations() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.entries))
	for _, e := range r.entries {
		infos = append(infos, e.info)
	}
	return infos
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// DefaultRegistry wires the six production adapters in their declaration
// order. Adding a tool means one adapter plus one Register call here; the
// orchestrator needs no changes.
func DefaultRegistry(cfg Config, opts ...Option) (*Registry, error) {
	reg := NewRegistry()

	weather := NewWeatherClient(cfg.Weather, opts...)
	news := NewNewsClient(cfg.News, opts...)
	wikipedia := NewWikipediaClient(cfg.Wikipedia, opts...)
	deezer := NewDeezerClient(cfg.Deezer, opts...)
	flights := NewFlightsClient(cfg.Flights, opts...)
	youtube := NewYouTubeClient(cfg.YouTube, opts...)

	for _, t := range []struct {
		info    *schema.ToolInfo
		handler Handler
	}{
		{weather.ToolInfo(), weather.Execute},
		{news.ToolInfo(), news.Execute},
		{wikipedia.ToolInfo(), wikipedia.Execute},
		{deezer.ToolInfo(), deezer.Execute},
		{flights.ToolInfo(), flights.Execute},
		{youtube.ToolInfo(), youtube.Execute},
	} {
		if err := reg.Register(t.info, t.handler); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
