package tool

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// DeezerClient searches Deezer for a track. A hit produces a contract.Song,
// which the orchestrator surfaces as a structured song card.
type DeezerClient struct {
	restClient
}

func NewDeezerClient(cfg DeezerConfig, opts ...Option) *DeezerClient {
	return &DeezerClient{restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...)}
}

func (c *DeezerClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolDeezer,
		Desc: "Busca una canción en Deezer por su título.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "El título de la canción a buscar.", Required: true},
		}),
	}
}

func (c *DeezerClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	q, ok := stringArg(args, "query")
	if !ok {
		return contractx.ToolResult{Tool: ToolDeezer, Error: "missing query"}
	}

	query := url.Values{}
	query.Set("q", q)

	var payload struct {
		Data []struct {
			Title  string `json:"title"`
			Link   string `json:"link"`
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
			Album struct {
				Title       string `json:"title"`
				CoverMedium string `json:"cover_medium"`
			} `json:"album"`
		} `json:"data"`
	}

	if _, err := c.getJSON(ctx, c.baseURL+"/search?"+query.Encode(), &payload); err != nil {
		log.Warn().Err(err).Str("query", q).Msg("deezer lookup failed")
		return contractx.ToolResult{Tool: ToolDeezer, Error: "Lo siento, tuve un problema al conectar con Deezer."}
	}
	if len(payload.Data) == 0 {
		return contractx.ToolResult{Tool: ToolDeezer, Summary: fmt.Sprintf("No encontré ninguna canción llamada %q en Deezer.", q)}
	}

	track := payload.Data[0]
	return contractx.ToolResult{
		Tool: ToolDeezer,
		Result: contractx.Song{
			Title:  track.Title,
			Artist: track.Artist.Name,
			Album:  track.Album.Title,
			Link:   track.Link,
			Cover:  track.Album.CoverMedium,
		},
	}
}
