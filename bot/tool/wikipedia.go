package tool

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// WikipediaClient resolves a topic to its most relevant article and returns
// the intro extract. Two MediaWiki calls: search, then extract.
type WikipediaClient struct {
	restClient
}

func NewWikipediaClient(cfg WikipediaConfig, opts ...Option) *WikipediaClient {
	return &WikipediaClient{restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...)}
}

func (c *WikipediaClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolWikipedia,
		Desc: "Busca un resumen de un tema o concepto en Wikipedia en español.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"topic": {Type: schema.String, Desc: "El tema o concepto a buscar, por ejemplo, 'Agujero negro' o 'Albert Einstein'.", Required: true},
		}),
	}
}

func (c *WikipediaClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	topic, ok := stringArg(args, "topic")
	if !ok {
		return contractx.ToolResult{Tool: ToolWikipedia, Error: "missing topic"}
	}

	title, found, err := c.searchTitle(ctx, topic)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("wikipedia search failed")
		return contractx.ToolResult{Tool: ToolWikipedia, Error: "Lo siento, tuve un problema al conectar con Wikipedia."}
	}
	if !found {
		return contractx.ToolResult{Tool: ToolWikipedia, Summary: fmt.Sprintf("No encontré nada en Wikipedia sobre %q.", topic)}
	}

	extract, err := c.fetchExtract(ctx, title)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("wikipedia extract failed")
		return contractx.ToolResult{Tool: ToolWikipedia, Error: "Lo siento, tuve un problema al conectar con Wikipedia."}
	}
	if extract == "" {
		extract = fmt.Sprintf("Encontré un artículo sobre %q, pero no pude extraer un resumen.", title)
	}

	return contractx.ToolResult{Tool: ToolWikipedia, Summary: extract}
}

func (c *WikipediaClient) searchTitle(ctx context.Context, topic string) (string, bool, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("list", "search")
	query.Set("srsearch", topic)
	query.Set("format", "json")

	var payload struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/w/api.php?"+query.Encode(), &payload); err != nil {
		return "", false, err
	}
	if len(payload.Query.Search) == 0 {
		return "", false, nil
	}
	return payload.Query.Search[0].Title, true, nil
}

func (c *WikipediaClient) fetchExtract(ctx context.Context, title string) (string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("prop", "extracts")
	query.Set("exintro", "1")
	query.Set("explaintext", "1")
	query.Set("titles", title)
	query.Set("format", "json")
	query.Set("redirects", "1")

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/w/api.php?"+query.Encode(), &payload); err != nil {
		return "", err
	}
	for _, page := range payload.Query.Pages {
		return page.Extract, nil
	}
	return "", nil
}
