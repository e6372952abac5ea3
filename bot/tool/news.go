package tool

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

const newsPageSize = 3

// NewsClient fetches top headlines from NewsAPI.
type NewsClient struct {
	restClient
	apiKey string
}

type NewsArticle struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

func NewNewsClient(cfg NewsConfig, opts ...Option) *NewsClient {
	return &NewsClient{
		restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:     cfg.APIKey,
	}
}

func (c *NewsClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolNews,
		Desc: "Obtiene los 3 titulares de noticias más relevantes sobre un tema específico.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"topic": {Type: schema.String, Desc: "El tema sobre el cual buscar noticias.", Required: true},
		}),
	}
}

func (c *NewsClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	topic, ok := stringArg(args, "topic")
	if !ok {
		return contractx.ToolResult{Tool: ToolNews, Error: "missing topic"}
	}

	query := url.Values{}
	query.Set("q", topic)
	query.Set("apiKey", c.apiKey)
	query.Set("pageSize", fmt.Sprint(newsPageSize))
	query.Set("language", "es")

	var payload struct {
		Status   string `json:"status"`
		Articles []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	if _, err := c.getJSON(ctx, c.baseURL+"/v2/top-headlines?"+query.Encode(), &payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("news lookup failed")
		return contractx.ToolResult{Tool: ToolNews, Error: "Lo siento, tuve un problema al conectar con el servicio de noticias."}
	}
	if payload.Status != "ok" || len(payload.Articles) == 0 {
		return contractx.ToolResult{Tool: ToolNews, Summary: fmt.Sprintf("No encontré noticias sobre %q.", topic)}
	}

	articles := make([]NewsArticle, 0, len(payload.Articles))
	lines := make([]string, 0, len(payload.Articles))
	for i, a := range payload.Articles {
		articles = append(articles, NewsArticle{Title: a.Title, Source: a.Source.Name, URL: a.URL})
		lines = append(lines, fmt.Sprintf("%d. %s (Fuente: %s)", i+1, a.Title, a.Source.Name))
	}

	summary := fmt.Sprintf("Aquí tienes las %d noticias principales sobre %q:\n%s",
		len(articles), topic, strings.Join(lines, "\n"))

	return contractx.ToolResult{Tool: ToolNews, Summary: summary, Result: articles}
}
