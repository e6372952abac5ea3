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

// YouTubeClient resolves an artist to their official channel and returns the
// channel statistics. Two Data API v3 calls: channel search, then statistics.
type YouTubeClient struct {
	restClient
	apiKey string
}

type ChannelStats struct {
	ChannelName  string `json:"channelName"`
	Subscribers  string `json:"subscribers"`
	TotalViews   string `json:"totalViews"`
	TotalVideos  string `json:"totalVideos"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

func NewYouTubeClient(cfg YouTubeConfig, opts ...Option) *YouTubeClient {
	return &YouTubeClient{
		restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:     cfg.APIKey,
	}
}

func (c *YouTubeClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolYouTube,
		Desc: "Obtiene estadísticas de un canal de artista en YouTube, como suscriptores y visualizaciones totales.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"artistName": {Type: schema.String, Desc: "El nombre del artista a buscar en YouTube. Por ejemplo, 'Shakira' o 'Coldplay'.", Required: true},
		}),
	}
}

func (c *YouTubeClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	artist, ok := stringArg(args, "artistName")
	if !ok {
		return contractx.ToolResult{Tool: ToolYouTube, Error: "missing artistName"}
	}

	channelID, channelName, found, err := c.searchChannel(ctx, artist)
	if err != nil {
		log.Warn().Err(err).Str("artist", artist).Msg("youtube channel search failed")
		return contractx.ToolResult{Tool: ToolYouTube, Error: "Lo siento, tuve un problema al conectar con la API de YouTube."}
	}
	if !found {
		return contractx.ToolResult{
			Tool:    ToolYouTube,
			Summary: fmt.Sprintf("No encontré un canal de YouTube oficial para %q.", artist),
		}
	}

	stats, err := c.channelStats(ctx, channelID, channelName)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("youtube channel stats failed")
		return contractx.ToolResult{Tool: ToolYouTube, Error: "Lo siento, tuve un problema al conectar con la API de YouTube."}
	}

	summary := fmt.Sprintf(
		"El canal oficial de %s en YouTube tiene aproximadamente %s suscriptores, %s visualizaciones totales y %s videos subidos.",
		stats.ChannelName, stats.Subscribers, stats.TotalViews, stats.TotalVideos,
	)

	return contractx.ToolResult{Tool: ToolYouTube, Summary: summary, Result: stats}
}

func (c *YouTubeClient) searchChannel(ctx context.Context, artist string) (id, title string, found bool, err error) {
	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("q", artist+" oficial")
	query.Set("type", "channel")
	query.Set("maxResults", "1")
	query.Set("key", c.apiKey)

	var payload struct {
		Items []struct {
			ID struct {
				ChannelID string `json:"channelId"`
			} `json:"id"`
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/youtube/v3/search?"+query.Encode(), &payload); err != nil {
		return "", "", false, err
	}
	if len(payload.Items) == 0 {
		return "", "", false, nil
	}
	return payload.Items[0].ID.ChannelID, payload.Items[0].Snippet.Title, true, nil
}

func (c *YouTubeClient) channelStats(ctx context.Context, channelID, channelName string) (ChannelStats, error) {
	query := url.Values{}
	query.Set("part", "statistics,snippet")
	query.Set("id", channelID)
	query.Set("key", c.apiKey)

	var payload struct {
		Items []struct {
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				ViewCount       string `json:"viewCount"`
				VideoCount      string `json:"videoCount"`
			} `json:"statistics"`
			Snippet struct {
				Description string `json:"description"`
				Thumbnails  struct {
					Default struct {
						URL string `json:"url"`
					} `json:"default"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if _, err := c.getJSON(ctx, c.baseURL+"/youtube/v3/channels?"+query.Encode(), &payload); err != nil {
		return ChannelStats{}, err
	}
	if len(payload.Items) == 0 {
		return ChannelStats{}, fmt.Errorf("channel %s has no statistics", channelID)
	}

	item := payload.Items[0]
	description, _, _ := strings.Cut(item.Snippet.Description, "\n")
	return ChannelStats{
		ChannelName:  channelName,
		Subscribers:  item.Statistics.SubscriberCount,
		TotalViews:   item.Statistics.ViewCount,
		TotalVideos:  item.Statistics.VideoCount,
		Description:  description,
		ThumbnailURL: item.Snippet.Thumbnails.Default.URL,
	}, nil
}
