package tool

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// WeatherClient looks up current conditions on OpenWeatherMap.
type WeatherClient struct {
	restClient
	apiKey string
}

type WeatherResult struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
}

func NewWeatherClient(cfg WeatherConfig, opts ...Option) *WeatherClient {
	return &WeatherClient{
		restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:     cfg.APIKey,
	}
}

func (c *WeatherClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolWeather,
		Desc: "Obtiene el clima actual para una ciudad específica.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city": {Type: schema.String, Desc: "La ciudad para la cual obtener el clima.", Required: true},
		}),
	}
}

func (c *WeatherClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	city, ok := stringArg(args, "city")
	if !ok {
		return contractx.ToolResult{Tool: ToolWeather, Error: "missing city"}
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "es")

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Message string `json:"message"`
	}

	status, err := c.getJSON(ctx, c.baseURL+"/data/2.5/weather?"+query.Encode(), &payload)
	if err != nil {
		log.Warn().Err(err).Str("city", city).Msg("weather lookup failed")
		return contractx.ToolResult{Tool: ToolWeather, Error: "Lo siento, tuve un problema al conectar con el servicio del clima."}
	}
	if status != http.StatusOK {
		msg := payload.Message
		if msg == "" {
			msg = fmt.Sprintf("No encontré el clima para %q.", city)
		}
		return contractx.ToolResult{Tool: ToolWeather, Error: msg}
	}

	result := WeatherResult{
		City:        payload.Name,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		result.Description = payload.Weather[0].Description
	}

	return contractx.ToolResult{Tool: ToolWeather, Result: result}
}
