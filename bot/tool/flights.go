package tool

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// FlightsClient queries Travelpayouts for the cheapest fare between two
// cities on a given date.
type FlightsClient struct {
	restClient
	token string
}

type FlightResult struct {
	Price        int    `json:"price"`
	Airline      string `json:"airline"`
	FlightNumber int    `json:"flight_number"`
	DepartureAt  string `json:"departure_at"`
	ReturnAt     string `json:"return_at"`
	ExpiresAt    string `json:"expires_at"`
}

func NewFlightsClient(cfg FlightsConfig, opts ...Option) *FlightsClient {
	return &FlightsClient{
		restClient: newRESTClient(cfg.BaseURL, cfg.Timeout, opts...),
		token:      cfg.Token,
	}
}

func (c *FlightsClient) ToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolFlights,
		Desc: "Busca vuelos baratos entre dos ciudades en una fecha específica.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"origin":      {Type: schema.String, Desc: "El código IATA de la ciudad de origen.", Required: true},
			"destination": {Type: schema.String, Desc: "El código IATA de la ciudad de destino.", Required: true},
			"date":        {Type: schema.String, Desc: "La fecha del vuelo en formato YYYY-MM-DD.", Required: true},
		}),
	}
}

func (c *FlightsClient) Execute(ctx context.Context, args map[string]any) contractx.ToolResult {
	origin, ok := stringArg(args, "origin")
	if !ok {
		return contractx.ToolResult{Tool: ToolFlights, Error: "missing origin"}
	}
	destination, ok := stringArg(args, "destination")
	if !ok {
		return contractx.ToolResult{Tool: ToolFlights, Error: "missing destination"}
	}
	date, ok := stringArg(args, "date")
	if !ok {
		return contractx.ToolResult{Tool: ToolFlights, Error: "missing date"}
	}

	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	query.Set("depart_date", date)
	query.Set("token", c.token)

	var payload struct {
		Success bool `json:"success"`
		Data    map[string]map[string]struct {
			Price        int    `json:"price"`
			Airline      string `json:"airline"`
			FlightNumber int    `json:"flight_number"`
			DepartureAt  string `json:"departure_at"`
			ReturnAt     string `json:"return_at"`
			ExpiresAt    string `json:"expires_at"`
		} `json:"data"`
	}

	if _, err := c.getJSON(ctx, c.baseURL+"/v1/prices/cheap?"+query.Encode(), &payload); err != nil {
		log.Warn().Err(err).Str("origin", origin).Str("destination", destination).Msg("flights lookup failed")
		return contractx.ToolResult{Tool: ToolFlights, Error: "Lo siento, tuve un problema al conectar con el servicio de vuelos."}
	}
	if !payload.Success || len(payload.Data) == 0 {
		return contractx.ToolResult{
			Tool:    ToolFlights,
			Summary: fmt.Sprintf("No encontré vuelos de %s a %s para la fecha %s.", origin, destination, date),
		}
	}

	for _, fares := range payload.Data {
		for _, fare := range fares {
			return contractx.ToolResult{
				Tool: ToolFlights,
				Result: FlightResult{
					Price:        fare.Price,
					Airline:      fare.Airline,
					FlightNumber: fare.FlightNumber,
					DepartureAt:  fare.DepartureAt,
					ReturnAt:     fare.ReturnAt,
					ExpiresAt:    fare.ExpiresAt,
				},
			}
		}
	}

	return contractx.ToolResult{
		Tool:    ToolFlights,
		Summary: fmt.Sprintf("No encontré vuelos de %s a %s para la fecha %s.", origin, destination, date),
	}
}
