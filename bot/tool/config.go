package tool

import "time"

// Config aggregates every adapter's settings so wiring sites load them with
// one envconfig pass (prefix TOOLS).
type Config struct {
	Weather   WeatherConfig   `envconfig:"WEATHER"`
	News      NewsConfig      `envconfig:"NEWS"`
	Wikipedia WikipediaConfig `envconfig:"WIKIPEDIA"`
	Deezer    DeezerConfig    `envconfig:"DEEZER"`
	Flights   FlightsConfig   `envconfig:"FLIGHTS"`
	YouTube   YouTubeConfig   `envconfig:"YOUTUBE"`
}

type WeatherConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openweathermap.org"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type NewsConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://newsapi.org"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type WikipediaConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://es.wikipedia.org"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type DeezerConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.deezer.com"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type FlightsConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.travelpayouts.com"`
	Token   string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type YouTubeConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.googleapis.com"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}
