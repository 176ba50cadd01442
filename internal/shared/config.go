package shared

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

type ApartmentSeed struct {
	ID       string  `mapstructure:"id"`
	Rate     float64 `mapstructure:"rate"`
	Capacity int     `mapstructure:"capacity"`
}

type GuestSeed struct {
	Name   string `mapstructure:"name"`
	Points int    `mapstructure:"points"`
}

type ItemSeed struct {
	ID    string  `mapstructure:"id"`
	Price float64 `mapstructure:"price"`
}

type CatalogueConfig struct {
	CaseInsensitive bool `mapstructure:"case_insensitive"`
}

type Config struct {
	AppEnv      string          `mapstructure:"app_env"`
	LogLevel    string          `mapstructure:"log_level"`
	MetricsAddr string          `mapstructure:"metrics_addr"`
	HotelName   string          `mapstructure:"hotel_name"`
	Currency    string          `mapstructure:"currency"`
	MaxNights   int             `mapstructure:"max_nights"`
	Catalogue   CatalogueConfig `mapstructure:"catalogue"`
	Apartments  []ApartmentSeed `mapstructure:"apartments"`
	Guests      []GuestSeed     `mapstructure:"guests"`
	Items       []ItemSeed      `mapstructure:"items"`
}

var (
	DefaultApartments = []ApartmentSeed{
		{ID: "U12swan", Rate: 95.0, Capacity: 2},
		{ID: "U209duck", Rate: 106.7, Capacity: 2},
		{ID: "U49goose", Rate: 145.2, Capacity: 2},
	}
	DefaultGuests = []GuestSeed{{Name: "Alyssa", Points: 20}, {Name: "Luigi", Points: 32}}
	DefaultItems  = []ItemSeed{
		{ID: "car_park", Price: 25.0},
		{ID: "breakfast", Price: 18.0},
		{ID: "toothpaste", Price: 5.2},
		{ID: domain.ExtraBedItem, Price: 30.0},
	}
)

// Load reads an optional .env, then config.yaml from the working directory or
// ./configs, then HOTEL_* environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(viper.New(), ".", "./configs")
}

// LoadFrom is Load without the .env step, reading config.yaml from dirs.
func LoadFrom(v *viper.Viper, dirs ...string) (Config, error) {
	v.SetDefault("app_env", "prod")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("hotel_name", "Debuggers Hut Serviced Apartments")
	v.SetDefault("currency", "AUD")
	v.SetDefault("max_nights", 7)
	v.SetDefault("catalogue.case_insensitive", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Debug().Msg("no config file, using defaults and environment")
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("config file loaded")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(c.Apartments) == 0 {
		c.Apartments = DefaultApartments
	}
	if len(c.Guests) == 0 {
		c.Guests = DefaultGuests
	}
	if len(c.Items) == 0 {
		c.Items = DefaultItems
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	if c.MetricsAddr == "" {
		log.Debug().Msg("HOTEL_METRICS_ADDR is empty, ops server disabled")
	}
	return c, nil
}

func (c Config) validate() error {
	if c.MaxNights <= 0 {
		return fmt.Errorf("%w: max_nights must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(c.Currency) == "" {
		return fmt.Errorf("%w: currency cannot be empty", domain.ErrValidation)
	}
	for _, a := range c.Apartments {
		if strings.TrimSpace(a.ID) == "" || !domain.PositiveAmount(a.Rate) || a.Capacity < 0 {
			return fmt.Errorf("%w: bad apartment seed %+v", domain.ErrValidation, a)
		}
	}
	for _, g := range c.Guests {
		if strings.TrimSpace(g.Name) == "" || g.Points < 0 {
			return fmt.Errorf("%w: bad guest seed %+v", domain.ErrValidation, g)
		}
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || !domain.PositiveAmount(it.Price) {
			return fmt.Errorf("%w: bad item seed %+v", domain.ErrValidation, it)
		}
	}
	return nil
}

// Seed converts the configured seed data for memory.New.
func (c Config) Seed() memory.Seed {
	var s memory.Seed
	for _, a := range c.Apartments {
		s.Apartments = append(s.Apartments, domain.Apartment{ID: a.ID, NightlyRate: a.Rate, Capacity: a.Capacity})
	}
	for _, g := range c.Guests {
		s.Guests = append(s.Guests, domain.Guest{Name: g.Name, Points: g.Points})
	}
	for _, it := range c.Items {
		s.Items = append(s.Items, domain.Item{ID: it.ID, Price: it.Price})
	}
	return s
}
