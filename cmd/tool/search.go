package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/memory"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/ticketmaster"
	"github.com/baechuer/cityevents/services/nearby-service/internal/pkg/circuitbreaker"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/dto"
)

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// newSearchService builds a throwaway service over in-memory stores.
func newSearchService(p item.Provider) *item.Service {
	items := memory.NewItemStore()
	users := memory.NewUserRepo()
	return item.New(item.Deps{
		Items:    items,
		History:  memory.NewHistoryStore(users, items, utcClock{}),
		Users:    users,
		Provider: p,
		Clock:    utcClock{},
	}, 0, 0)
}

func searchCommand() *cobra.Command {
	var (
		lat, lon float64
		term     string
		cfg      ticketmaster.Config
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one provider search and print the mapped items as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ticketmaster.New(cfg, circuitbreaker.New("ticketmaster", 1, time.Minute, 1))
			if err != nil {
				return err
			}
			items, err := newSearchService(client).Search(cmd.Context(), lat, lon, term)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.ToItemResps(items, nil))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude")
	f.Float64Var(&lon, "lon", 0, "longitude")
	f.StringVar(&term, "term", "", "keyword")
	f.StringVar(&cfg.BaseURL, "base-url", ticketmaster.DefaultBaseURL, "provider base url")
	f.StringVar(&cfg.APIKey, "api-key", os.Getenv("TM_API_KEY"), "provider api key")
	f.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "provider timeout")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
