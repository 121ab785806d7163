package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/security"
)

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("missing --database-url (or DATABASE_URL)")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func schemaCommand() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the postgres schema",
	}
	cmd.PersistentFlags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres DSN")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create missing tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDB(cmd.Context(), dsn)
				if err != nil {
					return err
				}
				defer db.Close()
				return postgres.Migrate(cmd.Context(), db)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop every table and recreate the schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDB(cmd.Context(), dsn)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := postgres.Reset(cmd.Context(), db); err != nil {
					return err
				}
				zlog.Info().Msg("schema reset")
				return nil
			},
		},
	)
	return cmd
}

func seedCommand() *cobra.Command {
	var (
		dsn      string
		password string
	)
	u := item.DemoUser()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or replace a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if u.ID == "" || password == "" {
				return errors.New("--user-id and --password are required")
			}

			db, err := openDB(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			err = item.SeedUser(cmd.Context(), postgres.NewUserRepo(db), security.NewBcryptHasher(0), u, password)
			if err != nil {
				return err
			}
			zlog.Info().Str("user_id", u.ID).Msg("user seeded")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres DSN")
	f.StringVar(&u.ID, "user-id", u.ID, "user id")
	f.StringVar(&u.FirstName, "first-name", u.FirstName, "first name")
	f.StringVar(&u.LastName, "last-name", u.LastName, "last name")
	f.StringVar(&password, "password", domain.DemoUserPassword, "password as sent by the client")
	return cmd
}
