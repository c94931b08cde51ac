package cli

import (
	"github.com/finance-tracker/backend/internal/seed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func seedCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with sample data",
		Long: `seed creates the user ` + seed.Email + ` with the password ` + seed.Password + `
together with sample categories, transactions, a budget and a recurring
transaction. Nothing is changed if the user exists already.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := connect(o.cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer closeDB(db)

			created, err := seed.Run(cmd.Context(), db)
			if err != nil {
				return err
			}

			if !created {
				log.Info().Str("email", seed.Email).Msg("Demo user exists already, nothing to do")
				return nil
			}

			log.Info().Str("email", seed.Email).Msg("Demo data created")
			return nil
		},
	}
}
