package cli

import (
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/server"
	"github.com/spf13/cobra"
)

func (a *App) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports and calendars over HTTP on localhost",
		Long: `Serve the report API on 127.0.0.1 until interrupted.

Routes:
  GET /api/report?firstName1=Jean&lastName=Dupont&birthDate=1995-06-15
  GET /api/calendar.ics?...&reminder=-P1D
  GET /healthz

Optional parameters: variant, traits, lang (or Accept-Language).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.NewReportServer(a.settings.Server.Port, a.settings.Server.CacheTTL)
			srv.Clock = a.Clock
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}
