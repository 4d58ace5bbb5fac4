package main

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/config"
)

// profileCmd implements 'deck profile'. Without a subcommand it shows the card.
func profileCmd() *cobra.Command {
	show := func(_ *cobra.Command, _ []string) {
		printOutput(formatter.FormatProfile(cfg.ProfileInfo))
	}
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile card",
		Run:   show,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show the profile card", Run: show},
		profileSetCmd(),
	)
	return cmd
}

func profileSetCmd() *cobra.Command {
	var p config.Profile
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields in the config file",
		Run: func(cmd *cobra.Command, _ []string) {
			fields := []struct {
				flag  string
				value string
				dst   *string
			}{
				{"name", p.Name, &cfg.ProfileInfo.Name},
				{"email", p.Email, &cfg.ProfileInfo.Email},
				{"phone", p.Phone, &cfg.ProfileInfo.Phone},
				{"location", p.Location, &cfg.ProfileInfo.Location},
				{"bio", p.Bio, &cfg.ProfileInfo.Bio},
				{"joined", p.JoinDate, &cfg.ProfileInfo.JoinDate},
			}
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					*f.dst = f.value
				}
			}

			if err := config.Save(cfgPath, cfg); err != nil {
				printError(err)
			}
			logger.Debug("saved profile", "path", cfgPath)
			printOutput(formatter.FormatProfile(cfg.ProfileInfo))
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&p.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&p.Location, "location", "", "Location")
	cmd.Flags().StringVar(&p.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&p.JoinDate, "joined", "", "Join date")
	return cmd
}
