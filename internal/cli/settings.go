package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/porticus-lab/vaultprint/internal/settings"
	"github.com/porticus-lab/vaultprint/internal/settingsui"
)

func newSettingsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the print settings",
		Long: `Show or change the print settings stored in the vault's plugin folder.

Keys:
` + settingsKeys(),
	}
	cmd.AddCommand(
		newSettingsShowCmd(o),
		newSettingsGetCmd(o),
		newSettingsSetCmd(o),
		newSettingsResetCmd(o),
		newSettingsEditCmd(o),
	)
	return cmd
}

func settingsKeys() string {
	var s string
	for _, f := range settings.Fields() {
		s += fmt.Sprintf("  %-20s %s\n", f.Key, f.Name)
	}
	return s
}

func newSettingsShowCmd(o *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			s, err := a.Store().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if raw {
				data, err := toml.Marshal(s)
				if err != nil {
					return fmt.Errorf("cli: encoding settings: %w", err)
				}
				_, err = out.Write(data)
				return err
			}
			for _, f := range settings.Fields() {
				fmt.Fprintf(out, "%-20s %s\n", f.Key, f.Get(&s))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "toml", false, "print the settings file contents")
	return cmd
}

func newSettingsGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			s, err := a.Store().Load()
			if err != nil {
				return err
			}
			v, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newSettingsSetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. Sizes and colors are CSS values and are stored as
given, so "1.2em", "#336699" and "var(--text-accent)" all work.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			if _, err := a.Store().Update(func(s *settings.Settings) error {
				return s.Set(args[0], args[1])
			}); err != nil {
				return err
			}
			logger.Debug("setting saved", "key", args[0], "value", args[1])
			return nil
		},
	}
}

func newSettingsResetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Long: `Restore the default settings. Heading colors are taken from the theme
again on the next print.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			if err := a.Store().Save(settings.Defaults()); err != nil {
				return err
			}
			o.say(cmd, "Settings reset")
			return nil
		},
	}
}

func newSettingsEditCmd(o *rootOptions) *cobra.Command {
	var pf printFlags
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the settings in an interactive form",
		Long: `Edit the settings in an interactive form. Every change is saved as soon
as it is made. Press t to take the heading colors from the theme and s to
toggle the print snippet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("cli: settings edit needs an interactive terminal")
			}
			a, logger, err := o.openApp(cmd, &pf)
			if err != nil {
				return err
			}
			defer a.Close()

			v := a.Vault()
			return settingsui.Run(cmd.Context(), a.Store(), v, a.InitializeThemeColors, v.SnippetsDir(), logger.Named("settingsui"))
		},
	}
	pf.register(cmd)
	return cmd
}
