package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jask/codepad/internal/catalog"
	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/database/repository"
	"github.com/jask/codepad/internal/workspace/project"
)

func revisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "Inspect saved revisions",
	}
	cmd.AddCommand(revisionsListCmd(), revisionsShowCmd())
	return cmd
}

func revisionsListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved revisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			revs, err := repository.NewRevisionRepo(e.db).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range revs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum revisions to list")
	return cmd
}

func revisionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid revision id %q: %w", args[0], err)
			}
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			rev, err := repository.NewRevisionRepo(e.db).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", rev.Title, rev.ID)
			fmt.Fprintf(out, "saved %s\n", rev.CreatedAt.Format("2006-01-02 15:04:05"))
			for _, p := range rev.Content.Packages {
				fmt.Fprintf(out, "  %s %s\n", p.Name, p.Version)
			}
			fmt.Fprintf(out, "\n%s\n", rev.Content.Code)
			if rev.Content.Markup != "" {
				fmt.Fprintf(out, "\n%s\n", rev.Content.Markup)
			}
			return nil
		},
	}
}

func packagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Search and extend the package catalog",
	}
	cmd.AddCommand(packagesSearchCmd(), packagesAddCmd())
	return cmd
}

func packagesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the package catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			found, err := catalog.New(repository.NewPackageRepo(e.db)).Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, p := range found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.Version, p.Summary)
			}
			return nil
		},
	}
}

func packagesAddCmd() *cobra.Command {
	var summary string
	cmd := &cobra.Command{
		Use:   "add <name> <version>",
		Short: "Add or update a catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			p := project.Package{Name: args[0], Version: args[1], Summary: summary}
			if err := catalog.New(repository.NewPackageRepo(e.db)).Add(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", p.Name, p.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "One-line description")
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the workspace token for the configured server",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored token so the next session joins a fresh workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := tokenStore()
			if err != nil {
				return err
			}
			if err := store.Forget(cfg.Server.URL); err != nil {
				return fmt.Errorf("forget token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot token for %s\n", cfg.Server.URL)
			if cfg.Server.Token != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "server.token is set in config and still takes precedence")
			}
			return nil
		},
	})
	return cmd
}
