// Package commands implements coachctl, the operator CLI for seeding and
// inspecting the coaching backend's content.
package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coaching-backend/internal/bootstrap"
	"coaching-backend/internal/config"
	"coaching-backend/internal/core"
	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

// StoreOpener opens the document store a command works on. The returned
// func releases it.
type StoreOpener func(ctx context.Context) (db.DocumentStore, func() error, error)

// Options are shared by every subcommand.
type Options struct {
	Open   StoreOpener
	Config func() (*config.Config, error)
	Now    func() time.Time
	Logger *zap.Logger
}

// New builds the root command. A nil opts uses the environment configuration.
func New(opts *Options) *cobra.Command {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Config == nil {
		opts.Config = config.LoadConfig
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Open == nil {
		opts.Open = func(ctx context.Context) (db.DocumentStore, func() error, error) {
			cfg, err := opts.Config()
			if err != nil {
				return nil, nil, err
			}
			b, err := bootstrap.OpenBackend(ctx, cfg, opts.Logger)
			if err != nil {
				return nil, nil, err
			}
			return b.Store, b.Close, nil
		}
	}

	cmd := &cobra.Command{
		Use:           "coachctl",
		Short:         "Operate the coaching backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addSeed(cmd, opts)
	addServices(cmd)
	addPlans(cmd, opts)
	addUser(cmd, opts)
	return cmd
}

func withStore(ctx context.Context, opts *Options, fn func(db.DocumentStore) error) error {
	store, closeFn, err := opts.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(store)
}

func addSeed(topLevel *cobra.Command, opts *Options) {
	var force, replace bool

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in content into the store.",
	}
	seed.PersistentFlags().BoolVar(&force, "force", false, "seed even when the collection already has documents")
	seed.PersistentFlags().BoolVar(&replace, "replace", false, "delete the existing documents, then seed")

	seed.AddCommand(&cobra.Command{
		Use:   "events",
		Short: "Seed the five upcoming sample events.",
		Example: `
coachctl seed events
coachctl seed events --force
coachctl seed events --replace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, opts, func(store db.DocumentStore) error {
				repo := db.NewEventRepository(store)
				existing, err := repo.List(ctx)
				if err != nil {
					return err
				}
				if replace {
					ids := make([]string, 0, len(existing))
					for _, e := range existing {
						ids = append(ids, e.ID)
					}
					if err := deleteAll(ctx, cmd.OutOrStdout(), store, db.EventsCollection, ids); err != nil {
						return err
					}
				} else if len(existing) > 0 && !force {
					fmt.Fprintf(cmd.OutOrStdout(), "events already has %d documents; use --force to add the samples anyway\n", len(existing))
					return nil
				}
				for _, e := range core.FallbackEvents(opts.Now()) {
					id, err := repo.Create(ctx, e)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "created event %s: %s\n", id, e.Title)
				}
				return nil
			})
		},
	})

	seed.AddCommand(&cobra.Command{
		Use:   "testimonials",
		Short: "Seed the built-in testimonials.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, opts, func(store db.DocumentStore) error {
				repo := db.NewTestimonialRepository(store)
				existing, err := repo.List(ctx)
				if err != nil {
					return err
				}
				if replace {
					ids := make([]string, 0, len(existing))
					for _, t := range existing {
						ids = append(ids, t.ID)
					}
					if err := deleteAll(ctx, cmd.OutOrStdout(), store, db.TestimonialsCollection, ids); err != nil {
						return err
					}
				} else if len(existing) > 0 && !force {
					fmt.Fprintf(cmd.OutOrStdout(), "testimonials already has %d documents; use --force to add the samples anyway\n", len(existing))
					return nil
				}
				for _, t := range core.FallbackTestimonials() {
					id, err := repo.Create(ctx, t)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "created testimonial %s: %s\n", id, t.Name)
				}
				return nil
			})
		},
	})

	topLevel.AddCommand(seed)
}

func deleteAll(ctx context.Context, out io.Writer, store db.DocumentStore, collection string, ids []string) error {
	for _, id := range ids {
		if err := store.Delete(ctx, collection, id); err != nil {
			return fmt.Errorf("delete %s/%s: %w", collection, id, err)
		}
	}
	fmt.Fprintf(out, "deleted %d documents from %s\n", len(ids), collection)
	return nil
}

func addServices(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "services",
		Short: "List the coaching service tags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME")
			for _, s := range models.CoachingServices() {
				fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Name)
			}
			return w.Flush()
		},
	})
}

func addPlans(topLevel *cobra.Command, opts *Options) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "plans",
		Short: "List subscription plans with their configured Stripe prices.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTRIPE PRICE")
			for _, p := range bootstrap.Plans(cfg) {
				price := p.PriceID
				if price == "" {
					price = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\n", p.ID, p.Name, p.Price, p.Period, price)
			}
			return w.Flush()
		},
	})
}

func addUser(topLevel *cobra.Command, opts *Options) {
	user := &cobra.Command{
		Use:   "user",
		Short: "Inspect user records.",
	}
	user.AddCommand(&cobra.Command{
		Use:   "get <uid>",
		Short: "Print a user's profile and goal counts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, opts, func(store db.DocumentStore) error {
				u, err := db.NewUserRepository(store).GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				goals, err := db.NewGoalRepository(store).Fetch(ctx, args[0])
				if err != nil {
					return err
				}
				active := 0
				now := opts.Now()
				for _, g := range goals {
					if !g.Completed && !g.IsExpired(now) {
						active++
					}
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "ID\t%s\n", u.ID)
				fmt.Fprintf(w, "NAME\t%s\n", u.FullName())
				fmt.Fprintf(w, "EMAIL\t%s\n", u.Email)
				fmt.Fprintf(w, "SUBSCRIPTION\t%s\n", u.Subscription)
				fmt.Fprintf(w, "SERVICES\t%v\n", u.SelectedServices)
				fmt.Fprintf(w, "GOALS\t%d (%d active)\n", len(goals), active)
				return w.Flush()
			})
		},
	})
	topLevel.AddCommand(user)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}
