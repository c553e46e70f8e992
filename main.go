package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pomopet/internal/chase"
	"pomopet/internal/config"
	"pomopet/internal/game"
	"pomopet/internal/motivation"
	"pomopet/internal/pet"
	"pomopet/internal/storage"
	"pomopet/internal/timer"
	"pomopet/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is everything a command needs, opened from the layered config.
type app struct {
	cfg     *config.Config
	store   storage.Store
	ledger  *pet.Ledger
	history *pet.History
	logFile io.Closer
}

func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogPath(), "pomopet")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	store, err := storage.Open(cfg.Backend, cfg.StateDir)
	if err != nil {
		f.Close()
		log.SetOutput(os.Stderr)
		return nil, err
	}

	ctx := cmd.Context()
	return &app{
		cfg:     cfg,
		store:   store,
		ledger:  pet.NewLedger(store, pet.LoadProfile(ctx, store)),
		history: pet.NewHistory(store),
		logFile: f,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	log.SetOutput(os.Stderr)
	a.logFile.Close()
}

func (a *app) controller() *game.Controller {
	var provider motivation.Provider = motivation.Offline{}
	if a.cfg.GeminiAPIKey != "" {
		provider = motivation.NewGeminiProvider(a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
	}
	return game.New(a.ledger, a.history, game.Options{
		Durations:         timer.FromDurations(a.cfg.Focus, a.cfg.ShortBreak, a.cfg.LongBreak),
		Reward:            a.cfg.Reward,
		MotivationTimeout: a.cfg.MotivationTimeout,
		Provider:          provider,
	})
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pomopet",
		Short:         "Pomodoro focus timer with a virtual pet",
		Long:          "Focus for 25 minutes, earn coins, and spend them feeding and adopting pets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			c := a.controller()
			defer c.Close()

			program := tea.NewProgram(ui.NewModel(cmd.Context(), c), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("error running pomopet: %w", err)
			}
			return nil
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newStatsCmd())
	root.AddCommand(newPetsCmd())
	root.AddCommand(newFeedCmd())
	root.AddCommand(newBuyCmd())
	root.AddCommand(newEquipCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newChaseCmd())
	return root
}

func newStatsCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show coins, focus time and your pet's fullness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if interactive {
				return ui.DisplayStats(a.ledger.Profile())
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), ui.RenderStatsCard(a.ledger.Profile()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show the card full screen until a key is pressed")
	return cmd
}

func newPetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pets",
		Short: "List the pet catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p := a.ledger.Profile()
			for _, def := range pet.Catalog() {
				marker := fmt.Sprintf("%d coins", def.Price)
				switch {
				case p.ActivePetID == def.ID:
					marker = "equipped"
				case p.IsUnlocked(def.ID):
					marker = "owned"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-9s %-10s %s\n", def.Emoji, def.ID, def.Name, marker, def.Description)
			}
			return nil
		},
	}
}

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Spend 10 coins to feed your pet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if hint := pet.FeedHint(a.ledger.Profile()); hint != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), hint)
			}
			p, err := a.ledger.Feed(cmd.Context())
			if err != nil {
				return err
			}
			def := pet.ActiveDefinition(p)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Yummy! %s %s is %d%% full. %d coins left.\n", def.Emoji, def.Name, p.PetFullness, p.Coins)
			return nil
		},
	}
}

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <pet-id>",
		Short: "Adopt a pet from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.ledger.Buy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			def, _ := pet.LookupPet(args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Adopted %s %s! %d coins left. Run `pomopet equip %s` to play with them.\n", def.Emoji, def.Name, p.Coins, def.ID)
			return nil
		},
	}
}

func newEquipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equip <pet-id>",
		Short: "Make an owned pet your study buddy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.ledger.EquipPet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			def := pet.ActiveDefinition(p)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now your study buddy.\n", def.Emoji, def.Name)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently completed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.history.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions yet")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, e := range entries {
				mode := timer.Mode(e.Mode)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-11s\t%s\t+%d\t%s\n",
					e.CompletedAt.Local().Format("2006-01-02 15:04"), mode.Label(), timer.Format(e.DurationSeconds), e.CoinsEarned, e.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of sessions to show (0 for all)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run focus sessions without the TUI",
		Long:  "Counts down focus and break sessions back to back, printing each completion, until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			c := a.controller()
			defer c.Close()
			return runHeadless(ctx, cancel, c, cmd.OutOrStdout(), once)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "stop after one focus session")
	return cmd
}

func runHeadless(ctx context.Context, cancel context.CancelFunc, c *game.Controller, out io.Writer, once bool) error {
	snap := c.Snapshot()
	_, _ = fmt.Fprintf(out, "%s started: %s\n", snap.Mode.Label(), timer.Format(snap.Remaining))
	c.Start()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-c.Messages():
				_, _ = fmt.Fprintf(out, "💬 %s\n🧘 %s\n", msg.Motivation, msg.Activity)
				if once {
					cancel()
				}
			}
		}
	}()

	c.Run(ctx, func(ev game.Event) {
		done := ev.Completion
		switch {
		case ev.Err != nil:
			_, _ = fmt.Fprintf(out, "%s complete, but the reward was not saved: %v\n", done.Mode.Label(), ev.Err)
		case done.Mode == timer.Focus:
			_, _ = fmt.Fprintf(out, "%s complete! +%d coins (%d total)\n", done.Mode.Label(), ev.Reward, ev.Profile.Coins)
		default:
			_, _ = fmt.Fprintln(out, ev.Message)
		}
		if once && done.Mode == timer.Focus {
			return
		}
		snap := c.Snapshot()
		_, _ = fmt.Fprintf(out, "%s started: %s\n", snap.Mode.Label(), timer.Format(snap.Remaining))
		c.Start()
	})
	return nil
}

func newChaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "chase [butterfly|ball|mouse]",
		Short:     "Watch your pet chase something during a break",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"butterfly", "ball", "mouse"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			target := "butterfly"
			if len(args) == 1 {
				target = strings.ToLower(args[0])
			}
			p := a.ledger.Profile()
			def := pet.ActiveDefinition(p)
			caught, err := chase.Run(def, p.PetFullness, target)
			if err != nil {
				return err
			}
			if caught {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s caught the %s!\n", def.Emoji, def.Name, target)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The %s got away this time.\n", target)
			}
			return nil
		},
	}
}
