package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/slotmesh"
	"github.com/hupe1980/slotmesh/artifact"
	"github.com/hupe1980/slotmesh/config"
	"github.com/hupe1980/slotmesh/console"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/imagegen"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
	"github.com/hupe1980/slotmesh/model/anthropic"
	"github.com/hupe1980/slotmesh/model/openai"
	"github.com/hupe1980/slotmesh/session"
	"github.com/hupe1980/slotmesh/session/sqlite"
	"github.com/hupe1980/slotmesh/transcript"
	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			plain, _ := cmd.Flags().GetBool("plain")
			showTranscript, _ := cmd.Flags().GetBool("transcript")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg).WithComponent("chat").WithUser(user).WithContext("provider", cfg.Provider)

			store, closeStore, err := openStore(cfg, slotmesh.SessionFactory())
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if sw, ok := store.(sweeper); ok && cfg.Store.TTL > 0 {
				go sweepLoop(ctx, sw, cfg.Store.TTL, logger)
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			m := buildModel(cfg)
			turns := transcript.NewInMemoryStore(200)
			sm, err := slotmesh.New(func(o *slotmesh.Options) {
				o.Model = m
				o.Images = buildImages(cfg, logger)
				o.Store = store
				o.Transcript = turns
				o.Events = cfg.Events()
				o.Location = loc
				o.RetainDraftOnSwitch = cfg.RetainDraftOnSwitch
				o.Decorate = cfg.Decorate
				o.Logger = logger
			})
			if err != nil {
				return err
			}

			ch := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), func(o *console.Options) { o.Styled = !plain })
			err = sm.Serve(ctx, user, ch)
			fmt.Fprintln(cmd.OutOrStdout(), "Chatbot ended.")
			if showTranscript {
				printTranscript(cmd.OutOrStdout(), turns, user)
			}
			return err
		},
	}
	cmd.Flags().StringP("user", "u", "local", "User identifier of the conversation")
	cmd.Flags().Bool("plain", false, "Disable terminal styling")
	cmd.Flags().Bool("transcript", false, "Print the conversation transcript on exit")
	return cmd
}

type sweeper interface{ Sweep() int }

// sweepLoop evicts expired sessions every ttl until ctx is done.
func sweepLoop(ctx context.Context, s sweeper, ttl time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired sessions evicted", "count", n)
			}
		}
	}
}

func printTranscript(w io.Writer, store core.TranscriptStore, user string) {
	history, err := store.History(user, 0)
	if err != nil {
		return
	}
	fmt.Fprintln(w, "--- transcript ---")
	for _, t := range history {
		fmt.Fprintf(w, "[%s] %s: %s\n", t.Timestamp.Format("15:04:05"), t.Role, t.Text)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *logging.SlotMeshLogger {
	return logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, false)
}

// buildModel returns the language model selected by cfg.Provider.
func buildModel(cfg config.Config) model.Model {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
		})
	case config.ProviderMock:
		return model.NewMockModel("mock", config.ProviderMock)
	default:
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
		})
	}
}

// buildImages returns nil unless image generation is enabled for OpenAI.
func buildImages(cfg config.Config, logger logging.Logger) core.ImageGenerator {
	if !cfg.Image.Enabled || cfg.Provider != config.ProviderOpenAI {
		return nil
	}
	backend := openai.NewImageModel(func(o *openai.ImageOptions) {
		if cfg.Image.Model != "" {
			o.Model = cfg.Image.Model
		}
		if cfg.Image.Size != "" {
			o.Size = cfg.Image.Size
		}
	})
	return imagegen.New(backend, func(o *imagegen.Options) {
		o.Artifacts = artifact.NewInMemoryStore()
		o.Logger = logger
	})
}

// openStore opens the configured session store. The returned func releases it.
func openStore(cfg config.Config, factory core.SessionFactory) (core.SessionStore, func() error, error) {
	switch cfg.Store.Kind {
	case config.StoreSQLite:
		s, err := sqlite.New(cfg.Store.Path, factory)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return s, s.Close, nil
	case config.StoreMemory, "":
		s := session.NewInMemoryStore(func(o *session.Options) {
			o.Factory = factory
			o.TTL = cfg.Store.TTL
		})
		return s, func() error { return nil }, nil
	default:
		return nil, nil, errors.New("unknown store kind: " + cfg.Store.Kind)
	}
}
