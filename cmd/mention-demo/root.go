package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/mention"
	"github.com/iw2rmb/mention/internal/config"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/internal/watcher"
)

const debugLogPath = "mention-debug.log"

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:     "mention-demo",
		Short:   "Inline @person, #hashtag and <>relation suggestions in the terminal",
		Version: mention.BuildString(buildCommit, buildDate),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, used, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			return run(cfg, used)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: "+config.DefaultPath+" when present)")
	cmd.Flags().Bool("debug", false,
		"write a debug log to "+debugLogPath+" (also MENTION_DEBUG=1)")
	return cmd
}

func run(cfg config.Config, configPath string) error {
	if cfg.Debug {
		cleanup, err := log.InitWithTeaLog(debugLogPath, "mention")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "starting", "config", configPath)
	}

	v, err := cfg.LoadVocabulary()
	if err != nil {
		return err
	}

	var changes <-chan struct{}
	if cfg.Vocabulary.File != "" && cfg.Vocabulary.Watch {
		w, err := watcher.New(watcher.DefaultConfig(cfg.Vocabulary.File))
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		if changes, err = w.Start(); err != nil {
			return err
		}
	}

	zone.NewGlobal()

	p := tea.NewProgram(
		newModel(cfg, v, changes),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
