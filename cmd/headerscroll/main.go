package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/headerscroll/internal/config"
	"github.com/jask/headerscroll/internal/database"
	"github.com/jask/headerscroll/internal/database/repository"
	"github.com/jask/headerscroll/internal/logging"
	"github.com/jask/headerscroll/internal/prefs"
	"github.com/jask/headerscroll/internal/service"
	"github.com/jask/headerscroll/internal/tui"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "headerscroll",
		Short:         "Collapsible header scrolling in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	root.PersistentFlags().String("config", "", "config file (default "+config.Path()+")")
	root.Flags().String("container", "", "name the container state is saved under")

	root.AddCommand(newStateCommand(), newConfigCommand())
	return root
}

// env is what every command needs: config, logger and the state backend.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	states *service.StateService
	close  func() error
}

func (e *env) Close() {
	if e.close != nil {
		_ = e.close()
	}
	_ = e.log.Sync()
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.UsePath(path); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	backend, closeFn, err := openBackend(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{
		cfg:    cfg,
		log:    log,
		states: &service.StateService{Backend: backend, Log: log.Named("state")},
		close:  closeFn,
	}, nil
}

func openBackend(cfg config.Config) (service.StateBackend, func() error, error) {
	if cfg.State.Backend == config.BackendFile {
		path := cfg.State.File
		if path == "" {
			var err error
			if path, err = prefs.DefaultStatePath(); err != nil {
				return nil, nil, err
			}
		}
		return prefs.NewStateFile(path), nil, nil
	}
	db, err := database.Setup(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open state db: %w", err)
	}
	return repository.NewStateRepo(db), db.Close, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	name, _ := cmd.Flags().GetString("container")
	if name == "" {
		name = e.cfg.State.Container
	}
	app, err := tui.New(cmd.Context(), tui.Options{
		Config:    e.cfg,
		Container: name,
		States:    e.states,
		Log:       e.log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	app.SetSender(p.Send)
	if err := config.Watch(func(c config.Config) { p.Send(tui.ConfigMsg(c)) }, e.log); err != nil {
		e.log.Info("config hot reload disabled", zap.Error(err))
	}

	e.log.Info("starting", zap.String("container", name), zap.String("backend", e.cfg.State.Backend))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
