package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/application"
	"github.com/inovacc/roundboard/internal/params"
)

var (
	serviceStart     bool
	serviceStop      bool
	serviceInstall   bool
	serviceUninstall bool
	serviceStatus    bool
	serviceRun       bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the watcher as a system service",
	Long: `Install, uninstall, start, stop, or check the status of the roundboard
watcher as a system service.

The installed service runs "roundboard service --run" with the current
--data-dir and --config, which runs the same loop as "roundboard watch":
a Windows service, a systemd unit or a launchd job depending on the OS.`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().BoolVar(&serviceStart, "start", false, "Start the watcher service")
	serviceCmd.Flags().BoolVar(&serviceStop, "stop", false, "Stop the watcher service")
	serviceCmd.Flags().BoolVar(&serviceInstall, "install", false, "Install the watcher as a system service")
	serviceCmd.Flags().BoolVar(&serviceUninstall, "uninstall", false, "Uninstall the watcher system service")
	serviceCmd.Flags().BoolVar(&serviceStatus, "status", false, "Check the watcher service status")
	serviceCmd.Flags().BoolVar(&serviceRun, "run", false, "Run under the service manager (used by the installed service)")
	_ = serviceCmd.Flags().MarkHidden("run")
}

// program implements service.Interface around the watcher.
type program struct {
	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

func (p *program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)

		if err := runWatcher(ctx); err != nil {
			_ = service.ConsoleLogger.Errorf("Watcher exited with error: %v", err)
		}
	}()

	return nil
}

func (p *program) Stop(s service.Service) error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

// serviceAction is one mutually exclusive operation of the service command.
type serviceAction struct {
	flag *bool
	name string
	run  func(s service.Service) error
	done string
}

func serviceActions() []serviceAction {
	return []serviceAction{
		{flag: &serviceRun, name: "run", run: func(s service.Service) error { return s.Run() }},
		{flag: &serviceInstall, name: "install", run: control("install"), done: "Watcher service installed. Start it with: roundboard service --start"},
		{flag: &serviceUninstall, name: "uninstall", run: uninstallWatcher, done: "Watcher service removed."},
		{flag: &serviceStart, name: "start", run: control("start"), done: "Watcher service started. Check it with: roundboard status"},
		{flag: &serviceStop, name: "stop", run: control("stop"), done: "Watcher service stopped."},
		{flag: &serviceStatus, name: "status", run: printServiceStatus},
	}
}

func runService(cmd *cobra.Command, args []string) error {
	var selected []serviceAction

	for _, a := range serviceActions() {
		if *a.flag {
			selected = append(selected, a)
		}
	}

	switch len(selected) {
	case 0:
		return errors.New("please specify one of: --start, --stop, --install, --uninstall, --status")
	case 1:
	default:
		return errors.New("please specify only one operation at a time")
	}

	svcArgs := []string{"service", "--run", "--data-dir", params.AppdataDir}
	if configFlag != "" {
		svcArgs = append(svcArgs, "--config", configFlag)
	}

	s, err := service.New(&program{}, &service.Config{
		Name:        application.AppName,
		DisplayName: "roundboard watcher",
		Description: "Keeps the daily round results catalog up to date",
		Arguments:   svcArgs,
	})
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	action := selected[0]
	if err := action.run(s); err != nil {
		return fmt.Errorf("service %s: %w", action.name, err)
	}

	if action.done != "" {
		fmt.Println(action.done)
	}

	return nil
}

func control(action string) func(service.Service) error {
	return func(s service.Service) error {
		return service.Control(s, action)
	}
}

func uninstallWatcher(s service.Service) error {
	if status, err := s.Status(); err == nil && status == service.StatusRunning {
		if err := s.Stop(); err != nil {
			return err
		}
	}

	return s.Uninstall()
}

func printServiceStatus(s service.Service) error {
	status, err := s.Status()
	if errors.Is(err, service.ErrNotInstalled) {
		fmt.Println("Service: not installed")
		fmt.Printf("Watcher: %s\n", watcherStatus())

		return nil
	}

	if err != nil {
		return err
	}

	state := map[service.Status]string{
		service.StatusRunning: "running",
		service.StatusStopped: "stopped",
	}[status]
	if state == "" {
		state = "unknown"
	}

	fmt.Printf("Service: %s\n", state)
	fmt.Printf("Watcher: %s\n", watcherStatus())

	return nil
}
