package bridge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/flatbridge/internal/command"
	"github.com/GriffinCanCode/flatbridge/internal/confirm"
	"github.com/GriffinCanCode/flatbridge/internal/flatpak"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
	"github.com/GriffinCanCode/flatbridge/internal/shared/utils"
)

// Tool is the package manager surface the bridge needs. *flatpak.Client
// implements it.
type Tool interface {
	Remote() string
	ToolAvailable() bool
	ChannelConfigured(ctx context.Context) bool
	EnsureChannel(ctx context.Context) error
	Version(ctx context.Context) string
	IsInstalled(ctx context.Context, appID string) bool
	List(ctx context.Context) ([]types.InstalledApp, error)
	Install(ctx context.Context, appID string) (command.Result, error)
	UpdateAll(ctx context.Context) (command.Result, error)
	Launch(appID string) error
}

// Settings are fixed at startup.
type Settings struct {
	// Title heads every confirmation prompt
	Title string
	// Version is reported by Status
	Version string
}

// Service implements the bridge operations
type Service struct {
	tool     Tool
	confirm  confirm.Provider
	settings Settings
	channel  *resilience.Breaker
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewService creates a bridge service
func NewService(tool Tool, provider confirm.Provider, settings Settings) *Service {
	if settings.Title == "" {
		settings.Title = "MujerOS Installer"
	}
	return &Service{
		tool:     tool,
		confirm:  provider,
		settings: settings,
		logger:   logging.NewNop(),
	}
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// WithLogger sets the logger
func (s *Service) WithLogger(logger *logging.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithChannelBreaker guards channel setup so a failing remote is not retried
// on every request
func (s *Service) WithChannelBreaker(breaker *resilience.Breaker) *Service {
	s.channel = breaker
	return s
}

// Status reports tool presence and channel configuration. It never fails.
func (s *Service) Status(ctx context.Context) types.StatusResponse {
	timer := monitoring.NewTimer(s.metrics, "status")
	defer timer.Stop("ok")

	resp := types.StatusResponse{
		Ok:      true,
		Flatpak: s.tool.ToolAvailable(),
		Version: s.settings.Version,
	}
	if resp.Flatpak {
		resp.Flathub = s.tool.ChannelConfigured(ctx)
		resp.FlatpakVersion = s.tool.Version(ctx)
	}
	return resp
}

// List returns installed applications, re-read from the tool on every call.
func (s *Service) List(ctx context.Context) (apps []types.InstalledApp, err error) {
	timer := monitoring.NewTimer(s.metrics, "list")
	defer func() { timer.Stop(outcome(err)) }()

	if !s.tool.ToolAvailable() {
		return nil, capabilityError()
	}

	apps, err = s.tool.List(ctx)
	if err != nil {
		if errors.Is(err, flatpak.ErrToolMissing) {
			return nil, capabilityError()
		}
		s.log(ctx).Warn("Listing failed", zap.Error(err))
		return nil, &Error{Kind: KindSubprocess, Message: err.Error(), Err: err}
	}
	return apps, nil
}

// Install installs one application for the current user after the operator
// approved. appID is trimmed and validated before anything runs.
func (s *Service) Install(ctx context.Context, appID string) (resp types.ActionResponse, err error) {
	timer := monitoring.NewTimer(s.metrics, "install")
	defer func() { timer.Stop(outcome(err)) }()

	// A disconnecting client must not abort a running install.
	ctx = context.WithoutCancel(ctx)

	appID = utils.NormalizeAppID(appID)
	if err := utils.ValidateAppID(appID); err != nil {
		return resp, validationError(MsgInvalidAppID, err)
	}
	if !s.tool.ToolAvailable() {
		return resp, capabilityError()
	}

	s.ensureChannel(ctx)

	msg := fmt.Sprintf("Install Flatpak (user):\n\n%s\n\nRemote: %s", appID, s.tool.Remote())
	if err := s.gate(ctx, appID, msg); err != nil {
		return resp, err
	}

	s.log(ctx).Debug("Installing", zap.String("app_id", appID))
	res, err := s.tool.Install(ctx, appID)
	if err != nil {
		return resp, &Error{Kind: KindInternal, Message: err.Error(), AppID: appID, Err: err}
	}
	if !res.Success() {
		s.log(ctx).Warn("Install failed",
			zap.String("app_id", appID),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", res.Stderr),
		)
		return resp, subprocessError("install", appID, res)
	}

	return types.ActionResponse{
		Ok:     true,
		AppID:  appID,
		Stdout: &res.Stdout,
		Stderr: &res.Stderr,
	}, nil
}

// Update updates every user installation after the operator approved.
func (s *Service) Update(ctx context.Context) (resp types.ActionResponse, err error) {
	timer := monitoring.NewTimer(s.metrics, "update")
	defer func() { timer.Stop(outcome(err)) }()

	ctx = context.WithoutCancel(ctx)

	if !s.tool.ToolAvailable() {
		return resp, capabilityError()
	}

	s.ensureChannel(ctx)

	if err := s.gate(ctx, "", "Update ALL user Flatpaks now?"); err != nil {
		return resp, err
	}

	s.log(ctx).Debug("Updating all user installations")
	res, err := s.tool.UpdateAll(ctx)
	if err != nil {
		return resp, &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	}
	if !res.Success() {
		s.log(ctx).Warn("Update failed",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", res.Stderr),
		)
		return resp, subprocessError("update", "", res)
	}

	return types.ActionResponse{
		Ok:     true,
		Stdout: &res.Stdout,
		Stderr: &res.Stderr,
	}, nil
}

// Run launches an installed application detached from the bridge and
// returns without waiting for it.
func (s *Service) Run(ctx context.Context, appID string) (resp types.ActionResponse, err error) {
	timer := monitoring.NewTimer(s.metrics, "run")
	defer func() { timer.Stop(outcome(err)) }()

	appID = utils.NormalizeAppID(appID)
	if err := utils.ValidateAppID(appID); err != nil {
		return resp, validationError(MsgInvalidAppID, err)
	}
	if !s.tool.ToolAvailable() {
		return resp, capabilityError()
	}
	if !s.tool.IsInstalled(ctx, appID) {
		return resp, &Error{Kind: KindValidation, Message: MsgNotInstalled, AppID: appID}
	}

	if err := s.tool.Launch(appID); err != nil {
		s.log(ctx).Warn("Launch failed", zap.String("app_id", appID), zap.Error(err))
		msg := err.Error()
		if msg == "" {
			msg = MsgLaunchFailed
		}
		return resp, &Error{Kind: KindInternal, Message: msg, AppID: appID, Err: err}
	}

	return types.ActionResponse{Ok: true, AppID: appID}, nil
}

// WarmUp configures the channel once at startup when the tool is present.
func (s *Service) WarmUp(ctx context.Context) {
	if s.tool.ToolAvailable() {
		s.ensureChannel(ctx)
	}
}

// ensureChannel is best effort: a failure is logged and the operation goes
// on, the tool reports a missing remote itself.
func (s *Service) ensureChannel(ctx context.Context) {
	run := func() error { return s.tool.EnsureChannel(ctx) }

	var err error
	if s.channel != nil {
		err = s.channel.Do(run)
	} else {
		err = run()
	}

	switch {
	case err == nil:
		s.metrics.RecordChannelSetup("ok")
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.metrics.RecordChannelSetup("skipped")
		s.log(ctx).Debug("Channel setup skipped, breaker open", zap.String("remote", s.tool.Remote()))
	default:
		s.metrics.RecordChannelSetup("failed")
		s.log(ctx).Warn("Channel setup failed", zap.String("remote", s.tool.Remote()), zap.Error(err))
	}
}

// gate blocks until the operator decided. Anything but approval, including a
// provider failure, is a rejection.
func (s *Service) gate(ctx context.Context, appID, message string) error {
	decision, err := s.confirm.Confirm(ctx, confirm.Request{
		Title:   s.settings.Title,
		Message: message,
	})
	s.metrics.RecordConfirmation(s.confirm.Name(), decision.String())

	if err != nil {
		s.log(ctx).Warn("Confirmation failed",
			zap.String("provider", s.confirm.Name()),
			zap.Error(err),
		)
		return rejectedError(appID, err)
	}
	if decision != confirm.Approved {
		return rejectedError(appID, nil)
	}
	return nil
}

func (s *Service) log(ctx context.Context) *logging.Logger {
	return s.logger.With(tracing.Fields(ctx)...)
}

func subprocessError(op, appID string, res command.Result) *Error {
	stdout, stderr := res.Stdout, res.Stderr
	return &Error{
		Kind:    KindSubprocess,
		Message: fmt.Sprintf("flatpak %s failed (exit %d)", op, res.ExitCode),
		AppID:   appID,
		Stdout:  &stdout,
		Stderr:  &stderr,
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch KindOf(err) {
	case KindValidation:
		return "invalid"
	case KindCapability:
		return "unavailable"
	case KindRejected:
		return "rejected"
	case KindSubprocess:
		return "failed"
	default:
		return "error"
	}
}
