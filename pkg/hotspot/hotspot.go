package hotspot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/rs/zerolog"
)

const (
	// OnlineMessage is reported after a successful Enable
	OnlineMessage = "The hotspot is now online!"
	// OfflineMessage is reported after a successful Disable
	OfflineMessage = "The hotspot is now offline!"
)

// Reporter receives progress lines
type Reporter interface {
	Info(msg string)
	Success(msg string)
}

// Step is one command in a sequence
type Step struct {
	Description string
	Command     []string
}

// String returns the command line
func (s Step) String() string {
	return strings.Join(s.Command, " ")
}

// Option configures a Toggler
type Option func(*Toggler)

// WithRunner replaces the command runner
func WithRunner(r Runner) Option {
	return func(t *Toggler) {
		t.runner = r
	}
}

// WithEUID replaces the effective uid lookup
func WithEUID(euid func() int) Option {
	return func(t *Toggler) {
		t.euid = euid
	}
}

// Toggler drives the access point described by a HotspotConfig
type Toggler struct {
	logger   zerolog.Logger
	cfg      config.HotspotConfig
	runner   Runner
	reporter Reporter
	euid     func() int
}

// NewToggler creates a toggler that runs real commands as the current user
func NewToggler(cfg config.HotspotConfig, reporter Reporter, opts ...Option) *Toggler {
	t := &Toggler{
		logger:   logging.GetLogger("hotspot"),
		cfg:      cfg,
		runner:   ExecRunner{},
		reporter: reporter,
		euid:     os.Geteuid,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toggler) unmanaged() Step {
	return Step{
		Description: fmt.Sprintf("Releasing %s from NetworkManager", t.cfg.APInterface),
		Command:     []string{"nmcli", "dev", "set", t.cfg.APInterface, "managed", "no"},
	}
}

// EnableSteps returns the commands Enable runs, in order
func (t *Toggler) EnableSteps() []Step {
	ap, uplink, addr := t.cfg.APInterface, t.cfg.UplinkInterface, t.cfg.Address
	return []Step{
		t.unmanaged(),
		{"Starting DNS and DHCP", []string{"systemctl", "start", t.cfg.DNSService}},
		{fmt.Sprintf("Bringing up %s", ap), []string{"ip", "link", "set", "up", "dev", ap}},
		{fmt.Sprintf("Assigning %s", addr), []string{"ip", "addr", "add", addr, "dev", ap}},
		{"Enabling IPv4 forwarding", []string{"sysctl", "net.ipv4.ip_forward=1"}},
		{fmt.Sprintf("Masquerading through %s", uplink), []string{"iptables", "-t", "nat", "-A", "POSTROUTING", "-o", uplink, "-j", "MASQUERADE"}},
		{"Accepting established traffic", []string{"iptables", "-A", "FORWARD", "-m", "conntrack", "--ctstate", "RELATED,ESTABLISHED", "-j", "ACCEPT"}},
		{fmt.Sprintf("Forwarding %s to %s", ap, uplink), []string{"iptables", "-A", "FORWARD", "-i", ap, "-o", uplink, "-j", "ACCEPT"}},
		{"Opening DHCP", []string{"iptables", "-I", "INPUT", "-p", "udp", "--dport", "67", "-i", ap, "-j", "ACCEPT"}},
		{"Opening DNS over UDP", []string{"iptables", "-I", "INPUT", "-p", "udp", "--dport", "53", "-s", addr, "-j", "ACCEPT"}},
		{"Opening DNS over TCP", []string{"iptables", "-I", "INPUT", "-p", "tcp", "--dport", "53", "-s", addr, "-j", "ACCEPT"}},
		{"Starting the access point", []string{"systemctl", "start", t.cfg.APService}},
		{"Restarting file sharing", []string{"systemctl", "restart", t.cfg.ShareService}},
	}
}

// DisableSteps returns the commands Disable runs, in order
func (t *Toggler) DisableSteps() []Step {
	return []Step{
		t.unmanaged(),
		{"Stopping the access point", []string{"systemctl", "stop", t.cfg.APService}},
	}
}

// Enable brings the hotspot online
func (t *Toggler) Enable(ctx context.Context) error {
	if err := t.run(ctx, "enable", t.EnableSteps()); err != nil {
		return err
	}
	t.reporter.Success(OnlineMessage)
	return nil
}

// Disable takes the hotspot offline
func (t *Toggler) Disable(ctx context.Context) error {
	if err := t.run(ctx, "disable", t.DisableSteps()); err != nil {
		return err
	}
	t.reporter.Success(OfflineMessage)
	return nil
}

// run executes steps in order and stops at the first failure
func (t *Toggler) run(ctx context.Context, action string, steps []Step) error {
	if uid := t.euid(); uid != 0 {
		return errors.Newf(errors.ErrPermission, "hotspot %s must be run as root", action).
			WithDetail("euid", uid)
	}

	logger := t.logger.With().Str("interface", t.cfg.APInterface).Int("steps", len(steps)).Logger()
	done := logging.LogOperationStart(logger, "hotspot "+action)
	defer done()

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, errors.ErrInterrupted, "hotspot %s interrupted before step %d", action, i+1)
		}

		t.reporter.Info(step.Description)
		logger.Debug().Int("step", i+1).Str("command", step.String()).Msg("Running step")

		output, err := t.runner.Run(ctx, step.Command[0], step.Command[1:]...)
		if err != nil {
			logger.Error().Err(err).Str("command", step.String()).Bytes("output", output).Msg("Step failed")
			return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed: %s", strings.ToLower(step.Description), step).
				WithDetail("step", i+1).
				WithDetail("command", step.String()).
				WithDetail("output", strings.TrimSpace(string(output)))
		}
	}
	return nil
}
