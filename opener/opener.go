// Package opener hands files to the host OS, falling back to the backend's
// reveal endpoint when no local handler is available.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// ErrUnsupported is returned on platforms without a known file handler.
var ErrUnsupported = errors.New("opener: unsupported platform")

// Revealer asks the backend to reveal a file on the machine that owns it.
type Revealer interface {
	RevealFile(ctx context.Context, path string) error
}

// Starter launches a detached process.
type Starter func(name string, args ...string) error

// Opener opens or reveals files.
type Opener struct {
	goos   string
	start  Starter
	remote Revealer
	log    *zap.Logger
}

// Option configures an Opener.
type Option func(*Opener)

// WithGOOS overrides runtime.GOOS.
func WithGOOS(goos string) Option { return func(o *Opener) { o.goos = goos } }

// WithStarter replaces process launching.
func WithStarter(s Starter) Option { return func(o *Opener) { o.start = s } }

// New returns an Opener. remote may be nil.
func New(remote Revealer, log *zap.Logger, opts ...Option) *Opener {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Opener{
		goos:   runtime.GOOS,
		start:  startDetached,
		remote: remote,
		log:    log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open launches the OS default application for path. If that fails the
// backend is asked to reveal the file instead.
func (o *Opener) Open(ctx context.Context, path string) error {
	name, args, err := o.openCommand(path)
	if err == nil {
		if err = o.start(name, args...); err == nil {
			o.log.Info("opened file", zap.String("path", path), zap.String("handler", name))
			return nil
		}
	}
	o.log.Warn("local open failed, falling back to reveal", zap.String("path", path), zap.Error(err))
	if o.remote == nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if rerr := o.remote.RevealFile(ctx, path); rerr != nil {
		return fmt.Errorf("open %s: %w", path, errors.Join(err, rerr))
	}
	return nil
}

// Reveal shows path in the backend host's file manager, falling back to the
// local file manager when the backend cannot.
func (o *Opener) Reveal(ctx context.Context, path string) error {
	var rerr error
	if o.remote != nil {
		if rerr = o.remote.RevealFile(ctx, path); rerr == nil {
			return nil
		}
		o.log.Warn("remote reveal failed", zap.String("path", path), zap.Error(rerr))
	}
	name, args, err := o.revealCommand(path)
	if err == nil {
		err = o.start(name, args...)
	}
	if err != nil {
		return fmt.Errorf("reveal %s: %w", path, errors.Join(rerr, err))
	}
	return nil
}

func (o *Opener) openCommand(path string) (string, []string, error) {
	switch o.goos {
	case "windows":
		return "cmd", []string{"/c", "start", `""`, path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, o.goos)
	}
}

func (o *Opener) revealCommand(path string) (string, []string, error) {
	switch o.goos {
	case "windows":
		return "explorer", []string{"/select," + path}, nil
	case "darwin":
		return "open", []string{"-R", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{filepath.Dir(path)}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, o.goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}
