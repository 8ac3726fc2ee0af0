package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	notifyrpc "questlog/internal/modules/notify/adapter/out/rpc"
	"questlog/internal/modules/notify/domain"
	notifyout "questlog/internal/modules/notify/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() notifyout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) Describe(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Metadata{}, fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, manifest.Name)
		}
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) Announce(ctx context.Context, manifest domain.Manifest, event domain.Event) error {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	err = client.Announce(callCtx, &notifyrpc.AnnounceRequest{
		Kind:        event.Kind,
		Name:        event.Name,
		Minutes:     int32(event.Minutes),
		Amount:      event.Amount,
		CompletedAt: event.CompletedAt.Format(time.RFC3339),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, manifest.Name)
		}
		return fmt.Errorf("announce: %w", err)
	}
	return nil
}

func (h *GRPCHost) connect(ctx context.Context, manifest domain.Manifest, startTimeout time.Duration) (notifyrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifyrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifyrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier client: %w", err)
	}
	raw, err := rpcClient.Dispense(notifyrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier: %w", err)
	}
	typed, ok := raw.(notifyrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
