package main

import (
	"context"
	"fmt"
	"os"

	notifyrpc "questlog/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{Name: "chime", Version: "1.0.0"}, nil
}

func (s *server) Announce(_ context.Context, in *notifyrpc.AnnounceRequest) (*notifyrpc.Empty, error) {
	verb := "earned"
	if in.Kind == "spend" {
		verb = "spent"
	}
	fmt.Fprintf(os.Stderr, "\a%s: %s %.2f XP (%d min) at %s\n", in.Name, verb, in.Amount, in.Minutes, in.CompletedAt)
	return &notifyrpc.Empty{}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
