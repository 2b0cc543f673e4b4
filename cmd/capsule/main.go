package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/internal/cli"
	"capsule-bridge/internal/config"
	"capsule-bridge/internal/svc"
	"capsule-bridge/pkg/response"
	"capsule-bridge/pkg/scene"
)

var (
	configFile = flag.String("f", "etc/bridge.yaml", "the config file")
	posFlag    = flag.String("position", "", "capsule position as 'x,y,z' or 'x y z'")
)

type output struct {
	Reply  response.Response `json:"reply"`
	Active *scene.Object     `json:"active,omitempty"`
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cli.SetupLogging(cfg, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sc, err := svc.NewServiceContext(*cfg)
	if err != nil {
		logx.Errorf("build service context: %v", err)
		logx.Close()
		os.Exit(1)
	}

	ok, err := run(context.Background(), sc, *posFlag, os.Stdout)
	logx.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// run sends one generate_capsule request, runs the deferred work and prints
// the reply together with the object the host ended up selecting.
func run(ctx context.Context, sc *svc.ServiceContext, pos string, w io.Writer) (bool, error) {
	params := map[string]any{}
	if pos != "" {
		params["position"] = pos
	}
	resp := sc.CapsuleHandler.HandleCommand(ctx, params)

	sc.Queue.Close()
	if n := sc.Queue.Drain(ctx); n > 0 {
		logx.Infof("ran %d deferred task(s)", n)
	}

	out := output{Reply: resp}
	if active, ok := sc.DefaultHost.ActiveObject(); ok {
		out.Active = active
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return false, fmt.Errorf("write reply: %w", err)
	}
	return resp.Success, nil
}
