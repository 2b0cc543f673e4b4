package svc

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/internal/config"
	capsulepkg "capsule-bridge/pkg/capsule"
	"capsule-bridge/pkg/mainthread"
	scenepkg "capsule-bridge/pkg/scene"
	_ "capsule-bridge/pkg/scene/sim"
)

type ServiceContext struct {
	Config config.Config

	CapsuleConfig *capsulepkg.Config
	SceneConfig   *scenepkg.Config
	Hosts         map[string]scenepkg.Host
	DefaultHost   scenepkg.Host

	// Queue runs deferred host work; callers own its Run loop or Drain it.
	Queue          *mainthread.Queue
	CapsuleHandler *capsulepkg.Handler
}

// defaultSceneConfig is used when the main config has no Scene section.
func defaultSceneConfig() *scenepkg.Config {
	return &scenepkg.Config{
		Default: "editor",
		Hosts: map[string]*scenepkg.HostConfig{
			"editor": {Type: "sim"},
		},
	}
}

func NewServiceContext(c config.Config) (*ServiceContext, error) {
	svc := &ServiceContext{
		Config:        c,
		CapsuleConfig: c.CapsuleConfig(),
		SceneConfig:   c.Scene.ValueOr(defaultSceneConfig),
		Queue:         mainthread.NewQueue(c.QueueCapacity),
	}

	hosts, err := svc.SceneConfig.BuildHosts()
	if err != nil {
		return nil, fmt.Errorf("build scene hosts: %w", err)
	}
	svc.Hosts = hosts

	name := svc.SceneConfig.DefaultName()
	host, ok := hosts[name]
	if !ok {
		return nil, fmt.Errorf("scene host %q not built", name)
	}
	svc.DefaultHost = host

	handler, err := capsulepkg.NewHandler(svc.CapsuleConfig, svc.Queue, host)
	if err != nil {
		return nil, fmt.Errorf("build capsule handler: %w", err)
	}
	svc.CapsuleHandler = handler

	logx.Infof("service context ready: host=%s hosts=%d", name, len(hosts))
	return svc, nil
}

func MustNewServiceContext(c config.Config) *ServiceContext {
	svc, err := NewServiceContext(c)
	if err != nil {
		logx.Must(err)
	}
	return svc
}
