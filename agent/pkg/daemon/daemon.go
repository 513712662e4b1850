/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package daemon

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/agent/pkg/client"
	"github.com/YourCFP/we-mp-rss/agent/pkg/worker"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	commonklog "github.com/YourCFP/we-mp-rss/common/pkg/klog"
	"github.com/YourCFP/we-mp-rss/common/pkg/options"
	"github.com/YourCFP/we-mp-rss/utils/pkg/channel"
)

// Daemon runs one worker node. It watches the config file and restarts the
// worker loops when the file changes, so operators can rotate credentials or
// retune intervals without restarting the process.
type Daemon struct {
	opts       *options.Options
	configPath string

	mutex  sync.Mutex
	worker *worker.Worker

	watcherTomb *channel.Tomb
	ctx         context.Context
	cancel      context.CancelFunc
	isInited    bool
}

func NewDaemon() (*Daemon, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	d := &Daemon{
		opts:   &options.Options{},
		ctx:    ctx,
		cancel: cancel,
	}
	if err := d.init(); err != nil {
		cancel()
		return nil, err
	}
	return d, nil
}

func (d *Daemon) init() error {
	var err error
	if err = d.opts.InitFlags(); err != nil {
		klog.ErrorS(err, "failed to parse flags")
		return err
	}
	if err = commonklog.Init(d.opts.LogfilePath, d.opts.LogFileSize); err != nil {
		klog.ErrorS(err, "failed to init logs")
		return err
	}
	if d.configPath, err = filepath.Abs(d.opts.Config); err != nil {
		return err
	}
	if err = commonconfig.LoadConfig(d.configPath); err != nil {
		return fmt.Errorf("config path: %s, err: %v", d.configPath, err)
	}
	if !commonconfig.IsCascadeEnable() {
		return fmt.Errorf("cascade is not enabled in %s", d.configPath)
	}
	if commonconfig.GetCascadeNodeType() != commonconfig.NodeTypeChild {
		return fmt.Errorf("the agent only runs on worker nodes")
	}
	if d.worker, err = buildWorker(); err != nil {
		return err
	}
	d.isInited = true
	return nil
}

// buildWorker assembles a worker from the current config snapshot.
func buildWorker() (*worker.Worker, error) {
	apiClient, err := client.NewClient(
		commonconfig.GetCascadeParentApiUrl(),
		commonconfig.GetCascadeApiKey(),
		commonconfig.GetCascadeApiSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to new coordinator client: %v", err)
	}
	executor, err := worker.NewSyncServiceExecutor(commonconfig.GetSyncServiceUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to new executor: %v", err)
	}
	return worker.NewWorker(apiClient, executor)
}

func (d *Daemon) Start() {
	if !d.isInited {
		klog.Errorf("please init the agent first")
		return
	}
	klog.Infof("starting agent, coordinator: %s", commonconfig.GetCascadeParentApiUrl())
	defer d.Stop()
	if err := d.worker.Start(d.ctx); err != nil {
		klog.ErrorS(err, "failed to start worker")
		return
	}
	if err := d.startConfigWatcher(); err != nil {
		klog.ErrorS(err, "failed to watch the config file")
		return
	}
	<-d.ctx.Done()
}

func (d *Daemon) Stop() {
	if d.watcherTomb != nil {
		d.watcherTomb.Stop()
	}
	d.mutex.Lock()
	if d.worker != nil {
		d.worker.Stop()
		d.worker = nil
	}
	d.mutex.Unlock()
	d.cancel()
	klog.Infof("agent is stopped")
	klog.Flush()
}

// startConfigWatcher watches the directory holding the config file. Editors
// and configmap mounts replace the file instead of writing in place, so the
// watch is on the directory and events are filtered by name.
func (d *Daemon) startConfigWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err = watcher.Add(filepath.Dir(d.configPath)); err != nil {
		if err2 := watcher.Close(); err2 != nil {
			klog.ErrorS(err2, "failed to close watcher")
		}
		return err
	}
	d.watcherTomb = channel.NewTomb()
	go func() {
		defer d.watcherTomb.Done()
		defer func() {
			if err := watcher.Close(); err != nil {
				klog.ErrorS(err, "failed to close watcher")
			}
		}()
		for {
			select {
			case <-d.watcherTomb.Stopping():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != d.configPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				klog.Infof("config file changed (%s), restarting worker", event.Op)
				d.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				klog.ErrorS(err, "config watcher error")
			}
		}
	}()
	return nil
}

// reload re-reads the config and swaps in a fresh worker. On a broken config
// the old worker keeps running untouched.
func (d *Daemon) reload() {
	if err := commonconfig.LoadConfig(d.configPath); err != nil {
		klog.ErrorS(err, "failed to reload the config, keeping the running worker")
		return
	}
	fresh, err := buildWorker()
	if err != nil {
		klog.ErrorS(err, "the reloaded config is invalid, keeping the running worker")
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.worker != nil {
		d.worker.Stop()
	}
	d.worker = fresh
	if err = d.worker.Start(d.ctx); err != nil {
		klog.ErrorS(err, "failed to restart worker")
	}
}
