/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	commonklog "github.com/YourCFP/we-mp-rss/common/pkg/klog"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification"
	"github.com/YourCFP/we-mp-rss/common/pkg/options"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/credential"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/handlers"
	cascadehandlers "github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/registry"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/scheduler"
	"github.com/YourCFP/we-mp-rss/utils/pkg/channel"
)

const reclaimTickInterval = time.Minute

type Server struct {
	opts          *options.Options
	httpServer    *http.Server
	dbClient      *dbclient.Client
	dispatcher    *dispatcher.Dispatcher
	scheduler     *scheduler.Manager
	registry      *registry.Registry
	handler       *cascadehandlers.Handler
	reclaimerTomb *channel.Tomb
	ctx           context.Context
	cancel        context.CancelFunc
	isInited      bool
}

func NewServer() (*Server, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	s := &Server{
		opts:   &options.Options{},
		ctx:    ctx,
		cancel: cancel,
	}
	if err := s.init(); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

func (s *Server) init() error {
	gin.SetMode(gin.ReleaseMode)
	var err error
	if err = s.opts.InitFlags(); err != nil {
		klog.ErrorS(err, "failed to parse flags")
		return err
	}
	if err = commonklog.Init(s.opts.LogfilePath, s.opts.LogFileSize); err != nil {
		klog.ErrorS(err, "failed to init logs")
		return err
	}
	if err = s.initConfig(); err != nil {
		klog.ErrorS(err, "failed to init config")
		return err
	}
	if s.dbClient = dbclient.NewClient(); s.dbClient == nil {
		return fmt.Errorf("failed to new db client")
	}
	if commonconfig.IsNotificationEnable() {
		if err = notification.InitNotificationManager(s.ctx,
			commonconfig.GetNotificationConfigFile()); err != nil {
			klog.ErrorS(err, "failed to init notification manager")
			return err
		}
	}

	s.dispatcher = dispatcher.NewDispatcher(s.dbClient)
	s.scheduler = scheduler.NewManager(s.dbClient, s.dispatcher)
	s.registry = registry.NewRegistry(s.dbClient)
	verifier := credential.NewVerifier(s.dbClient)
	if s.handler, err = cascadehandlers.NewHandler(
		s.dbClient, s.dispatcher, s.scheduler, s.registry, verifier); err != nil {
		return err
	}
	s.isInited = true
	return nil
}

func (s *Server) Start() {
	if !s.isInited {
		klog.Errorf("please init the gateway first")
		return
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	klog.Infof("starting gateway")
	if _, err := s.scheduler.Start(s.ctx); err != nil {
		klog.ErrorS(err, "failed to start scheduler")
		os.Exit(-1)
	}
	s.startReclaimer()

	go func() {
		if err := s.startHttpServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start http-server")
			os.Exit(-1)
		}
	}()

	<-s.ctx.Done()
	s.Stop()
}

func (s *Server) Stop() {
	if s.reclaimerTomb != nil {
		s.reclaimerTomb.Stop()
	}
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown httpserver")
		}
	}
	if s.dbClient != nil {
		s.dbClient.Close()
	}
	s.cancel()
	klog.Info("gateway is stopped")
	klog.Flush()
}

func (s *Server) initConfig() error {
	fullPath, err := filepath.Abs(s.opts.Config)
	if err != nil {
		return err
	}
	if err = commonconfig.LoadConfig(fullPath); err != nil {
		return fmt.Errorf("config path: %s, err: %v", fullPath, err)
	}
	return nil
}

func (s *Server) startHttpServer() error {
	if commonconfig.GetServerPort() <= 0 {
		return fmt.Errorf("the gateway port is not defined")
	}
	handler, err := handlers.InitHttpHandlers(s.ctx, s.handler)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", commonconfig.GetServerPort())
	s.httpServer = &http.Server{Addr: addr, Handler: handler}
	klog.Infof("http-server listen port: %d", commonconfig.GetServerPort())
	if err = s.httpServer.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

// startReclaimer runs the timeout sweep on a fixed ticker so stuck rows are
// reclaimed even when no cron job ever fires.
func (s *Server) startReclaimer() {
	s.reclaimerTomb = channel.NewTomb()
	go func() {
		ticker := time.NewTicker(reclaimTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.dispatcher.Reclaim(s.ctx); err != nil {
					klog.ErrorS(err, "background reclaim failed")
				}
				if _, err := s.registry.OnlineCount(s.ctx); err != nil {
					klog.ErrorS(err, "background liveness refresh failed")
				}
			case <-s.reclaimerTomb.Stopping():
				s.reclaimerTomb.Done()
				return
			}
		}
	}()
}
