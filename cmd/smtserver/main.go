// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command smtserver loads a YAML config, picks and wires a Store backend,
// and serves the sparse Merkle tree over gRPC plus a Prometheus /metrics
// endpoint, shutting down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/golang/glog"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/google/smt/internal/config"
	"github.com/google/smt/merkle/smt"
	"github.com/google/smt/rpc/smtrpc"
	"github.com/google/smt/storage/cachestore"
	"github.com/google/smt/storage/memstore"
	"github.com/google/smt/storage/sqlstore"

	"github.com/go-redis/redis"
)

var configPath = flag.String("config", "config.yaml", "path to the server's YAML config file")

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Exitf("smtserver: loading config: %v", err)
	}
	if cfg.Logging.Verbosity > 0 {
		if err := flag.Set("v", strconv.Itoa(cfg.Logging.Verbosity)); err != nil {
			glog.Exitf("smtserver: setting log verbosity: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		glog.Exitf("smtserver: building store: %v", err)
	}
	defer closeStore()

	tree := smt.New(smt.NewHasher(), store, smt.Zero)

	registry := prometheus.NewRegistry()
	smt.RegisterMetrics(registry)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			grpc_recovery.UnaryServerInterceptor(),
		)),
	)
	smtrpc.RegisterTreeServer(grpcServer, smtrpc.NewServer(tree))

	lis, err := net.Listen("tcp", cfg.RPC.Address)
	if err != nil {
		glog.Exitf("smtserver: listening on %s: %v", cfg.RPC.Address, err)
	}

	go func() {
		glog.Infof("smtserver: gRPC listening on %s", cfg.RPC.Address)
		if err := grpcServer.Serve(lis); err != nil {
			glog.Errorf("smtserver: gRPC serve: %v", err)
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.Metrics.Address, Handler: metricsMux}
	go func() {
		glog.Infof("smtserver: metrics listening on %s", cfg.Metrics.Address)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Errorf("smtserver: metrics serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	glog.Info("smtserver: shutting down")
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("smtserver: metrics server shutdown: %v", err)
	}
	glog.Info("smtserver: stopped")
}

// buildStore picks a Store backend per cfg.Storage, optionally wrapping it
// with a Redis cache, and returns a cleanup function the caller must defer.
func buildStore(ctx context.Context, cfg *config.Config) (smt.Store, func(), error) {
	var (
		store   smt.Store
		closers []func()
	)

	switch cfg.Storage.Backend {
	case "memory":
		store = memstore.New()
	case "mysql":
		sqlStore, err := sqlstore.Open(ctx, cfg.Storage.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlStore.EnsureSchema(ctx); err != nil {
			sqlStore.Close()
			return nil, nil, err
		}
		store = sqlStore
		closers = append(closers, func() { sqlStore.Close() })
	}

	if cfg.Storage.Cache.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.Cache.Address})
		store = cachestore.New(store, client, 0)
		closers = append(closers, func() { client.Close() })
	}

	return store, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
