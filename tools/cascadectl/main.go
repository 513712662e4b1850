/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package main

// cascadectl is the operator bootstrap tool: it creates the schema, registers
// the coordinator and worker nodes, and prints worker credentials exactly
// once (only the secret hash is stored server side).

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/credential"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/registry"
	"github.com/google/uuid"

	sqrl "github.com/Masterminds/squirrel"
)

var (
	configPath = flag.String("config", "config.yaml", "path to the config file")
	doInit     = flag.Bool("init", false, "create or update the database schema")
	parentName = flag.String("parent", "", "register the coordinator node with the given name")
	childName  = flag.String("child", "", "register a worker node with the given name and print its credentials")
	childDesc  = flag.String("desc", "", "description for the node being registered")
	childUrl   = flag.String("api-url", "", "api url for the node being registered")
	doList     = flag.Bool("list", false, "list registered nodes with their liveness")
	doCheck    = flag.Bool("check", false, "validate a worker config file without touching the database")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	fullPath, err := filepath.Abs(*configPath)
	if err != nil {
		fatal("invalid config path: %v", err)
	}
	if err = commonconfig.LoadConfig(fullPath); err != nil {
		fatal("failed to load config %s: %v", fullPath, err)
	}

	if *doCheck {
		checkWorkerConfig(fullPath)
		return
	}

	client := dbclient.NewClient()
	if client == nil {
		fatal("failed to connect to the database, check the db section of %s", fullPath)
	}
	defer client.Close()
	ctx := context.Background()

	switch {
	case *doInit:
		if err = client.Migrate(); err != nil {
			fatal("failed to migrate schema: %v", err)
		}
		fmt.Println("schema is up to date")
	case *parentName != "":
		createNode(ctx, client, dbclient.NodeTypeCoordinator, *parentName)
	case *childName != "":
		createNode(ctx, client, dbclient.NodeTypeWorker, *childName)
	case *doList:
		listNodes(ctx, client)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func createNode(ctx context.Context, client *dbclient.Client, nodeType int, name string) {
	if nodeType == dbclient.NodeTypeCoordinator {
		count, err := client.CountNodes(ctx, sqrl.Eq{"node_type": dbclient.NodeTypeCoordinator})
		if err != nil {
			fatal("failed to query nodes: %v", err)
		}
		if count > 0 {
			fatal("a coordinator node already exists")
		}
	}

	now := time.Now().UTC()
	node := &dbclient.CascadeNode{
		Id:          uuid.NewString(),
		NodeType:    nodeType,
		Name:        name,
		Description: dbutils.NullString(*childDesc),
		ApiUrl:      dbutils.NullString(*childUrl),
		Status:      dbclient.NodeStatusOffline,
		IsActive:    true,
		CreatedAt:   dbutils.NullTime(now),
		UpdatedAt:   dbutils.NullTime(now),
	}
	if err := client.InsertNode(ctx, node); err != nil {
		fatal("failed to create node %s: %v", name, err)
	}
	fmt.Printf("created node %s (%s)\n", node.Id, name)

	if nodeType != dbclient.NodeTypeWorker {
		return
	}
	accessKey, secretKey, err := credential.NewVerifier(client).Issue(ctx, node.Id)
	if err != nil {
		fatal("failed to issue credentials for %s: %v", node.Id, err)
	}
	fmt.Println()
	fmt.Println("credentials for this worker (shown only once, store them now):")
	fmt.Printf("  api_key:    %s\n", accessKey)
	fmt.Printf("  api_secret: %s\n", secretKey)
	fmt.Println()
	fmt.Println("agent config snippet:")
	fmt.Println("  cascade:")
	fmt.Println("    enable: true")
	fmt.Println("    node_type: child")
	fmt.Println("    parent_api_url: <coordinator url>")
	fmt.Printf("    api_key: %s\n", accessKey)
	fmt.Printf("    api_secret: %s\n", secretKey)
}

func listNodes(ctx context.Context, client *dbclient.Client) {
	nodes, err := client.SelectNodes(ctx, nil, []string{"created_at ASC"}, 0, 0)
	if err != nil {
		fatal("failed to list nodes: %v", err)
	}
	if len(nodes) == 0 {
		fmt.Println("no nodes registered")
		return
	}
	now := time.Now().UTC()
	fmt.Printf("%-36s  %-12s  %-20s  %-8s  %s\n", "ID", "TYPE", "NAME", "LIVENESS", "LAST HEARTBEAT")
	for _, node := range nodes {
		kind := "worker"
		if node.NodeType == dbclient.NodeTypeCoordinator {
			kind = "coordinator"
		}
		liveness := "offline"
		if registry.Classify(node, now) {
			liveness = "online"
		}
		heartbeat := "-"
		if node.LastHeartbeatAt.Valid {
			heartbeat = node.LastHeartbeatAt.Time.UTC().Format(time.RFC3339)
		}
		fmt.Printf("%-36s  %-12s  %-20s  %-8s  %s\n", node.Id, kind, node.Name, liveness, heartbeat)
	}
}

// checkWorkerConfig validates the cascade section a worker needs before it
// can claim work.
func checkWorkerConfig(fullPath string) {
	var problems []string
	if !commonconfig.IsCascadeEnable() {
		problems = append(problems, "cascade.enable is false")
	}
	if commonconfig.GetCascadeNodeType() != commonconfig.NodeTypeChild {
		problems = append(problems, `cascade.node_type is not "child" (worker)`)
	}
	if common.Sanitize(commonconfig.GetCascadeParentApiUrl()) == "" {
		problems = append(problems, "cascade.parent_api_url is empty")
	}
	accessKey := common.Sanitize(commonconfig.GetCascadeApiKey())
	if !strings.HasPrefix(accessKey, "CN") || len(accessKey) != 34 {
		problems = append(problems, "cascade.api_key is missing or malformed")
	}
	secretKey := common.Sanitize(commonconfig.GetCascadeApiSecret())
	if !strings.HasPrefix(secretKey, "CS") || len(secretKey) != 34 {
		problems = append(problems, "cascade.api_secret is missing or malformed")
	}
	if commonconfig.GetSyncServiceUrl() == "" {
		problems = append(problems, "sync_service_url is empty")
	}
	if len(problems) > 0 {
		fmt.Printf("%s is not a valid worker config:\n", fullPath)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Printf("%s looks good\n", fullPath)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
