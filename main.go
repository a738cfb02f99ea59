// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-core-stack/core/db"
	"github.com/go-core-stack/core/values"

	"github.com/go-core-stack/auth-console/pkg/config"
	"github.com/go-core-stack/auth-console/pkg/mgmt"
	"github.com/go-core-stack/auth-console/pkg/server"
	"github.com/go-core-stack/auth-console/pkg/table"
)

var (
	// path to config file
	configFile string
)

const (
	// Port serving the provider console API
	ConsolePort = ":8098"
)

// Parse flags for the process
func parseFlags() {
	// Add String variable flag "-config" allowing option to specify
	// the relevant config file for the process
	flag.StringVar(&configFile, "config", "", "path to the config file")

	// parse the supplied flags
	flag.Parse()
}

func main() {
	// setup a context for the main function allowing cleanup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer func() {
		cancelFn()
		// Allow a buffer time of 10 seconds for processing the closure
		// of the provided context
		time.Sleep(10 * time.Second)
	}()

	// Parse the flag options for the process
	parseFlags()
	conf, err := config.ParseConfig(configFile)
	if err != nil {
		log.Panicf("Failed to parse config: %s", err)
	}
	log.Printf("Got backend endpoint %s", conf.GetBackend().Endpoint)

	// Get mongo configdb database Credentials from environment variables
	// this is done to ensure that the credentials are not stored in plain
	// text as part of the config files
	username, password := values.GetMongoConfigDBCredentials()

	// read the configuration for configdb
	dbConfig := &db.MongoConfig{
		Host:     conf.GetConfigDB().Host,
		Port:     conf.GetConfigDB().Port,
		Username: username,
		Password: password,
	}

	// create new client for the mongodb config
	client, err := db.NewMongoClient(dbConfig)
	if err != nil {
		log.Panicf("Failed to get handle of mongodb client: %s", err)
	}

	// ensure running heath check to validate that provided mongodb endpoint
	// is usable
	err = client.HealthCheck(ctx)
	if err != nil {
		log.Panicf("failed to perform Health check with DB Error: %s", err)
	}

	// locate the provider audit table, keeping a trail of provider
	// configuration changes
	auditTbl, err := table.LocateProviderAuditTable(client)
	if err != nil {
		log.Panicf("failed to locate provider audit table: %s", err)
	}

	// create the tenant management API client for the configured
	// backend auth service
	mgmtClient := mgmt.New(&mgmt.Config{
		Endpoint: conf.GetBackend().Endpoint,
		BasePath: conf.GetBackend().BasePath,
		APIKey:   config.GetAPIKey(),
	})

	// setup the console API server
	srv := server.New(mgmtClient, auditTbl)

	go func() {
		lis, err := net.Listen("tcp", ConsolePort)
		if err != nil {
			log.Panicf("failed to start Console Server: %s", err)
		}
		log.Panic(http.Serve(lis, srv))
	}()

	log.Println("Initialization of Auth Console completed")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	s := <-sigc
	log.Printf("Terminating Process got signal: %s", s)
}
