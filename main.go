package main

import (
	"context"
	"fmt"
	"os"

	"clementus360/daily-tracker/cli"
	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/supabase"
	"clementus360/daily-tracker/tracker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnv()
	cfg := config.Load()
	config.InitLogger(cfg)
	ctx := context.Background()

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer db.Close()

	network := session.NewMonitor(false)
	workers := &cli.Workers{}
	app := &cli.App{Config: cfg, Network: network, Identity: session.NewStatic(), Workers: workers}
	opts := tracker.Options{Store: db, Network: network, Dispatch: workers.Dispatch}

	if cfg.RemoteConfigured() {
		auth, err := supabase.NewAuth(cfg)
		if err != nil {
			return fmt.Errorf("configuring supabase auth: %w", err)
		}
		app.Identity, app.Adopter = auth, auth
		opts.Remote = supabase.NewSyncer(supabase.NewPostgrest(auth.RestClient))
		opts.Cloud = supabase.NewArchive(auth.RestClient, cfg.ArchiveBucket)
		network.Check(ctx, nil, cfg.SupabaseURL)
	} else {
		config.Logger.Info("SUPABASE_URL not set, running local-only")
	}
	opts.Identity = app.Identity

	app.Tracker = tracker.New(opts)
	defer app.Tracker.Close()
	if err := app.Tracker.Load(ctx); err != nil {
		return fmt.Errorf("loading local state: %w", err)
	}

	return cli.Execute(ctx, app, cli.NewRootCmd(app))
}
