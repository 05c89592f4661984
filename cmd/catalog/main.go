package main

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/migration"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/server"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Catalog domains and the HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.SnowflakeNode, err)
	}
	return node, nil
}
