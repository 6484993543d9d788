package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/vistoriahub/vistoria/internal/clock"
	"github.com/vistoriahub/vistoria/internal/config"
	"github.com/vistoriahub/vistoria/internal/logger"
	"github.com/vistoriahub/vistoria/internal/metrics"
	"github.com/vistoriahub/vistoria/internal/migration"
	"github.com/vistoriahub/vistoria/internal/server"
	"github.com/vistoriahub/vistoria/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
