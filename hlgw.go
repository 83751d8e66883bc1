package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"hlgw-api/internal/config"
	"hlgw-api/internal/handler"
	"hlgw-api/internal/svc"
)

var configFile = flag.String("f", "etc/hlgw.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
