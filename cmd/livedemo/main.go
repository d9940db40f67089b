package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mnohosten/changetrack/pkg/livedemo"
)

func main() {
	host := flag.String("host", "localhost", "Server host address")
	port := flag.Int("port", 8090, "Server port")
	corsOrigin := flag.String("cors-origin", "*", "CORS allowed origin")
	enableGraphQL := flag.Bool("graphql", true, "Enable GraphQL API endpoint (/graphql) and GraphiQL playground (/graphiql)")
	flag.Parse()

	config := livedemo.DefaultConfig()
	config.Host = *host
	config.Port = *port
	config.AllowedOrigins = []string{*corsOrigin}
	config.EnableGraphQL = *enableGraphQL

	srv, err := livedemo.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
