// plangen generates a single meal plan from a JSON request file and prints
// the API response to stdout. Useful for tuning solver defaults without
// running the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/platewise/platewise-backend/internal/catalog"
	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/platform/logger"
	"github.com/platewise/platewise-backend/internal/services"
	"github.com/platewise/platewise-backend/internal/solver"
)

func main() {
	var (
		requestPath = flag.String("request", "", "path to a JSON plan request")
		catalogPath = flag.String("catalog", "data/ingredients.yaml", "path to the YAML ingredient catalog")
		seed        = flag.Int64("seed", 0, "override the request seed (0 keeps the request's value)")
		timeout     = flag.Duration("timeout", 10*time.Second, "solve deadline")
		pretty      = flag.Bool("pretty", true, "indent the JSON output")
	)
	flag.Parse()

	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "plangen: -request is required")
		flag.Usage()
		os.Exit(2)
	}

	log := logger.NewNop()

	raw, err := os.ReadFile(*requestPath)
	if err != nil {
		fatal("read request: %v", err)
	}
	var req domain.PlanRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		fatal("parse request: %v", err)
	}
	if *seed != 0 {
		req.Seed = seed
	}

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fatal("load catalog: %v", err)
	}

	store := catalog.NewStaticStore(log, cat)
	planner := services.NewPlannerService(log, store, solver.New(log, solver.DefaultConfig()), nil, *timeout)

	resp, err := planner.Generate(context.Background(), req)
	if err != nil {
		fatal("generate plan: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		fatal("encode response: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "plangen: "+format+"\n", args...)
	os.Exit(1)
}
