// ballotsim runs ranked-ballot election simulations from the command line.
// It accepts either a declarative YAML election file or inline candidate
// and ballot text, executes the selected voting methods, and prints a
// per-method report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahrav/go-ballot/infrastructure/middleware"
	"github.com/ahrav/go-ballot/internal/application"
	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

func main() {
	var (
		file        = flag.String("election", "", "Path to a YAML election file; overrides inline flags")
		candidates  = flag.String("candidates", "", "Comma-separated candidate names")
		ballots     = flag.String("ballots", "", "Ballot lines in 'count: ranking' form, newline-separated")
		ballotsFile = flag.String("ballots-file", "", "Path to a file of ballot lines")
		name        = flag.String("name", "", "Election name used in the report and metrics labels")
		irv         = flag.Bool("irv", true, "Run the instant-runoff tally")
		borda       = flag.Bool("borda", true, "Run the Borda count")
		condorcet   = flag.Bool("condorcet", true, "Run the Condorcet pairwise comparison")
		metricsAddr = flag.String("metrics-addr", "", "Expose Prometheus metrics on this address while running")
	)
	flag.Parse()

	var metrics ports.MetricsCollector
	if *metricsAddr != "" {
		metrics = middleware.NewPrometheusMetrics()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	registry := application.NewDefaultUnitRegistry()
	sim, err := application.NewSimulator(registry, metrics, middleware.Observe(metrics))
	if err != nil {
		log.Fatalf("failed to create simulator: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := runSimulation(ctx, sim, registry, simArgs{
		file:        *file,
		candidates:  *candidates,
		ballots:     *ballots,
		ballotsFile: *ballotsFile,
		name:        *name,
		methods:     application.Methods{IRV: *irv, Borda: *borda, Condorcet: *condorcet},
	})
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	fmt.Print(renderReport(report))
}

// simArgs bundles the resolved command-line inputs.
type simArgs struct {
	file        string
	candidates  string
	ballots     string
	ballotsFile string
	name        string
	methods     application.Methods
}

// runSimulation dispatches between the election-file path and the inline
// flag path.
func runSimulation(
	ctx context.Context,
	sim *application.Simulator,
	registry ports.UnitRegistry,
	args simArgs,
) (*domain.Report, error) {
	if args.file != "" {
		loader, err := application.NewElectionLoader(registry)
		if err != nil {
			return nil, err
		}

		loaded, err := loader.LoadFromFile(ctx, args.file)
		if err != nil {
			return nil, err
		}

		return sim.RunElection(ctx, loaded.Config.Metadata.Name, loaded.Election, loaded.Units)
	}

	ballotsText := args.ballots
	if args.ballotsFile != "" {
		data, err := os.ReadFile(args.ballotsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read ballots file: %w", err)
		}
		ballotsText = string(data)
	}

	return sim.Run(ctx, application.Request{
		CandidatesText: args.candidates,
		BallotsText:    ballotsText,
		ElectionName:   args.name,
		Methods:        args.methods,
	})
}
