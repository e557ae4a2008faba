// Build the payoff matrices of the margin game and enumerate its equilibria.
package main

import (
	_ "expvar"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/margingame"
	"github.com/timpalpant/margingame/matrixgame"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (defaults are used if empty)")
	methodName := flag.String("method", "support_enumeration",
		"Equilibrium method: support_enumeration or vertex_enumeration")
	maxSupportSize := flag.Int("max_support_size", 0, "Largest support size to enumerate (0 = no limit)")
	parallelism := flag.Int("parallelism", 0, "Number of solver workers (0 = number of CPUs)")
	fpIters := flag.Int("fictitious_play_iters", 0,
		"If > 0, approximate an equilibrium with this many rounds of fictitious play instead")
	seed := flag.Int64("seed", 1234, "Random seed for fictitious play")
	output := flag.String("output", "", "File to save results to (gzipped gob)")
	outputNPZ := flag.String("output_npz", "", "File to save payoff matrices to (NumPy .npz)")
	flag.Parse()

	go http.ListenAndServe("localhost:4123", nil)

	cfg, err := margingame.LoadConfig(*configFile)
	if err != nil {
		glog.Fatal(err)
	}

	method, err := matrixgame.ParseMethod(*methodName)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Building payoff matrices: %+v", cfg)
	attacker, defender, err := margingame.BuildPayoffMatrices(cfg)
	if err != nil {
		glog.Fatal(err)
	}

	if *outputNPZ != "" {
		glog.Infof("Saving payoff matrices to %v", *outputNPZ)
		if err := margingame.ExportNPZ(*outputNPZ, attacker, defender); err != nil {
			glog.Fatal(err)
		}
	}

	game, err := margingame.NewBimatrixGame(attacker, defender)
	if err != nil {
		glog.Fatal(err)
	}

	var equilibria []matrixgame.Equilibrium
	methodUsed := method.String()
	start := time.Now()
	if *fpIters > 0 {
		methodUsed = "fictitious_play"
		rng := rand.New(rand.NewSource(*seed))
		eq, err := matrixgame.FictitiousPlay(game, *fpIters, 0, rng)
		if err != nil {
			glog.Fatal(err)
		}
		equilibria = []matrixgame.Equilibrium{eq}
	} else {
		opts := matrixgame.Options{
			MaxSupportSize: *maxSupportSize,
			Parallelism:    *parallelism,
		}
		equilibria, err = game.Equilibria(method, opts)
		if err != nil {
			glog.Fatal(err)
		}
	}

	glog.Infof("Found %d equilibria in %v", len(equilibria), time.Since(start))
	margins := defender.RowLabels()
	columns := defender.ColumnLabels()
	for i, eq := range equilibria {
		defenderPayoff, attackerPayoff := game.Payoffs(eq)
		glog.Infof("Equilibrium %d: defender payoff %.3f, attacker payoff %.3f", i, defenderPayoff, attackerPayoff)
		for _, r := range eq.RowSupport(matrixgame.DefaultTolerance) {
			glog.Infof("  defender margin %s: %.4f", margins[r], eq.Row[r])
		}
		for _, c := range eq.ColSupport(matrixgame.DefaultTolerance) {
			glog.Infof("  attacker target-spread %s: %.4f", columns[c], eq.Col[c])
		}
	}

	if *output != "" {
		glog.Infof("Saving results to %v", *output)
		if err := saveResults(*output, margingame.NewResults(cfg, attacker, defender, methodUsed, equilibria)); err != nil {
			glog.Fatal(err)
		}
	}
}

func saveResults(filename string, results *margingame.Results) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := margingame.SaveResults(f, results); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
