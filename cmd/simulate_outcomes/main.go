// Replay a saved equilibrium of the margin game and report realized outcomes.
package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/golang/glog"

	"github.com/timpalpant/margingame"
)

func main() {
	resultsFile := flag.String("results", "", "Results file written by margingame")
	equilibrium := flag.Int("equilibrium", 0, "Index of the equilibrium to replay")
	numRounds := flag.Int("num_rounds", 100000, "Number of rounds to simulate")
	seed := flag.Int64("seed", 1234, "Random seed")
	flag.Parse()

	results := mustLoadResults(*resultsFile)
	if *equilibrium < 0 || *equilibrium >= len(results.Equilibria) {
		glog.Fatalf("Equilibrium %d requested, results have %d", *equilibrium, len(results.Equilibria))
	}

	grid, err := margingame.NewGridFromConfig(results.Config)
	if err != nil {
		glog.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	eq := results.Equilibria[*equilibrium]
	glog.Infof("Simulating %d rounds of equilibrium %d (%v)", *numRounds, *equilibrium, results.Method)
	sim, err := margingame.Simulate(results.Config, grid, eq, *numRounds, rng)
	if err != nil {
		glog.Fatal(err)
	}

	for _, o := range []margingame.Outcome{margingame.Quench, margingame.Detain, margingame.Breach} {
		glog.Infof("%v: %d (%.3f %%)", o, sim.Counts[o], 100*sim.Frequency(o))
	}
	glog.Infof("Mean defender payoff: %.3f", sim.DefenderPayoff)
	glog.Infof("Mean attacker payoff: %.3f", sim.AttackerPayoff)
}

func mustLoadResults(filename string) *margingame.Results {
	glog.Infof("Loading results from: %v", filename)
	f, err := os.Open(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	results, err := margingame.LoadResults(f)
	if err != nil {
		glog.Fatal(err)
	}

	return results
}
