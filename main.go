package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"battleship/cli"
	"battleship/engine"
	"battleship/env"
	"battleship/experiments"
	"battleship/game"
	"battleship/policy"
	"battleship/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "demo", "play | demo | experiment")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "master random seed")
	opponent := flag.String("opponent", "search", "opponent policy: random | hunt | search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch *mode {
	case "play":
		if err := runInteractive(*seed, *opponent); err != nil {
			log.Fatal().Err(err).Msg("interactive game failed")
		}
	case "demo":
		runDemo(*seed, *opponent)
	case "experiment":
		if err := experiments.RunPolicyStrengthExperiment(); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func buildPolicy(kind string, seed uint64) env.Policy {
	switch kind {
	case "random":
		return policy.NewRandom(seed)
	case "hunt":
		return policy.NewHuntTarget(seed)
	default:
		hunter := searcher.NewHunter(4,
			searcher.WithEpisodes(3000),
			searcher.WithSeed(seed),
		)
		return policy.NewSearch(seed, hunter)
	}
}

// runDemo plays one AI-vs-AI match and prints the final boards.
func runDemo(seed uint64, opponent string) {
	match := engine.NewMatch(seed,
		policy.NewHuntTarget(seed+1),
		buildPolicy(opponent, seed+2))
	winner, gameMetric, _, err := match.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("demo match failed")
	}

	fmt.Printf("\nPlayer1 board:\n%s\n", cli.FormatBoard(match.Game.Board(game.Player1), true))
	fmt.Printf("\nPlayer2 board:\n%s\n", cli.FormatBoard(match.Game.Board(game.Player2), true))
	fmt.Printf("\n%s wins after %d moves.\n", winner, gameMetric.TotalMoves)
}

// runInteractive plays a human (Player1) against an AI policy.
func runInteractive(seed uint64, opponent string) error {
	g := game.NewGame(seed)
	g.SetupRandom()
	ai := buildPolicy(opponent, seed+1)
	scanner := bufio.NewScanner(os.Stdin)

	var lastHumanShot *game.Coordinate
	step := 0
	for g.Phase == game.PhaseInProgress {
		fmt.Printf("\nOpponent waters:\n%s\n", cli.FormatBoard(g.Board(game.Player2), false))
		fmt.Printf("\nYour fleet:\n%s\n", cli.FormatBoard(g.Board(game.Player1), true))

		coord, quit := promptShot(scanner, g)
		if quit {
			fmt.Println("Goodbye!")
			return nil
		}

		_, ship, err := g.MakeMove(game.Player1, coord)
		if err != nil {
			fmt.Printf("Invalid shot: %v\n", err)
			continue
		}
		fmt.Println(cli.DescribeShot(game.Player1, coord, ship))
		shot := coord
		lastHumanShot = &shot
		if g.Phase != game.PhaseInProgress {
			break
		}

		obs := env.ObservationFor(g, game.Player2, lastHumanShot, float32(step%2))
		mask := env.ShotMaskFor(g, game.Player2)
		action := ai.Choose(obs, mask)
		aiCoord, ok := env.ActionToCoordinate(action)
		if !ok || mask[action] == 0 {
			aiCoord = g.ValidMoves(game.Player2)[0]
		}
		_, aiShip, err := g.MakeMove(game.Player2, aiCoord)
		if err != nil {
			return fmt.Errorf("opponent shot rejected: %w", err)
		}
		fmt.Println(cli.DescribeShot(game.Player2, aiCoord, aiShip))
		step++
	}

	if g.Winner == game.Player1 {
		fmt.Println("\nYou win! The enemy fleet is at the bottom of the sea.")
	} else {
		fmt.Printf("\n%s\nYour fleet has been sunk. Better luck next time.\n",
			cli.FormatBoard(g.Board(game.Player1), true))
	}
	return nil
}

func promptShot(scanner *bufio.Scanner, g *game.Game) (game.Coordinate, bool) {
	for {
		fmt.Print("Enter target coordinate (e.g. A5) or 'q' to quit: ")
		if !scanner.Scan() {
			return game.Coordinate{}, true
		}
		raw := scanner.Text()
		if raw == "q" || raw == "Q" {
			return game.Coordinate{}, true
		}

		coord, err := cli.ParseCoordinate(raw, g.Board(game.Player2).Size)
		if err != nil {
			fmt.Printf("Invalid input: %v\n", err)
			continue
		}
		if g.Board(game.Player2).CellStateAt(coord) != game.CellUnknown {
			fmt.Println("That cell has already been targeted. Choose another.")
			continue
		}
		return coord, false
	}
}
