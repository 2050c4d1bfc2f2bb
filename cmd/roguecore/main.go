// Command roguecore is a headless harness around the engine: it drives a
// world from a seed and a scripted action sequence and prints the
// resulting message log, with optional JSON/SVG exports of the final
// state. Useful for reproducing bug reports ("seed 12345, actions
// E,E,S,pickup") and for balance sweeps.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tholloway/roguecore/pkg/engine"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/export"
	"github.com/tholloway/roguecore/pkg/save"
)

const version = "1.0.0"

var (
	seedFlag    = flag.Uint64("seed", 1, "World seed")
	actionsFlag = flag.String("actions", "", "Comma-separated action script (e.g. E,S,wait,pickup,stairs)")
	classFlag   = flag.String("class", "warrior", "Starting class: warrior, rogue, or mage")
	loadFlag    = flag.String("load", "", "Resume from a save file instead of starting fresh")
	saveFlag    = flag.String("save", "", "Write a save file after the script finishes")
	jsonFlag    = flag.String("out-json", "", "Write the final world state as JSON")
	svgFlag     = flag.String("out-svg", "", "Write the final floor plan as SVG")
	quietFlag   = flag.Bool("quiet", false, "Suppress the per-turn message log")
	versionF    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("roguecore version %s\n", version)
		os.Exit(0)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	if err := run(sugar); err != nil {
		sugar.Errorw("run failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sugar *zap.SugaredLogger) error {
	var w *engine.World
	if *loadFlag != "" {
		f, err := save.ReadFile(*loadFlag)
		if err != nil {
			return err
		}
		w = f.World
		sugar.Infow("session resumed", "save_id", f.SaveID, "seed", w.Seed(), "floor", w.Floor(), "turn", w.Turn())
	} else {
		var err error
		w, err = engine.New(*seedFlag, engine.WithClass(*classFlag))
		if err != nil {
			return err
		}
		sugar.Infow("session started", "seed", *seedFlag, "class", *classFlag)
	}

	actions, err := parseActions(*actionsFlag)
	if err != nil {
		return err
	}

	printed := len(w.Messages())
	for i, action := range actions {
		result := w.ResolveTurn(action)
		if !*quietFlag {
			for _, m := range w.Messages()[printed:] {
				fmt.Printf("[t%03d] %s\n", m.Turn, m.Text)
			}
			printed = len(w.Messages())
		}
		if result.GameOver != nil {
			sugar.Infow("run ended",
				"victory", result.GameOver.RunSummary.Victory,
				"floor", result.GameOver.RunSummary.Floor,
				"turns", result.GameOver.RunSummary.Turns,
				"score", result.GameOver.FinalScore,
			)
			fmt.Printf("\n--- run over after %d/%d actions: score %d ---\n",
				i+1, len(actions), result.GameOver.FinalScore)
			break
		}
	}

	fmt.Printf("\nfloor %d, turn %d, HP %d/%d, gold %d\n",
		w.Floor(), w.Turn(),
		w.Player().Health.Current, w.Player().Health.Max, w.Gold())

	if *saveFlag != "" {
		if err := save.WriteFile(w, *saveFlag); err != nil {
			return err
		}
		sugar.Infow("state saved", "path", *saveFlag)
	}
	if *jsonFlag != "" {
		if err := export.SaveJSONToFile(w, *jsonFlag); err != nil {
			return err
		}
	}
	if *svgFlag != "" {
		opts := export.DefaultSVGOptions()
		if err := export.SaveSVGToFile(w, *svgFlag, opts); err != nil {
			return err
		}
	}
	return nil
}

// parseActions turns the -actions script into engine actions. Directions
// are compass names; other words name the remaining simple actions, with
// use:N / drop:N / equip:N taking an inventory index.
func parseActions(script string) ([]engine.PlayerAction, error) {
	if script == "" {
		return nil, fmt.Errorf("no -actions script given")
	}

	directions := map[string]entity.Direction{
		"n": entity.N, "s": entity.S, "e": entity.E, "w": entity.W,
		"ne": entity.NE, "nw": entity.NW, "se": entity.SE, "sw": entity.SW,
	}

	var actions []engine.PlayerAction
	for _, raw := range strings.Split(script, ",") {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word == "" {
			continue
		}
		if dir, ok := directions[word]; ok {
			actions = append(actions, engine.Move(dir))
			continue
		}

		name, arg, hasArg := strings.Cut(word, ":")
		switch name {
		case "wait":
			actions = append(actions, engine.Wait())
		case "pickup":
			actions = append(actions, engine.PickUp())
		case "stairs":
			actions = append(actions, engine.UseStairs())
		case "interact":
			actions = append(actions, engine.Interact())
		case "autoexplore":
			actions = append(actions, engine.AutoExplore())
		case "use", "drop", "equip", "ability":
			if !hasArg {
				return nil, fmt.Errorf("action %q needs an index, e.g. %s:0", word, name)
			}
			idx, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("action %q: bad index %q", word, arg)
			}
			switch name {
			case "use":
				actions = append(actions, engine.UseItem(idx))
			case "drop":
				actions = append(actions, engine.DropItem(idx))
			case "equip":
				actions = append(actions, engine.EquipItem(idx))
			case "ability":
				// Untargeted cast; self-only abilities work, targeted
				// ones report their precondition failure.
				actions = append(actions, engine.UseAbility(idx, 0))
			}
		default:
			return nil, fmt.Errorf("unknown action %q", word)
		}
	}
	return actions, nil
}
