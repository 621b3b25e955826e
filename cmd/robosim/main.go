package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/robosim/internal/config"
	"github.com/banshee-data/robosim/internal/sim"
	"github.com/banshee-data/robosim/internal/simdb"
	"github.com/banshee-data/robosim/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to tuning config JSON (defaults apply when empty)")
	dbPath     = flag.String("db", "", "Path to telemetry database (recording disabled when empty)")
	scriptPath = flag.String("script", "", "Path to command script ('-' for stdin)")
	label      = flag.String("label", "robosim run", "Label recorded with the run")
	startFlag  = flag.String("start", "0,0,0", "Start position as x,y,z")
	blocked    = flag.Bool("blocked-gripper", false, "Start with a blocked gripper")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func parseStart(s string) (sim.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return sim.Vec3{}, fmt.Errorf("start position must be x,y,z, got %q", s)
	}
	var out [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return sim.Vec3{}, fmt.Errorf("bad start coordinate %q: %w", p, err)
		}
		out[i] = v
	}
	return sim.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.EmptyTuningConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("robosim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *scriptPath == "" {
		log.Fatal("a command script is required (-script PATH or -script -)")
	}

	tuning, err := loadTuning(*configPath)
	if err != nil {
		log.Fatalf("failed to load tuning config: %v", err)
	}

	start, err := parseStart(*startFlag)
	if err != nil {
		log.Fatalf("failed to parse start position: %v", err)
	}

	gripper := sim.GripperOpen
	if *blocked {
		gripper = sim.GripperBlocked
	}

	registry := sim.NewObstacleRegistry()
	robot, err := sim.NewRobotWithGripper(start, tuning.SimConfig(), registry, gripper)
	if err != nil {
		log.Fatalf("failed to create robot: %v", err)
	}

	r := &runner{
		robot:    robot,
		registry: registry,
		sensor:   sim.Sensor{Range: tuning.GetSensorRange()},
		noisy:    sim.NewNoisySensor(tuning.GetSensorNoiseSigma(), tuning.GetSensorSeed()),
		estCfg:   tuning.SimConfig().Estimator,
	}

	// Telemetry recording is opt-in via -db.
	var store *simdb.DB
	if *dbPath != "" {
		store, err = simdb.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open telemetry database: %v", err)
		}
		defer store.Close()

		run := simdb.NewRun(*label, time.Now().UnixNano())
		if err := store.InsertRun(run); err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
		r.store = store
		r.run = run
		log.Printf("Recording run %s to %s", run.RunID, *dbPath)
	}

	script := os.Stdin
	if *scriptPath != "-" {
		script, err = os.Open(*scriptPath)
		if err != nil {
			log.Fatalf("failed to open script: %v", err)
		}
		defer script.Close()
	}

	if err := r.runScript(script, log.Printf); err != nil {
		log.Fatalf("script failed: %v", err)
	}

	if err := r.recordHistory(); err != nil {
		log.Fatalf("failed to record history: %v", err)
	}
	if r.store != nil && r.run != nil {
		if err := r.store.FinishRun(r.run.RunID, time.Now().UnixNano(), r.commands, r.failures); err != nil {
			log.Fatalf("failed to finish run: %v", err)
		}
	}

	pos := robot.Position()
	log.Printf("Final position %v posture=%s gripper=%s commands=%d failures=%d",
		pos, robot.Posture(), robot.Gripper(), r.commands, r.failures)
	if carried, held := robot.CarriedObject(); held {
		log.Printf("Carried object at %v", carried)
	}
}
