// Command formcoach drives the rep-detection engine from a recorded
// keypoint stream, either headless (printing rep events) or as a live
// terminal dashboard.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/formcoach/internal/advice"
	"github.com/abelbrown/formcoach/internal/config"
	"github.com/abelbrown/formcoach/internal/exercise"
	"github.com/abelbrown/formcoach/internal/logging"
	"github.com/abelbrown/formcoach/internal/otel"
	"github.com/abelbrown/formcoach/internal/pose"
	"github.com/abelbrown/formcoach/internal/session"
	"github.com/abelbrown/formcoach/internal/store"
	"github.com/abelbrown/formcoach/internal/ui"
)

func main() {
	input := flag.String("input", "-", "JSONL frame stream: file path or - for stdin")
	exerciseFlag := flag.String("exercise", "pullup", "exercise to detect: pullup or jump")
	useTUI := flag.Bool("tui", false, "run the terminal dashboard")
	debug := flag.Bool("debug", false, "echo raw angles and engine events")
	dbPath := flag.String("db", "", "session database path (default ~/.formcoach/formcoach.db, empty config disables)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("create data directory: %v", err)
	}
	if err := logging.Init(dataDir); err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logging.Close()

	// Engine event log: JSONL alongside the app log, plus a ring buffer
	// for the dashboard's debug tail.
	eventPath := filepath.Join(dataDir, "events.jsonl")
	eventFile, err := os.OpenFile(eventPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("open event log: %v", err)
	}
	defer eventFile.Close()

	obs := otel.NewLogger(eventFile)
	defer obs.Close()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	obs.SetRingBuffer(ring)
	obs.Info(otel.KindStartup, "main", "formcoach starting")
	defer obs.Info(otel.KindShutdown, "main", "formcoach stopping")

	// Session store: the persistence collaborator, fed from rep events
	// outside the frame path.
	var st *store.Store
	if cfg.Store.Enabled {
		path := *dbPath
		if path == "" {
			path = cfg.Store.Path
		}
		if path == "" {
			path = filepath.Join(dataDir, "formcoach.db")
		}
		st, err = store.Open(path)
		if err != nil {
			log.Fatalf("open session store: %v", err)
		}
		defer st.Close()
	}

	// Advice provider: the external phrase service when configured,
	// otherwise the controller falls back to canned phrases on its own.
	var provider advice.Provider
	if cfg.Advice.Endpoint != "" {
		provider = advice.NewHTTPProvider(cfg.Advice.Endpoint, cfg.Advice.APIKey, cfg.Advice.MinCallInterval())
	}

	ctrl := session.New(cfg, provider, obs)
	ctrl.SetDebug(*debug || cfg.UI.Debug)
	defer ctrl.Close()

	kind := exercise.Kind(*exerciseFlag)
	if err := ctrl.SetExercise(kind); err != nil {
		log.Fatalf("set exercise: %v", err)
	}
	ctrl.SetWorkoutActive(true)

	var in io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}
	src := pose.NewSource(in)

	var sessionID int64
	started := time.Now()
	if st != nil {
		sessionID, err = st.BeginSession(string(kind), started)
		if err != nil {
			obs.Error(otel.KindStoreError, "main", err)
			logging.Error("begin session", "error", err)
			st = nil
		}
	}
	saveRep := func(ev ui.RepEvent) {
		if st == nil {
			return
		}
		err := st.SaveRep(sessionID, store.Rep{
			Time:   ev.Time,
			Score:  ev.Score,
			Issues: issueStrings(ev.Issues),
		})
		if err != nil {
			obs.Error(otel.KindStoreError, "main", err)
		}
	}

	if *useTUI {
		model := ui.New(ctrl, src, ring, cfg.UI.EventTail, saveRep)
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Printf("run dashboard: %v", err)
		}
	} else {
		if err := runHeadless(ctrl, src, saveRep); err != nil {
			log.Printf("replay: %v", err)
		}
	}

	if st != nil {
		if err := st.FinishSession(sessionID, time.Now(), ctrl.RepCount(), ctrl.Average()); err != nil {
			obs.Error(otel.KindStoreError, "main", err)
		}
	}
	fmt.Printf("session complete: %d reps, form %.0f\n", ctrl.RepCount(), ctrl.Average())
}

// runHeadless pumps frames through the engine at full speed, printing rep
// events and feedback as they occur. The pump and the printer run as
// separate goroutines so slow terminals never stall frame decoding.
func runHeadless(ctrl *session.Controller, src *pose.Source, saveRep func(ui.RepEvent)) error {
	frames := make(chan *pose.Frame, 64)

	var g errgroup.Group
	g.Go(func() error {
		defer close(frames)
		for {
			f, err := src.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			frames <- f
		}
	})

	g.Go(func() error {
		for f := range frames {
			out := ctrl.ProcessFrame(f)
			if out.RepDelta > 0 {
				fmt.Printf("rep %d  score %d  avg %.0f  issues %v\n",
					ctrl.RepCount(), out.Score, out.Average, out.Issues)
				saveRep(ui.RepEvent{
					Time:    time.Now(),
					Score:   out.Score,
					Issues:  out.Issues,
					Average: out.Average,
				})
			}
			if out.Feedback != "" {
				fmt.Printf("  coach: %s\n", out.Feedback)
			}
			if out.AudioPulse {
				fmt.Println("  [pulse]")
			}
		}
		return nil
	})

	return g.Wait()
}

func issueStrings(issues []exercise.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, string(issue))
	}
	return out
}
