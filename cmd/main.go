package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/routinekeeper/internal/api"
	"github.com/dtroode/routinekeeper/internal/auth"
	"github.com/dtroode/routinekeeper/internal/config"
	"github.com/dtroode/routinekeeper/internal/logger"
	"github.com/dtroode/routinekeeper/internal/model"
	"github.com/dtroode/routinekeeper/internal/profile"
	"github.com/dtroode/routinekeeper/internal/repository/postgres"
	"github.com/dtroode/routinekeeper/internal/session"
	"github.com/dtroode/routinekeeper/internal/token"
	"github.com/dtroode/routinekeeper/internal/workout"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	routineRepo := postgres.NewRoutineRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	authService := auth.NewService(userRepo, profileRepo, tokenManager, logger)
	resolver := profile.NewResolver(profileRepo, logger)

	manager := session.NewManager(authService, resolver, logger)
	defer manager.Close()

	client := workout.NewClient(routineRepo, exerciseRepo, logger)

	var wg sync.WaitGroup
	var diagServer *http.Server
	if cfg.Diag.Addr != "" {
		diagServer = &http.Server{
			Addr:         cfg.Diag.Addr,
			Handler:      api.NewRouter(db),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting diagnostics server", "address", cfg.Diag.Addr)
			if err := diagServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("diagnostics server failed", "error", err)
			}
		}()
	}

	logAppVersion()

	if err := manager.Initialize(ctx); err != nil {
		logger.Fatal("failed to initialize session manager", "error", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		runPrompt(ctx, stop, manager, client)
	}()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	if diagServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := diagServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during diagnostics server shutdown", "error", err)
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// runPrompt drives the session manager and store client from a
// line-oriented prompt until EOF or interruption.
func runPrompt(ctx context.Context, stop func(), manager *session.Manager, client *workout.Client) {
	defer stop()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`Type "help" for the command list.`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "signup":
			if len(args) != 3 {
				fmt.Println("usage: signup <email> <password>")
				continue
			}
			manager.SignUp(ctx, args[1], args[2])
			reportAuthOutcome(manager)
		case "login":
			if len(args) != 3 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			manager.Login(ctx, args[1], args[2])
			reportAuthOutcome(manager)
		case "logout":
			manager.Logout(ctx)
			fmt.Println("logged out")
		case "whoami":
			if identity, ok := manager.Identity(); ok {
				fmt.Printf("%s (%s)\n", identity.Username, identity.ID)
			} else {
				fmt.Println("not logged in")
			}
		case "list":
			withIdentity(manager, func(identity model.Identity) {
				routines, err := client.ListRoutines(ctx, identity.ID)
				if err != nil {
					fmt.Println("could not load routines")
					return
				}
				if len(routines) == 0 {
					fmt.Println("no routines yet")
					return
				}
				for _, r := range routines {
					fmt.Printf("%s  %s (%d exercises)\n", r.ID, r.Name, len(r.Exercises))
				}
			})
		case "create":
			if len(args) < 2 {
				fmt.Println("usage: create <name...>")
				continue
			}
			withIdentity(manager, func(identity model.Identity) {
				routine, err := client.CreateRoutine(ctx, identity.ID, strings.Join(args[1:], " "), "")
				if err != nil {
					fmt.Println("could not create routine:", err)
					return
				}
				fmt.Printf("created %s\n", routine.ID)
			})
		case "detail":
			if len(args) != 2 {
				fmt.Println("usage: detail <routine-id>")
				continue
			}
			withIdentity(manager, func(identity model.Identity) {
				id, err := uuid.Parse(args[1])
				if err != nil {
					fmt.Println("invalid routine id")
					return
				}
				routine, err := client.RoutineDetail(ctx, id, identity.ID)
				if err != nil {
					fmt.Println("routine not found")
					return
				}
				printRoutine(routine)
			})
		case "add":
			if len(args) < 5 {
				fmt.Println("usage: add <routine-id> <name> <sets> <reps> [weight] [duration]")
				continue
			}
			routineID, err := uuid.Parse(args[1])
			if err != nil {
				fmt.Println("invalid routine id")
				continue
			}
			fields, err := parseExerciseFields(args[2:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if _, err := client.AddExercise(ctx, routineID, fields); err != nil {
				fmt.Println("could not add exercise:", err)
				continue
			}
			fmt.Println("added")
		case "update":
			if len(args) < 5 {
				fmt.Println("usage: update <exercise-id> <name> <sets> <reps> [weight] [duration]")
				continue
			}
			exerciseID, err := uuid.Parse(args[1])
			if err != nil {
				fmt.Println("invalid exercise id")
				continue
			}
			fields, err := parseExerciseFields(args[2:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if _, err := client.UpdateExercise(ctx, exerciseID, fields); err != nil {
				fmt.Println("could not update exercise:", err)
				continue
			}
			fmt.Println("updated")
		case "delete":
			if len(args) != 2 {
				fmt.Println("usage: delete <exercise-id>")
				continue
			}
			exerciseID, err := uuid.Parse(args[1])
			if err != nil {
				fmt.Println("invalid exercise id")
				continue
			}
			if err := client.DeleteExercise(ctx, exerciseID); err != nil {
				fmt.Println("could not delete exercise")
				continue
			}
			fmt.Println("deleted")
		default:
			fmt.Println("unknown command; type \"help\"")
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  signup <email> <password>
  login <email> <password>
  logout
  whoami
  list
  create <name...>
  detail <routine-id>
  add <routine-id> <name> <sets> <reps> [weight] [duration]
  update <exercise-id> <name> <sets> <reps> [weight] [duration]
  delete <exercise-id>
  quit`)
}

func reportAuthOutcome(manager *session.Manager) {
	if msg := manager.LastError(); msg != "" {
		fmt.Println(msg)
		return
	}
	if identity, ok := manager.Identity(); ok {
		fmt.Printf("welcome, %s\n", identity.Username)
	}
}

func withIdentity(manager *session.Manager, fn func(model.Identity)) {
	identity, ok := manager.Identity()
	if !ok {
		fmt.Println("log in first")
		return
	}
	fn(identity)
}

func printRoutine(routine model.Routine) {
	fmt.Printf("%s\n", routine.Name)
	if routine.Description != nil {
		fmt.Printf("  %s\n", *routine.Description)
	}
	for _, e := range routine.Exercises {
		line := fmt.Sprintf("  %s  %s  %dx%d", e.ID, e.Name, e.Sets, e.Reps)
		if e.Weight != nil {
			line += fmt.Sprintf("  %.1fkg", *e.Weight)
		}
		if e.Duration != nil {
			line += fmt.Sprintf("  %.0fs", *e.Duration)
		}
		if e.Notes != nil {
			line += "  (" + *e.Notes + ")"
		}
		fmt.Println(line)
	}
}

// parseExerciseFields parses "<name> <sets> <reps> [weight] [duration]".
// A "-" placeholder keeps an optional value absent while a later one is
// given; zero is accepted as a real measurement.
func parseExerciseFields(args []string) (workout.ExerciseFields, error) {
	if len(args) < 3 {
		return workout.ExerciseFields{}, errors.New("name, sets and reps are required")
	}

	sets, err := strconv.Atoi(args[1])
	if err != nil || sets <= 0 {
		return workout.ExerciseFields{}, errors.New("sets must be a positive integer")
	}
	reps, err := strconv.Atoi(args[2])
	if err != nil || reps <= 0 {
		return workout.ExerciseFields{}, errors.New("reps must be a positive integer")
	}

	fields := workout.ExerciseFields{Name: args[0], Sets: sets, Reps: reps}

	if len(args) > 3 && args[3] != "-" {
		weight, err := strconv.ParseFloat(args[3], 64)
		if err != nil || weight < 0 {
			return workout.ExerciseFields{}, errors.New("weight must be a non-negative number")
		}
		fields.Weight = &weight
	}
	if len(args) > 4 && args[4] != "-" {
		duration, err := strconv.ParseFloat(args[4], 64)
		if err != nil || duration < 0 {
			return workout.ExerciseFields{}, errors.New("duration must be a non-negative number")
		}
		fields.Duration = &duration
	}

	return fields, nil
}
